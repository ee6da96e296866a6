package order

import "fmt"

type Status string

const (
	StatusProcessing Status = "Processing"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

func (o Order) IsProcessing() bool { return o.Status == StatusProcessing }
func (o Order) IsCompleted() bool  { return o.Status == StatusCompleted }
func (o Order) IsCancelled() bool  { return o.Status == StatusCancelled }

// Complete moves the order out of Processing. Completed and Cancelled are
// terminal; there is no way back to Processing.
func (o *Order) Complete() error {
	if !o.IsProcessing() {
		return fmt.Errorf("cannot complete order %s in status %s", o.ID, o.Status)
	}
	o.Status = StatusCompleted
	return nil
}

func (o *Order) Cancel() error {
	if !o.IsProcessing() {
		return fmt.Errorf("cannot cancel order %s in status %s", o.ID, o.Status)
	}
	o.Status = StatusCancelled
	return nil
}
