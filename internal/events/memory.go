package events

import (
	"context"
	"sync"

	"github.com/ecomkit/shop/internal/contracts"
)

// MemoryPublisher is an in-process transport for tests. It records published
// events in order and can be reset between cases. Injected explicitly; there
// is no package-global capture.
type MemoryPublisher struct {
	mu       sync.Mutex
	messages []any

	// Err, when set, is returned by every publish without recording.
	Err error
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) PublishStockCreated(ctx context.Context, ev contracts.StockCreated) error {
	return p.record(ev)
}

func (p *MemoryPublisher) PublishStockUpdated(ctx context.Context, ev contracts.StockUpdated) error {
	return p.record(ev)
}

func (p *MemoryPublisher) PublishStockDecremented(ctx context.Context, ev contracts.StockDecremented) error {
	return p.record(ev)
}

func (p *MemoryPublisher) record(ev any) error {
	if p.Err != nil {
		return p.Err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, ev)
	return nil
}

// Messages returns the captured events in publish order.
func (p *MemoryPublisher) Messages() []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]any(nil), p.messages...)
}

// Reset clears the captured events.
func (p *MemoryPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = nil
}
