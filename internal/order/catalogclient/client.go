package catalogclient

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ecomkit/shop/internal/contracts"
)

const defaultTimeout = 5 * time.Second

// Client fetches product snapshots from the catalog service. Every failure
// mode (404, non-200, malformed body, transport error, timeout) folds into a
// nil snapshot. Failures are logged here and never surfaced to the caller.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

func New(baseURL string, logger *log.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}
}

type productEnvelope struct {
	Data *contracts.ProductSnapshot `json:"data"`
}

// Fetch returns the current snapshot for productID, or nil when the catalog
// cannot fulfill the lookup for any reason.
func (c *Client) Fetch(ctx context.Context, productID string) *contracts.ProductSnapshot {
	url := c.baseURL + "/product/" + productID

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Printf("build product request for %s: %v", productID, err)
		return nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("fetch product %s: %v", productID, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Printf("catalog returned status %d for product %s", resp.StatusCode, productID)
		return nil
	}

	body, err := decodeSnapshot(resp)
	if err != nil {
		c.logger.Printf("decode product %s: %v", productID, err)
		return nil
	}
	return body
}

// decodeSnapshot accepts both the {data, meta} envelope the catalog serves and
// a bare snapshot object, so older catalog deployments keep working.
func decodeSnapshot(resp *http.Response) (*contracts.ProductSnapshot, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	var env productEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Data != nil && env.Data.ID != "" {
		return env.Data, nil
	}

	var snapshot contracts.ProductSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, err
	}
	if snapshot.ID == "" {
		return nil, nil
	}
	return &snapshot, nil
}
