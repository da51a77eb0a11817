package upstream

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Stats is the normalized result of one stats fetch.
type Stats struct {
	BestBlockHeight int64
	BestBlockTime   time.Time
}

// statsResponse mirrors the endpoint's JSON envelope.
type statsResponse struct {
	Data struct {
		BestBlockHeight int64  `json:"best_block_height"`
		BestBlockTime   string `json:"best_block_time"`
	} `json:"data"`
}

// timeLayouts covers the formats the endpoint has been seen returning.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// Client fetches chain statistics from an external HTTP endpoint.
type Client struct {
	client *resty.Client
	url    string
}

// NewClient builds a stats client with a bounded request timeout.
func NewClient(url string, timeout time.Duration) *Client {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{client: client, url: url}
}

// Stats issues one GET against the stats endpoint. Non-2xx responses and
// payloads missing the expected fields are returned as errors; the caller
// decides whether that aborts anything beyond the current run.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var body statsResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("stats request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("stats request returned status %d", resp.StatusCode())
	}

	if body.Data.BestBlockHeight == 0 {
		return nil, fmt.Errorf("stats response missing best_block_height")
	}
	if body.Data.BestBlockTime == "" {
		return nil, fmt.Errorf("stats response missing best_block_time")
	}

	blockTime, err := parseBlockTime(body.Data.BestBlockTime)
	if err != nil {
		return nil, err
	}

	return &Stats{
		BestBlockHeight: body.Data.BestBlockHeight,
		BestBlockTime:   blockTime,
	}, nil
}

func parseBlockTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized best_block_time %q", value)
}
