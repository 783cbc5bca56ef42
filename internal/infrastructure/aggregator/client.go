// Package aggregator implements the HTTP client for the remote aggregation
// API that owns the business data. Reports never touch a local database;
// every generation is dispatched here.
package aggregator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bizops/reporting/internal/domain/report"
	"github.com/bizops/reporting/internal/domain/shared"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	aggregationPath     = "/aggregation"
	bulkAggregationPath = "/bulk-aggregation"

	defaultTimeout = 30 * time.Second
)

// Config holds the aggregation API connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client implements report.Dispatcher over the aggregation API.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates an aggregation API client. Outbound requests carry trace
// context through the instrumented transport.
func NewClient(config Config, logger *zap.Logger) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("aggregator: base URL is required")
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}, nil
}

// envelope is the API's response wrapper. Message holds the payload on
// success and the error text on failure.
type envelope struct {
	Success bool            `json:"success"`
	Message json.RawMessage `json:"message"`
}

// bulkResult is the payload of a bulk aggregation response. Passed queries
// are keyed by schema name; any entry in FailedQueries fails the whole batch.
type bulkResult struct {
	PassedQueries map[string][]report.Row `json:"passedQueries"`
	FailedQueries []string                `json:"failedQueries"`
}

// Aggregate runs one aggregation pipeline and returns its result rows.
func (c *Client) Aggregate(ctx context.Context, q report.Query) ([]report.Row, error) {
	payload, err := c.post(ctx, aggregationPath, q)
	if err != nil {
		return nil, err
	}

	var rows []report.Row
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, fmt.Errorf("aggregator: decode rows for %s: %w", q.Schema, err)
	}
	return rows, nil
}

// BulkAggregate runs a batch of pipelines in one round trip. The batch is
// atomic on the read side: if the API reports any failed query, no partial
// result set is returned.
func (c *Client) BulkAggregate(ctx context.Context, queries []report.Query) (report.ResultSet, error) {
	payload, err := c.post(ctx, bulkAggregationPath, queries)
	if err != nil {
		return nil, err
	}

	var result bulkResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("aggregator: decode bulk result: %w", err)
	}
	if len(result.FailedQueries) > 0 {
		c.logger.Error("Bulk aggregation rejected queries",
			zap.Strings("failed", result.FailedQueries),
		)
		return nil, fmt.Errorf("aggregator: %d of %d queries failed (%s): %w",
			len(result.FailedQueries), len(queries),
			strings.Join(result.FailedQueries, ", "),
			shared.ErrUpstreamFailure)
	}

	rs := make(report.ResultSet, len(result.PassedQueries))
	for schema, rows := range result.PassedQueries {
		rs[report.EntityType(schema).Plural()] = rows
	}
	return rs, nil
}

// post sends one JSON request and unwraps the response envelope.
func (c *Client) post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("aggregator: marshal request: %w", err)
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("aggregator: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Aggregation request failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("aggregator: %s: %v: %w", path, err, shared.ErrUpstreamFailure)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("aggregator: read response: %w", err)
	}

	c.logger.Debug("Aggregation request completed",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aggregator: %s returned status %d: %w",
			path, resp.StatusCode, shared.ErrUpstreamFailure)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("aggregator: decode envelope: %w", err)
	}
	if !env.Success {
		var msg string
		_ = json.Unmarshal(env.Message, &msg)
		if msg == "" {
			msg = "request rejected"
		}
		return nil, fmt.Errorf("aggregator: %s: %s: %w", path, msg, shared.ErrUpstreamFailure)
	}
	return env.Message, nil
}
