// Package ledger talks to a Sui fullnode over JSON-RPC: it reads the shared
// clock, runs the read-only horo queries through dev-inspect and hands claim
// transactions to a Submitter.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/julianstephens/horo/internal/constants"
	"github.com/julianstephens/horo/internal/logger"
)

// Config holds the endpoint and on-chain object ids the client needs.
type Config struct {
	URL                string
	Token              string // optional bearer token for private providers
	PackageID          string
	ClaimsID           string
	ProgressRegistryID string
	TreasuryID         string
	RequestsPerSecond  int
	Timeout            time.Duration
	HTTPClient         *http.Client
}

// Client is a Sui JSON-RPC client scoped to one horo deployment.
type Client struct {
	url     string
	token   string
	http    *http.Client
	limiter *rate.Limiter

	packageID  string
	claimsID   string
	registryID string
	treasuryID string

	mu       sync.Mutex
	versions map[string]uint64
}

// NewClient creates a client. A zero RequestsPerSecond disables throttling.
func NewClient(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = constants.DefaultRequestTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	burst := 1
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
		burst = cfg.RequestsPerSecond
	}

	return &Client{
		url:        cfg.URL,
		token:      cfg.Token,
		http:       hc,
		limiter:    rate.NewLimiter(limit, burst),
		packageID:  cfg.PackageID,
		claimsID:   cfg.ClaimsID,
		registryID: cfg.ProgressRegistryID,
		treasuryID: cfg.TreasuryID,
		versions:   make(map[string]uint64),
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

// RPCError is an error object returned by the node.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// ErrEmptyResult is returned when the node answers with neither a result nor an error.
var ErrEmptyResult = errors.New("rpc response has no result")

func (c *Client) call(ctx context.Context, method string, params []any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}

	id := uuid.NewString()
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: id, Method: method, Params: params})
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s response: %w", method, err)
	}
	logger.Debug("rpc call", "method", method, "id", id, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %s", method, resp.Status)
	}

	var rr rpcResponse
	if err := json.Unmarshal(raw, &rr); err != nil {
		return fmt.Errorf("decoding %s response: %w", method, err)
	}
	if rr.Error != nil {
		return fmt.Errorf("%s: %w", method, rr.Error)
	}
	if len(rr.Result) == 0 || string(rr.Result) == "null" {
		return fmt.Errorf("%s: %w", method, ErrEmptyResult)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rr.Result, out); err != nil {
		return fmt.Errorf("decoding %s result: %w", method, err)
	}
	return nil
}
