package ledger

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/horo/internal/codec"
	"github.com/julianstephens/horo/internal/constants"
	"github.com/julianstephens/horo/internal/logger"
	"github.com/julianstephens/horo/internal/models"
)

// ErrMalformedEnvelope is returned when a dev-inspect response does not have
// the shape results[0].returnValues[0] = [bytes, type].
var ErrMalformedEnvelope = errors.New("malformed dev-inspect response")

// ErrNotConfigured is returned when a query needs an object id that has not
// been set.
var ErrNotConfigured = errors.New("ledger object ids not configured")

// DevInspectResults is the subset of sui_devInspectTransactionBlock's response
// the client reads.
type DevInspectResults struct {
	Effects struct {
		Status struct {
			Status string `json:"status"`
			Error  string `json:"error"`
		} `json:"status"`
	} `json:"effects"`
	Error   string            `json:"error"`
	Results []ExecutionResult `json:"results"`
}

// ExecutionResult holds the values one command returned.
type ExecutionResult struct {
	ReturnValues []ReturnValue `json:"returnValues"`
}

// ReturnValue is a BCS-encoded Move value and its type. On the wire it is a
// two-element array whose first element is a list of byte values.
type ReturnValue struct {
	Bytes []byte
	Type  string
}

func (r *ReturnValue) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("%w: return value is not an array", ErrMalformedEnvelope)
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: return value has %d elements", ErrMalformedEnvelope, len(pair))
	}
	var nums []int
	if err := json.Unmarshal(pair[0], &nums); err != nil {
		return fmt.Errorf("%w: return bytes: %v", ErrMalformedEnvelope, err)
	}
	bs := make([]byte, len(nums))
	for i, n := range nums {
		if n < 0 || n > 255 {
			return fmt.Errorf("%w: byte %d out of range: %d", ErrMalformedEnvelope, i, n)
		}
		bs[i] = byte(n)
	}
	if err := json.Unmarshal(pair[1], &r.Type); err != nil {
		return fmt.Errorf("%w: return type: %v", ErrMalformedEnvelope, err)
	}
	r.Bytes = bs
	return nil
}

// FirstReturn returns the bytes of the first value returned by the first
// command, rejecting failed or empty executions.
func (d *DevInspectResults) FirstReturn() ([]byte, error) {
	if d.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrMalformedEnvelope, d.Error)
	}
	if d.Effects.Status.Status == "failure" {
		return nil, fmt.Errorf("%w: execution failed: %s", ErrMalformedEnvelope, d.Effects.Status.Error)
	}
	if len(d.Results) == 0 || len(d.Results[0].ReturnValues) == 0 {
		return nil, fmt.Errorf("%w: no return values", ErrMalformedEnvelope)
	}
	return d.Results[0].ReturnValues[0].Bytes, nil
}

func (c *Client) devInspect(ctx context.Context, sender Address, txKind []byte) (*DevInspectResults, error) {
	var res DevInspectResults
	params := []any{sender.String(), base64.StdEncoding.EncodeToString(txKind), nil, nil}
	if err := c.call(ctx, "sui_devInspectTransactionBlock", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) sharedArg(ctx context.Context, b *txBuilder, id string, mutable bool) (uint16, error) {
	addr, err := ParseAddress(id)
	if err != nil {
		return 0, err
	}
	version, err := c.sharedVersion(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("resolving shared object %s: %w", id, err)
	}
	return b.shared(addr, version, mutable), nil
}

func (c *Client) clockArg(b *txBuilder) uint16 {
	addr, _ := ParseAddress(constants.ClockObjectID)
	return b.shared(addr, constants.ClockInitialVersion, false)
}

// HasClaimedToday asks the contract whether addr has already claimed in the
// current ledger day.
func (c *Client) HasClaimedToday(ctx context.Context, addr string) (bool, error) {
	if c.packageID == "" || c.claimsID == "" {
		return false, ErrNotConfigured
	}
	sender, err := ParseAddress(addr)
	if err != nil {
		return false, err
	}
	pkg, err := ParseAddress(c.packageID)
	if err != nil {
		return false, err
	}

	var b txBuilder
	claims, err := c.sharedArg(ctx, &b, c.claimsID, false)
	if err != nil {
		return false, err
	}
	clk := c.clockArg(&b)
	who := b.pureAddress(sender)
	tx := b.moveCall(pkg, constants.MoveModule, constants.FnHasClaimedToday, claims, clk, who)

	res, err := c.devInspect(ctx, sender, tx)
	if err != nil {
		return false, err
	}
	out, err := res.FirstReturn()
	if err != nil {
		return false, err
	}
	return len(out) > 0 && out[0] == 1, nil
}

// WeeklyProgress fetches and decodes addr's claims for the current week. The
// report describes how far decoding got; a partial map is still returned.
func (c *Client) WeeklyProgress(ctx context.Context, addr string) (models.WeeklyProgress, codec.Report, error) {
	raw, err := c.WeeklyProgressBytes(ctx, addr)
	if err != nil {
		return models.WeeklyProgress{}, codec.Report{}, err
	}
	progress, report := codec.Inspect(raw)
	if !report.Complete() {
		logger.Warn("weekly progress decoded partially",
			"declared", report.Declared, "decoded", report.Decoded, "reason", report.Stopped)
	}
	return progress, report, nil
}

// WeeklyProgressBytes returns the raw BCS bytes of get_weekly_progress.
func (c *Client) WeeklyProgressBytes(ctx context.Context, addr string) ([]byte, error) {
	if c.packageID == "" || c.registryID == "" {
		return nil, ErrNotConfigured
	}
	sender, err := ParseAddress(addr)
	if err != nil {
		return nil, err
	}
	pkg, err := ParseAddress(c.packageID)
	if err != nil {
		return nil, err
	}

	var b txBuilder
	registry, err := c.sharedArg(ctx, &b, c.registryID, false)
	if err != nil {
		return nil, err
	}
	who := b.pureAddress(sender)
	clk := c.clockArg(&b)
	tx := b.moveCall(pkg, constants.MoveModule, constants.FnGetWeeklyProgress, registry, who, clk)

	res, err := c.devInspect(ctx, sender, tx)
	if err != nil {
		return nil, err
	}
	return res.FirstReturn()
}
