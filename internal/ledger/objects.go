package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/julianstephens/horo/internal/constants"
)

// ErrMissingField is returned when an object lacks a field the client reads.
var ErrMissingField = errors.New("object field missing")

// ErrTimestampRange is returned when the clock reports a timestamp that does
// not fit in a signed 64-bit millisecond count.
var ErrTimestampRange = errors.New("clock timestamp out of range")

// jsonUint64 accepts both quoted and bare integers; the node uses either
// depending on the field.
type jsonUint64 uint64

func (n *jsonUint64) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	v, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s: %w", b, err)
	}
	*n = jsonUint64(v)
	return nil
}

type objectOptions struct {
	ShowContent bool `json:"showContent,omitempty"`
	ShowOwner   bool `json:"showOwner,omitempty"`
	ShowType    bool `json:"showType,omitempty"`
}

type objectResponse struct {
	Data *struct {
		ObjectID string `json:"objectId"`
		Version  string `json:"version"`
		Type     string `json:"type"`
		Content  *struct {
			DataType string                     `json:"dataType"`
			Fields   map[string]json.RawMessage `json:"fields"`
		} `json:"content"`
		Owner json.RawMessage `json:"owner"`
	} `json:"data"`
	Error json.RawMessage `json:"error"`
}

func (c *Client) getObject(ctx context.Context, id string, opts objectOptions) (*objectResponse, error) {
	var resp objectResponse
	if err := c.call(ctx, "sui_getObject", []any{id, opts}, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("object %s not found: %s", id, resp.Error)
	}
	return &resp, nil
}

// ClockTimestampMs reads the shared clock object's current timestamp.
func (c *Client) ClockTimestampMs(ctx context.Context) (int64, error) {
	resp, err := c.getObject(ctx, constants.ClockObjectID, objectOptions{ShowContent: true})
	if err != nil {
		return 0, err
	}
	if resp.Data.Content == nil {
		return 0, fmt.Errorf("clock object: %w: content", ErrMissingField)
	}
	raw, ok := resp.Data.Content.Fields[constants.ClockTimestampField]
	if !ok {
		return 0, fmt.Errorf("clock object: %w: %s", ErrMissingField, constants.ClockTimestampField)
	}
	var ms jsonUint64
	if err := json.Unmarshal(raw, &ms); err != nil {
		return 0, fmt.Errorf("clock object: %w", err)
	}
	if uint64(ms) > math.MaxInt64 {
		return 0, fmt.Errorf("clock object: %w: %d", ErrTimestampRange, uint64(ms))
	}
	return int64(ms), nil
}

// ErrWrongObjectType is returned when a configured object id points at an
// object of a different Move type.
var ErrWrongObjectType = errors.New("unexpected object type")

// VerifyDeployment checks that the configured object ids refer to the horo
// Treasury, DailyClaims and UserProgressRegistry objects.
func (c *Client) VerifyDeployment(ctx context.Context) error {
	checks := []struct {
		id, typ string
	}{
		{c.treasuryID, "Treasury"},
		{c.claimsID, "DailyClaims"},
		{c.registryID, "UserProgressRegistry"},
	}
	for _, chk := range checks {
		if chk.id == "" {
			return ErrNotConfigured
		}
		resp, err := c.getObject(ctx, chk.id, objectOptions{ShowType: true})
		if err != nil {
			return err
		}
		if !strings.Contains(resp.Data.Type, chk.typ) {
			return fmt.Errorf("%w: %s is %q, expected %s", ErrWrongObjectType, chk.id, resp.Data.Type, chk.typ)
		}
	}
	return nil
}

type sharedOwner struct {
	Shared *struct {
		InitialSharedVersion jsonUint64 `json:"initial_shared_version"`
	} `json:"Shared"`
}

// sharedVersion returns the initial shared version of a shared object, which
// never changes, so it is cached for the life of the client.
func (c *Client) sharedVersion(ctx context.Context, id string) (uint64, error) {
	if id == constants.ClockObjectID {
		return constants.ClockInitialVersion, nil
	}

	c.mu.Lock()
	v, ok := c.versions[id]
	c.mu.Unlock()
	if ok {
		return v, nil
	}

	resp, err := c.getObject(ctx, id, objectOptions{ShowOwner: true})
	if err != nil {
		return 0, err
	}
	var owner sharedOwner
	if err := json.Unmarshal(resp.Data.Owner, &owner); err != nil || owner.Shared == nil {
		return 0, fmt.Errorf("object %s is not shared", id)
	}
	v = uint64(owner.Shared.InitialSharedVersion)

	c.mu.Lock()
	c.versions[id] = v
	c.mu.Unlock()
	return v, nil
}

// GasBalance is an address's SUI balance in MIST.
type GasBalance struct {
	Total uint64
	Coins int
}

// Sufficient reports whether the balance covers a claim transaction.
func (b GasBalance) Sufficient() bool {
	return b.Total >= constants.MinGasBalance
}

// GasBalance returns the SUI balance owned by addr.
func (c *Client) GasBalance(ctx context.Context, addr string) (GasBalance, error) {
	var resp struct {
		CoinType        string     `json:"coinType"`
		CoinObjectCount int        `json:"coinObjectCount"`
		TotalBalance    jsonUint64 `json:"totalBalance"`
	}
	if err := c.call(ctx, "suix_getBalance", []any{addr, constants.GasCoinType}, &resp); err != nil {
		return GasBalance{}, err
	}
	return GasBalance{Total: uint64(resp.TotalBalance), Coins: resp.CoinObjectCount}, nil
}
