// Package ledgertest provides an in-process Sui JSON-RPC node for tests.
package ledgertest

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Node answers the handful of read methods horo uses. The zero state reports a
// ledger clock at ClockMs, an unclaimed day and an empty week.
type Node struct {
	URL string

	mu       sync.Mutex
	clockMs  int64
	claimed  bool
	progress []byte
	balance  uint64
	types    map[string]string
	calls    map[string]int
}

// NewNode starts a node that is shut down when the test ends.
func NewNode(t *testing.T, clockMs int64) *Node {
	t.Helper()
	n := &Node{
		clockMs:  clockMs,
		progress: []byte{0},
		types:    map[string]string{},
		calls:    map[string]int{},
	}
	srv := httptest.NewServer(n)
	t.Cleanup(srv.Close)
	n.URL = srv.URL
	return n
}

// SetClaimed sets the has_claimed_today answer.
func (n *Node) SetClaimed(v bool) {
	n.mu.Lock()
	n.claimed = v
	n.mu.Unlock()
}

// SetProgress sets the BCS bytes returned by get_weekly_progress.
func (n *Node) SetProgress(b []byte) {
	n.mu.Lock()
	n.progress = b
	n.mu.Unlock()
}

// SetBalance sets the SUI balance reported for every address.
func (n *Node) SetBalance(mist uint64) {
	n.mu.Lock()
	n.balance = mist
	n.mu.Unlock()
}

// SetType sets the Move type reported for an object id.
func (n *Node) SetType(id, typ string) {
	n.mu.Lock()
	n.types[id] = typ
	n.mu.Unlock()
}

// Calls returns how many times method was requested.
func (n *Node) Calls(method string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[method]
}

func (n *Node) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     string            `json:"id"`
		Method string            `json:"method"`
		Params []json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n.mu.Lock()
	n.calls[req.Method]++
	result, rpcErr := n.answer(req.Method, req.Params)
	n.mu.Unlock()

	resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
	if rpcErr != "" {
		resp["error"] = map[string]any{"code": -32601, "message": rpcErr}
	} else {
		resp["result"] = result
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (n *Node) answer(method string, params []json.RawMessage) (any, string) {
	switch method {
	case "sui_getObject":
		var id string
		if len(params) > 0 {
			_ = json.Unmarshal(params[0], &id)
		}
		data := map[string]any{
			"objectId": id,
			"version":  "1",
			"type":     n.types[id],
			"owner":    map[string]any{"Shared": map[string]any{"initial_shared_version": 1}},
			"content": map[string]any{
				"dataType": "moveObject",
				"fields":   map[string]any{"timestamp_ms": fmt.Sprint(n.clockMs)},
			},
		}
		return map[string]any{"data": data}, ""
	case "sui_devInspectTransactionBlock":
		// The view function is recognized by its name in the encoded call.
		raw := ""
		if len(params) > 1 {
			_ = json.Unmarshal(params[1], &raw)
		}
		if containsCall(raw, "get_weekly_progress") {
			return returnValue(n.progress), ""
		}
		b := byte(0)
		if n.claimed {
			b = 1
		}
		return returnValue([]byte{b}), ""
	case "suix_getBalance":
		return map[string]any{
			"coinType":        "0x2::sui::SUI",
			"coinObjectCount": 1,
			"totalBalance":    fmt.Sprint(n.balance),
		}, ""
	default:
		return nil, "method not found"
	}
}

func returnValue(bs []byte) any {
	nums := make([]int, len(bs))
	for i, b := range bs {
		nums[i] = int(b)
	}
	return map[string]any{
		"effects": map[string]any{"status": map[string]any{"status": "success"}},
		"results": []any{map[string]any{"returnValues": []any{[]any{nums, "vector<u8>"}}}},
	}
}

func containsCall(txKind, fn string) bool {
	raw, err := base64.StdEncoding.DecodeString(txKind)
	if err != nil {
		return false
	}
	return bytes.Contains(raw, []byte(fn))
}
