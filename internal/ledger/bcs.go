package ledger

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/julianstephens/horo/internal/codec"
)

// AddressLen is the byte length of Sui addresses and object ids.
const AddressLen = 32

// Address is a Sui address or object id.
type Address [AddressLen]byte

// ParseAddress parses a 0x-prefixed hex address. Short forms such as "0x6" are
// left-padded with zeros.
func ParseAddress(s string) (Address, error) {
	var a Address
	h := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	if h == "" || len(h) > AddressLen*2 {
		return a, fmt.Errorf("invalid address %q", s)
	}
	h = strings.Repeat("0", AddressLen*2-len(h)) + h
	if _, err := hex.Decode(a[:], []byte(h)); err != nil {
		return a, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return a, nil
}

// String returns the full 0x-prefixed hex form.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// BCS enum tags used by a single-call programmable transaction.
const (
	kindProgrammable = 0
	callArgPure      = 0
	callArgObject    = 1
	objectArgShared  = 1
	commandMoveCall  = 0
	argumentInput    = 1
)

// txBuilder assembles a TransactionKind holding one Move call, the shape both
// dev-inspect and the claim use.
type txBuilder struct {
	inputs [][]byte
}

func (b *txBuilder) add(arg []byte) uint16 {
	b.inputs = append(b.inputs, arg)
	return uint16(len(b.inputs) - 1)
}

func (b *txBuilder) pure(value []byte) uint16 {
	arg := []byte{callArgPure}
	arg = codec.AppendVarInt(arg, uint64(len(value)))
	arg = append(arg, value...)
	return b.add(arg)
}

func (b *txBuilder) pureAddress(a Address) uint16 {
	return b.pure(a[:])
}

func (b *txBuilder) pureU64(v uint64) uint16 {
	return b.pure(codec.AppendU64LE(nil, v))
}

func (b *txBuilder) pureBytes(v []byte) uint16 {
	return b.pure(appendBytes(nil, v))
}

func (b *txBuilder) shared(id Address, initialVersion uint64, mutable bool) uint16 {
	arg := []byte{callArgObject, objectArgShared}
	arg = append(arg, id[:]...)
	arg = codec.AppendU64LE(arg, initialVersion)
	if mutable {
		arg = append(arg, 1)
	} else {
		arg = append(arg, 0)
	}
	return b.add(arg)
}

// moveCall serializes the transaction kind for pkg::module::function(args...).
func (b *txBuilder) moveCall(pkg Address, module, function string, args ...uint16) []byte {
	out := []byte{kindProgrammable}

	out = codec.AppendVarInt(out, uint64(len(b.inputs)))
	for _, in := range b.inputs {
		out = append(out, in...)
	}

	out = codec.AppendVarInt(out, 1)
	out = append(out, commandMoveCall)
	out = append(out, pkg[:]...)
	out = appendBytes(out, []byte(module))
	out = appendBytes(out, []byte(function))
	out = codec.AppendVarInt(out, 0) // no type arguments
	out = codec.AppendVarInt(out, uint64(len(args)))
	for _, a := range args {
		out = append(out, argumentInput, byte(a), byte(a>>8))
	}
	return out
}

func appendBytes(buf, v []byte) []byte {
	buf = codec.AppendVarInt(buf, uint64(len(v)))
	return append(buf, v...)
}
