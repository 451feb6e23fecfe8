package ledger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/julianstephens/horo/internal/codec"
)

func TestParseAddress(t *testing.T) {
	a, err := ParseAddress("0x6")
	if err != nil {
		t.Fatalf("ParseAddress(0x6) error = %v", err)
	}
	if a[AddressLen-1] != 6 || !bytes.Equal(a[:AddressLen-1], make([]byte, AddressLen-1)) {
		t.Errorf("ParseAddress(0x6) = %x", a)
	}
	if got := a.String(); got != "0x"+strings.Repeat("0", 63)+"6" {
		t.Errorf("String() = %s", got)
	}

	for _, bad := range []string{"", "0x", "0xzz", "0x" + strings.Repeat("a", 65)} {
		if _, err := ParseAddress(bad); err == nil {
			t.Errorf("ParseAddress(%q) should fail", bad)
		}
	}
}

func TestMoveCallLayout(t *testing.T) {
	pkg, _ := ParseAddress("0x2")
	obj, _ := ParseAddress("0x11")

	var b txBuilder
	o := b.shared(obj, 300, true)
	n := b.pureU64(1_000_000)
	s := b.pureBytes([]byte("leo"))
	got := b.moveCall(pkg, "horo", "f", o, n, s)

	var want []byte
	want = append(want, 0)    // ProgrammableTransaction
	want = append(want, 3)    // three inputs
	want = append(want, 1, 1) // Object(Shared)
	want = append(want, obj[:]...)
	want = codec.AppendU64LE(want, 300)
	want = append(want, 1)    // mutable
	want = append(want, 0, 8) // Pure, 8 bytes
	want = codec.AppendU64LE(want, 1_000_000)
	want = append(want, 0, 4, 3, 'l', 'e', 'o') // Pure, vector<u8> "leo"
	want = append(want, 1, 0)                   // one command, MoveCall
	want = append(want, pkg[:]...)
	want = append(want, 4, 'h', 'o', 'r', 'o', 1, 'f')
	want = append(want, 0) // no type args
	want = append(want, 3) // three args
	want = append(want, 1, 0, 0, 1, 1, 0, 1, 2, 0)

	if !bytes.Equal(got, want) {
		t.Errorf("moveCall() =\n%x\nwant\n%x", got, want)
	}
}

func TestPureAddressIsLengthPrefixed(t *testing.T) {
	a, _ := ParseAddress("0xfeed")
	var b txBuilder
	b.pureAddress(a)
	if len(b.inputs[0]) != 2+AddressLen || b.inputs[0][1] != AddressLen {
		t.Errorf("pure address input = %x", b.inputs[0])
	}
}
