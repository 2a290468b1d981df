package dissect

import (
	"net"
	"testing"
)

func TestValueAccessorsMatchKind(t *testing.T) {
	if _, ok := IntValue(5).Text(); ok {
		t.Fatal("Text() should fail on an int value")
	}
	if v, ok := IntValue(5).Int(); !ok || v != 5 {
		t.Fatalf("Int() = (%d, %v), want (5, true)", v, ok)
	}
	if s, ok := TextValue("hi").Text(); !ok || s != "hi" {
		t.Fatalf("Text() = (%q, %v), want (\"hi\", true)", s, ok)
	}
	if _, ok := Null().Int(); ok {
		t.Fatal("Int() should fail on a null value")
	}
}

func TestBytesValueIsCopied(t *testing.T) {
	b := []byte{1, 2, 3}
	v := BytesValue(b)
	b[0] = 0xFF
	got, _ := v.Bytes()
	if got[0] != 1 {
		t.Fatalf("BytesValue retained a reference to caller's slice: got[0] = %d, want 1", got[0])
	}
}

func TestMACValueString(t *testing.T) {
	mac := net.HardwareAddr{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}
	v := MACValue(mac)
	if got := v.String(); got != "aa:bb:cc:dd:ee:ff" {
		t.Fatalf("String() = %q, want %q", got, "aa:bb:cc:dd:ee:ff")
	}
}

func TestIPv4ValueString(t *testing.T) {
	v := IPv4Value(net.IPv4(192, 168, 1, 1))
	if got := v.String(); got != "192.168.1.1" {
		t.Fatalf("String() = %q, want %q", got, "192.168.1.1")
	}
}

func TestSequenceValuePreservesOrder(t *testing.T) {
	v := SequenceValue([]Value{TextValue("a"), TextValue("b"), TextValue("c")})
	seq, ok := v.Sequence()
	if !ok || len(seq) != 3 {
		t.Fatalf("Sequence() = (%v, %v)", seq, ok)
	}
	for i, want := range []string{"a", "b", "c"} {
		if s, _ := seq[i].Text(); s != want {
			t.Fatalf("seq[%d] = %q, want %q", i, s, want)
		}
	}
}
