package dissect

import (
	"fmt"
	"net"
)

// Kind tags the underlying type held by a Value. Field values are
// enumerated internally; text is reserved for human-facing rendering.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindBool
	KindText
	KindBytes
	KindIPv4
	KindIPv6
	KindMAC
	KindRecord
	KindSequence
)

// Value is one info-record field value: an integer, boolean, text, byte
// sequence, IPv4/IPv6 address, MAC address, nested Record, ordered sequence
// of Values, or the null value. Values are immutable.
type Value struct {
	kind Kind
	i    uint64
	b    bool
	s    string
	by   []byte
	ip   net.IP
	mac  net.HardwareAddr
	rec  *Record
	seq  []Value
}

func (v Value) Kind() Kind { return v.kind }

// Null returns the typed absent-value marker.
func Null() Value { return Value{kind: KindNull} }

func IntValue(v uint64) Value  { return Value{kind: KindInt, i: v} }
func BoolValue(v bool) Value   { return Value{kind: KindBool, b: v} }
func TextValue(v string) Value { return Value{kind: KindText, s: v} }

// BytesValue copies b so the emitted Value is independent of the caller's
// buffer (cursors reuse and mutate backing arrays across sub-cursors).
func BytesValue(b []byte) Value {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Value{kind: KindBytes, by: cp}
}

func IPv4Value(ip net.IP) Value { return Value{kind: KindIPv4, ip: ip.To4()} }
func IPv6Value(ip net.IP) Value { return Value{kind: KindIPv6, ip: ip.To16()} }
func MACValue(mac net.HardwareAddr) Value {
	cp := make(net.HardwareAddr, len(mac))
	copy(cp, mac)
	return Value{kind: KindMAC, mac: cp}
}
func RecordValue(r *Record) Value { return Value{kind: KindRecord, rec: r} }

// SequenceValue holds an ordered sequence of Values, preserving first-to-last
// order (used for e.g. repeated HTTP header fields).
func SequenceValue(vs []Value) Value {
	cp := make([]Value, len(vs))
	copy(cp, vs)
	return Value{kind: KindSequence, seq: cp}
}

func (v Value) Int() (uint64, bool)  { return v.i, v.kind == KindInt }
func (v Value) Bool() (bool, bool)   { return v.b, v.kind == KindBool }
func (v Value) Text() (string, bool) { return v.s, v.kind == KindText }
func (v Value) Bytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return v.by, true
}
func (v Value) IP() (net.IP, bool) {
	if v.kind != KindIPv4 && v.kind != KindIPv6 {
		return nil, false
	}
	return v.ip, true
}
func (v Value) MAC() (net.HardwareAddr, bool) {
	if v.kind != KindMAC {
		return nil, false
	}
	return v.mac, true
}
func (v Value) Record() (*Record, bool) {
	if v.kind != KindRecord {
		return nil, false
	}
	return v.rec, true
}
func (v Value) Sequence() ([]Value, bool) {
	if v.kind != KindSequence {
		return nil, false
	}
	return v.seq, true
}

// String renders a Value for human consumption: MAC addresses lowercase
// colon-separated hex, IPv4 dotted quad, IPv6 RFC 5952 canonical shortest
// form (net.IP.String already implements both address renderings).
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "<null>"
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindText:
		return v.s
	case KindBytes:
		return fmt.Sprintf("% x", v.by)
	case KindIPv4, KindIPv6:
		return v.ip.String()
	case KindMAC:
		return v.mac.String()
	case KindRecord:
		return "<record>"
	case KindSequence:
		return fmt.Sprintf("<sequence of %d>", len(v.seq))
	default:
		return "<unknown>"
	}
}
