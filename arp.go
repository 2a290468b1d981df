package dissect

import (
	"fmt"
	"net"
)

// arpHardwareTypeRegistry names the RFC 826 "hardware type" field. Unknown
// values render as "Unknown [<value>]", the same convention ptype falls back
// to for non-Ethernet hardware.
var arpHardwareTypeRegistry = map[uint64]string{
	1:  "Ethernet",
	6:  "IEEE 802",
	15: "Frame Relay",
	20: "Serial Line",
}

func arpHardwareTypeName(htype uint64) string {
	if name, ok := arpHardwareTypeRegistry[htype]; ok {
		return name
	}
	return fmt.Sprintf("Unknown [%d]", htype)
}

// arpOperationRegistry names the ARP/RARP/DRARP/InARP "operation" field.
var arpOperationRegistry = map[uint64]string{
	1: "REQUEST",
	2: "REPLY",
	3: "RARP REQUEST",
	4: "RARP REPLY",
	5: "DRARP REQUEST",
	6: "DRARP REPLY",
	7: "DRARP ERROR",
	8: "InARP REQUEST",
	9: "InARP REPLY",
}

func arpOperationName(oper uint64) string {
	if name, ok := arpOperationRegistry[oper]; ok {
		return name
	}
	return fmt.Sprintf("Unknown [%d]", oper)
}

// arpVariant classifies the ARP family by operation code. Operation codes
// outside the enumerated ranges default to plain ARP with no warning.
func arpVariant(oper uint64) (shortName, longName string) {
	switch {
	case oper == 3 || oper == 4:
		return "RARP", "Reverse Address Resolution Protocol"
	case oper >= 5 && oper <= 7:
		return "DRARP", "Dynamic Reverse Address Resolution Protocol"
	case oper == 8 || oper == 9:
		return "InARP", "Inverse Address Resolution Protocol"
	default:
		return "ARP", "Address Resolution Protocol"
	}
}

func init() {
	registerDecoder(ProtoARPFamily, DecoderDescriptor{
		ShortName:       "ARP",
		LongName:        "Address Resolution Protocol",
		Layer:           LayerLink,
		MinHeaderLength: 8,
		Decode:          decodeARP,
	})
}

func decodeARP(cur *Cursor) (*Record, NextHint, string, error) {
	htype, err := cur.ReadUint(2)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	ptype, err := cur.ReadUint(2)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	hlen, err := cur.ReadUint(1)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	plen, err := cur.ReadUint(1)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	oper, err := cur.ReadUint(2)
	if err != nil {
		return nil, NextHint{}, "", err
	}

	sha, err := readARPHardwareAddr(cur, htype, int(hlen))
	if err != nil {
		return nil, NextHint{}, "", err
	}
	spa, err := readARPProtocolAddr(cur, ptype, int(plen))
	if err != nil {
		return nil, NextHint{}, "", err
	}
	tha, err := readARPHardwareAddr(cur, htype, int(hlen))
	if err != nil {
		return nil, NextHint{}, "", err
	}
	tpa, err := readARPProtocolAddr(cur, ptype, int(plen))
	if err != nil {
		return nil, NextHint{}, "", err
	}

	shortName, _ := arpVariant(oper)

	var ptypeValue Value
	if arpHardwareTypeName(htype) == "Ethernet" {
		ptypeValue = TextValue(EtherTypeRegistry.Lookup(uint32(ptype)).ShortName)
	} else {
		ptypeValue = TextValue(fmt.Sprintf("Unknown [%d]", ptype))
	}

	headerLen := 8 + 2*int(hlen) + 2*int(plen)

	rec := NewRecordBuilder().
		Set("htype", TextValue(arpHardwareTypeName(htype))).
		Set("ptype", ptypeValue).
		Set("hlen", IntValue(hlen)).
		Set("plen", IntValue(plen)).
		Set("oper", TextValue(arpOperationName(oper))).
		Set("sha", sha).
		Set("spa", spa).
		Set("tha", tha).
		Set("tpa", tpa).
		Set("len", IntValue(uint64(headerLen))).
		Build()

	return rec, TerminalHint(), shortName, nil
}

// readARPHardwareAddr renders a sender/target hardware address: MAC
// rendering for Ethernet hardware with the expected 6-octet length,
// otherwise the declared-length raw bytes.
func readARPHardwareAddr(cur *Cursor, htype uint64, length int) (Value, error) {
	if htype == 1 && length == 6 {
		b, err := cur.Read(6)
		if err != nil {
			return Value{}, err
		}
		return MACValue(net.HardwareAddr(b)), nil
	}
	b, err := cur.Read(length)
	if err != nil {
		return Value{}, err
	}
	return BytesValue(b), nil
}

// readARPProtocolAddr renders a sender/target protocol address: IPv4/IPv6
// when ptype and the declared length agree, otherwise raw bytes.
func readARPProtocolAddr(cur *Cursor, ptype uint64, length int) (Value, error) {
	switch {
	case ptype == 0x0800 && length == 4:
		b, err := cur.Read(4)
		if err != nil {
			return Value{}, err
		}
		return IPv4Value(net.IP(b)), nil
	case ptype == 0x86dd && length == 16:
		b, err := cur.Read(16)
		if err != nil {
			return Value{}, err
		}
		return IPv6Value(net.IP(b)), nil
	default:
		b, err := cur.Read(length)
		if err != nil {
			return Value{}, err
		}
		return BytesValue(b), nil
	}
}
