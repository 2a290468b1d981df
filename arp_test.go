package dissect

import "testing"

func arpPacket(htype, ptype uint16, hlen, plen byte, oper uint16, sha, spa, tha, tpa []byte) []byte {
	b := []byte{
		byte(htype >> 8), byte(htype),
		byte(ptype >> 8), byte(ptype),
		hlen, plen,
		byte(oper >> 8), byte(oper),
	}
	b = append(b, sha...)
	b = append(b, spa...)
	b = append(b, tha...)
	b = append(b, tpa...)
	return b
}

func TestARPVariantSelection(t *testing.T) {
	cases := []struct {
		name string
		oper uint16
		want string
	}{
		{"request", 1, "ARP"},
		{"reply", 2, "ARP"},
		{"rarp request", 3, "RARP"},
		{"rarp reply", 4, "RARP"},
		{"drarp request", 5, "DRARP"},
		{"drarp error", 7, "DRARP"},
		{"inarp request", 8, "InARP"},
		{"inarp reply", 9, "InARP"},
		{"out of range defaults to ARP", 200, "ARP"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := arpPacket(1, 0x0800, 6, 4, tc.oper,
				[]byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}, []byte{10, 0, 0, 1},
				[]byte{0, 0, 0, 0, 0, 0}, []byte{10, 0, 0, 2})
			frame, err := DecodeFrame(data, Descriptor{ShortName: "ARP", Layer: LayerLink, DecoderID: ProtoARPFamily})
			if err != nil {
				t.Fatalf("DecodeFrame: %v", err)
			}
			if got := frame.Chain.String(); got != tc.want {
				t.Fatalf("chain = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestARPNonEthernetHardwareAddrRendersAsBytes(t *testing.T) {
	data := arpPacket(15, 0x0800, 4, 4, 1,
		[]byte{1, 2, 3, 4}, []byte{10, 0, 0, 1},
		[]byte{5, 6, 7, 8}, []byte{10, 0, 0, 2})
	frame, err := DecodeFrame(data, Descriptor{ShortName: "ARP", Layer: LayerLink, DecoderID: ProtoARPFamily})
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	sha, _ := frame.Info.Get("sha")
	if _, ok := sha.Bytes(); !ok {
		t.Fatalf("sha.Kind() = %v, want KindBytes for non-Ethernet hardware", sha.Kind())
	}
	htype, _ := frame.Info.Get("htype")
	if s, _ := htype.Text(); s != "Frame Relay" {
		t.Fatalf("htype = %q, want Frame Relay", s)
	}
}

func TestARPUnknownHardwareTypeRendersUnknownBracket(t *testing.T) {
	data := arpPacket(9999, 0x0800, 6, 4, 1,
		[]byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}, []byte{10, 0, 0, 1},
		[]byte{0, 0, 0, 0, 0, 0}, []byte{10, 0, 0, 2})
	frame, err := DecodeFrame(data, Descriptor{ShortName: "ARP", Layer: LayerLink, DecoderID: ProtoARPFamily})
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	htype, _ := frame.Info.Get("htype")
	if s, _ := htype.Text(); s != "Unknown [9999]" {
		t.Fatalf("htype = %q, want Unknown [9999]", s)
	}
}

func TestARPIPv6ProtocolAddr(t *testing.T) {
	ipv6bytes := make([]byte, 16)
	ipv6bytes[15] = 1
	target := make([]byte, 16)
	target[15] = 2
	data := arpPacket(1, 0x86dd, 6, 16, 8,
		[]byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}, ipv6bytes,
		[]byte{0, 0, 0, 0, 0, 0}, target)
	frame, err := DecodeFrame(data, Descriptor{ShortName: "ARP", Layer: LayerLink, DecoderID: ProtoARPFamily})
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	spa, _ := frame.Info.Get("spa")
	if _, ok := spa.IP(); !ok {
		t.Fatalf("spa.Kind() = %v, want an IP kind", spa.Kind())
	}
}

func TestARPTruncatedAddressFields(t *testing.T) {
	// Declares hlen=6/plen=4 but only has enough bytes for sha.
	data := []byte{0, 1, 0x08, 0, 6, 4, 0, 1, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}
	_, err := DecodeFrame(data, Descriptor{ShortName: "ARP", Layer: LayerLink, DecoderID: ProtoARPFamily})
	if err == nil {
		t.Fatal("expected a top-level error for a truncated ARP packet")
	}
}
