package dissect

import "testing"

func ipv6Header(payloadLength int, nextHeader byte) []byte {
	b := make([]byte, 40)
	b[0] = 0x60 // version 6
	b[4] = byte(payloadLength >> 8)
	b[5] = byte(payloadLength)
	b[6] = nextHeader
	b[7] = 64 // hop limit
	b[8] = 0xfe
	b[9] = 0x80
	b[24] = 0xfe
	b[25] = 0x80
	b[39] = 1
	return b
}

func TestIPv6RejectsWrongVersion(t *testing.T) {
	data := ipv6Header(0, 59)
	data[0] = 0x40 // version 4
	_, err := DecodeFrame(data, Descriptor{ShortName: "IPv6", Layer: LayerInternet, DecoderID: ProtoIPv6})
	if err == nil {
		t.Fatal("expected a top-level error for version != 6")
	}
}

func TestIPv6NoNextHeaderTerminatesCleanly(t *testing.T) {
	data := ipv6Header(0, 59) // NoNxt
	frame, err := DecodeFrame(data, Descriptor{ShortName: "IPv6", Layer: LayerInternet, DecoderID: ProtoIPv6})
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if got := frame.Chain.String(); got != "IPv6:Raw" {
		t.Fatalf("chain = %q, want IPv6:Raw", got)
	}
	rawVal, _ := frame.Info.Get("raw")
	rawRec, _ := rawVal.Record()
	packet, _ := rawRec.Get("packet")
	b, _ := packet.Bytes()
	if len(b) != 0 {
		t.Fatalf("Raw.packet = % x, want empty (NoNxt carries a zero-length payload)", b)
	}
}

func TestIPv6HopByHopThenTCP(t *testing.T) {
	tcp := make([]byte, 20)
	tcp[12] = 0x50 // data offset 5
	hopByHop := []byte{6 /* next_header=TCP */, 0}
	hopByHop = append(hopByHop, make([]byte, 6)...) // hdr_ext_len=0 -> 6 bytes of opaque options
	payload := append(hopByHop, tcp...)

	data := append(ipv6Header(len(payload), 0), payload...)
	frame, err := DecodeFrame(data, Descriptor{ShortName: "IPv6", Layer: LayerInternet, DecoderID: ProtoIPv6})
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if got := frame.Chain.String(); got != "IPv6:IPv6-HopOpt:TCP:Raw" {
		t.Fatalf("chain = %q, want IPv6:IPv6-HopOpt:TCP:Raw", got)
	}
}

func TestIPv6FragmentHeaderFields(t *testing.T) {
	frag := make([]byte, 8)
	frag[0] = 6                            // next_header TCP
	frag[2], frag[3] = 0x00, 0x08 | 0x01   // fragment_offset=1, more_fragments=1
	data := append(ipv6Header(8, 44), frag...)

	frame, err := DecodeFrame(data, Descriptor{ShortName: "IPv6", Layer: LayerInternet, DecoderID: ProtoIPv6})
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	fragVal, ok := frame.Info.Get("ipv6-frag")
	if !ok {
		t.Fatal("missing merged ipv6-frag field")
	}
	fragRec, _ := fragVal.Record()
	mf, _ := fragRec.Get("more_fragments")
	if b, _ := mf.Bool(); !b {
		t.Fatal("more_fragments = false, want true")
	}
}
