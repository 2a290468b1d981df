package dissect

import (
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// ICMPv4 and ICMPv6 both reuse golang.org/x/net/icmp.ParseMessage, wired
// into the registry-driven engine for both IP protocol numbers that name
// it (1 and 58).

func init() {
	registerDecoder(ProtoICMPv4, DecoderDescriptor{
		ShortName:       "ICMP",
		LongName:        "Internet Control Message Protocol",
		Layer:           LayerInternet,
		MinHeaderLength: 4,
		Decode:          decodeICMPv4,
	})
	registerDecoder(ProtoICMPv6, DecoderDescriptor{
		ShortName:       "ICMPv6",
		LongName:        "Internet Control Message Protocol for IPv6",
		Layer:           LayerInternet,
		MinHeaderLength: 4,
		Decode:          decodeICMPv6,
	})
}

func decodeICMPv4(cur *Cursor) (*Record, NextHint, string, error) {
	return decodeICMPMessage(cur, ipv4.ICMPTypeEcho.Protocol())
}

func decodeICMPv6(cur *Cursor) (*Record, NextHint, string, error) {
	return decodeICMPMessage(cur, ipv6.ICMPTypeEchoRequest.Protocol())
}

func decodeICMPMessage(cur *Cursor, proto int) (*Record, NextHint, string, error) {
	raw := cur.ReadRemaining()
	if len(raw) < 4 {
		return nil, NextHint{}, "", wrapf(ErrorKindUnexpectedEnd, "ICMP: need at least 4 bytes, have %d", len(raw))
	}

	msg, err := icmp.ParseMessage(proto, raw)
	if err != nil {
		return nil, NextHint{}, "", wrapf(ErrorKindMalformedHeader, "ICMP: %v", err)
	}

	builder := NewRecordBuilder().
		Set("type", TextValue(msg.Type.String())).
		Set("code", IntValue(uint64(msg.Code))).
		Set("checksum", IntValue(uint64(msg.Checksum)))

	switch body := msg.Body.(type) {
	case *icmp.Echo:
		builder.
			Set("id", IntValue(uint64(body.ID))).
			Set("seq", IntValue(uint64(body.Seq))).
			Set("data", BytesValue(body.Data))
	default:
		bodyBytes, marshalErr := msg.Body.Marshal(proto)
		if marshalErr != nil {
			bodyBytes = nil
		}
		builder.Set("id", Null()).Set("seq", Null()).Set("data", BytesValue(bodyBytes))
	}

	return builder.Build(), TerminalHint(), "", nil
}
