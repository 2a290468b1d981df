package dissect

import "net"

func init() {
	registerDecoder(ProtoIPv6, DecoderDescriptor{
		ShortName:       "IPv6",
		LongName:        "Internet Protocol version 6",
		Layer:           LayerInternet,
		MinHeaderLength: 40,
		Decode:          decodeIPv6,
	})
	registerDecoder(ProtoIPv6HopByHop, DecoderDescriptor{
		ShortName:       "IPv6-HopOpt",
		LongName:        "IPv6 Hop-by-Hop Options",
		Layer:           LayerInternet,
		MinHeaderLength: 8,
		Decode:          genericIPv6Extension,
	})
	registerDecoder(ProtoIPv6DestOpts, DecoderDescriptor{
		ShortName:       "IPv6-Opts",
		LongName:        "IPv6 Destination Options",
		Layer:           LayerInternet,
		MinHeaderLength: 8,
		Decode:          genericIPv6Extension,
	})
	registerDecoder(ProtoIPv6Routing, DecoderDescriptor{
		ShortName:       "IPv6-Route",
		LongName:        "IPv6 Routing Header",
		Layer:           LayerInternet,
		MinHeaderLength: 8,
		Decode:          decodeIPv6Routing,
	})
	registerDecoder(ProtoIPv6Fragment, DecoderDescriptor{
		ShortName:       "IPv6-Frag",
		LongName:        "IPv6 Fragment Header",
		Layer:           LayerInternet,
		MinHeaderLength: 8,
		Decode:          decodeIPv6Fragment,
	})
}

func decodeIPv6(cur *Cursor) (*Record, NextHint, string, error) {
	version, err := cur.ReadBits(4)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	trafficClass, err := cur.ReadBits(8)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	flowLabel, err := cur.ReadBits(20)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	if version != 6 {
		return nil, NextHint{}, "", wrapf(ErrorKindMalformedHeader, "IPv6: version nibble is %d, want 6", version)
	}

	payloadLength, err := cur.ReadUint(2)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	nextHeader, err := cur.ReadUint(1)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	hopLimit, err := cur.ReadUint(1)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	srcBytes, err := cur.Read(16)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	dstBytes, err := cur.Read(16)
	if err != nil {
		return nil, NextHint{}, "", err
	}

	rec := NewRecordBuilder().
		Set("version", IntValue(version)).
		Set("traffic_class", IntValue(trafficClass)).
		Set("flow_label", IntValue(flowLabel)).
		Set("payload_length", IntValue(payloadLength)).
		Set("next_header", TextValue(IPProtocolRegistry.Lookup(uint32(nextHeader)).ShortName)).
		Set("hop_limit", IntValue(hopLimit)).
		Set("src", IPv6Value(net.IP(srcBytes))).
		Set("dst", IPv6Value(net.IP(dstBytes))).
		Build()

	next := BoundedHint(IPProtocolRegistry.Lookup(uint32(nextHeader)), int(payloadLength))
	return rec, next, "", nil
}

// genericIPv6Extension decodes Hop-by-Hop Options and Destination Options
// headers, which share one wire layout: next_header(1), hdr_ext_len(1, in
// 8-octet units not counting the first 8 octets), then
// (hdr_ext_len+1)*8 - 2 octets of TLV options carried opaquely.
func genericIPv6Extension(cur *Cursor) (*Record, NextHint, string, error) {
	nextHeader, err := cur.ReadUint(1)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	hdrExtLen, err := cur.ReadUint(1)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	dataLen := int(hdrExtLen+1)*8 - 2
	data, err := cur.Read(dataLen)
	if err != nil {
		return nil, NextHint{}, "", err
	}

	rec := NewRecordBuilder().
		Set("next_header", TextValue(IPProtocolRegistry.Lookup(uint32(nextHeader)).ShortName)).
		Set("hdr_ext_len", IntValue(hdrExtLen)).
		Set("options", BytesValue(data)).
		Build()

	next := DescriptorHint(IPProtocolRegistry.Lookup(uint32(nextHeader)))
	return rec, next, "", nil
}

func decodeIPv6Routing(cur *Cursor) (*Record, NextHint, string, error) {
	nextHeader, err := cur.ReadUint(1)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	hdrExtLen, err := cur.ReadUint(1)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	routingType, err := cur.ReadUint(1)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	segmentsLeft, err := cur.ReadUint(1)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	dataLen := int(hdrExtLen+1)*8 - 4
	data, err := cur.Read(dataLen)
	if err != nil {
		return nil, NextHint{}, "", err
	}

	rec := NewRecordBuilder().
		Set("next_header", TextValue(IPProtocolRegistry.Lookup(uint32(nextHeader)).ShortName)).
		Set("hdr_ext_len", IntValue(hdrExtLen)).
		Set("routing_type", IntValue(routingType)).
		Set("segments_left", IntValue(segmentsLeft)).
		Set("data", BytesValue(data)).
		Build()

	next := DescriptorHint(IPProtocolRegistry.Lookup(uint32(nextHeader)))
	return rec, next, "", nil
}

func decodeIPv6Fragment(cur *Cursor) (*Record, NextHint, string, error) {
	nextHeader, err := cur.ReadUint(1)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	_, err = cur.ReadUint(1) // reserved
	if err != nil {
		return nil, NextHint{}, "", err
	}
	fragOffset, err := cur.ReadBits(13)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	_, err = cur.ReadBits(2) // reserved
	if err != nil {
		return nil, NextHint{}, "", err
	}
	moreFragments, err := cur.ReadBits(1)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	identification, err := cur.ReadUint(4)
	if err != nil {
		return nil, NextHint{}, "", err
	}

	rec := NewRecordBuilder().
		Set("next_header", TextValue(IPProtocolRegistry.Lookup(uint32(nextHeader)).ShortName)).
		Set("fragment_offset", IntValue(fragOffset)).
		Set("more_fragments", BoolValue(moreFragments != 0)).
		Set("identification", IntValue(identification)).
		Build()

	next := DescriptorHint(IPProtocolRegistry.Lookup(uint32(nextHeader)))
	return rec, next, "", nil
}
