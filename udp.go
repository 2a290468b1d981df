package dissect

func init() {
	registerDecoder(ProtoUDP, DecoderDescriptor{
		ShortName:       "UDP",
		LongName:        "User Datagram Protocol",
		Layer:           LayerTransport,
		MinHeaderLength: 8,
		Decode:          decodeUDP,
	})
}

// resolvePort looks up the application-layer decoder by destination port,
// falling back to source port.
func resolvePort(dport, sport uint64) Descriptor {
	d := PortRegistry.Lookup(uint32(dport))
	if d.DecoderID != ProtoRaw {
		return d
	}
	return PortRegistry.Lookup(uint32(sport))
}

func decodeUDP(cur *Cursor) (*Record, NextHint, string, error) {
	sport, err := cur.ReadUint(2)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	dport, err := cur.ReadUint(2)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	length, err := cur.ReadUint(2)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	checksum, err := cur.ReadUint(2)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	if length < 8 {
		return nil, NextHint{}, "", wrapf(ErrorKindMalformedHeader, "UDP: length %d shorter than header", length)
	}

	rec := NewRecordBuilder().
		Set("sport", IntValue(sport)).
		Set("dport", IntValue(dport)).
		Set("length", IntValue(length)).
		Set("checksum", IntValue(checksum)).
		Build()

	next := BoundedHint(resolvePort(dport, sport), int(length)-8)
	return rec, next, "", nil
}
