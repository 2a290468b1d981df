package dissect

import "net"

func init() {
	registerDecoder(ProtoIPv4, DecoderDescriptor{
		ShortName:       "IPv4",
		LongName:        "Internet Protocol version 4",
		Layer:           LayerInternet,
		MinHeaderLength: 20,
		Decode:          decodeIPv4,
	})
}

func decodeIPv4(cur *Cursor) (*Record, NextHint, string, error) {
	// version and IHL share the first octet as two 4-bit nibbles; read them
	// with ReadBits, the cursor's sub-octet primitive (flags/fragment-offset
	// below use the same approach for the 3-bit-flags + 13-bit-offset split).
	version, err := cur.ReadBits(4)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	ihl, err := cur.ReadBits(4)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	if version != 4 {
		return nil, NextHint{}, "", wrapf(ErrorKindMalformedHeader, "IPv4: version nibble is %d, want 4", version)
	}
	if ihl < 5 {
		return nil, NextHint{}, "", wrapf(ErrorKindMalformedHeader, "IPv4: IHL %d is less than minimum 5", ihl)
	}
	headerLength := int(ihl) * 4

	dscp, err := cur.ReadBits(6)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	ecn, err := cur.ReadBits(2)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	totalLength, err := cur.ReadUint(2)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	id, err := cur.ReadUint(2)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	flags, err := cur.ReadBits(3)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	fragOffset, err := cur.ReadBits(13)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	ttl, err := cur.ReadUint(1)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	proto, err := cur.ReadUint(1)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	checksum, err := cur.ReadUint(2)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	srcBytes, err := cur.Read(4)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	dstBytes, err := cur.Read(4)
	if err != nil {
		return nil, NextHint{}, "", err
	}

	if int(totalLength) < headerLength {
		return nil, NextHint{}, "", wrapf(ErrorKindMalformedHeader, "IPv4: total length %d shorter than header length %d", totalLength, headerLength)
	}

	optionsLength := headerLength - 20
	optionsValue, err := readIPv4Options(cur, optionsLength)
	if err != nil {
		return nil, NextHint{}, "", err
	}

	flagsRec := NewRecordBuilder().
		Set("reserved", BoolValue(flags&0x4 != 0)).
		Set("df", BoolValue(flags&0x2 != 0)).
		Set("mf", BoolValue(flags&0x1 != 0)).
		Build()

	rec := NewRecordBuilder().
		Set("version", IntValue(version)).
		Set("ihl", IntValue(ihl)).
		Set("dscp", IntValue(dscp)).
		Set("ecn", IntValue(ecn)).
		Set("total_length", IntValue(totalLength)).
		Set("id", IntValue(id)).
		Set("flags", RecordValue(flagsRec)).
		Set("fragment_offset", IntValue(fragOffset)).
		Set("ttl", IntValue(ttl)).
		Set("protocol", TextValue(IPProtocolRegistry.Lookup(uint32(proto)).ShortName)).
		Set("checksum", IntValue(checksum)).
		Set("src", IPv4Value(net.IP(srcBytes))).
		Set("dst", IPv4Value(net.IP(dstBytes))).
		Set("options", optionsValue).
		Set("len", IntValue(uint64(headerLength))).
		Build()

	payloadLength := int(totalLength) - headerLength
	next := BoundedHint(IPProtocolRegistry.Lookup(uint32(proto)), payloadLength)
	return rec, next, "", nil
}

// readIPv4Options parses the IHL-declared options block into an ordered
// sequence of {type, name, data} records, honoring the single-octet End
// of Options List (0) and No Operation (1) options which carry no length
// or data field.
func readIPv4Options(cur *Cursor, length int) (Value, error) {
	if length <= 0 {
		return SequenceValue(nil), nil
	}
	sub, err := cur.Sub(length)
	if err != nil {
		return Value{}, err
	}

	var opts []Value
	for sub.Remaining() > 0 {
		optType, err := sub.ReadUint(1)
		if err != nil {
			return Value{}, err
		}
		if optType == 0 || optType == 1 {
			name := "NOP"
			if optType == 0 {
				name = "EOL"
			}
			opts = append(opts, RecordValue(NewRecordBuilder().
				Set("type", IntValue(optType)).
				Set("name", TextValue(name)).
				Set("data", Null()).
				Build()))
			continue
		}
		if sub.Remaining() == 0 {
			break
		}
		optLen, err := sub.ReadUint(1)
		if err != nil {
			return Value{}, err
		}
		dataLen := int(optLen) - 2
		if dataLen < 0 {
			return Value{}, wrapf(ErrorKindMalformedHeader, "IPv4 option type %d: declared length %d too short", optType, optLen)
		}
		if dataLen > sub.Remaining() {
			dataLen = sub.Remaining()
		}
		data, err := sub.Read(dataLen)
		if err != nil {
			return Value{}, err
		}
		opts = append(opts, RecordValue(NewRecordBuilder().
			Set("type", IntValue(optType)).
			Set("name", Null()).
			Set("data", BytesValue(data)).
			Build()))
	}
	return SequenceValue(opts), nil
}
