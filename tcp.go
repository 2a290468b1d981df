package dissect

func init() {
	registerDecoder(ProtoTCP, DecoderDescriptor{
		ShortName:       "TCP",
		LongName:        "Transmission Control Protocol",
		Layer:           LayerTransport,
		MinHeaderLength: 20,
		Decode:          decodeTCP,
	})
}

func decodeTCP(cur *Cursor) (*Record, NextHint, string, error) {
	sport, err := cur.ReadUint(2)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	dport, err := cur.ReadUint(2)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	seq, err := cur.ReadUint(4)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	ack, err := cur.ReadUint(4)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	dataOffset, err := cur.ReadBits(4)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	_, err = cur.ReadBits(3) // reserved
	if err != nil {
		return nil, NextHint{}, "", err
	}
	ns, err := cur.ReadBits(1)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	flagBits, err := cur.ReadUint(1)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	window, err := cur.ReadUint(2)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	checksum, err := cur.ReadUint(2)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	urgentPtr, err := cur.ReadUint(2)
	if err != nil {
		return nil, NextHint{}, "", err
	}

	if dataOffset < 5 {
		return nil, NextHint{}, "", wrapf(ErrorKindMalformedHeader, "TCP: data offset %d is less than minimum 5", dataOffset)
	}
	headerLength := int(dataOffset) * 4
	optionsLength := headerLength - 20
	var options []byte
	if optionsLength > 0 {
		options, err = cur.Read(optionsLength)
		if err != nil {
			return nil, NextHint{}, "", err
		}
	}

	flags := NewRecordBuilder().
		Set("ns", BoolValue(ns != 0)).
		Set("cwr", BoolValue(flagBits&0x80 != 0)).
		Set("ece", BoolValue(flagBits&0x40 != 0)).
		Set("urg", BoolValue(flagBits&0x20 != 0)).
		Set("ack", BoolValue(flagBits&0x10 != 0)).
		Set("psh", BoolValue(flagBits&0x08 != 0)).
		Set("rst", BoolValue(flagBits&0x04 != 0)).
		Set("syn", BoolValue(flagBits&0x02 != 0)).
		Set("fin", BoolValue(flagBits&0x01 != 0)).
		Build()

	rec := NewRecordBuilder().
		Set("sport", IntValue(sport)).
		Set("dport", IntValue(dport)).
		Set("seq", IntValue(seq)).
		Set("ack", IntValue(ack)).
		Set("data_offset", IntValue(dataOffset)).
		Set("flags", RecordValue(flags)).
		Set("window", IntValue(window)).
		Set("checksum", IntValue(checksum)).
		Set("urgent_pointer", IntValue(urgentPtr)).
		Set("options", BytesValue(options)).
		Build()

	next := DescriptorHint(resolvePort(dport, sport))
	return rec, next, "", nil
}
