package dissect

// Raw is the fallback decoder: it consumes everything handed to it into a
// single "packet" field and terminates the chain. It is also what missing
// registry keys, unregistered decoder ids, and loop-prevention fallbacks
// all resolve to.
var rawDecoderDescriptor = DecoderDescriptor{
	ShortName:       "Raw",
	LongName:        "Raw payload",
	Layer:           LayerUnknown,
	MinHeaderLength: 0,
	Decode:          decodeRaw,
}

func init() {
	registerDecoder(ProtoRaw, rawDecoderDescriptor)
}

func decodeRaw(cur *Cursor) (*Record, NextHint, string, error) {
	return decodeRawBytes(cur.ReadRemaining()), TerminalHint(), "", nil
}

// decodeRawBytes builds the Raw record directly from an already-extracted
// byte slice, used by the engine's Raw fallback paths where the bytes have
// already been pulled off a cursor rather than handed to decodeRaw itself.
func decodeRawBytes(b []byte) *Record {
	return NewRecordBuilder().Set("packet", BytesValue(b)).Build()
}
