package dissect

import "strings"

// Frame is the result of a successful top-level decode: an info record, the
// protocol chain, and the total bytes the recursive decode accounted for.
type Frame struct {
	Info     *Record
	Chain    *Chain
	Consumed int
}

// DecodeFrame is the engine's single entry point. hint is typically the
// link-layer descriptor (EtherTypeRegistry's Ethernet entry), but tests and
// callers that already know the next protocol may pass any descriptor
// directly (e.g. an ARP descriptor over a bare ARP payload).
//
// DecodeFrame either returns a Frame or a *DecodeError, never a panic past
// the engine boundary. A *DecodeError is only ever returned for a failure in
// the initial-hint decoder itself; every sublayer failure reached by
// recursion degrades to a __error__-marked Raw fallback inside the returned
// Frame.
func DecodeFrame(data []byte, hint Descriptor) (*Frame, error) {
	cur := NewCursor(data)
	chain := newChainBuilder()

	record, consumed, _, decErr := decodeLayer(cur, hint, chain, map[layerKey]bool{}, true)
	if decErr != nil {
		return nil, decErr
	}
	return &Frame{Info: record, Chain: chain.build(), Consumed: consumed}, nil
}

type layerKey struct {
	layer     Layer
	shortName string
}

// decodeLayer invokes the decoder named by hint over cur, merges its
// recursion, and returns (record, bytes this layer accounted for, this
// layer's effective short name, error). error is non-nil only when isRoot
// is true and its decoder failed. Every sublayer failure is absorbed into
// the returned record as a __error__ field plus a Raw fallback for the
// remainder.
func decodeLayer(cur *Cursor, hint Descriptor, chain *chainBuilder, seen map[layerKey]bool, isRoot bool) (*Record, int, string, *DecodeError) {
	startOffset := cur.Offset()

	decoderDesc, ok := lookupDecoder(hint.DecoderID)
	if !ok {
		decoderDesc = rawDecoderDescriptor
		hint = RawDescriptor
	}

	record, next, nameOverride, err := decoderDesc.Decode(cur)

	name := nameOverride
	if name == "" {
		name = decoderDesc.ShortName
	}

	if err != nil {
		// A failure in the initial-hint decoder itself has nothing beneath
		// it to fall back to, unlike a sublayer failure reached by
		// recursion, so it surfaces to the caller instead of degrading to
		// a __error__-marked Raw fallback.
		if isRoot {
			return nil, 0, "", &DecodeError{
				Kind:   KindOf(err),
				Offset: startOffset,
				Chain:  chain.ShortNames(),
				Err:    err,
			}
		}

		if record == nil {
			record = NewRecordBuilder().Build()
		}
		record = withErrorField(record, KindOf(err), cur.Offset())
		chain.Append(name, decoderDesc.Layer)

		trailing := cur.ReadRemaining()
		if len(trailing) > 0 {
			rawRec := decodeRawBytes(trailing)
			record = withField(record, "raw", RecordValue(rawRec))
			chain.Append(rawDecoderDescriptor.ShortName, LayerUnknown)
		}
		return record, cur.Offset() - startOffset, name, nil
	}

	chain.Append(name, decoderDesc.Layer)

	if !next.Terminal {
		nextDesc := next.Descriptor
		_, hasDecoder := lookupDecoder(nextDesc.DecoderID)
		key := layerKey{layer: nextDesc.Layer, shortName: nextDesc.ShortName}

		switch {
		case !hasDecoder, seen[key]:
			// Unregistered decoder id, or this (layer, short name) pair has
			// already been dispatched to once in an ancestor frame: dump the
			// remainder into Raw without recursing further. A repeat is only
			// cut off on its second occurrence, not its first, since real
			// IPv6 extension-header chains legitimately repeat an option type
			// once (e.g. two Destination Options headers).
			remBytes := takeRemainderFor(cur, next)
			rawRec := decodeRawBytes(remBytes)
			record = withField(record, "raw", RecordValue(rawRec))
			chain.Append(rawDecoderDescriptor.ShortName, LayerUnknown)

		default:
			var subCur *Cursor
			var subErr error
			if next.HasPayloadLength {
				subCur, subErr = cur.Sub(next.PayloadLength)
			} else {
				subCur, subErr = cur.Sub(cur.Remaining())
			}

			if subErr != nil {
				// Declared length exceeds what's actually available.
				record = withErrorField(record, ErrorKindTruncatedPacket, cur.Offset())
				trailing := cur.ReadRemaining()
				if len(trailing) > 0 {
					rawRec := decodeRawBytes(trailing)
					record = withField(record, "raw", RecordValue(rawRec))
					chain.Append(rawDecoderDescriptor.ShortName, LayerUnknown)
				}
			} else {
				childSeen := make(map[layerKey]bool, len(seen)+1)
				for k := range seen {
					childSeen[k] = true
				}
				childSeen[key] = true

				childRecord, _, childName, _ := decodeLayer(subCur, nextDesc, chain, childSeen, false)
				mergeKey := strings.ToLower(childName)
				record = withField(record, mergeKey, RecordValue(childRecord))
			}
		}
	}

	// A header may declare a total length shorter than the bytes actually
	// available to it (capture-frame padding). Whatever this layer's own
	// cursor has left over after everything above is attached back onto
	// this layer's own record rather than silently dropped.
	if trailing := cur.ReadRemaining(); len(trailing) > 0 {
		record = withField(record, "padding", BytesValue(trailing))
	}

	return record, cur.Offset() - startOffset, name, nil
}

// takeRemainderFor returns the bytes that would have been handed to the
// next decoder, without actually recursing into it (used by the
// unregistered-decoder and loop-prevention Raw fallbacks).
func takeRemainderFor(cur *Cursor, next NextHint) []byte {
	if next.HasPayloadLength {
		n := next.PayloadLength
		if n > cur.Remaining() {
			n = cur.Remaining()
		}
		b, _ := cur.Read(n)
		return b
	}
	return cur.ReadRemaining()
}
