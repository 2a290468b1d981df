package dissect

import "net"

// Ethernet is the link-layer entry point a container reader maps link_type
// to before calling DecodeFrame. Capture containers hand the core Ethernet
// frames in practice, so this is the concrete consumer of EtherTypeRegistry.
const ethernetHeaderLength = 14

func init() {
	registerDecoder(ProtoEthernet, DecoderDescriptor{
		ShortName:       "Ethernet",
		LongName:        "Ethernet II",
		Layer:           LayerLink,
		MinHeaderLength: ethernetHeaderLength,
		Decode:          decodeEthernet,
	})
}

func decodeEthernet(cur *Cursor) (*Record, NextHint, string, error) {
	dst, err := cur.Read(6)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	src, err := cur.Read(6)
	if err != nil {
		return nil, NextHint{}, "", err
	}
	etherType, err := cur.ReadUint(2)
	if err != nil {
		return nil, NextHint{}, "", err
	}

	rec := NewRecordBuilder().
		Set("dst", MACValue(net.HardwareAddr(dst))).
		Set("src", MACValue(net.HardwareAddr(src))).
		Set("type", IntValue(etherType)).
		Build()

	next := DescriptorHint(EtherTypeRegistry.Lookup(uint32(etherType)))
	return rec, next, "", nil
}
