package dissect

// Registry is a finite, immutable mapping from an integer key to a protocol
// Descriptor, populated once at package init from a static table. Missing
// keys resolve to RawDescriptor rather than failing.
type Registry struct {
	name    string
	entries map[uint32]Descriptor
}

// NewRegistry builds an immutable Registry from table. The map is copied so
// later mutation of the caller's map (there should be none) can't leak into
// the registry.
func NewRegistry(name string, table map[uint32]Descriptor) *Registry {
	entries := make(map[uint32]Descriptor, len(table))
	for k, v := range table {
		entries[k] = v
	}
	return &Registry{name: name, entries: entries}
}

// Lookup resolves key to its Descriptor, or RawDescriptor if key is unknown.
func (r *Registry) Lookup(key uint32) Descriptor {
	if d, ok := r.entries[key]; ok {
		return d
	}
	return RawDescriptor
}

// Name identifies the registry for diagnostics.
func (r *Registry) Name() string { return r.name }

// Canonical registries, process-wide and read-only after init. Values
// drawn from IANA-assigned EtherType, IP protocol, and well-known port
// numbers.
var (
	// EtherTypeRegistry maps a 16-bit EtherType to the link-layer's next
	// decoder.
	EtherTypeRegistry = NewRegistry("EtherType", map[uint32]Descriptor{
		0x0806: {ShortName: "ARP", Layer: LayerLink, DecoderID: ProtoARPFamily},
		0x8035: {ShortName: "RARP", Layer: LayerLink, DecoderID: ProtoARPFamily},
		0x0800: {ShortName: "IPv4", Layer: LayerInternet, DecoderID: ProtoIPv4},
		0x86dd: {ShortName: "IPv6", Layer: LayerInternet, DecoderID: ProtoIPv6},
		// 0x8137 IPX is a known EtherType with no decoder of its own in this
		// engine; its entry names ProtoRaw, so its payload is handed to the
		// Raw decoder, not through a missing registry entry.
		0x8137: {ShortName: "IPX", Layer: LayerInternet, DecoderID: ProtoRaw},
	})

	// IPProtocolRegistry maps an 8-bit IP protocol number to the
	// transport/network-overlay decoder it dispatches to.
	IPProtocolRegistry = NewRegistry("IPProtocol", map[uint32]Descriptor{
		1:  {ShortName: "ICMP", Layer: LayerInternet, DecoderID: ProtoICMPv4},
		6:  {ShortName: "TCP", Layer: LayerTransport, DecoderID: ProtoTCP},
		17: {ShortName: "UDP", Layer: LayerTransport, DecoderID: ProtoUDP},
		41: {ShortName: "IPv6", Layer: LayerInternet, DecoderID: ProtoIPv6},
		50: {ShortName: "ESP", Layer: LayerInternet, DecoderID: ProtoRaw},
		51: {ShortName: "AH", Layer: LayerInternet, DecoderID: ProtoRaw},
		58: {ShortName: "ICMPv6", Layer: LayerInternet, DecoderID: ProtoICMPv6},
		// 59 NoNxt is the IPv6 "no next header" terminator: it resolves to
		// Raw, which ends the chain. Raw.packet holds whatever payload the
		// enclosing header still declares, which is empty for a well-formed
		// packet.
		59: {ShortName: "NoNxt", Layer: LayerInternet, DecoderID: ProtoRaw},
		60: {ShortName: "IPv6-Opts", Layer: LayerInternet, DecoderID: ProtoIPv6DestOpts},
		0:  {ShortName: "IPv6-HopOpt", Layer: LayerInternet, DecoderID: ProtoIPv6HopByHop},
		43: {ShortName: "IPv6-Route", Layer: LayerInternet, DecoderID: ProtoIPv6Routing},
		44: {ShortName: "IPv6-Frag", Layer: LayerInternet, DecoderID: ProtoIPv6Fragment},
	})

	// PortRegistry maps a well-known TCP/UDP port to the application-layer
	// decoder it dispatches to. Shared across TCP and UDP.
	PortRegistry = NewRegistry("Port", map[uint32]Descriptor{
		80:   {ShortName: "HTTP", Layer: LayerApplication, DecoderID: ProtoHTTP1},
		8080: {ShortName: "HTTP", Layer: LayerApplication, DecoderID: ProtoHTTP1},
		// DNS (53), HTTPS/TLS (443) and FTP-control (21) are well-known
		// application ports with no decoder registered in this engine; they
		// resolve through the decoder-not-registered fallback to Raw.
		53:  {ShortName: "DNS", Layer: LayerApplication, DecoderID: ProtoRaw},
		443: {ShortName: "HTTPS", Layer: LayerApplication, DecoderID: ProtoRaw},
		21:  {ShortName: "FTP", Layer: LayerApplication, DecoderID: ProtoRaw},
	})
)
