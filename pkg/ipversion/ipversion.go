package ipversion

import "net/netip"

type IPVersion uint8

const (
	None IPVersion = iota
	IP4
	IP6
)

func (v IPVersion) String() string {
	switch v {
	case None:
		return "none"
	case IP4:
		return "ip4"
	case IP6:
		return "ip6"
	default:
		return "ip?"
	}
}

// FromAddr returns the family of the address given.
// IPv4-mapped IPv6 addresses are reported as IP4, and
// the zero netip.Addr is reported as None.
func FromAddr(ip netip.Addr) IPVersion {
	switch {
	case !ip.IsValid():
		return None
	case ip.Unmap().Is4():
		return IP4
	default:
		return IP6
	}
}
