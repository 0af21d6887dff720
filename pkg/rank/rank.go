// Package rank classifies IP addresses by how well they represent
// the machine on the network.
package rank

import "net/netip"

// Rank orders address classes, a higher rank being preferred.
type Rank uint8

const (
	Unusable Rank = iota
	Loopback
	NonRoutable
	Multicast
	Global
)

func (r Rank) String() string {
	switch r {
	case Unusable:
		return "unusable"
	case Loopback:
		return "loopback"
	case NonRoutable:
		return "non-routable"
	case Multicast:
		return "multicast"
	case Global:
		return "global"
	default:
		return "unknown"
	}
}

// Classify returns the rank of the address given.
// The checks are done in order, so for example a loopback address
// is never reported as non-routable. Only the zero netip.Addr is
// unusable: the unspecified addresses 0.0.0.0 and :: match no other
// class and are ranked global.
func Classify(ip netip.Addr) Rank {
	ip = ip.Unmap()
	switch {
	case !ip.IsValid():
		return Unusable
	case ip.IsLoopback():
		return Loopback
	case IsNonRoutable(ip):
		return NonRoutable
	case ip.IsMulticast():
		return Multicast
	default:
		return Global
	}
}

// IsNonRoutable returns true for private addresses (RFC 1918 and
// IPv6 unique local addresses) and link-local unicast addresses.
func IsNonRoutable(ip netip.Addr) bool {
	ip = ip.Unmap()
	return ip.IsPrivate() || ip.IsLinkLocalUnicast()
}
