package selection

import "net/netip"

// Choose returns the address to use as the machine primary address.
// IPv4 is preferred when both ranks are equal, including when both
// families have no usable address, in which case the zero IPv4
// candidate address is returned.
func Choose(ipv4, ipv6 Candidate) netip.Addr {
	if ipv4.Rank >= ipv6.Rank {
		return ipv4.Address
	}
	return ipv6.Address
}
