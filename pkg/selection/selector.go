// Package selection picks the most representative address of each
// IP family out of a set of candidate addresses.
package selection

import (
	"net/netip"

	"github.com/qdm12/machine-identity/pkg/ipversion"
	"github.com/qdm12/machine-identity/pkg/rank"
)

// Candidate is an address together with its rank.
// The zero value is the zero address ranked as unusable.
type Candidate struct {
	Address netip.Addr
	Rank    rank.Rank
}

func (c Candidate) String() string {
	if !c.Address.IsValid() {
		return "none (" + c.Rank.String() + ")"
	}
	return c.Address.String() + " (" + c.Rank.String() + ")"
}

// Selector keeps track of the best IPv4 and IPv6 candidates seen.
// Its zero value is ready to use. It is not safe for concurrent use.
type Selector struct {
	ipv4 Candidate
	ipv6 Candidate
}

// Consider ranks the address given and stores it as the best
// candidate of its family if its rank is strictly higher than the
// one currently stored. For equal ranks, the first address seen wins.
// Unusable addresses are ignored, and IPv4-mapped IPv6 addresses
// are stored as IPv4 addresses.
func (s *Selector) Consider(ip netip.Addr) {
	ip = ip.Unmap()
	r := rank.Classify(ip)
	if r == rank.Unusable {
		return
	}

	var best *Candidate
	switch ipversion.FromAddr(ip) {
	case ipversion.IP4:
		best = &s.ipv4
	case ipversion.IP6:
		best = &s.ipv6
	default:
		return
	}

	if r > best.Rank {
		*best = Candidate{Address: ip, Rank: r}
	}
}

// ConsiderAll calls Consider for each of the addresses given, in order.
func (s *Selector) ConsiderAll(ips []netip.Addr) {
	for _, ip := range ips {
		s.Consider(ip)
	}
}

func (s *Selector) BestIPv4() Candidate { return s.ipv4 }
func (s *Selector) BestIPv6() Candidate { return s.ipv6 }
