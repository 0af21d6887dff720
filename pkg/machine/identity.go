package machine

import (
	"encoding/json"
	"net/netip"

	"github.com/qdm12/gotree"
	"github.com/qdm12/machine-identity/pkg/rank"
	"github.com/qdm12/machine-identity/pkg/selection"
)

// Identity is the identity of the local machine on the network.
// It is immutable once built and safe for concurrent reads.
type Identity struct {
	hostname    string
	hasHostname bool
	primary     netip.Addr
	ipv4        selection.Candidate
	ipv6        selection.Candidate
	primaryText string
	primaryHex  string
}

// Hostname returns the hostname of the machine and true,
// or the empty string and false if it could not be determined.
func (i *Identity) Hostname() (hostname string, ok bool) {
	return i.hostname, i.hasHostname
}

// PrimaryAddress is the address representing the machine and is
// always equal to either IPv4() or IPv6().
func (i *Identity) PrimaryAddress() netip.Addr { return i.primary }

// IPv4 returns the best IPv4 address of the machine, or the zero
// netip.Addr if the machine has no usable IPv4 address.
func (i *Identity) IPv4() netip.Addr { return i.ipv4.Address }

// IPv6 returns the best IPv6 address of the machine, or the zero
// netip.Addr if the machine has no usable IPv6 address.
func (i *Identity) IPv6() netip.Addr { return i.ipv6.Address }

func (i *Identity) IPv4Rank() rank.Rank { return i.ipv4.Rank }
func (i *Identity) IPv6Rank() rank.Rank { return i.ipv6.Rank }

func (i *Identity) PrimaryAddressText() string { return i.primaryText }
func (i *Identity) PrimaryAddressHex() string  { return i.primaryHex }

func (i *Identity) String() string {
	return i.ToLinesNode().String()
}

func (i *Identity) ToLinesNode() *gotree.Node {
	node := gotree.New("Machine identity")
	if i.hasHostname {
		node.Appendf("Hostname: %s", i.hostname)
	} else {
		node.Appendf("Hostname: unknown")
	}
	if i.primaryText == "" {
		node.Appendf("Primary address: none")
	} else {
		node.Appendf("Primary address: %s (hex %s)", i.primaryText, i.primaryHex)
	}
	node.Appendf("IPv4: %s", i.ipv4)
	node.Appendf("IPv6: %s", i.ipv6)
	return node
}

type jsonIdentity struct {
	Hostname   *string    `json:"hostname"`
	Address    string     `json:"address"`
	AddressHex string     `json:"address_hex"`
	IPv4       netip.Addr `json:"ipv4"`
	IPv4Rank   string     `json:"ipv4_rank"`
	IPv6       netip.Addr `json:"ipv6"`
	IPv6Rank   string     `json:"ipv6_rank"`
}

func (i *Identity) MarshalJSON() (data []byte, err error) {
	identity := jsonIdentity{
		Address:    i.primaryText,
		AddressHex: i.primaryHex,
		IPv4:       i.ipv4.Address,
		IPv4Rank:   i.ipv4.Rank.String(),
		IPv6:       i.ipv6.Address,
		IPv6Rank:   i.ipv6.Rank.String(),
	}
	if i.hasHostname {
		identity.Hostname = &i.hostname
	}
	return json.Marshal(identity)
}
