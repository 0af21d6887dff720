package machine

import "net/netip"

type Settings struct {
	// Hostname overrides the hostname reported by the operating system.
	// It is ignored if Address is set, in which case the hostname is
	// found with a reverse lookup of the address.
	Hostname *string
	// Address is the address of the machine. If set, the network
	// interfaces are not enumerated.
	Address netip.Addr
}
