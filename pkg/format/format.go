// Package format renders addresses as text.
package format

import (
	"encoding/hex"
	"net/netip"
	"strings"
)

// Formatter implements the address formatting used by the machine identity.
type Formatter struct{}

func New() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Text(ip netip.Addr) string { return Text(ip) }
func (f *Formatter) Hex(ip netip.Addr) string  { return Hex(ip) }

// Text returns the usual string representation of the address,
// or the empty string if the address is the zero netip.Addr.
func Text(ip netip.Addr) string {
	if !ip.IsValid() {
		return ""
	}
	return ip.String()
}

// Hex returns the upper case hexadecimal encoding of the address bytes
// in network byte order, that is 8 characters for an IPv4 address and
// 32 characters for an IPv6 address. IPv4-mapped IPv6 addresses are
// encoded as IPv4 addresses. The empty string is returned for the zero
// netip.Addr.
func Hex(ip netip.Addr) string {
	if !ip.IsValid() {
		return ""
	}
	return strings.ToUpper(hex.EncodeToString(ip.Unmap().AsSlice()))
}
