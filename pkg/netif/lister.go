// Package netif lists the IP addresses assigned to the network
// interfaces of the machine.
package netif

import (
	"fmt"
	"net"
	"net/netip"

	"github.com/vishvananda/netlink"
)

type Lister struct {
	source          Source
	interfaceAddrs  func() ([]net.Addr, error)
	netlinkAddrList func(link netlink.Link, family int) ([]netlink.Addr, error)
}

func New(source Source) (lister *Lister, err error) {
	switch source {
	case Stdlib, Netlink:
	default:
		return nil, fmt.Errorf("%w: %q", ErrSourceUnknown, source)
	}

	return &Lister{
		source:          source,
		interfaceAddrs:  net.InterfaceAddrs,
		netlinkAddrList: netlink.AddrList,
	}, nil
}

func (l *Lister) String() string {
	return string(l.source)
}

// ListAddresses returns the addresses of all the network interfaces,
// in the order given by the operating system. IPv4 addresses are
// always returned in their 4 bytes form.
func (l *Lister) ListAddresses() (addresses []netip.Addr, err error) {
	if l.source == Netlink {
		return l.listNetlink()
	}
	return l.listStdlib()
}

func (l *Lister) listStdlib() (addresses []netip.Addr, err error) {
	netAddresses, err := l.interfaceAddrs()
	if err != nil {
		return nil, fmt.Errorf("listing interface addresses: %w", err)
	}

	addresses = make([]netip.Addr, 0, len(netAddresses))
	for _, netAddress := range netAddresses {
		var ip net.IP
		var zone string
		switch typed := netAddress.(type) {
		case *net.IPNet:
			ip = typed.IP
		case *net.IPAddr:
			ip, zone = typed.IP, typed.Zone
		default:
			continue
		}

		address, ok := netip.AddrFromSlice(ip)
		if !ok {
			continue
		}
		address = address.Unmap()
		if zone != "" && address.Is6() {
			address = address.WithZone(zone)
		}
		addresses = append(addresses, address)
	}
	return addresses, nil
}

func (l *Lister) listNetlink() (addresses []netip.Addr, err error) {
	netlinkAddresses, err := l.netlinkAddrList(nil, netlink.FAMILY_ALL)
	if err != nil {
		return nil, fmt.Errorf("listing netlink addresses: %w", err)
	}

	addresses = make([]netip.Addr, 0, len(netlinkAddresses))
	for _, netlinkAddress := range netlinkAddresses {
		if netlinkAddress.IPNet == nil {
			continue
		}
		address, ok := netip.AddrFromSlice(netlinkAddress.IP)
		if !ok {
			continue
		}
		addresses = append(addresses, address.Unmap())
	}
	return addresses, nil
}
