package machine

import (
	"context"
	"net/netip"
)

//go:generate mockgen -destination=mock_$GOPACKAGE/$GOFILE . NameResolver,InterfaceLister,Logger

type NameResolver interface {
	LocalHostname() (hostname string, err error)
	ReverseLookup(ctx context.Context, ip netip.Addr) (hostname string, err error)
}

type InterfaceLister interface {
	ListAddresses() (addresses []netip.Addr, err error)
}

type Formatter interface {
	Text(ip netip.Addr) string
	Hex(ip netip.Addr) string
}

type Logger interface {
	Debug(s string)
	Warn(s string)
}
