package resolver

import (
	"context"
	"time"

	"github.com/miekg/dns"
)

//go:generate mockgen -destination=mock_$GOPACKAGE/$GOFILE . Client,AddrLookuper

// Client is the subset of the miekg/dns client used to send PTR queries.
type Client interface {
	ExchangeContext(ctx context.Context, m *dns.Msg, a string) (r *dns.Msg, rtt time.Duration, err error)
}

// AddrLookuper is implemented by *net.Resolver.
type AddrLookuper interface {
	LookupAddr(ctx context.Context, addr string) (names []string, err error)
}
