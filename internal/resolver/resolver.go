// Package resolver resolves the local hostname and the hostnames
// of IP addresses.
package resolver

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/miekg/dns"
)

type Resolver struct {
	// address is the DNS server address, and is empty
	// if the Go resolver is used.
	address  string
	timeout  time.Duration
	client   Client
	goLookup AddrLookuper
	hostname func() (name string, err error)
}

func New(settings Settings) (resolver *Resolver, err error) {
	settings.SetDefaults()
	err = settings.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating settings: %w", err)
	}

	return &Resolver{
		address: *settings.Address,
		timeout: settings.Timeout,
		client: &dns.Client{
			Net:     "udp",
			Timeout: settings.Timeout,
		},
		goLookup: net.DefaultResolver,
		hostname: os.Hostname,
	}, nil
}

// LocalHostname returns the hostname reported by the kernel.
func (r *Resolver) LocalHostname() (hostname string, err error) {
	hostname, err = r.hostname()
	if err != nil {
		return "", fmt.Errorf("getting hostname: %w", err)
	}
	return hostname, nil
}
