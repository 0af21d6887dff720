package machine

import (
	"context"
	"errors"
	"fmt"
	"net/netip"

	"github.com/qdm12/machine-identity/pkg/ipversion"
	"github.com/qdm12/machine-identity/pkg/rank"
	"github.com/qdm12/machine-identity/pkg/selection"
)

var ErrHostnameUnavailable = errors.New("hostname is not available")

// New builds the identity of the machine without registering it as
// the process identity. Failing to list the network interfaces or to
// reverse lookup the address given only logs a warning. An error is
// returned only if no hostname can be determined at all.
func New(ctx context.Context, settings Settings, resolver NameResolver,
	lister InterfaceLister, formatter Formatter, logger Logger) (
	identity *Identity, err error) {
	identity = &Identity{}

	if settings.Address.IsValid() {
		setFromAddress(ctx, identity, settings.Address, resolver, logger)
	} else {
		err = setFromInterfaces(identity, settings.Hostname, resolver, lister, logger)
		if err != nil {
			return nil, err
		}
	}

	identity.primaryText = formatter.Text(identity.primary)
	identity.primaryHex = formatter.Hex(identity.primary)
	return identity, nil
}

func setFromAddress(ctx context.Context, identity *Identity,
	address netip.Addr, resolver NameResolver, logger Logger) {
	address = address.Unmap()
	identity.primary = address
	candidate := selection.Candidate{Address: address, Rank: rank.Classify(address)}
	switch ipversion.FromAddr(address) {
	case ipversion.IP4:
		identity.ipv4 = candidate
	case ipversion.IP6:
		identity.ipv6 = candidate
	}

	hostname, err := resolver.ReverseLookup(ctx, address)
	if err != nil {
		logger.Warn(fmt.Sprintf("failed to find hostname for address %s: %s",
			address, err))
		return
	}
	identity.hostname = hostname
	identity.hasHostname = true
}

func setFromInterfaces(identity *Identity, hostname *string,
	resolver NameResolver, lister InterfaceLister, logger Logger) (err error) {
	if hostname != nil && *hostname != "" {
		identity.hostname = *hostname
	} else {
		identity.hostname, err = resolver.LocalHostname()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrHostnameUnavailable, err)
		}
	}
	identity.hasHostname = true

	addresses, err := lister.ListAddresses()
	if err != nil {
		logger.Warn(fmt.Sprintf("unable to determine local host %q address information: %s",
			identity.hostname, err))
		return nil
	}

	var selector selection.Selector
	selector.ConsiderAll(addresses)
	identity.ipv4 = selector.BestIPv4()
	identity.ipv6 = selector.BestIPv6()
	identity.primary = selection.Choose(identity.ipv4, identity.ipv6)
	logger.Debug(fmt.Sprintf("selected IPv4 %s and IPv6 %s out of %d addresses",
		identity.ipv4, identity.ipv6, len(addresses)))
	return nil
}
