package config

import (
	"net"

	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/machine-identity/internal/resolver"
)

func readResolver(reader *reader.Reader) (settings resolver.Settings, err error) {
	settings.Address = reader.Get("RESOLVER_ADDRESS")
	if settings.Address != nil {
		*settings.Address = withDefaultPort(*settings.Address)
	}
	settings.Timeout, err = reader.Duration("RESOLVER_TIMEOUT")
	return settings, err
}

// withDefaultPort conveniently adds the DNS port 53
// to the address if it has no port.
func withDefaultPort(address string) string {
	if address == "" {
		return address
	}
	_, _, err := net.SplitHostPort(address)
	if err == nil {
		return address
	}
	return net.JoinHostPort(address, "53")
}
