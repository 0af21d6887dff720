package netif

import (
	"errors"
	"fmt"
)

type Source string

const (
	// Stdlib lists addresses with the Go standard library,
	// which works on all platforms.
	Stdlib Source = "stdlib"
	// Netlink lists addresses using a netlink socket,
	// and only works on Linux.
	Netlink Source = "netlink"
)

var ErrSourceUnknown = errors.New("interface source is unknown")

func ParseSource(s string) (source Source, err error) {
	switch Source(s) {
	case Stdlib, Netlink:
		return Source(s), nil
	default:
		return "", fmt.Errorf("%w: %q must be one of %s or %s",
			ErrSourceUnknown, s, Stdlib, Netlink)
	}
}
