package config

import (
	"errors"
	"fmt"
	"net/netip"

	"github.com/qdm12/gosettings"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
	"github.com/qdm12/machine-identity/pkg/machine"
	"github.com/qdm12/machine-identity/pkg/netif"
)

type Machine struct {
	// Hostname overrides the operating system hostname.
	// It is ignored if Address is set.
	Hostname *string
	// Address is the explicit IP address of the machine,
	// and is empty to detect it from the network interfaces.
	Address          *string
	InterfacesSource string
}

func (m *Machine) setDefaults() {
	m.Hostname = gosettings.DefaultPointer(m.Hostname, "")
	m.Address = gosettings.DefaultPointer(m.Address, "")
	m.InterfacesSource = gosettings.DefaultComparable(m.InterfacesSource, string(netif.Stdlib))
}

var ErrAddressNotValid = errors.New("address is not valid")

func (m Machine) Validate() (err error) {
	if *m.Address != "" {
		_, err = netip.ParseAddr(*m.Address)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrAddressNotValid, err)
		}
	}

	_, err = netif.ParseSource(m.InterfacesSource)
	if err != nil {
		return err
	}

	return nil
}

// ToSettings must be called on validated settings only.
func (m Machine) ToSettings() (settings machine.Settings) {
	if *m.Hostname != "" {
		hostname := *m.Hostname
		settings.Hostname = &hostname
	}
	if *m.Address != "" {
		settings.Address = netip.MustParseAddr(*m.Address)
	}
	return settings
}

func (m Machine) String() string {
	return m.toLinesNode().String()
}

func (m Machine) toLinesNode() *gotree.Node {
	node := gotree.New("Machine")
	switch {
	case *m.Address != "":
		node.Appendf("Hostname: reverse lookup of the address")
		node.Appendf("Address: %s", *m.Address)
		return node
	case *m.Hostname != "":
		node.Appendf("Hostname: %s", *m.Hostname)
	default:
		node.Appendf("Hostname: from the operating system")
	}
	node.Appendf("Address: detect from network interfaces")
	node.Appendf("Interfaces source: %s", m.InterfacesSource)
	return node
}

func (m *Machine) read(reader *reader.Reader) {
	m.Hostname = reader.Get("MACHINE_HOSTNAME")
	m.Address = reader.Get("MACHINE_ADDRESS")
	m.InterfacesSource = reader.String("INTERFACES_SOURCE")
}
