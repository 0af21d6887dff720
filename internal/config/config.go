package config

import (
	"fmt"

	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
	"github.com/qdm12/machine-identity/internal/resolver"
)

type Config struct {
	Machine  Machine
	Resolver resolver.Settings
	Server   Server
	Logger   Logger
}

func (c *Config) Read(reader *reader.Reader) (err error) {
	c.Machine.read(reader)

	c.Resolver, err = readResolver(reader)
	if err != nil {
		return fmt.Errorf("reading resolver settings: %w", err)
	}

	err = c.Server.read(reader)
	if err != nil {
		return fmt.Errorf("reading server settings: %w", err)
	}

	err = c.Logger.read(reader)
	if err != nil {
		return fmt.Errorf("reading logger settings: %w", err)
	}

	return nil
}

func (c *Config) SetDefaults() {
	c.Machine.setDefaults()
	c.Resolver.SetDefaults()
	c.Server.setDefaults()
	c.Logger.setDefaults()
}

func (c Config) Validate() (err error) {
	type validator interface {
		Validate() (err error)
	}
	toValidate := map[string]validator{
		"machine":  &c.Machine,
		"resolver": &c.Resolver,
		"server":   &c.Server,
		"logger":   &c.Logger,
	}

	for name, v := range toValidate {
		err = v.Validate()
		if err != nil {
			return fmt.Errorf("%s settings: %w", name, err)
		}
	}

	return nil
}

func (c Config) String() string {
	return c.toLinesNode().String()
}

func (c Config) toLinesNode() *gotree.Node {
	node := gotree.New("Settings summary:")
	node.AppendNode(c.Machine.toLinesNode())
	node.AppendNode(c.Resolver.ToLinesNode())
	node.AppendNode(c.Server.toLinesNode())
	node.AppendNode(c.Logger.toLinesNode())
	return node
}
