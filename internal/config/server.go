package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/qdm12/gosettings"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gosettings/validate"
	"github.com/qdm12/gotree"
)

type Server struct {
	Enabled          *bool
	ListeningAddress string
	RootURL          string
}

func (s *Server) setDefaults() {
	s.Enabled = gosettings.DefaultPointer(s.Enabled, false)
	s.ListeningAddress = gosettings.DefaultComparable(s.ListeningAddress, ":8000")
	s.RootURL = gosettings.DefaultComparable(s.RootURL, "/")
}

var ErrRootURLNotValid = errors.New("root URL is not valid")

func (s Server) Validate() (err error) {
	if !*s.Enabled {
		return nil
	}

	err = validate.ListeningAddress(s.ListeningAddress, os.Getuid())
	if err != nil {
		return fmt.Errorf("listening address: %w", err)
	}

	if !strings.HasPrefix(s.RootURL, "/") {
		return fmt.Errorf("%w: %q must start with /", ErrRootURLNotValid, s.RootURL)
	}

	return nil
}

func (s Server) String() string {
	return s.toLinesNode().String()
}

func (s Server) toLinesNode() *gotree.Node {
	if !*s.Enabled {
		return gotree.New("Server: disabled")
	}
	node := gotree.New("Server")
	node.Appendf("Listening address: %s", s.ListeningAddress)
	node.Appendf("Root URL: %s", s.RootURL)
	return node
}

func (s *Server) read(reader *reader.Reader) (err error) {
	s.Enabled, err = reader.BoolPtr("SERVER_ENABLED")
	if err != nil {
		return err
	}
	s.RootURL = reader.String("ROOT_URL")
	s.ListeningAddress = reader.String("LISTENING_ADDRESS")
	return nil
}
