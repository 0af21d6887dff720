package machine

import (
	"context"
	"sync/atomic"
)

type State int32

const (
	Uninitialized State = iota
	Initializing
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

//nolint:gochecknoglobals
var (
	state    atomic.Int32
	instance atomic.Pointer[Identity]
)

// Init builds the identity of the machine and registers it as the
// process identity returned by Instance. It must be called exactly once,
// and must return before any goroutine calls Instance; calling it a
// second time panics. If no hostname can be determined, an error is
// returned, the state goes back to Uninitialized and the caller is
// expected to abort its startup.
func Init(ctx context.Context, settings Settings, resolver NameResolver,
	lister InterfaceLister, formatter Formatter, logger Logger) (
	identity *Identity, err error) {
	if !state.CompareAndSwap(int32(Uninitialized), int32(Initializing)) {
		panic("machine identity initialized twice")
	}
	defer func() {
		if identity == nil {
			state.Store(int32(Uninitialized))
		}
	}()

	identity, err = New(ctx, settings, resolver, lister, formatter, logger)
	if err != nil {
		return nil, err
	}

	instance.Store(identity)
	state.Store(int32(Ready))
	return identity, nil
}

// Instance returns the process identity of the machine.
// It panics if Init has not completed.
func Instance() *Identity {
	if State(state.Load()) != Ready {
		panic("machine identity accessed before initialization")
	}
	return instance.Load()
}

func CurrentState() State {
	return State(state.Load())
}
