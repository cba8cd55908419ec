package featurenote

import "context"

// Status is the phase of a catalog load.
type Status uint8

const (
	StatusLoading Status = iota
	StatusLoaded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// State is what an editor shows for the feature book.
// Transitions are Loading to Loaded or Error; nothing is retried.
type State struct {
	Status  Status
	Notes   []Note
	Message string
}

func Loading() State {
	return State{Status: StatusLoading}
}

func Loaded(notes []Note) State {
	return State{Status: StatusLoaded, Notes: notes}
}

func Failed(err error) State {
	s := State{Status: StatusError}
	if err != nil {
		s.Message = err.Error()
	}
	return s
}

// Load runs fn once and reports its outcome as a State.
func Load(ctx context.Context, fn func(context.Context) ([]Note, error)) State {
	notes, err := fn(ctx)
	if err != nil {
		return Failed(err)
	}
	return Loaded(notes)
}
