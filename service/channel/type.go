package channel

import "context"

type State int32

const (
	Disconnected State = iota
	Connecting
	Connected
	Closed
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Handler receives every decoded event in arrival order
type Handler func(ctx context.Context, ev Event)

type IService interface {
	Connect(ctx context.Context) error
	Listen(ctx context.Context, fn Handler) error
	Send(msg []byte) error
	State() State
	IsConnected() bool
	Close() error
}
