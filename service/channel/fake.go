package channel

import (
	"context"
	"sync"

	"github.com/khaledhikmat/vs-robot-eye/model"
)

type fakeService struct {
	mu       sync.Mutex
	state    State
	messages [][]byte
	events   []Event
	err      error
}

// FakeService replays a fixed list of events and records what is sent
type FakeService interface {
	IService
	Sent() [][]byte
}

// NewFake returns a channel that is already connected. Listen delivers events in
// order and then returns err (nil ends the listener quietly).
func NewFake(err error, events ...Event) FakeService {
	return &fakeService{
		state:  Connected,
		events: events,
		err:    err,
	}
}

// NewDisconnectedFake returns a channel that was never connected
func NewDisconnectedFake() FakeService {
	return &fakeService{
		state: Disconnected,
	}
}

func (svc *fakeService) Connect(_ context.Context) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.state = Connected
	return nil
}

func (svc *fakeService) Listen(ctx context.Context, fn Handler) error {
	for _, ev := range svc.events {
		if ctx.Err() != nil {
			return nil
		}
		fn(ctx, ev)
	}
	return svc.err
}

func (svc *fakeService) Send(msg []byte) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.state != Connected {
		return model.ErrNotConnected
	}
	svc.messages = append(svc.messages, msg)
	return nil
}

func (svc *fakeService) State() State {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.state
}

func (svc *fakeService) IsConnected() bool {
	return svc.State() == Connected
}

func (svc *fakeService) Close() error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.state = Closed
	return nil
}

func (svc *fakeService) Sent() [][]byte {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return append([][]byte{}, svc.messages...)
}
