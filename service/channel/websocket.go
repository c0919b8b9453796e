package channel

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/khaledhikmat/vs-robot-eye/model"
	"github.com/khaledhikmat/vs-robot-eye/service/config"
	"github.com/khaledhikmat/vs-robot-eye/service/lgr"
	"golang.org/x/xerrors"
)

type websocketService struct {
	uri    string
	dialer *websocket.Dialer

	state atomic.Int32

	// Guards conn writes and close. Reads happen on the listener goroutine only.
	mu   sync.Mutex
	conn *websocket.Conn
}

func NewWebsocket(cfgSvc config.IService) IService {
	return &websocketService{
		uri: cfgSvc.GetChannelURI(),
		dialer: &websocket.Dialer{
			Proxy:             http.ProxyFromEnvironment,
			EnableCompression: true,
		},
	}
}

// Connect makes exactly one dial attempt. A failed attempt leaves the service closed.
func (svc *websocketService) Connect(ctx context.Context) error {
	if !svc.state.CompareAndSwap(int32(Disconnected), int32(Connecting)) {
		return xerrors.Errorf("connect called in state %s: %w", svc.State(), model.ErrChannel)
	}

	conn, _, err := svc.dialer.DialContext(ctx, svc.uri, nil)
	if err != nil {
		svc.state.Store(int32(Closed))
		return xerrors.Errorf("failed to connect to %s: %v: %w", svc.uri, err, model.ErrChannel)
	}

	svc.mu.Lock()
	svc.conn = conn
	svc.mu.Unlock()
	svc.state.Store(int32(Connected))

	lgr.Logger.InfoContext(ctx, "channel connected", slog.String("uri", svc.uri))
	return nil
}

// Listen reads until the socket fails, a message cannot be parsed or ctx is
// cancelled. Cancellation closes the socket and returns nil.
func (svc *websocketService) Listen(ctx context.Context, fn Handler) error {
	svc.mu.Lock()
	conn := svc.conn
	svc.mu.Unlock()

	if conn == nil || !svc.IsConnected() {
		return xerrors.Errorf("listen: %w", model.ErrNotConnected)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = svc.Close()
		case <-done:
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			_ = svc.Close()
			return xerrors.Errorf("reading from %s: %v: %w", svc.uri, err, model.ErrChannel)
		}

		if string(msg) == KeepAlive {
			continue
		}

		ev, err := Decode(msg)
		if err != nil {
			_ = svc.Close()
			return err
		}

		fn(ctx, ev)
	}
}

func (svc *websocketService) Send(msg []byte) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.conn == nil || !svc.IsConnected() {
		return model.ErrNotConnected
	}

	if err := svc.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		return xerrors.Errorf("writing to %s: %v: %w", svc.uri, err, model.ErrChannel)
	}
	return nil
}

func (svc *websocketService) State() State {
	return State(svc.state.Load())
}

func (svc *websocketService) IsConnected() bool {
	return svc.State() == Connected
}

// Close is idempotent. No close handshake is attempted.
func (svc *websocketService) Close() error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	svc.state.Store(int32(Closed))
	if svc.conn == nil {
		return nil
	}

	err := svc.conn.Close()
	svc.conn = nil
	return err
}
