// Package watch implements the optional live-progress dashboard (spec.md
// §9 design note: off by default, enabled via options.json's "watch" flag).
// It streams Snapshot updates -- DP cache fill progress and the current
// best candidate -- to a single browser tab over a websocket, in the same
// shape the teacher's fastview publisher uses for its RL training views.
package watch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"
)

const (
	// writeWait is the time allowed to write a message to the peer.
	writeWait = 1 * time.Second

	// pubResolution caps how often a Snapshot is actually pushed to the
	// browser; snapshots arriving faster than this are dropped, since each
	// one fully describes current progress (idempotent updates).
	pubResolution  = time.Millisecond * 250
	pingResolution = time.Millisecond * 500
	pongWait       = pingResolution * 4
)

var upgrader = websocket.Upgrader{}

// client publishes a stream of Snapshot values to one connected browser.
type client struct {
	updates <-chan Snapshot
	ws      *websock
	rootCtx context.Context
}

// newClient upgrades the request to a websocket and returns a publisher
// reading from updates.
func newClient(updates <-chan Snapshot, w http.ResponseWriter, r *http.Request) (*client, error) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, err
	}
	return &client{
		updates: updates,
		ws:      newWebsock(ws),
		rootCtx: r.Context(),
	}, nil
}

// sync runs the read, ping-pong and publish loops until the peer
// disconnects or an unrecoverable error occurs.
func (cli *client) sync() error {
	group, groupCtx := errgroup.WithContext(cli.rootCtx)
	group.Go(func() error { return cli.readMessages(groupCtx) })
	group.Go(func() error { return cli.pingPong(groupCtx) })
	group.Go(func() error { return cli.publish(groupCtx) })
	return group.Wait()
}

// ErrPongDeadlineExceeded is returned by pingPong when the browser stops
// answering pings, indicating it has disappeared.
var ErrPongDeadlineExceeded = errors.New("watch: client disconnect, pong deadline exceeded")

func (cli *client) pingPong(ctx context.Context) error {
	pong := make(chan struct{})
	defer close(pong)
	cli.ws.Conn().SetPongHandler(func(_ string) error {
		pong <- struct{}{}
		return nil
	})

	pinger := channerics.NewTicker(ctx.Done(), pingResolution)
	lastPong := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pinger:
			if time.Since(lastPong) > pongWait {
				return ErrPongDeadlineExceeded
			}
			if err := cli.ping(ctx); err != nil {
				return err
			}
		case <-pong:
			lastPong = time.Now()
		}
	}
}

func (cli *client) ping(ctx context.Context) error {
	return cli.ws.Write(ctx, func(ws *websocket.Conn) (err error) {
		if err = ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
			if isError(err) {
				err = fmt.Errorf("watch: ping failed: %w", err)
			}
		}
		return
	})
}

// readMessages never expects client messages, but a read call must run so
// the gorilla/websocket library's ping/pong control handlers fire.
func (cli *client) readMessages(ctx context.Context) error {
	for {
		err := cli.ws.Read(ctx, func(ws *websocket.Conn) (readErr error) {
			_, _, readErr = ws.ReadMessage()
			return
		})
		if err != nil {
			return err
		}
	}
}

func (cli *client) publish(ctx context.Context) error {
	lastSync := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-cli.updates:
			if !ok {
				return nil
			}
			if time.Since(lastSync) < pubResolution {
				break
			}
			lastSync = time.Now()

			err := cli.ws.Write(ctx, func(ws *websocket.Conn) (writeErr error) {
				if writeErr = ws.SetWriteDeadline(time.Now().Add(writeWait)); writeErr != nil {
					return fmt.Errorf("watch: failed to set deadline: %w", writeErr)
				}
				if writeErr = ws.WriteJSON(snap); writeErr != nil && isError(writeErr) {
					return fmt.Errorf("watch: publish failed: %w", writeErr)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
	}
}

func isError(err error) bool {
	return err != nil && websocket.IsUnexpectedCloseError(
		err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway)
}

func isClosure(err error) bool {
	return err != nil && websocket.IsCloseError(
		err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway)
}

// ErrSockCongestion indicates too many waiters on the socket for a given op.
var ErrSockCongestion = errors.New("watch: socket operation congested")

const (
	readDeadline     = time.Second
	writeDeadline    = time.Second
	closeGracePeriod = 2 * time.Second
)

// websock serializes the single concurrent reader and writer gorilla's
// websocket.Conn requires.
type websock struct {
	readSem  chan struct{}
	writeSem chan struct{}
	ws       *websocket.Conn
}

func newWebsock(ws *websocket.Conn) *websock {
	return &websock{
		readSem:  make(chan struct{}, 1),
		writeSem: make(chan struct{}, 1),
		ws:       ws,
	}
}

// Conn returns the underlying connection; only safe for non-concurrent
// setup such as registering handlers.
func (sock *websock) Conn() *websocket.Conn { return sock.ws }

func (sock *websock) close() {
	sock.readSem <- struct{}{}
	sock.writeSem <- struct{}{}

	_ = sock.ws.SetWriteDeadline(time.Now().Add(writeWait))
	_ = sock.ws.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	time.Sleep(closeGracePeriod)
	sock.ws.Close()
}

func (sock *websock) Read(ctx context.Context, readFn func(*websocket.Conn) error) error {
	select {
	case <-ctx.Done():
		return nil
	case sock.readSem <- struct{}{}:
		defer func() { <-sock.readSem }()
		return readFn(sock.ws)
	case <-time.After(readDeadline):
		return ErrSockCongestion
	}
}

func (sock *websock) Write(ctx context.Context, writeFn func(*websocket.Conn) error) error {
	select {
	case <-ctx.Done():
		return nil
	case sock.writeSem <- struct{}{}:
		defer func() { <-sock.writeSem }()
		return writeFn(sock.ws)
	case <-time.After(writeDeadline):
		return ErrSockCongestion
	}
}
