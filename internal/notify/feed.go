package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// FeedState is the lifecycle position of one push feed connection.
type FeedState int

// Feed lifecycle. Closed is terminal: a feed that loses its connection
// stays closed and is never redialed.
const (
	FeedUnopened FeedState = iota
	FeedConnecting
	FeedOpen
	FeedClosed
)

func (s FeedState) String() string {
	switch s {
	case FeedUnopened:
		return "unopened"
	case FeedConnecting:
		return "connecting"
	case FeedOpen:
		return "open"
	case FeedClosed:
		return "closed"
	}
	return "unknown"
}

// Feed is one named websocket subscription to the backend notification
// service. Each feed owns its connection and lifecycle state; events are
// delivered to the handler in arrival order.
type Feed struct {
	name      string
	url       string
	sessionID string
	origin    string
	logger    *slog.Logger
	handler   func(Event)
	dialer    *websocket.Dialer

	mu    sync.Mutex
	state FeedState
	conn  *websocket.Conn
}

// NewFeed builds an unopened feed. baseURL is the ws:// root of the
// notification service; name doubles as the path segment.
func NewFeed(logger *slog.Logger, baseURL, name, sessionID, origin string, handler func(Event)) *Feed {
	return &Feed{
		name:      name,
		url:       fmt.Sprintf("%s/%s?session_id=%s", baseURL, name, sessionID),
		sessionID: sessionID,
		origin:    origin,
		logger:    logger.With("feed", name),
		handler:   handler,
		dialer:    websocket.DefaultDialer,
		state:     FeedUnopened,
	}
}

// Name returns the feed's path segment.
func (f *Feed) Name() string { return f.name }

// State reports the feed's current lifecycle position.
func (f *Feed) State() FeedState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Open dials the feed and starts the read loop. It is an error to open a
// feed twice; a closed feed cannot be reopened.
func (f *Feed) Open(ctx context.Context) error {
	f.mu.Lock()
	if f.state != FeedUnopened {
		state := f.state
		f.mu.Unlock()
		return fmt.Errorf("feed %s: open from state %s", f.name, state)
	}
	f.state = FeedConnecting
	f.mu.Unlock()

	header := http.Header{}
	if f.origin != "" {
		header.Set("Origin", f.origin)
	}
	conn, _, err := f.dialer.DialContext(ctx, f.url, header)
	if err != nil {
		f.transition(FeedClosed)
		return fmt.Errorf("feed %s: dial: %w", f.name, err)
	}

	f.mu.Lock()
	f.conn = conn
	f.state = FeedOpen
	f.mu.Unlock()
	f.logger.Info("feed open", "session_id", f.sessionID)

	go f.readLoop(ctx, conn)
	return nil
}

// Close tears the connection down and moves the feed to its terminal state.
func (f *Feed) Close() {
	f.mu.Lock()
	conn := f.conn
	f.conn = nil
	f.state = FeedClosed
	f.mu.Unlock()
	if conn != nil {
		_ = conn.Close()
	}
}

func (f *Feed) transition(state FeedState) {
	f.mu.Lock()
	f.state = state
	f.mu.Unlock()
}

func (f *Feed) readLoop(ctx context.Context, conn *websocket.Conn) {
	defer f.Close()
	go func() {
		<-ctx.Done()
		f.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				f.logger.Warn("feed connection lost", "error", err)
			}
			return
		}
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			f.logger.Warn("dropping malformed event", "error", err)
			continue
		}
		f.handler(ev)
	}
}
