package realtime

import (
	"context"
	"sync"
	"time"

	apperrors "convodesk/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ===========================================================================
// Subscription Manager
// Shares one transport subscription per account across any number of
// concurrent viewers. Attaching to an account with a live channel reuses
// it; the last detach arms a grace timer instead of tearing down
// immediately, so rapid remount churn does not thrash the transport.
//
// Channel lifecycle per account: absent -> connecting -> active ->
// (last detach) draining -> absent.
// ===========================================================================

const (
	defaultGracePeriod    = 3 * time.Second
	defaultConnectTimeout = 5 * time.Second
)

type channelState int

const (
	stateConnecting channelState = iota
	stateActive
	stateDraining
)

// subscriber keeps callbacks in registration order so every event reaches
// each viewer exactly once, in transport order.
type subscriber struct {
	id int
	fn func(Event)
}

type accountChannel struct {
	accountID   uuid.UUID
	state       channelState
	sub         Subscription
	refs        int
	nextID      int
	subscribers []subscriber
	drainTimer  *time.Timer

	// ready is closed once connecting finished; connectErr is set first
	// when it failed
	ready      chan struct{}
	connectErr error

	// done is closed when the channel is torn down or its transport dies
	done   chan struct{}
	closed bool
}

// Handle identifies one viewer's attachment to an account channel.
type Handle struct {
	accountID uuid.UUID
	id        int
	ch        *accountChannel
}

// AccountID returns the account this handle is attached to.
func (h *Handle) AccountID() uuid.UUID {
	return h.accountID
}

// Done is closed when the underlying channel is gone, whether through
// orderly teardown or transport failure. Viewers re-attach to recover;
// the manager never reuses a dead handle.
func (h *Handle) Done() <-chan struct{} {
	return h.ch.done
}

// Manager owns the per-account channel registry. Construct one per process
// (or per test); there is deliberately no package-level instance.
type Manager struct {
	transport      Transport
	log            *zap.Logger
	gracePeriod    time.Duration
	connectTimeout time.Duration

	mu       sync.Mutex
	channels map[uuid.UUID]*accountChannel
}

// NewManager builds a manager around the given transport. gracePeriod
// bounds how long an unwatched channel survives before teardown; zero
// selects the default.
func NewManager(transport Transport, gracePeriod time.Duration, log *zap.Logger) *Manager {
	if gracePeriod <= 0 {
		gracePeriod = defaultGracePeriod
	}
	return &Manager{
		transport:      transport,
		log:            log,
		gracePeriod:    gracePeriod,
		connectTimeout: defaultConnectTimeout,
		channels:       make(map[uuid.UUID]*accountChannel),
	}
}

// Attach registers onChange for the account's change events and returns a
// handle for detaching. The first viewer of an account opens the transport
// subscription; later viewers share it. Attach blocks until the transport
// reports a connected state, bounded by a connect timeout.
func (m *Manager) Attach(ctx context.Context, accountID uuid.UUID, onChange func(Event)) (*Handle, error) {
	m.mu.Lock()
	if ch, ok := m.channels[accountID]; ok {
		// Reuse the live channel; a pending drain is cancelled.
		if ch.drainTimer != nil {
			ch.drainTimer.Stop()
			ch.drainTimer = nil
		}
		if ch.state == stateDraining {
			ch.state = stateActive
		}
		handle := m.register(ch, onChange)
		ready := ch.ready
		m.mu.Unlock()

		select {
		case <-ready:
		case <-ctx.Done():
			m.Detach(handle)
			return nil, ctx.Err()
		}
		if err := ch.connectErr; err != nil {
			return nil, err
		}
		return handle, nil
	}

	ch := &accountChannel{
		accountID: accountID,
		state:     stateConnecting,
		ready:     make(chan struct{}),
		done:      make(chan struct{}),
	}
	m.channels[accountID] = ch
	handle := m.register(ch, onChange)
	m.mu.Unlock()

	// Connect outside the registry lock so other accounts do not wait on
	// this account's transport.
	connectCtx, cancel := context.WithTimeout(ctx, m.connectTimeout)
	sub, err := m.transport.Subscribe(connectCtx, accountID)
	cancel()

	m.mu.Lock()
	if err != nil {
		ch.connectErr = apperrors.New(apperrors.ErrChannelFailure,
			"could not subscribe to account updates")
		close(ch.ready)
		m.remove(ch)
		m.mu.Unlock()
		m.log.Warn("realtime subscribe failed",
			zap.String("account_id", accountID.String()),
			zap.Error(err),
		)
		return nil, ch.connectErr
	}
	if ch.closed {
		// Every viewer detached while we were connecting; a drain timer
		// already tore the channel down. Do not leak the subscription.
		close(ch.ready)
		m.mu.Unlock()
		_ = sub.Close()
		return nil, apperrors.New(apperrors.ErrChannelFailure,
			"subscription cancelled before it connected")
	}
	ch.sub = sub
	ch.state = stateActive
	close(ch.ready)
	m.mu.Unlock()

	go m.dispatch(ch, sub)

	m.log.Debug("realtime channel opened",
		zap.String("account_id", accountID.String()),
	)
	return handle, nil
}

// Detach removes the viewer behind the handle. Safe to call multiple
// times. When the last viewer leaves, the channel drains for the grace
// period before the transport is torn down.
func (m *Manager) Detach(handle *Handle) {
	if handle == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := handle.ch
	if ch.closed || m.channels[handle.accountID] != ch {
		return
	}

	found := false
	for i, s := range ch.subscribers {
		if s.id == handle.id {
			ch.subscribers = append(ch.subscribers[:i], ch.subscribers[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		// Already detached.
		return
	}

	ch.refs--
	if ch.refs > 0 {
		return
	}

	ch.state = stateDraining
	ch.drainTimer = time.AfterFunc(m.gracePeriod, func() {
		m.expire(ch)
	})
}

// ActiveChannels returns the number of accounts with a registered channel,
// draining ones included.
func (m *Manager) ActiveChannels() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.channels)
}

// Close tears down every channel, attached viewers included. Used on
// shutdown and in tests.
func (m *Manager) Close() {
	m.mu.Lock()
	subs := make([]Subscription, 0, len(m.channels))
	for _, ch := range m.channels {
		if ch.sub != nil {
			subs = append(subs, ch.sub)
		}
		m.remove(ch)
	}
	m.mu.Unlock()

	for _, sub := range subs {
		_ = sub.Close()
	}
}

// register adds a subscriber under the lock and returns its handle.
func (m *Manager) register(ch *accountChannel, onChange func(Event)) *Handle {
	id := ch.nextID
	ch.nextID++
	ch.subscribers = append(ch.subscribers, subscriber{id: id, fn: onChange})
	ch.refs++
	return &Handle{accountID: ch.accountID, id: id, ch: ch}
}

// remove drops the channel from the registry and closes done. Caller holds
// the lock; the subscription, if any, is closed by the caller or by
// dispatch observing the closure.
func (m *Manager) remove(ch *accountChannel) {
	if ch.closed {
		return
	}
	ch.closed = true
	if ch.drainTimer != nil {
		ch.drainTimer.Stop()
		ch.drainTimer = nil
	}
	delete(m.channels, ch.accountID)
	close(ch.done)
}

// expire completes a drain: if the channel is still unwatched, tear the
// transport down. A re-attach during the grace period has either stopped
// the timer or reset refs, so the check here makes teardown happen exactly
// once.
func (m *Manager) expire(ch *accountChannel) {
	m.mu.Lock()
	if ch.closed || ch.refs > 0 || m.channels[ch.accountID] != ch {
		m.mu.Unlock()
		return
	}
	m.remove(ch)
	sub := ch.sub
	m.mu.Unlock()

	if sub != nil {
		_ = sub.Close()
	}
	m.log.Debug("realtime channel torn down",
		zap.String("account_id", ch.accountID.String()),
	)
}

// dispatch fans events out to subscribers until the subscription dies.
// One goroutine per channel keeps delivery in transport order; callbacks
// run outside the lock so slow viewers of one account cannot block
// attach/detach on another.
func (m *Manager) dispatch(ch *accountChannel, sub Subscription) {
	for event := range sub.Events() {
		m.mu.Lock()
		fns := make([]func(Event), len(ch.subscribers))
		for i, s := range ch.subscribers {
			fns[i] = s.fn
		}
		m.mu.Unlock()

		for _, fn := range fns {
			fn(event)
		}
	}

	// The events channel closed underneath us: either an orderly teardown
	// (channel already removed) or a transport failure. On failure the
	// channel is removed so the next attach builds a fresh one, and done
	// tells current viewers to re-attach.
	m.mu.Lock()
	if !ch.closed && m.channels[ch.accountID] == ch {
		m.remove(ch)
		m.mu.Unlock()
		m.log.Warn("realtime channel lost",
			zap.String("account_id", ch.accountID.String()),
		)
		return
	}
	m.mu.Unlock()
}
