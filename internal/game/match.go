// internal/game/match.go
//
// Match orchestrator: owns the live MatchState snapshot and the two timers
// that drive it (reveal tick, post-resolution settle delay). Each Match
// instance owns its own timer handles; there are no package-level timers.
//
// Concurrency model:
//   - All transitions happen under m.mu and replace the snapshot wholesale.
//   - At most one reveal timer OR one settle timer is pending per match,
//     never both for the same round: resolution cancels the pending tick.
//   - Timer callbacks carry the generation they were scheduled under; any
//     transition bumps the generation, so a late callback is a no-op. This
//     prevents a tick that fires after resolution from touching a terminal
//     round by construction.
//   - OnChange/OnFinish are invoked outside the lock with an isolated copy.

package game

import (
	"sync"
	"time"
)

const (
	// DefaultRevealInterval is the pace at which letters appear.
	DefaultRevealInterval = 3500 * time.Millisecond
	// DefaultSettleDelay lets a round outcome be shown before advancing.
	DefaultSettleDelay = 1500 * time.Millisecond
)

// Config holds the orchestrator timings. Zero values fall back to defaults;
// tests shrink them to keep runs fast.
type Config struct {
	RevealInterval time.Duration
	SettleDelay    time.Duration
}

func (c Config) withDefaults() Config {
	if c.RevealInterval <= 0 {
		c.RevealInterval = DefaultRevealInterval
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = DefaultSettleDelay
	}
	return c
}

// Match drives one five-round match from start to finish.
type Match struct {
	mu    sync.Mutex
	state MatchState
	cfg   Config

	gen         int // bumped on every transition; stale timer callbacks bail out
	revealTimer *time.Timer
	settleTimer *time.Timer
	stopped     bool

	onChange func(MatchState) // every transition, isolated copy
	onFinish func(MatchState) // once, when the match finalizes
}

// NewMatch wraps a starting state in an orchestrator. Callbacks may be nil.
func NewMatch(state MatchState, cfg Config, onChange, onFinish func(MatchState)) *Match {
	return &Match{
		state:    state,
		cfg:      cfg.withDefaults(),
		onChange: onChange,
		onFinish: onFinish,
	}
}

// Start schedules the first reveal tick and pushes the initial snapshot.
func (m *Match) Start() {
	m.mu.Lock()
	if m.stopped || m.state.Status != MatchPlaying {
		m.mu.Unlock()
		return
	}
	m.scheduleReveal()
	snap := m.state.Clone()
	m.mu.Unlock()
	m.notify(snap)
}

// Stop tears the match down: all pending timers are cancelled and no further
// transitions are applied. Used on abandonment and restart.
func (m *Match) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	m.gen++
	m.cancelTimersLocked()
}

// State returns an isolated copy of the current snapshot.
func (m *Match) State() MatchState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// SubmitGuess applies the submit-guess intent: suffix is the player-typed
// tail after the revealed prefix. Returns false for rejected submissions
// (wrong length, round not revealing, match over), which change nothing —
// rejection is a no-op, not an error.
func (m *Match) SubmitGuess(suffix string) bool {
	m.mu.Lock()
	if m.stopped || m.state.Status != MatchPlaying {
		m.mu.Unlock()
		return false
	}
	cur := m.state.CurrentRound
	next, ok := resolveGuess(m.state.Rounds[cur], suffix)
	if !ok {
		m.mu.Unlock()
		return false
	}

	// Resolution cancels the pending reveal tick before anything else, so a
	// tick can never race the outcome.
	m.gen++
	m.cancelTimersLocked()

	st := m.state.Clone()
	st.Rounds[cur] = next
	m.state = st
	m.scheduleSettle()

	snap := m.state.Clone()
	m.mu.Unlock()
	m.notify(snap)
	return true
}

// scheduleReveal arms the reveal timer for the active round. Caller holds m.mu.
func (m *Match) scheduleReveal() {
	gen := m.gen
	m.revealTimer = time.AfterFunc(m.cfg.RevealInterval, func() { m.fireReveal(gen) })
}

// scheduleSettle arms the settle timer after a round resolved. Caller holds m.mu.
func (m *Match) scheduleSettle() {
	gen := m.gen
	m.settleTimer = time.AfterFunc(m.cfg.SettleDelay, func() { m.fireSettle(gen) })
}

// cancelTimersLocked stops any pending timers. Caller holds m.mu.
func (m *Match) cancelTimersLocked() {
	if m.revealTimer != nil {
		m.revealTimer.Stop()
		m.revealTimer = nil
	}
	if m.settleTimer != nil {
		m.settleTimer.Stop()
		m.settleTimer = nil
	}
}

// fireReveal is the reveal-tick callback. Stale generations bail out.
func (m *Match) fireReveal(gen int) {
	m.mu.Lock()
	if m.stopped || gen != m.gen || m.state.Status != MatchPlaying {
		m.mu.Unlock()
		return
	}
	cur := m.state.CurrentRound
	round := m.state.Rounds[cur]
	if round.Status != StatusRevealing {
		m.mu.Unlock()
		return
	}

	next := tickRound(round)
	m.gen++
	st := m.state.Clone()
	st.Rounds[cur] = next
	m.state = st

	if next.Status.Terminal() {
		m.scheduleSettle()
	} else {
		m.scheduleReveal()
	}

	snap := m.state.Clone()
	m.mu.Unlock()
	m.notify(snap)
}

// fireSettle advances past a resolved round: either activates the next round
// or finalizes the match.
func (m *Match) fireSettle(gen int) {
	m.mu.Lock()
	if m.stopped || gen != m.gen || m.state.Status != MatchPlaying {
		m.mu.Unlock()
		return
	}
	cur := m.state.CurrentRound
	if !m.state.Rounds[cur].Status.Terminal() {
		m.mu.Unlock()
		return
	}

	m.gen++
	if cur >= RoundsPerMatch-1 {
		m.state = finalizeMatch(m.state.Clone())
		final := m.state.Clone()
		m.mu.Unlock()
		m.notify(final)
		if m.onFinish != nil {
			m.onFinish(final)
		}
		return
	}

	st := m.state.Clone()
	st.CurrentRound = cur + 1
	st.Rounds[st.CurrentRound] = activateRound(st.Rounds[st.CurrentRound])
	m.state = st
	m.scheduleReveal()

	snap := m.state.Clone()
	m.mu.Unlock()
	m.notify(snap)
}

func (m *Match) notify(snap MatchState) {
	if m.onChange != nil {
		m.onChange(snap)
	}
}
