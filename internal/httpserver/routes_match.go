// internal/httpserver/routes_match.go
//
// Handlers for the four view intents plus state/stats reads.
//   - POST /match/new      → select-mode: start a daily or practice match
//   - GET  /match          → current match snapshot
//   - POST /match/guess    → submit-guess: revealed prefix + typed suffix
//   - POST /match/restart  → request-restart: abandon and start fresh
//   - GET  /match/share    → request-share: formatted share text
//   - GET  /stats          → lifetime stats, streak risk, milestone
//
// The daily replay guard lives here: once a finished snapshot for today's
// puzzle exists, /match/new (and restart) in daily mode returns the stored
// result instead of a fresh match.

package httpserver

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/skyblue-will/letterdrop/internal/game"
	"github.com/skyblue-will/letterdrop/internal/share"
	"github.com/skyblue-will/letterdrop/internal/stats"
	"github.com/skyblue-will/letterdrop/internal/words"
)

// practicePuzzleCap bounds the random practice puzzle identifier.
const practicePuzzleCap = 10000

// newMatchReq is the payload for /match/new and /match/restart.
type newMatchReq struct {
	Mode game.Mode `json:"mode"`
}

// matchRes wraps a state snapshot; AlreadyPlayed marks a daily replay refusal.
type matchRes struct {
	State         game.MatchState `json:"state"`
	AlreadyPlayed bool            `json:"alreadyPlayed,omitempty"`
}

// handleNewMatch starts a match in the requested mode.
func (s *Server) handleNewMatch(w http.ResponseWriter, r *http.Request) {
	var req newMatchReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	if !req.Mode.Valid() {
		http.Error(w, `{"error":"invalid_mode"}`, http.StatusBadRequest)
		return
	}
	player := s.ensurePlayerID(w, r)
	s.startMatch(w, r, player, req.Mode)
}

// handleRestart abandons any live match and starts a fresh one. Defaults to
// practice (the "play again" button); daily restarts go through the same
// replay guard as /match/new.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	var req newMatchReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Mode == "" {
		req.Mode = game.ModePractice
	}
	if !req.Mode.Valid() {
		http.Error(w, `{"error":"invalid_mode"}`, http.StatusBadRequest)
		return
	}
	player := s.ensurePlayerID(w, r)
	s.startMatch(w, r, player, req.Mode)
}

// startMatch enforces the daily replay guard, tears down any previous match
// for the player, and spins up a new orchestrator.
func (s *Server) startMatch(w http.ResponseWriter, r *http.Request, player string, mode game.Mode) {
	var state game.MatchState
	if mode == game.ModeDaily {
		n := words.PuzzleNumber(time.Now())
		if saved, ok := s.persist.LoadDailyState(r.Context(), player, n); ok && saved.Status == game.MatchFinished {
			writeJSON(w, matchRes{State: saved, AlreadyPlayed: true})
			return
		}
		state = game.NewMatchState(mode, n, words.WordsForPuzzle(n))
	} else {
		answers := make([]string, 0, game.RoundsPerMatch)
		for i := 0; i < game.RoundsPerMatch; i++ {
			answers = append(answers, words.RandomWord())
		}
		state = game.NewMatchState(mode, rand.Intn(practicePuzzleCap), answers)
	}

	m := game.NewMatch(state, s.cfg.Game,
		func(snap game.MatchState) { s.broadcast(player, snap) },
		func(final game.MatchState) { s.finishMatch(player, final) },
	)

	s.mu.Lock()
	if prev, ok := s.matches[player]; ok {
		prev.Stop()
	}
	s.matches[player] = m
	s.mu.Unlock()

	log.Info().Str("player", player).Str("mode", string(mode)).
		Int("puzzle", state.PuzzleNumber).Msg("match started")
	m.Start()
	writeJSON(w, matchRes{State: m.State()})
}

// handleGetMatch returns the live match snapshot, or the finished daily
// result when no match is live but today's puzzle was completed.
func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	player := s.ensurePlayerID(w, r)
	if m, ok := s.liveMatch(player); ok {
		writeJSON(w, matchRes{State: m.State()})
		return
	}
	n := words.PuzzleNumber(time.Now())
	if saved, ok := s.persist.LoadDailyState(r.Context(), player, n); ok && saved.Status == game.MatchFinished {
		writeJSON(w, matchRes{State: saved, AlreadyPlayed: true})
		return
	}
	http.Error(w, `{"error":"no_match"}`, http.StatusNotFound)
}

// guessReq/guessRes are the payloads for /match/guess.
type guessReq struct {
	Suffix string `json:"suffix"`
}
type guessRes struct {
	Accepted bool            `json:"accepted"`
	State    game.MatchState `json:"state"`
}

// handleGuess submits the typed suffix to the live match. An invalid
// submission is reported as accepted=false, never as an error status.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	player := s.ensurePlayerID(w, r)
	m, ok := s.liveMatch(player)
	if !ok {
		http.Error(w, `{"error":"no_match"}`, http.StatusNotFound)
		return
	}
	accepted := m.SubmitGuess(req.Suffix)
	writeJSON(w, guessRes{Accepted: accepted, State: m.State()})
}

// shareRes is the payload for /match/share.
type shareRes struct {
	Text string `json:"text"`
}

// handleShare renders the share text for the finished match. The client
// decides between native share and clipboard; share failures there never
// reach this server.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	player := s.ensurePlayerID(w, r)

	var st game.MatchState
	if m, ok := s.liveMatch(player); ok {
		st = m.State()
	} else {
		n := words.PuzzleNumber(time.Now())
		saved, ok := s.persist.LoadDailyState(r.Context(), player, n)
		if !ok {
			http.Error(w, `{"error":"no_match"}`, http.StatusNotFound)
			return
		}
		st = saved
	}
	if st.Status != game.MatchFinished {
		http.Error(w, `{"error":"match_not_finished"}`, http.StatusConflict)
		return
	}

	ps := s.persist.LoadStats(r.Context(), player)
	writeJSON(w, shareRes{Text: share.Text(st.TotalScore, st.PuzzleNumber, st.Rounds, ps.CurrentStreak)})
}

// statsRes decorates raw stats with derived streak fields.
type statsRes struct {
	Stats         stats.Stats `json:"stats"`
	StreakAtRisk  bool        `json:"streakAtRisk"`
	Milestone     string      `json:"milestone,omitempty"`
	DailyPuzzle   int         `json:"dailyPuzzle"`
	DailyComplete bool        `json:"dailyComplete"`
}

// handleStats returns lifetime stats plus daily status for the mode screen.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	player := s.ensurePlayerID(w, r)
	now := time.Now()
	ps := s.persist.LoadStats(r.Context(), player)

	res := statsRes{
		Stats:        ps,
		StreakAtRisk: stats.StreakAtRisk(ps, now),
		DailyPuzzle:  words.PuzzleNumber(now),
	}
	if msg, ok := stats.Milestone(ps.CurrentStreak); ok {
		res.Milestone = msg
	}
	if saved, ok := s.persist.LoadDailyState(r.Context(), player, res.DailyPuzzle); ok {
		res.DailyComplete = saved.Status == game.MatchFinished
	}
	writeJSON(w, res)
}

// liveMatch fetches the player's live orchestrator, if any.
func (s *Server) liveMatch(player string) (*game.Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[player]
	return m, ok
}

// finishMatch is the orchestrator's OnFinish hook: the only place match
// completion touches persistence. Best-effort by construction — the adapter
// logs and swallows failures.
func (s *Server) finishMatch(player string, final game.MatchState) {
	ctx := context.Background()
	s.persist.SaveDailyState(ctx, player, final) // no-op for practice

	ps := s.persist.LoadStats(ctx, player)
	updated := stats.Update(ps, final.TotalScore, final.PuzzleNumber, final.Mode, final.Rounds, time.Now())
	s.persist.SaveStats(ctx, player, updated)

	log.Info().Str("player", player).Str("mode", string(final.Mode)).
		Int("score", final.TotalScore).Int("streak", updated.CurrentStreak).
		Msg("match finished")
}

// writeJSON encodes v; encode failures are logged, the status is already sent.
func writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}
