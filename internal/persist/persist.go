// internal/persist/persist.go
//
// Persistence adapter: serializes lifetime stats and the daily match
// snapshot as JSON blobs in the KV store, namespaced per player.
//
// Failure policy:
//   - Reads degrade to defaults / "no saved match"; corrupt data is treated
//     as absent. Nothing here raises to the caller's game flow.
//   - Writes are best-effort write-through; failures are logged at warn and
//     swallowed, so a broken disk only skips the persisted effect.

package persist

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/skyblue-will/letterdrop/internal/game"
	"github.com/skyblue-will/letterdrop/internal/stats"
	"github.com/skyblue-will/letterdrop/internal/store"
)

const (
	statsKeyPrefix = "letterdrop:stats:"
	dailyKeyPrefix = "letterdrop:daily:"
)

// Adapter reads and writes player state through a KV store.
type Adapter struct {
	kv store.KV
}

// New wraps a KV store in an Adapter.
func New(kv store.KV) *Adapter {
	return &Adapter{kv: kv}
}

// LoadStats returns the player's lifetime stats. Missing or corrupt data
// falls back to defaults; partial blobs are merged over defaults (fields the
// blob omits keep their default values).
func (a *Adapter) LoadStats(ctx context.Context, playerID string) stats.Stats {
	out := stats.Default()
	raw, found, err := a.kv.Get(ctx, statsKeyPrefix+playerID)
	if err != nil {
		log.Warn().Err(err).Str("player", playerID).Msg("load stats")
		return out
	}
	if !found {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Warn().Err(err).Str("player", playerID).Msg("decode stats, using defaults")
		return stats.Default()
	}
	if out.ScoreHistory == nil {
		out.ScoreHistory = []int{}
	}
	return out
}

// SaveStats writes the stats blob. Best-effort: failures are logged only.
func (a *Adapter) SaveStats(ctx context.Context, playerID string, s stats.Stats) {
	raw, err := json.Marshal(s)
	if err != nil {
		log.Warn().Err(err).Str("player", playerID).Msg("encode stats")
		return
	}
	if err := a.kv.Set(ctx, statsKeyPrefix+playerID, raw); err != nil {
		log.Warn().Err(err).Str("player", playerID).Msg("save stats")
	}
}

// LoadDailyState returns the stored daily match only if its embedded puzzle
// number matches the requested one. A stale snapshot from a previous day is
// reported as absent.
func (a *Adapter) LoadDailyState(ctx context.Context, playerID string, puzzleNumber int) (game.MatchState, bool) {
	var st game.MatchState
	raw, found, err := a.kv.Get(ctx, dailyKeyPrefix+playerID)
	if err != nil {
		log.Warn().Err(err).Str("player", playerID).Msg("load daily state")
		return st, false
	}
	if !found {
		return st, false
	}
	if err := json.Unmarshal(raw, &st); err != nil {
		log.Warn().Err(err).Str("player", playerID).Msg("decode daily state")
		return game.MatchState{}, false
	}
	if st.PuzzleNumber != puzzleNumber {
		return game.MatchState{}, false
	}
	return st, true
}

// SaveDailyState persists the snapshot, but only for daily-mode matches:
// practice games are never written (the key is overwritten once per day).
func (a *Adapter) SaveDailyState(ctx context.Context, playerID string, st game.MatchState) {
	if st.Mode != game.ModeDaily {
		return
	}
	raw, err := json.Marshal(st)
	if err != nil {
		log.Warn().Err(err).Str("player", playerID).Msg("encode daily state")
		return
	}
	if err := a.kv.Set(ctx, dailyKeyPrefix+playerID, raw); err != nil {
		log.Warn().Err(err).Str("player", playerID).Msg("save daily state")
	}
}
