// internal/game/types.go
//
// Core type definitions for the Letterdrop game engine.
// Defines:
//   - Mode: daily vs practice play.
//   - RoundStatus: lifecycle of a single round.
//   - RoundState: state for one five-letter round.
//   - MatchState: state for a five-round match.

package game

// Mode selects how a match's words are chosen.
// Possible values:
//   - "daily":    deterministic words for today's puzzle number.
//   - "practice": random words, playable any number of times.
type Mode string

const (
	ModeDaily    Mode = "daily"
	ModePractice Mode = "practice"
)

// Valid reports whether m is one of the two known modes.
func (m Mode) Valid() bool { return m == ModeDaily || m == ModePractice }

// RoundStatus is the lifecycle state of a single round.
// Possible values:
//   - "guessing":  round not yet reached (pre-activation placeholder).
//   - "revealing": active round, letters ticking.
//   - "correct":   terminal, player guessed the word.
//   - "wrong":     terminal, player submitted a full wrong answer.
//   - "timeout":   terminal, all letters revealed with no correct guess.
type RoundStatus string

const (
	StatusGuessing  RoundStatus = "guessing"
	StatusRevealing RoundStatus = "revealing"
	StatusCorrect   RoundStatus = "correct"
	StatusWrong     RoundStatus = "wrong"
	StatusTimeout   RoundStatus = "timeout"
)

// Terminal reports whether the status is one of the three end states.
func (s RoundStatus) Terminal() bool {
	return s == StatusCorrect || s == StatusWrong || s == StatusTimeout
}

// MatchStatus is the coarse state of a match.
type MatchStatus string

const (
	MatchPlaying  MatchStatus = "playing"
	MatchFinished MatchStatus = "finished"
)

// RoundState holds the state of one round. Once the status is terminal the
// whole struct is frozen for read.
type RoundState struct {
	Word          string      `json:"word"`          // answer, uppercase
	RevealedCount int         `json:"revealedCount"` // 0..5, only ever increases
	Status        RoundStatus `json:"status"`
	Guess         string      `json:"guess"`  // full submitted answer, uppercase
	Points        int         `json:"points"` // 0 until terminal, then fixed
}

// MatchState holds the state of a five-round match. The JSON shape is the
// persisted daily-snapshot format, so tags must stay stable.
type MatchState struct {
	Mode         Mode         `json:"mode"`
	PuzzleNumber int          `json:"puzzleNumber"`
	Rounds       []RoundState `json:"rounds"` // always RoundsPerMatch entries
	CurrentRound int          `json:"currentRound"`
	TotalScore   int          `json:"totalScore"` // authoritative only once finished
	Status       MatchStatus  `json:"gameStatus"`
}

// Clone returns a deep copy of the state. Transitions follow a
// snapshot-then-replace discipline, so callers always get an isolated copy.
func (s MatchState) Clone() MatchState {
	out := s
	out.Rounds = make([]RoundState, len(s.Rounds))
	copy(out.Rounds, s.Rounds)
	return out
}

// RunningScore sums round points so far. While the match is playing this is
// the display value; TotalScore is written once at finalization.
func (s MatchState) RunningScore() int {
	sum := 0
	for _, r := range s.Rounds {
		sum += r.Points
	}
	return sum
}
