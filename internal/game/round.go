// internal/game/round.go
//
// Pure state transitions for a single round and for match assembly.
// No timers, no I/O: every function here maps a state to a new state, which
// keeps the rules testable in isolation. The Match orchestrator (match.go)
// owns scheduling and applies these under its lock.

package game

import (
	"strings"
)

// RoundsPerMatch is fixed: a match is exactly five rounds.
const RoundsPerMatch = 5

// WordLength is fixed: all answers are five letters.
const WordLength = 5

// pointsByReveal maps revealed-letter count (1-indexed) to points for a
// correct guess. Earlier guesses score strictly more.
var pointsByReveal = [WordLength]int{100, 80, 60, 40, 20}

// MaxScore is the best possible match total (five first-letter guesses).
const MaxScore = 500

// PointsForReveal returns the points awarded for a correct guess with the
// given number of letters revealed. Returns 0 outside [1,5].
func PointsForReveal(revealed int) int {
	if revealed < 1 || revealed > WordLength {
		return 0
	}
	return pointsByReveal[revealed-1]
}

// NewMatchState builds the starting state for a match: all rounds pending
// except round 0, which is activated with its first letter shown.
func NewMatchState(mode Mode, puzzleNumber int, answers []string) MatchState {
	rounds := make([]RoundState, 0, RoundsPerMatch)
	for i, w := range answers {
		r := RoundState{Word: strings.ToUpper(w), Status: StatusGuessing}
		if i == 0 {
			r = activateRound(r)
		}
		rounds = append(rounds, r)
	}
	return MatchState{
		Mode:         mode,
		PuzzleNumber: puzzleNumber,
		Rounds:       rounds,
		CurrentRound: 0,
		Status:       MatchPlaying,
	}
}

// activateRound transitions guessing → revealing with the first letter shown.
func activateRound(r RoundState) RoundState {
	r.Status = StatusRevealing
	r.RevealedCount = 1
	return r
}

// tickRound applies one reveal tick. With all letters already out the round
// is forfeited (timeout); otherwise one more letter is revealed. RevealedCount
// never decreases and never exceeds WordLength.
func tickRound(r RoundState) RoundState {
	if r.Status != StatusRevealing {
		return r
	}
	if r.RevealedCount >= WordLength {
		r.Status = StatusTimeout
		r.Points = 0
		return r
	}
	r.RevealedCount++
	return r
}

// resolveGuess applies a guess submission: the candidate is the revealed
// prefix plus the player-typed suffix. Returns the new round state and
// whether the submission was accepted. Rejected submissions (wrong length,
// round not revealing) change nothing.
func resolveGuess(r RoundState, suffix string) (RoundState, bool) {
	if r.Status != StatusRevealing {
		return r, false
	}
	candidate := r.Word[:r.RevealedCount] + strings.TrimSpace(suffix)
	if len(candidate) != WordLength {
		return r, false
	}
	candidate = strings.ToUpper(candidate)
	if candidate == strings.ToUpper(r.Word) {
		r.Status = StatusCorrect
		r.Points = PointsForReveal(r.RevealedCount)
	} else {
		r.Status = StatusWrong
		r.Points = 0
	}
	r.Guess = candidate
	return r, true
}

// finalizeMatch locks in the total and marks the match finished.
func finalizeMatch(s MatchState) MatchState {
	s.TotalScore = s.RunningScore()
	s.Status = MatchFinished
	return s
}
