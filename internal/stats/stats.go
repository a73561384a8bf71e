// internal/stats/stats.go
//
// Lifetime statistics and streak engine. Update is a pure function: the
// persistence adapter and server layer decide when the result is written.
// Dates are compared at day granularity in the player's local zone using
// YYYY-MM-DD keys, the same format the persisted blob carries.

package stats

import (
	"math"
	"time"

	"github.com/skyblue-will/letterdrop/internal/game"
)

// historyLimit bounds scoreHistory to the most recent match scores.
const historyLimit = 10

// dateLayout is the day key format stored in LastPlayedDate.
const dateLayout = "2006-01-02"

// Stats is the lifetime aggregate for one player. JSON tags are the
// persisted blob shape and must stay stable.
type Stats struct {
	GamesPlayed         int    `json:"gamesPlayed"`
	TotalScore          int    `json:"totalScore"`
	BestScore           int    `json:"bestScore"`
	PerfectRounds       int    `json:"perfectRounds"` // correct at letter 1 or 2
	CurrentStreak       int    `json:"currentStreak"`
	MaxStreak           int    `json:"maxStreak"`
	LastPlayedDate      string `json:"lastPlayedDate"`      // YYYY-MM-DD, "" = never
	LastCompletedPuzzle int    `json:"lastCompletedPuzzle"` // 0 = never
	AverageScore        int    `json:"averageScore"`
	ScoreHistory        []int  `json:"scoreHistory"` // last 10 match scores
}

// Default returns zero-valued stats for a new player.
func Default() Stats {
	return Stats{ScoreHistory: []int{}}
}

// DateKey formats t as the day key used for streak comparisons.
func DateKey(t time.Time) string { return t.Format(dateLayout) }

// Update derives new stats from a completed match. Pure: s is not mutated.
//
// Streak rules apply only to daily mode:
//   - never played, or last played yesterday → streak extends;
//   - last played before yesterday → streak restarts at 1;
//   - last played today → streak untouched (same-day replay guard), but
//     lastPlayedDate/lastCompletedPuzzle are still overwritten. This matches
//     the shipped behavior exactly; do not "fix" it here.
func Update(s Stats, score, puzzleNumber int, mode game.Mode, rounds []game.RoundState, now time.Time) Stats {
	out := s
	out.ScoreHistory = append([]int{}, s.ScoreHistory...)

	out.GamesPlayed++
	out.TotalScore += score
	if score > out.BestScore {
		out.BestScore = score
	}
	for _, r := range rounds {
		if r.Status == game.StatusCorrect && r.RevealedCount <= 2 {
			out.PerfectRounds++
		}
	}

	out.ScoreHistory = append(out.ScoreHistory, score)
	if len(out.ScoreHistory) > historyLimit {
		out.ScoreHistory = out.ScoreHistory[len(out.ScoreHistory)-historyLimit:]
	}
	sum := 0
	for _, v := range out.ScoreHistory {
		sum += v
	}
	out.AverageScore = int(math.Round(float64(sum) / float64(len(out.ScoreHistory))))

	if mode == game.ModeDaily {
		today := DateKey(now)
		yesterday := DateKey(now.AddDate(0, 0, -1))
		switch {
		case s.LastPlayedDate == "" || s.LastPlayedDate == yesterday:
			out.CurrentStreak++
		case s.LastPlayedDate != today:
			out.CurrentStreak = 1
		}
		if out.CurrentStreak > out.MaxStreak {
			out.MaxStreak = out.CurrentStreak
		}
		out.LastPlayedDate = today
		out.LastCompletedPuzzle = puzzleNumber
	}
	return out
}

// StreakAtRisk reports whether the player played yesterday but not yet today,
// i.e. the streak breaks if today passes without a daily match.
func StreakAtRisk(s Stats, now time.Time) bool {
	if s.CurrentStreak == 0 || s.LastPlayedDate == "" {
		return false
	}
	if s.LastPlayedDate == DateKey(now) {
		return false
	}
	return s.LastPlayedDate == DateKey(now.AddDate(0, 0, -1))
}

// milestones maps streak lengths to celebration messages.
var milestones = map[int]string{
	3:   "3 days in a row. You're warming up.",
	7:   "A full week of Letterdrop!",
	14:  "Two weeks straight. Impressive.",
	30:  "30 days. You're a regular now.",
	50:  "50 day streak. Seriously dedicated.",
	100: "100 days. Letterdrop legend.",
	365: "A whole year, every single day.",
}

// Milestone returns a message for notable streak lengths, or ok=false.
func Milestone(streak int) (string, bool) {
	msg, ok := milestones[streak]
	return msg, ok
}
