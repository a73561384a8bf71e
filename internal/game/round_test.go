package game

import (
	"testing"
)

func TestPointsForReveal(t *testing.T) {
	tests := []struct {
		revealed int
		want     int
	}{
		{1, 100},
		{2, 80},
		{3, 60},
		{4, 40},
		{5, 20},
		{0, 0},
		{6, 0},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := PointsForReveal(tt.revealed); got != tt.want {
			t.Errorf("PointsForReveal(%d) = %d, want %d", tt.revealed, got, tt.want)
		}
	}
}

func TestNewMatchState(t *testing.T) {
	answers := []string{"apple", "BEACH", "crane", "dance", "eager"}
	st := NewMatchState(ModeDaily, 42, answers)

	if st.Mode != ModeDaily || st.PuzzleNumber != 42 {
		t.Fatalf("unexpected header: %+v", st)
	}
	if st.Status != MatchPlaying || st.CurrentRound != 0 || st.TotalScore != 0 {
		t.Fatalf("unexpected initial state: %+v", st)
	}
	if len(st.Rounds) != RoundsPerMatch {
		t.Fatalf("got %d rounds, want %d", len(st.Rounds), RoundsPerMatch)
	}
	if st.Rounds[0].Status != StatusRevealing || st.Rounds[0].RevealedCount != 1 {
		t.Errorf("round 0 not activated: %+v", st.Rounds[0])
	}
	for i := 1; i < RoundsPerMatch; i++ {
		if st.Rounds[i].Status != StatusGuessing || st.Rounds[i].RevealedCount != 0 {
			t.Errorf("round %d should be pending: %+v", i, st.Rounds[i])
		}
	}
	if st.Rounds[0].Word != "APPLE" || st.Rounds[1].Word != "BEACH" {
		t.Errorf("words not uppercased: %+v", st.Rounds)
	}
}

func TestResolveGuess(t *testing.T) {
	base := func(revealed int) RoundState {
		return RoundState{Word: "APPLE", RevealedCount: revealed, Status: StatusRevealing}
	}
	tests := []struct {
		name       string
		round      RoundState
		suffix     string
		wantOK     bool
		wantStatus RoundStatus
		wantPoints int
		wantGuess  string
	}{
		{"correct at reveal 1", base(1), "PPLE", true, StatusCorrect, 100, "APPLE"},
		{"correct at reveal 2", base(2), "PLE", true, StatusCorrect, 80, "APPLE"},
		{"correct lowercase input", base(2), "ple", true, StatusCorrect, 80, "APPLE"},
		{"correct at reveal 5, empty suffix", base(5), "", true, StatusCorrect, 20, "APPLE"},
		{"wrong full answer", base(2), "XYZ", true, StatusWrong, 0, "APXYZ"},
		{"too long rejected", base(2), "XXXX", false, StatusRevealing, 0, ""},
		{"too short rejected", base(2), "PL", false, StatusRevealing, 0, ""},
		{"whitespace trimmed", base(2), " PLE ", true, StatusCorrect, 80, "APPLE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolveGuess(tt.round, tt.suffix)
			if ok != tt.wantOK {
				t.Fatalf("accepted = %v, want %v", ok, tt.wantOK)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", got.Status, tt.wantStatus)
			}
			if got.Points != tt.wantPoints {
				t.Errorf("points = %d, want %d", got.Points, tt.wantPoints)
			}
			if got.Guess != tt.wantGuess {
				t.Errorf("guess = %q, want %q", got.Guess, tt.wantGuess)
			}
			if !ok && got != tt.round {
				t.Errorf("rejected submission mutated state: %+v", got)
			}
		})
	}
}

func TestResolveGuessOnlyWhileRevealing(t *testing.T) {
	for _, status := range []RoundStatus{StatusGuessing, StatusCorrect, StatusWrong, StatusTimeout} {
		r := RoundState{Word: "APPLE", RevealedCount: 1, Status: status}
		got, ok := resolveGuess(r, "PPLE")
		if ok {
			t.Errorf("submission accepted in status %q", status)
		}
		if got != r {
			t.Errorf("submission in status %q mutated state", status)
		}
	}
}

func TestTickRoundMonotonicUntilTimeout(t *testing.T) {
	r := RoundState{Word: "APPLE", RevealedCount: 1, Status: StatusRevealing}
	seen := []int{r.RevealedCount}
	for i := 0; i < 10; i++ {
		next := tickRound(r)
		if next.RevealedCount < r.RevealedCount {
			t.Fatalf("revealedCount decreased: %d -> %d", r.RevealedCount, next.RevealedCount)
		}
		if next.RevealedCount > WordLength {
			t.Fatalf("revealedCount exceeded %d: %d", WordLength, next.RevealedCount)
		}
		r = next
		seen = append(seen, r.RevealedCount)
		if r.Status == StatusTimeout {
			break
		}
	}
	if r.Status != StatusTimeout {
		t.Fatalf("round never timed out: %+v (reveals %v)", r, seen)
	}
	if r.Points != 0 {
		t.Errorf("timeout awarded %d points, want 0", r.Points)
	}
	if r.RevealedCount != WordLength {
		t.Errorf("timed out at revealedCount %d, want %d", r.RevealedCount, WordLength)
	}
	// Terminal rounds ignore further ticks.
	if after := tickRound(r); after != r {
		t.Errorf("tick mutated a terminal round: %+v", after)
	}
}

func TestFinalizeMatchSumsAllOutcomes(t *testing.T) {
	tests := []struct {
		name   string
		points []int
		want   int
	}{
		{"all perfect", []int{100, 100, 100, 100, 100}, 500},
		{"mixed", []int{100, 0, 60, 40, 0}, 200},
		{"all missed", []int{0, 0, 0, 0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewMatchState(ModePractice, 7, []string{"apple", "beach", "crane", "dance", "eager"})
			for i, p := range tt.points {
				st.Rounds[i].Points = p
				if p > 0 {
					st.Rounds[i].Status = StatusCorrect
				} else {
					st.Rounds[i].Status = StatusWrong
				}
			}
			got := finalizeMatch(st)
			if got.Status != MatchFinished {
				t.Errorf("status = %q, want finished", got.Status)
			}
			if got.TotalScore != tt.want {
				t.Errorf("totalScore = %d, want %d", got.TotalScore, tt.want)
			}
			if got.TotalScore != got.RunningScore() {
				t.Errorf("stored total %d diverges from derived %d", got.TotalScore, got.RunningScore())
			}
		})
	}
}
