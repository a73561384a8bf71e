package words

import (
	"strings"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	if err := Init(); err != nil {
		panic(err)
	}
	m.Run()
}

func TestDictionaryLoaded(t *testing.T) {
	if Count() == 0 {
		t.Fatal("embedded dictionary is empty")
	}
	for _, w := range dictionary {
		if len(w) != 5 {
			t.Errorf("dictionary word %q is not 5 letters", w)
		}
		if w != strings.ToLower(w) {
			t.Errorf("dictionary word %q is not lowercase", w)
		}
	}
}

func TestWordsForPuzzleDeterministic(t *testing.T) {
	for _, n := range []int{1, 2, 42, 100, 9999} {
		a := WordsForPuzzle(n)
		b := WordsForPuzzle(n)
		if len(a) != WordsPerPuzzle {
			t.Fatalf("WordsForPuzzle(%d) returned %d words, want %d", n, len(a), WordsPerPuzzle)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("WordsForPuzzle(%d) not deterministic: %v vs %v", n, a, b)
			}
			if a[i] != strings.ToUpper(a[i]) {
				t.Errorf("WordsForPuzzle(%d)[%d] = %q, want uppercase", n, i, a[i])
			}
			if len(a[i]) != 5 {
				t.Errorf("WordsForPuzzle(%d)[%d] = %q, want 5 letters", n, i, a[i])
			}
		}
	}
}

func TestWordsForPuzzleDiffersAcrossPuzzles(t *testing.T) {
	a := WordsForPuzzle(1)
	b := WordsForPuzzle(2)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Errorf("puzzles 1 and 2 selected identical words: %v", a)
	}
}

func TestPuzzleNumber(t *testing.T) {
	launch := time.Date(2026, time.February, 2, 9, 30, 0, 0, time.Local)
	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		{"launch day", launch, 1},
		{"next day", launch.AddDate(0, 0, 1), 2},
		{"day forty-two", launch.AddDate(0, 0, 41), 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PuzzleNumber(tt.t); got != tt.want {
				t.Errorf("PuzzleNumber(%v) = %d, want %d", tt.t, got, tt.want)
			}
		})
	}
}

func TestPuzzleNumberStableWithinDay(t *testing.T) {
	morning := time.Date(2026, time.March, 10, 0, 0, 1, 0, time.Local)
	night := time.Date(2026, time.March, 10, 23, 59, 59, 0, time.Local)
	if PuzzleNumber(morning) != PuzzleNumber(night) {
		t.Errorf("puzzle number drifted within one day: %d vs %d",
			PuzzleNumber(morning), PuzzleNumber(night))
	}
}

func TestRandomWord(t *testing.T) {
	for i := 0; i < 20; i++ {
		w := RandomWord()
		if len(w) != 5 || w != strings.ToUpper(w) {
			t.Fatalf("RandomWord() = %q, want 5 uppercase letters", w)
		}
	}
}
