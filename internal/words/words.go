// internal/words/words.go
//
// Word source for Letterdrop.
//
// Responsibilities:
//   - Load the static five-letter dictionary from an environment-provided file
//     or fall back to the embedded default list.
//   - Deterministic word selection for a given puzzle number (daily mode).
//   - Random word selection (practice mode).
//   - Puzzle numbering: day offset from the launch epoch.
//
// Determinism:
//   WordsForPuzzle is a pure function of the puzzle number. The multipliers
//   below are frozen: changing either one reshuffles every future daily
//   puzzle, so they must never move once deployed.
//
// Environment variables:
//   WORDS_FILE=/path/to/words.txt   (optional override, one word per line)
//
// Constraints:
//   • Words must be 5 alphabetic letters (a–z).
//   • Lists are normalized to lowercase on load; selection returns uppercase.
//   • Initialization is run once (sync.Once).

package words

import (
	"bufio"
	"crypto/rand"
	_ "embed"
	"errors"
	"math"
	"math/big"
	"os"
	"strings"
	"sync"
	"time"
)

// Frozen selection parameters. See determinism note above.
const (
	puzzleSeedMult = 12345
	roundStride    = 7919
)

// WordsPerPuzzle is the number of rounds in a match, one word each.
const WordsPerPuzzle = 5

// epoch is launch day: puzzle #1 is the epoch date itself.
var epoch = time.Date(2026, time.February, 2, 0, 0, 0, 0, time.Local)

//go:embed letterdrop.txt
var embeddedWords string

var (
	initOnce   sync.Once
	dictionary []string // ordered, lowercase, validated
	initialErr error
)

// Init loads the word list exactly once.
// Returns an error if the list ends up empty.
func Init() error {
	initOnce.Do(func() {
		var list []string
		if path := os.Getenv("WORDS_FILE"); path != "" {
			var err error
			list, err = readWordFile(path)
			if err != nil {
				initialErr = err
				return
			}
		} else {
			list = normalizeLines(embeddedWords)
		}
		dictionary = list
		if len(dictionary) == 0 {
			initialErr = errors.New("words: dictionary is empty")
		}
	})
	return initialErr
}

// WordsForPuzzle returns the five answer words for a puzzle number,
// uppercased, in round order. Deterministic across processes and time.
func WordsForPuzzle(puzzleNumber int) []string {
	out := make([]string, 0, WordsPerPuzzle)
	if len(dictionary) == 0 {
		return out
	}
	seed := puzzleNumber * puzzleSeedMult
	for i := 0; i < WordsPerPuzzle; i++ {
		idx := (seed + i*roundStride) % len(dictionary)
		if idx < 0 {
			idx += len(dictionary)
		}
		out = append(out, strings.ToUpper(dictionary[idx]))
	}
	return out
}

// RandomWord returns a cryptographically random dictionary word, uppercased.
// Used only in practice mode. Falls back to "CRANE" if the list is unloaded.
func RandomWord() string {
	if len(dictionary) == 0 {
		return "CRANE"
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(dictionary))))
	return strings.ToUpper(dictionary[nBig.Int64()])
}

// PuzzleNumber returns the puzzle number for the given time: the day offset
// from the launch epoch at local midnight, plus one. Stable for any two
// calls within the same calendar day.
func PuzzleNumber(t time.Time) int {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	// Round rather than truncate so DST-shortened days still land on the
	// right offset.
	return int(math.Round(midnight.Sub(epoch).Hours()/24)) + 1
}

// Count returns the number of loaded dictionary words.
func Count() int { return len(dictionary) }

// readWordFile loads one word per line from a file,
// lowercases, trims, and keeps only valid 5-letter alphabetic words.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if len(w) == 5 && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// normalizeLines processes an embedded multiline string
// into a slice of valid lowercase 5-letter words.
func normalizeLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		w := strings.TrimSpace(strings.ToLower(line))
		if len(w) == 5 && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
