// internal/share/share.go
//
// Share-text formatter: renders a finished match into the compact summary
// players copy or share. Output is deterministic for identical inputs — the
// results modal, the clipboard fallback, and the tests all rely on that.

package share

import (
	"fmt"
	"strings"

	"github.com/skyblue-will/letterdrop/internal/game"
)

// ProductURL is the fixed link appended to every share text.
const ProductURL = "https://letterdrop.vercel.app"

// symbolFor maps a round outcome to its share symbol: the earlier the
// correct guess, the brighter the star. Misses are a black square.
func symbolFor(r game.RoundState) string {
	if r.Status != game.StatusCorrect {
		return "⬛"
	}
	switch r.RevealedCount {
	case 1:
		return "🌟"
	case 2:
		return "⭐"
	case 3:
		return "✨"
	default:
		return "💫"
	}
}

// Text renders the share summary: one symbol per round in order, the score
// out of the maximum, an optional streak line when streak > 1, and the
// product link.
func Text(score, puzzleNumber int, rounds []game.RoundState, streak int) string {
	var symbols strings.Builder
	for _, r := range rounds {
		symbols.WriteString(symbolFor(r))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Letterdrop #%d\n", puzzleNumber)
	fmt.Fprintf(&b, "%d/%d %s\n", score, game.MaxScore, symbols.String())
	if streak > 1 {
		fmt.Fprintf(&b, "🔥 %d day streak\n", streak)
	}
	b.WriteString("\n")
	b.WriteString(ProductURL)
	return b.String()
}
