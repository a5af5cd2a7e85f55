package match

import (
	"github.com/agnivade/levenshtein"
)

// Similarity is the normalized Levenshtein similarity of two strings:
// 1 - distance/max(len a, len b). Equal strings (including both empty) score
// 1; if exactly one string is empty the score is 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	la, lb := len([]rune(a)), len([]rune(b))
	max := la
	if lb > max {
		max = lb
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(max)
}
