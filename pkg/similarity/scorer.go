// Package similarity converts edit distances into bounded similarity
// scores and exposes the most-similar-terms index built on the
// levenshtein core. The scoring formula is the one defined by Charlet
// and Damnati (SemEval-2017 Task 3): alpha * (1 - d/maxLen)^beta.
package similarity

import (
	"errors"
	"fmt"
	"math"

	"github.com/bizzyvinci/levserve/pkg/levenshtein"
)

// ErrInvalidFactor is returned when alpha or beta is negative.
var ErrInvalidFactor = errors.New("similarity: alpha and beta must be non-negative")

// Score converts an edit distance between two terms of the given rune
// lengths into a similarity. Two empty terms score exactly 1.0. The
// result can exceed 1.0 when alpha > 1; that is a property of the
// formula, not clamped here.
func Score(distance, len1, len2 int, alpha, beta float64) (float64, error) {
	if alpha < 0 || beta < 0 {
		return 0, fmt.Errorf("%w, got alpha=%v beta=%v", ErrInvalidFactor, alpha, beta)
	}
	maxLen := len1
	if len2 > maxLen {
		maxLen = len2
	}
	if maxLen == 0 {
		return 1.0, nil
	}
	return alpha * math.Pow(1-float64(distance)/float64(maxLen), beta), nil
}

// MaxDistanceForThreshold inverts the scoring formula: the largest
// distance d such that Score(d, maxLen, maxLen, alpha, beta) is still at
// least minSimilarity. minSimilarity is clamped to [0, 1] first; a
// non-positive threshold means "no threshold" and the result is maxLen,
// the largest distance any term pair of these lengths can have. A
// negative result means no distance at all satisfies the threshold.
func MaxDistanceForThreshold(minSimilarity float64, maxLen int, alpha, beta float64) (int, error) {
	if alpha < 0 || beta < 0 {
		return 0, fmt.Errorf("%w, got alpha=%v beta=%v", ErrInvalidFactor, alpha, beta)
	}
	minSimilarity = clamp01(minSimilarity)
	if minSimilarity <= 0 {
		return maxLen, nil
	}
	if alpha == 0 {
		// Score is identically zero, below any positive threshold.
		return -1, nil
	}
	if beta == 0 {
		// Score is alpha at every distance.
		if alpha >= minSimilarity {
			return maxLen, nil
		}
		return -1, nil
	}
	d := int(math.Floor(float64(maxLen) * (1 - math.Pow(minSimilarity/alpha, 1/beta))))
	// The float floor can land one off when the exact bound is an
	// integer (50*(1-0.8) evaluates to 9.999...). Settle on the largest
	// d whose score still reaches the threshold.
	for d >= 0 {
		s, _ := Score(d, maxLen, maxLen, alpha, beta)
		if s >= minSimilarity {
			break
		}
		d--
	}
	for d < maxLen {
		s, _ := Score(d+1, maxLen, maxLen, alpha, beta)
		if s < minSimilarity {
			break
		}
		d++
	}
	return d, nil
}

// TermScore computes the similarity of two bare terms, taking the
// bounded-distance shortcut: pairs that cannot reach minSimilarity
// short-circuit without an exact distance computation.
func TermScore(t1, t2 string, alpha, beta, minSimilarity float64) (float64, error) {
	len1 := len([]rune(t1))
	len2 := len([]rune(t2))
	maxLen := len1
	if len2 > maxLen {
		maxLen = len2
	}
	bound, err := MaxDistanceForThreshold(minSimilarity, maxLen, alpha, beta)
	if err != nil {
		return 0, err
	}
	if bound < 0 {
		return 0, nil
	}
	distance := levenshtein.BoundedDistance(t1, t2, bound)
	return Score(distance, len1, len2, alpha, beta)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
