package levenshtein

// Distance returns the exact edit distance between two terms using the
// classic two-row dynamic program. It is the slow path the index exists
// to avoid; keep it for one-off comparisons and as the test oracle.
func Distance(t1, t2 string) int {
	r1, r2 := []rune(t1), []rune(t2)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	prev := make([]int, len(r2)+1)
	cur := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(r1); i++ {
		cur[0] = i
		for j := 1; j <= len(r2); j++ {
			c := prev[j-1]
			if r1[i-1] != r2[j-1] {
				c++
			}
			if v := prev[j] + 1; v < c {
				c = v
			}
			if v := cur[j-1] + 1; v < c {
				c = v
			}
			cur[j] = c
		}
		prev, cur = cur, prev
	}
	return prev[len(r2)]
}

// BoundedDistance is Distance with an early exit: once every cell of a
// row exceeds maxDistance the exact value no longer matters and
// max(len(t1), len(t2)) is returned, meaning "more than maxDistance".
func BoundedDistance(t1, t2 string, maxDistance int) int {
	r1, r2 := []rune(t1), []rune(t2)
	tooFar := len(r1)
	if len(r2) > tooFar {
		tooFar = len(r2)
	}
	if len(r1) == 0 || len(r2) == 0 {
		// Exact either way: the distance to an empty term is the
		// other term's length.
		return tooFar
	}

	prev := make([]int, len(r2)+1)
	cur := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(r1); i++ {
		cur[0] = i
		rowMin := cur[0]
		for j := 1; j <= len(r2); j++ {
			c := prev[j-1]
			if r1[i-1] != r2[j-1] {
				c++
			}
			if v := prev[j] + 1; v < c {
				c = v
			}
			if v := cur[j-1] + 1; v < c {
				c = v
			}
			cur[j] = c
			if c < rowMin {
				rowMin = c
			}
		}
		if rowMin > maxDistance {
			return tooFar
		}
		prev, cur = cur, prev
	}
	if prev[len(r2)] > maxDistance {
		return tooFar
	}
	return prev[len(r2)]
}
