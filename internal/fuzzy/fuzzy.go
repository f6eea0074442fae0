// Package fuzzy implements approximate string matching with a normalized
// similarity ratio in [0.0, 1.0].
package fuzzy

// Ratio returns a similarity ratio between a and b. It is computed as
// 2*M/T where M is the total length of the matching blocks shared by the
// two strings and T is the sum of their lengths, so identical strings
// score 1.0 and strings with nothing in common score 0.0.
func Ratio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	matched := matchingRunes(ra, rb)
	return 2.0 * float64(matched) / float64(total)
}

// matchingRunes sums the lengths of the matching blocks of a and b:
// the longest common substring, plus (recursively) the matching blocks
// of the pieces to its left and to its right.
func matchingRunes(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	aStart, bStart, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}

	matched := size
	matched += matchingRunes(a[:aStart], b[:bStart])
	matched += matchingRunes(a[aStart+size:], b[bStart+size:])
	return matched
}

// longestCommonSubstring finds the longest run of runes common to a and b.
// Ties go to the earliest position in a, then in b, which keeps the
// overall ratio deterministic for identical inputs.
func longestCommonSubstring(a, b []rune) (aStart, bStart, size int) {
	// lengths[j] holds the length of the common suffix ending at a[i-1], b[j-1].
	lengths := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		prev := 0
		for j := 1; j <= len(b); j++ {
			cur := lengths[j]
			if a[i-1] == b[j-1] {
				lengths[j] = prev + 1
				if lengths[j] > size {
					size = lengths[j]
					aStart = i - size
					bStart = j - size
				}
			} else {
				lengths[j] = 0
			}
			prev = cur
		}
	}
	return aStart, bStart, size
}

// BestMatch returns the candidate with the highest ratio to query, provided
// that ratio is at least cutoff. Candidates are scanned in slice order and
// ties keep the first candidate encountered, so results are deterministic
// for a given candidate ordering. Returns ok=false when no candidate
// reaches the cutoff or candidates is empty.
func BestMatch(query string, candidates []string, cutoff float64) (string, bool) {
	var best string
	bestRatio := -1.0
	for _, candidate := range candidates {
		r := Ratio(query, candidate)
		if r > bestRatio {
			bestRatio = r
			best = candidate
		}
	}
	if bestRatio < cutoff || bestRatio < 0 {
		return "", false
	}
	return best, true
}
