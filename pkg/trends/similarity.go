package trends

// similarText counts characters common to a and b the way PHP's
// similar_text does: find the longest common substring, then recurse into
// the unmatched left and right remainders. Not an edit distance, kept
// as-is so duplicate sets match the historical behavior.
func similarText(a, b string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	posA, posB, maxLen := 0, 0, 0
	for i := 0; i < len(a); i++ {
		for j := 0; j < len(b); j++ {
			k := 0
			for i+k < len(a) && j+k < len(b) && a[i+k] == b[j+k] {
				k++
			}
			if k > maxLen {
				posA, posB, maxLen = i, j, k
			}
		}
	}

	if maxLen == 0 {
		return 0
	}

	sum := maxLen
	sum += similarText(a[:posA], b[:posB])
	sum += similarText(a[posA+maxLen:], b[posB+maxLen:])
	return sum
}

// normalizeTitle lowercases and strips everything but ascii letters and
// digits, the comparison key for duplicate detection
func normalizeTitle(title string) string {
	out := make([]byte, 0, len(title))
	for i := 0; i < len(title); i++ {
		c := title[i]
		switch {
		case c >= 'A' && c <= 'Z':
			out = append(out, c+('a'-'A'))
		case c >= 'a' && c <= 'z' || c >= '0' && c <= '9':
			out = append(out, c)
		}
	}
	return string(out)
}

// isDuplicate reports whether the normalized title overlaps any previously
// seen one by more than the threshold share of its own length
func isDuplicate(normalized string, seen []string, threshold float64) bool {
	for _, s := range seen {
		if float64(similarText(normalized, s)) > float64(len(normalized))*threshold {
			return true
		}
	}
	return false
}
