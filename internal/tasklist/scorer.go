package tasklist

// PrefixScorer scores common prefix length minus the length difference.
type PrefixScorer struct{}

func (PrefixScorer) Score(candidate, target string) int {
	a, b := []rune(candidate), []rune(target)

	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}

	diff := len(a) - len(b)
	if diff < 0 {
		diff = -diff
	}
	return prefix - diff
}
