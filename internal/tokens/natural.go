package tokens

import "strings"

// naturalLess orders strings case-insensitively with embedded numbers
// compared by value, so "Disc 2" sorts before "Disc 10".
func naturalLess(a, b string) bool {
	ai, bi, la, lb := 0, 0, len(a), len(b)
	for ai < la && bi < lb {
		ra, rb := a[ai], b[bi]
		digitA, digitB := isDigit(ra), isDigit(rb)

		if digitA && digitB {
			startA, startB := ai, bi
			for ai < la && isDigit(a[ai]) {
				ai++
			}
			for bi < lb && isDigit(b[bi]) {
				bi++
			}

			numA := strings.TrimLeft(a[startA:ai], "0")
			numB := strings.TrimLeft(b[startB:bi], "0")
			if len(numA) != len(numB) {
				return len(numA) < len(numB)
			}
			if numA != numB {
				return numA < numB
			}
			// Equal values: fewer leading zeros first.
			if ai-startA != bi-startB {
				return ai-startA < bi-startB
			}
			continue
		}

		if ca, cb := lower(ra), lower(rb); ca != cb {
			return ca < cb
		}
		ai++
		bi++
	}
	return la-ai < lb-bi
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 'a' - 'A'
	}
	return b
}
