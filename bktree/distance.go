package bktree

import "math/bits"

// Integer covers the fixed-width integer types usable with Hamming.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Hamming returns the number of differing bits between a and b.
// The XOR and the popcount both happen in the operands' native width, so
// signed types do not pick up phantom sign-extension bits.
func Hamming[T Integer](a, b T) int {
	x := a ^ b
	n := 0
	for x != 0 {
		x &= x - 1
		n++
	}
	return n
}

// Hamming64 is the uint64 fast path for Hamming, suited to 64-bit
// perceptual hashes.
func Hamming64(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Levenshtein returns the minimum number of single-character insertions,
// deletions, and substitutions transforming a into b. Distances are
// computed over runes, not bytes, so multi-byte text counts correctly.
//
// Uses the single-row dynamic programming variant: O(len(a)) space,
// O(len(a)*len(b)) time.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// row[i] holds the edit distance between a[:i+1] and the prefix of b
	// processed so far.
	row := make([]int, len(ra))
	for i := range row {
		row[i] = i + 1
	}

	var res int
	for ib, cb := range rb {
		res = ib
		diag := ib // distance for a[:ia] vs b[:ib], the diagonal cell
		for ia, ca := range ra {
			sub := diag
			if ca != cb {
				sub = diag + 1
			}
			diag = row[ia]

			switch {
			case diag > res:
				if sub > res {
					res++
				} else {
					res = sub
				}
			case sub > diag:
				res = diag + 1
			default:
				res = sub
			}
			row[ia] = res
		}
	}

	return res
}
