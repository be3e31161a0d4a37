package repeats

import (
	"github.com/vertgenlab/gonomics/dna"
)

// BuildKmpFailure calculates the Knuth-Morris-Pratt failure function for input pattern
// based on https://www.personal.kent.edu/~rmuhamma/Algorithms/MyAlgorithms/StringMatch/kuthMP.htm
// Bases are compared case-insensitively.
func BuildKmpFailure(pattern []dna.Base) []int {
	// failure[i] = length of the longest proper prefix of pattern[0:i] which is also a proper suffix of pattern[0:i]
	failure := make([]int, len(pattern))

	// Length of the previous longest prefix-suffix
	length := 0
	i := 1

	for i < len(pattern) {
		if dna.ToUpper(pattern[i]) == dna.ToUpper(pattern[length]) {
			failure[i] = length + 1
			length++
			i++
		} else {
			if length > 0 {
				// do not increment i here, retry the shorter prefix-suffix
				length = failure[length-1]
			} else {
				failure[i] = 0
				i++
			}
		}
	}

	return failure
}

// MinPeriod returns the length of the shortest unit that generates seq when repeated
// (the final copy may be partial). A sequence with no repeat has period len(seq).
func MinPeriod(seq []dna.Base) int {
	if len(seq) == 0 {
		return 0
	}
	failure := BuildKmpFailure(seq)
	return len(seq) - failure[len(failure)-1]
}

// DividingPeriods returns, in increasing order, every period p of seq such that
// len(seq) is a multiple of p, i.e. every unit that tiles seq exactly.
// The trivial period len(seq) is always included for non-empty input.
func DividingPeriods(seq []dna.Base) []int {
	n := len(seq)
	if n == 0 {
		return nil
	}
	m := MinPeriod(seq)
	if n%m != 0 {
		// by Fine and Wilf no other divisor of n can be a period
		return []int{n}
	}
	var ans []int
	for p := m; p <= n; p += m {
		if n%p == 0 {
			ans = append(ans, p)
		}
	}
	return ans
}
