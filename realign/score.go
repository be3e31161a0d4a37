package realign

import (
	"github.com/vertgenlab/gonomics/dna"
)

// isACGT reports whether b is an unambiguous base in either case.
func isACGT(b dna.Base) bool {
	switch dna.ToUpper(b) {
	case dna.A, dna.C, dna.G, dna.T:
		return true
	default:
		return false
	}
}

// mismatchQualitySum sums the qualities of read bases that disagree with seq when the read is laid
// down base-for-base starting at seq[offset], ignoring the read's cigar. Read bases that fall off
// either end of seq cost MaxQual each. Ambiguous bases on either side are not counted.
func mismatchQualitySum(read []dna.Base, quals []uint8, seq []dna.Base, offset int) int {
	var sum int
	for readIdx, seqIdx := 0, offset; readIdx < len(read); readIdx, seqIdx = readIdx+1, seqIdx+1 {
		if seqIdx < 0 || seqIdx >= len(seq) {
			sum += MaxQual
			continue
		}
		if !isACGT(read[readIdx]) || !isACGT(seq[seqIdx]) {
			continue
		}
		if dna.ToUpper(read[readIdx]) != dna.ToUpper(seq[seqIdx]) {
			sum += int(quals[readIdx])
		}
	}
	return sum
}

// findBestOffset tries every placement of read along seq and returns the placement with the lowest
// mismatchQualitySum. Ties go to the leftmost placement. The search stops as soon as a perfect
// placement is found. When seq is shorter than read only offset 0 is scored.
func findBestOffset(seq []dna.Base, read []dna.Base, quals []uint8) (bestOffset, bestScore int) {
	attempts := len(seq) - len(read) + 1
	bestScore = mismatchQualitySum(read, quals, seq, 0)
	var score int
	for i := 1; i < attempts; i++ {
		if bestScore == 0 {
			return bestOffset, 0
		}
		score = mismatchQualitySum(read, quals, seq, i)
		if score < bestScore {
			bestScore = score
			bestOffset = i
		}
	}
	return bestOffset, bestScore
}
