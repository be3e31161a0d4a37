package realign

import (
	"github.com/dasnellings/indelTools/repeats"
	"github.com/vertgenlab/gonomics/cigar"
	"github.com/vertgenlab/gonomics/dna"
	"golang.org/x/exp/slices"
)

// LeftAlignIndel takes the alignment c of read to ref, starting at 0-based refIdx on ref and
// readIdx on read, and moves the indel found in its second operation as far left as the
// repeated sequence around it allows. For example, if any single AT is deleted from TATATATA
// the returned cigar always deletes the leftmost AT.
//
// Only alignments that start with an M followed by an I or D are moved. Anything else, including
// an indel that would need to move past the start of the alignment, is returned unchanged.
func LeftAlignIndel(c []cigar.Cigar, ref, read []dna.Base, refIdx, readIdx int) []cigar.Cigar {
	if len(c) < 2 || c[0].Op != 'M' {
		return c
	}

	indel := c[1]
	indelIdxOnRef := refIdx + c[0].RunLength   // first deleted base, or first base after an insertion
	indelIdxOnRead := readIdx + c[0].RunLength // first inserted base, or first base after a deletion

	var indelSeq []dna.Base
	switch indel.Op {
	case 'D':
		if indelIdxOnRef < 0 || indelIdxOnRef+indel.RunLength > len(ref) {
			return c
		}
		indelSeq = make([]dna.Base, indel.RunLength)
		copy(indelSeq, ref[indelIdxOnRef:indelIdxOnRef+indel.RunLength])
	case 'I':
		if indelIdxOnRead < 0 || indelIdxOnRead+indel.RunLength > len(read) || indelIdxOnRef > len(ref) {
			return c
		}
		indelSeq = make([]dna.Base, indel.RunLength)
		copy(indelSeq, read[indelIdxOnRead:indelIdxOnRead+indel.RunLength])
	default:
		return c
	}
	dna.AllToUpper(indelSeq)

	var difference int // number of bases the indel can move left
	for _, period := range repeats.DividingPeriods(indelSeq) {
		newIdx := shiftLeft(ref, indelSeq[:period], indelIdxOnRef)
		if indelIdxOnRef-newIdx > difference {
			difference = indelIdxOnRef - newIdx
		}
		if period == 1 { // homopolymer, no longer period can shift further
			break
		}
	}

	if difference == 0 || c[0].RunLength-difference < 0 {
		return c
	}

	ans := make([]cigar.Cigar, 0, len(c)+1)
	if c[0].RunLength-difference > 0 {
		ans = append(ans, cigar.Cigar{RunLength: c[0].RunLength - difference, Op: 'M'})
	}
	ans = append(ans, indel)
	switch {
	case len(c) == 2:
		ans = append(ans, cigar.Cigar{RunLength: difference, Op: 'M'})
	case c[2].Op == 'M':
		ans = append(ans, cigar.Cigar{RunLength: c[2].RunLength + difference, Op: 'M'})
		ans = append(ans, c[3:]...)
	default:
		ans = append(ans, cigar.Cigar{RunLength: difference, Op: 'M'})
		ans = append(ans, c[2:]...)
	}
	return slices.Clip(ans)
}

// shiftLeft walks left from idx one unit at a time while the reference bases just before idx
// spell out unit, and returns the leftmost index reached.
func shiftLeft(ref []dna.Base, unit []dna.Base, idx int) int {
	period := len(unit)
	for idx >= period {
		for i := 0; i < period; i++ {
			if !isACGT(unit[i]) || dna.ToUpper(ref[idx-period+i]) != unit[i] {
				return idx
			}
		}
		idx -= period
	}
	return idx
}
