package realign

import (
	"github.com/vertgenlab/gonomics/align"
	"github.com/vertgenlab/gonomics/cigar"
	"github.com/vertgenlab/gonomics/dna"
)

// Scorer holds the four scores of an affine gap alignment. A gap of length k costs
// GapOpen + (k-1)*GapExtend.
type Scorer struct {
	Match     int
	Mismatch  int
	GapOpen   int
	GapExtend int
}

// DefaultScorer returns the scores used to discover indels in reads.
func DefaultScorer() Scorer {
	return Scorer{Match: swMatch, Mismatch: swMismatch, GapOpen: swGapOpen, GapExtend: swGapExtend}
}

// scoreMatrix returns a substitution matrix indexed by dna.Base. Two bases match when they are
// the same A, C, G or T in either case.
func (s Scorer) scoreMatrix() [][]int64 {
	m := make([][]int64, dna.Nil+1)
	for i := range m {
		m[i] = make([]int64, dna.Nil+1)
		for j := range m[i] {
			if isACGT(dna.Base(i)) && dna.ToUpper(dna.Base(i)) == dna.ToUpper(dna.Base(j)) {
				m[i][j] = int64(s.Match)
			} else {
				m[i][j] = int64(s.Mismatch)
			}
		}
	}
	return m
}

// Align aligns the whole of read to ref, with gaps off either end of ref left unscored. It returns the
// 0-based offset on ref where the alignment starts and a cigar describing the whole read, with read
// bases hanging off either end of ref as soft clips.
func (s Scorer) Align(ref, read []dna.Base) (refStart int, c []cigar.Cigar, score int) {
	if len(ref) == 0 || len(read) == 0 {
		return 0, []cigar.Cigar{{RunLength: len(read), Op: 'S'}}, 0
	}
	// gonomics charges gapOpen+gapExtend for the first base of a gap
	alnScore, route := align.AffineGapLocal(ref, read, s.scoreMatrix(), int64(s.GapOpen-s.GapExtend), int64(s.GapExtend))
	refStart, c = cigConv(route)
	return refStart, c, int(alnScore)
}

// cigConv converts an alignment of a read against ref to a read cigar. Deletions at either end only
// skip ref: a leading one gives the start of the read and a trailing one is dropped. Insertions at
// either end become soft clips, along with any deletion between them and the rest of the alignment.
func cigConv(route []align.Cigar) (refStart int, c []cigar.Cigar) {
	if len(route) > 0 && route[0].Op == align.ColD {
		refStart += int(route[0].RunLength)
		route = route[1:]
	}
	if len(route) > 0 && route[len(route)-1].Op == align.ColD {
		route = route[:len(route)-1]
	}

	c = make([]cigar.Cigar, 0, len(route))
	for i := range route {
		var op rune
		switch route[i].Op {
		case align.ColM:
			op = 'M'
		case align.ColI:
			op = 'I'
		case align.ColD:
			op = 'D'
		}
		c = append(c, cigar.Cigar{RunLength: int(route[i].RunLength), Op: op})
	}

	if len(c) > 0 && c[0].Op == 'I' {
		c[0].Op = 'S'
		if len(c) > 1 && c[1].Op == 'D' {
			refStart += c[1].RunLength
			c = append(c[:1], c[2:]...)
		}
	}
	if n := len(c); n > 0 && c[n-1].Op == 'I' {
		c[n-1].Op = 'S'
		if n > 1 && c[n-2].Op == 'D' {
			c = append(c[:n-2], c[n-1])
		}
	}
	return refStart, c
}
