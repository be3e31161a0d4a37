package realign

import (
	"github.com/vertgenlab/gonomics/cigar"
	"github.com/vertgenlab/gonomics/sam"
	"golang.org/x/exp/slices"
)

// numAlignmentBlocks counts the gapless aligned blocks in c.
func numAlignmentBlocks(c []cigar.Cigar) int {
	var blocks int
	for i := range c {
		switch c[i].Op {
		case 'M', '=', 'X':
			blocks++
		}
	}
	return blocks
}

// numIndels counts the insertion and deletion operations in c.
func numIndels(c []cigar.Cigar) int {
	var indels int
	for i := range c {
		if c[i].Op == 'I' || c[i].Op == 'D' {
			indels++
		}
	}
	return indels
}

// isClipped reports whether the alignment starts or ends with a soft clip.
func isClipped(c []cigar.Cigar) bool {
	return c[0].Op == 'S' || c[len(c)-1].Op == 'S'
}

// hasCigar reports whether s carries a usable alignment description.
func hasCigar(s *sam.Sam) bool {
	return len(s.Cigar) > 0 && s.Cigar[0].Op != '*'
}

// queryLength sums the operations that consume read bases.
func queryLength(c []cigar.Cigar) int {
	var length int
	for i := range c {
		if cigar.ConsumesQuery(c[i].Op) {
			length += c[i].RunLength
		}
	}
	return length
}

// dropClips removes soft and hard clips, leaving only the operations that place bases on the reference.
func dropClips(c []cigar.Cigar) []cigar.Cigar {
	ans := make([]cigar.Cigar, 0, len(c))
	for i := range c {
		if c[i].Op == 'S' || c[i].Op == 'H' {
			continue
		}
		ans = append(ans, c[i])
	}
	return ans
}

func sameCigar(a, b []cigar.Cigar) bool {
	return slices.Equal(a, b)
}

// trimLeadingDeletion drops a deletion at the start of c and moves start past the deleted bases.
// A read alignment may not begin with a deletion, so an indel left aligned onto the first base
// of a read is placed this way.
func trimLeadingDeletion(start int, c []cigar.Cigar) (int, []cigar.Cigar) {
	if len(c) > 1 && c[0].Op == 'D' {
		return start + c[0].RunLength, c[1:]
	}
	return start, c
}

// baseQuals decodes the phred+33 quality string of s. Returns nil if the
// qualities are missing or do not line up with the sequence.
func baseQuals(s *sam.Sam) []uint8 {
	if len(s.Qual) != len(s.Seq) || s.Qual == "*" {
		return nil
	}
	ans := make([]uint8, len(s.Qual))
	for i := 0; i < len(s.Qual); i++ {
		ans[i] = s.Qual[i] - 33
	}
	return ans
}
