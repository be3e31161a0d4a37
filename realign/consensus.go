package realign

import (
	"github.com/vertgenlab/gonomics/cigar"
	"github.com/vertgenlab/gonomics/dna"
	"math/rand"
)

// Consensus is an alternate version of the window sequence carrying a single indel.
type Consensus struct {
	Seq         []dna.Base
	Cigar       []cigar.Cigar // alignment of Seq's indel region to the window, starting at RefIdx
	RefIdx      int           // 0-based offset on the window where Cigar starts
	MismatchSum int           // summed mismatch quality of all non-duplicate alt reads against the better of window and Seq
	reads       []readOffset  // reads that align better to Seq than to the window
	key         string
}

// readOffset is an alt read index paired with its best offset on a consensus.
type readOffset struct {
	read   int
	offset int
}

// buildConsensus lays the alignment c of read, starting at refIdx on ref, into a copy of ref. Matched
// stretches copy ref, insertions copy read, deletions skip ref. Returns false when refIdx is negative,
// when c does not hold exactly one indel, or when c runs past the end of ref.
func buildConsensus(refIdx int, c []cigar.Cigar, ref, read []dna.Base) (*Consensus, bool) {
	if refIdx < 0 || refIdx > len(ref) {
		return nil, false
	}

	seq := make([]dna.Base, refIdx, len(ref)+len(read))
	copy(seq, ref[:refIdx])

	var indelCount, readIdx int
	currRef := refIdx
	for i := range c {
		length := c[i].RunLength
		switch c[i].Op {
		case 'D':
			indelCount++
			currRef += length
		case 'M', '=', 'X':
			if currRef+length > len(ref) {
				return nil, false
			}
			seq = append(seq, ref[currRef:currRef+length]...)
			currRef += length
			readIdx += length
		case 'I':
			if readIdx+length > len(read) {
				return nil, false
			}
			seq = append(seq, read[readIdx:readIdx+length]...)
			readIdx += length
			indelCount++
		case 'S':
			readIdx += length
		case 'H':
		default:
			return nil, false
		}
	}
	if indelCount != 1 || currRef > len(ref) {
		return nil, false
	}
	seq = append(seq, ref[currRef:]...)

	return &Consensus{
		Seq:    seq,
		Cigar:  dropClips(c),
		RefIdx: refIdx,
		key:    dna.BasesToString(seq),
	}, true
}

// consensusSet keeps consensuses unique by sequence, in the order they were first added.
type consensusSet struct {
	seen  map[string]struct{}
	order []*Consensus
}

func newConsensusSet() *consensusSet {
	return &consensusSet{seen: make(map[string]struct{})}
}

// add stores c unless a consensus with the same sequence is already present.
func (s *consensusSet) add(c *Consensus) bool {
	if _, found := s.seen[c.key]; found {
		return false
	}
	s.seen[c.key] = struct{}{}
	s.order = append(s.order, c)
	return true
}

func (s *consensusSet) len() int {
	return len(s.order)
}

// consensusFromAlignment aligns the read against the window and builds a consensus from the result.
func consensusFromAlignment(ref []dna.Base, r *alignedRead, sw Scorer) (*Consensus, bool) {
	refStart, c, _ := sw.Align(ref, r.read.Seq)
	return buildConsensus(refStart, c, ref, r.read.Seq)
}

// alignForConsensuses runs pairwise alignment on the reads in toTest and adds each consensus they yield
// to set. When there are more than maxReads reads, reads are instead drawn at random from rng until
// maxReads have been used or more than maxConsensuses consensuses have been collected.
func alignForConsensuses(ref []dna.Base, toTest []*alignedRead, set *consensusSet, sw Scorer, maxReads, maxConsensuses int, rng *rand.Rand) {
	if len(toTest) <= maxReads {
		for _, r := range toTest {
			if c, ok := consensusFromAlignment(ref, r, sw); ok {
				set.add(c)
			}
		}
		return
	}

	remaining := make([]*alignedRead, len(toTest))
	copy(remaining, toTest)
	for readsSeen := 0; readsSeen < maxReads && set.len() <= maxConsensuses && len(remaining) > 0; readsSeen++ {
		idx := rng.Intn(len(remaining))
		r := remaining[idx]
		remaining = append(remaining[:idx], remaining[idx+1:]...)
		if c, ok := consensusFromAlignment(ref, r, sw); ok {
			set.add(c)
		}
	}
}

// scoreConsensus finds the best offset of every alt read on c and accumulates c's mismatch sum.
// A read counts toward c only when it scores strictly better there than against the window.
func scoreConsensus(c *Consensus, altReads []*alignedRead) {
	for j, r := range altReads {
		score := r.refScore
		if len(c.Seq) >= len(r.read.Seq) {
			offset, altScore := findBestOffset(c.Seq, r.read.Seq, r.quals)
			if altScore < r.refScore {
				score = altScore
				c.reads = append(c.reads, readOffset{read: j, offset: offset})
			}
		}
		if !r.duplicate() {
			c.MismatchSum += score
		}
	}
}

// selectConsensus scores every consensus in set and returns the one with the lowest mismatch sum,
// keeping the first on ties. Returns nil if set is empty.
func selectConsensus(set *consensusSet, altReads []*alignedRead) *Consensus {
	var best *Consensus
	for _, c := range set.order {
		scoreConsensus(c, altReads)
		if best == nil || c.MismatchSum < best.MismatchSum {
			best = c
		}
	}
	return best
}
