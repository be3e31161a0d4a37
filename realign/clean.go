package realign

import (
	"fmt"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/sam"
	"math/rand"
)

// Status is the outcome of cleaning a window.
type Status int

const (
	StatusFail     Status = iota // no consensus improved on the reference by the LOD threshold
	StatusBadIndel               // the best consensus passed the LOD threshold but did not reduce column entropy
	StatusClean                  // reads were realigned to the best consensus
)

func (s Status) String() string {
	switch s {
	case StatusFail:
		return "FAIL"
	case StatusBadIndel:
		return "FAIL (bad indel)"
	case StatusClean:
		return "CLEAN"
	default:
		return "UNKNOWN"
	}
}

// IndelCall describes the indel carried by an accepted consensus.
type IndelCall struct {
	Chrom       string
	Pos         int // 1-based position of the last base before the indel
	Length      int
	Op          rune
	Bases       string // inserted or deleted bases
	Improvement float64
}

// String formats the call as a tab-delimited line without a trailing newline.
func (c IndelCall) String() string {
	return fmt.Sprintf("%s\t%d\t%d\t%c\t%s\t%.1f", c.Chrom, c.Pos, c.Length, c.Op, c.Bases, c.Improvement)
}

// Output is a read returned from Clean, with Changed set if its position or cigar was rewritten.
type Output struct {
	Read    sam.Sam
	Changed bool
}

// Result holds the decision made for a window and the reads to emit.
type Result struct {
	Window      Window
	Status      Status
	Improvement float64 // -1 when no consensus could be built
	FoundIndel  bool
	Indel       *IndelCall   // set for clean windows whose consensus carries an indel
	Columns     []ColumnCall // originally mismatching columns, set for clean windows
	Reads       []Output
	Cleaned     int // number of reads placed on the consensus
}

// Decision formats the outcome as status<TAB>improvement.
func (r Result) Decision() string {
	status := r.Status.String()
	if r.Status == StatusClean && r.FoundIndel {
		status += " (found indel)"
	}
	return fmt.Sprintf("%s\t%.1f", status, r.Improvement)
}

// StatsLine formats the window decision as window<TAB>status<TAB>improvement.
func (r Result) StatsLine() string {
	return r.Window.String() + "\t" + r.Decision()
}

// Clean decides whether the reads overlapping w are better explained by an alternate consensus
// carrying a single indel and, if so, realigns the reads that support it. Reads are returned in
// input order and are never modified in place. rng is used only when there are more candidate
// reads than s.MaxReadsForConsensuses.
//
// w should cover every base of every read; bases that fall outside it count as mismatches of the
// highest quality. Reads without a cigar, with soft clipped ends, or without base qualities are
// passed through untouched. Two-block reads have their indel left aligned whatever the window outcome.
func Clean(w Window, reads []sam.Sam, s Settings, rng *rand.Rand) Result {
	ref := make([]dna.Base, len(w.Seq))
	copy(ref, w.Seq)
	dna.AllToUpper(ref)
	w.Seq = ref

	res := Result{Window: w, Status: StatusFail, Improvement: -1}

	wrapped := make([]*alignedRead, len(reads)) // nil for reads that are passed through
	var altReads, toTest []*alignedRead
	consensuses := newConsensusSet()
	var totalMismatchSum int

	// decide which reads potentially need to be cleaned
	for i := range reads {
		read := &reads[i]
		if !hasCigar(read) || isClipped(read.Cigar) || len(read.Seq) == 0 {
			continue
		}
		quals := baseQuals(read)
		if quals == nil {
			continue
		}
		ar := &alignedRead{read: read, quals: quals}
		wrapped[i] = ar
		readStart := read.GetChromStart() - w.Start

		// move existing indels of single indel reads to their leftmost position
		numBlocks := numAlignmentBlocks(read.Cigar)
		readCigar := read.Cigar
		if numBlocks == 2 {
			c := LeftAlignIndel(read.Cigar, ref, read.Seq, readStart, 0)
			if !sameCigar(c, read.Cigar) && numIndels(c) > 0 {
				readCigar = c
				start, trimmed := trimLeadingDeletion(read.GetChromStart(), c)
				ar.leftAligned = &Proposal{Start: start, Cigar: trimmed}
			}
		}

		ar.refScore = mismatchQualitySum(read.Seq, quals, ref, readStart)
		if ar.refScore == 0 {
			continue
		}

		altReads = append(altReads, ar)
		if !ar.duplicate() {
			totalMismatchSum += ar.refScore
		}

		// an existing indel is tried as a consensus as is, everything else goes through pairwise alignment
		if numBlocks == 2 {
			if cons, ok := buildConsensus(readStart, readCigar, ref, read.Seq); ok {
				consensuses.add(cons)
			}
		} else {
			toTest = append(toTest, ar)
		}
	}

	alignForConsensuses(ref, toTest, consensuses, DefaultScorer(), s.MaxReadsForConsensuses, s.MaxConsensuses, rng)
	best := selectConsensus(consensuses, altReads)
	if best != nil {
		res.Improvement = improvement(totalMismatchSum, best.MismatchSum)
	}

	if best != nil && res.Improvement >= s.LodThreshold {
		best.Cigar = LeftAlignIndel(best.Cigar, ref, best.Seq, best.RefIdx, best.RefIdx)
		for _, ro := range best.reads {
			ar := altReads[ro.read]
			start, c, err := placeOnConsensus(best.Cigar, best.RefIdx, ro.offset, len(ar.read.Seq))
			if err != nil {
				continue
			}
			ar.cleaned = &Proposal{Start: w.Start + start, Cigar: c}
		}

		reduces, calls := reducesEntropy(altReads, w, s.EntropyThreshold)
		if reduces {
			res.Status = StatusClean
			res.Columns = calls
			res.FoundIndel = len(best.Cigar) > 1
			if res.FoundIndel {
				res.Indel = newIndelCall(w, best, res.Improvement)
			}
		} else {
			res.Status = StatusBadIndel
			for _, ar := range altReads {
				ar.cleaned = nil
			}
		}
	}

	var out Output
	for i := range reads {
		out = Output{Read: reads[i]}
		if ar := wrapped[i]; ar != nil {
			if p := ar.pending(); p != nil {
				out.Read = Finalize(reads[i], *p)
				out.Changed = true
				if ar.cleaned != nil {
					res.Cleaned++
					boostMapQ(&out.Read, res.Improvement)
					setEditDistanceTag(&out.Read, editDistance(&out.Read, w))
				}
			}
		}
		if s.CleanedOnly && !out.Changed {
			continue
		}
		res.Reads = append(res.Reads, out)
	}

	return res
}

// improvement converts the drop in summed mismatch quality into the units of the LOD threshold.
func improvement(totalMismatchSum, consensusMismatchSum int) float64 {
	return float64(totalMismatchSum-consensusMismatchSum) / 10.0
}

// newIndelCall describes the indel of c, which must hold one.
func newIndelCall(w Window, c *Consensus, improvement float64) *IndelCall {
	position := c.RefIdx
	var indelIdx int
	for indelIdx = range c.Cigar {
		if c.Cigar[indelIdx].Op == 'I' || c.Cigar[indelIdx].Op == 'D' {
			break
		}
		position += c.Cigar[indelIdx].RunLength
	}
	indel := c.Cigar[indelIdx]

	var bases []dna.Base
	if indel.Op == 'D' {
		bases = w.Seq[position : position+indel.RunLength]
	} else {
		bases = c.Seq[position : position+indel.RunLength]
	}
	return &IndelCall{
		Chrom:       w.Chrom,
		Pos:         w.Start + position,
		Length:      indel.RunLength,
		Op:          indel.Op,
		Bases:       dna.BasesToString(bases),
		Improvement: improvement,
	}
}
