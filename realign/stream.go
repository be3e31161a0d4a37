package realign

import (
	"github.com/dasnellings/indelTools/fai"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/fasta"
	"github.com/vertgenlab/gonomics/sam"
	"log"
)

// regionPad is the reference context fetched on either side of a read. A fetched region is reused
// for following reads while they lie at least regionReuseMargin inside it.
const (
	regionPad         int = 1000
	regionReuseMargin int = 200
)

// GoLeftAlign moves the indel of every read holding exactly one indel to its leftmost position.
// Reads are passed through in input order, all other reads unchanged. The output channel is closed
// once reads is drained.
func GoLeftAlign(reads <-chan sam.Sam, ref *fasta.Seeker, idx fai.Index) <-chan sam.Sam {
	output := make(chan sam.Sam, 1000)
	go leftAlignEngine(reads, output, ref, idx)
	return output
}

func leftAlignEngine(in <-chan sam.Sam, out chan<- sam.Sam, ref *fasta.Seeker, idx fai.Index) {
	var currChrom string
	var currStart, currEnd int
	var currRegion []dna.Base
	var err error

	for r := range in {
		if !hasCigar(&r) || r.Flag&flagUnmapped != 0 || numAlignmentBlocks(r.Cigar) != 2 || numIndels(r.Cigar) != 1 {
			out <- r
			continue
		}

		if r.RName != currChrom || !(r.GetChromStart() >= currStart+regionReuseMargin && r.GetChromEnd() <= currEnd-regionReuseMargin) {
			currStart, currEnd, currRegion, err = getRegion(r, ref, idx)
			if err != nil {
				log.Printf("WARNING: could not fetch reference for read %s. Passing read through unchanged.\n%s\n", r.QName, err)
				currChrom, currStart, currEnd, currRegion = "", 0, 0, nil
				out <- r
				continue
			}
			currChrom = r.RName
			dna.AllToUpper(currRegion)
		}

		out <- leftAlignRead(r, Window{Chrom: currChrom, Start: currStart, Seq: currRegion})
	}
	close(out)
}

// leftAlignRead returns r with its indel moved left against w, or r unchanged if it cannot move.
func leftAlignRead(r sam.Sam, w Window) sam.Sam {
	var readIdx int
	c := r.Cigar
	if c[0].Op == 'S' {
		readIdx = c[0].RunLength
		c = c[1:]
	}
	if len(c) < 2 {
		return r
	}
	moved := LeftAlignIndel(c, w.Seq, r.Seq, r.GetChromStart()-w.Start, readIdx)
	if sameCigar(moved, c) {
		return r
	}
	start, moved := trimLeadingDeletion(r.GetChromStart(), moved)
	if readIdx > 0 {
		moved = append(r.Cigar[:1:1], moved...)
	}
	return Finalize(r, Proposal{Start: start, Cigar: moved})
}

func getRegion(read sam.Sam, ref *fasta.Seeker, idx fai.Index) (start, end int, region []dna.Base, err error) {
	start, end, err = idx.Clamp(read.RName, read.GetChromStart()-regionPad, read.GetChromEnd()+regionPad)
	if err != nil {
		return
	}
	region, err = fasta.SeekByName(ref, read.RName, start, end)
	return
}
