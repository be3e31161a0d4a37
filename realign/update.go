package realign

import (
	"errors"
	"fmt"
	"github.com/vertgenlab/gonomics/cigar"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/numbers"
	"github.com/vertgenlab/gonomics/sam"
	"strings"
)

var (
	// ErrUnsupportedCigar is returned when a consensus cigar does not start with M then I/D, or I then M.
	ErrUnsupportedCigar = errors.New("unsupported consensus cigar")
	// ErrReadInsideInsertion is returned when a read lies entirely within inserted sequence and has no reference position.
	ErrReadInsideInsertion = errors.New("read lies inside insertion")
)

const (
	flagPaired    uint16 = 0x1
	flagUnmapped  uint16 = 0x4
	flagDuplicate uint16 = 0x400
)

// Proposal is a new placement for a read.
type Proposal struct {
	Start int // 0-based genomic start
	Cigar []cigar.Cigar
}

// alignedRead wraps a read under consideration. The read itself is never modified; placements are
// held as proposals until the window is finalized.
type alignedRead struct {
	read        *sam.Sam
	quals       []uint8
	refScore    int       // mismatch quality sum against the window at the original position
	leftAligned *Proposal // indel moved to its leftmost position, nil if unchanged
	cleaned     *Proposal // placement on the accepted consensus, nil if none
}

func (r *alignedRead) duplicate() bool {
	return r.read.Flag&flagDuplicate != 0
}

// current returns the placement the read would have if the window were finalized now.
func (r *alignedRead) current() (start int, c []cigar.Cigar) {
	switch {
	case r.cleaned != nil:
		return r.cleaned.Start, r.cleaned.Cigar
	case r.leftAligned != nil:
		return r.leftAligned.Start, r.leftAligned.Cigar
	default:
		return r.read.GetChromStart(), r.read.Cigar
	}
}

// pending returns the proposal that would be committed, or nil if the read stays as it is.
func (r *alignedRead) pending() *Proposal {
	var p *Proposal
	switch {
	case r.cleaned != nil:
		p = r.cleaned
	case r.leftAligned != nil:
		p = r.leftAligned
	default:
		return nil
	}
	if p.Start == r.read.GetChromStart() && sameCigar(p.Cigar, r.read.Cigar) {
		return nil
	}
	return p
}

// placeOnConsensus converts the offset of a read on a consensus into a position and cigar against the
// window. altCigar and altRefIdx describe where the consensus indel sits on the window, posOnAlt is
// the read's 0-based offset on the consensus sequence. The returned start is a 0-based offset on the
// window. The returned cigar always consumes exactly readLen read bases.
func placeOnConsensus(altCigar []cigar.Cigar, altRefIdx, posOnAlt, readLen int) (start int, c []cigar.Cigar, err error) {
	if len(altCigar) == 1 {
		return posOnAlt, []cigar.Cigar{{RunLength: readLen, Op: 'M'}}, nil
	}
	if len(altCigar) == 0 {
		return 0, nil, ErrUnsupportedCigar
	}

	var indel cigar.Cigar
	var leadingMatch int // length of the leading M, 0 if the consensus cigar starts with the insertion
	switch altCigar[0].Op {
	case 'I':
		if altCigar[1].Op != 'M' {
			return 0, nil, fmt.Errorf("%w: %s", ErrUnsupportedCigar, cigar.ToString(altCigar))
		}
		indel = altCigar[0]
	case 'M':
		if altCigar[1].Op != 'I' && altCigar[1].Op != 'D' {
			return 0, nil, fmt.Errorf("%w: %s", ErrUnsupportedCigar, cigar.ToString(altCigar))
		}
		indel = altCigar[1]
		leadingMatch = altCigar[0].RunLength
	default:
		return 0, nil, fmt.Errorf("%w: %s", ErrUnsupportedCigar, cigar.ToString(altCigar))
	}

	endOfFirstBlock := altRefIdx + leadingMatch
	var sawStart bool

	// read starts before the indel
	if posOnAlt < endOfFirstBlock {
		start = posOnAlt
		sawStart = true
		if posOnAlt+readLen <= endOfFirstBlock {
			return start, []cigar.Cigar{{RunLength: readLen, Op: 'M'}}, nil
		}
		c = append(c, cigar.Cigar{RunLength: endOfFirstBlock - posOnAlt, Op: 'M'})
	}

	var refShift, readShift int
	switch indel.Op {
	case 'I':
		if !sawStart && posOnAlt+readLen <= endOfFirstBlock+indel.RunLength {
			return 0, nil, ErrReadInsideInsertion
		}
		if posOnAlt+readLen < endOfFirstBlock+indel.RunLength { // read ends inside the insertion
			c = append(c, cigar.Cigar{RunLength: posOnAlt + readLen - endOfFirstBlock, Op: 'I'})
			return start, c, nil
		}
		switch {
		case sawStart:
			c = append(c, indel)
		case posOnAlt < endOfFirstBlock+indel.RunLength: // read starts inside the insertion
			start = endOfFirstBlock
			c = append(c, cigar.Cigar{RunLength: indel.RunLength - (posOnAlt - endOfFirstBlock), Op: 'I'})
			sawStart = true
		default:
			readShift = indel.RunLength
		}
	case 'D':
		if sawStart {
			c = append(c, indel)
		}
		refShift = indel.RunLength
	}

	// read starts after the indel
	if !sawStart {
		return posOnAlt + refShift - readShift, []cigar.Cigar{{RunLength: readLen, Op: 'M'}}, nil
	}

	remaining := readLen - queryLength(c)
	if remaining > 0 {
		c = append(c, cigar.Cigar{RunLength: remaining, Op: 'M'})
	}
	return start, c, nil
}

// Finalize returns a copy of s placed according to p. For paired reads the insert size is adjusted by
// however far the end facing the mate moved.
func Finalize(s sam.Sam, p Proposal) sam.Sam {
	newPos := uint32(p.Start + 1)
	newCigar := make([]cigar.Cigar, len(p.Cigar))
	copy(newCigar, p.Cigar)

	if s.Flag&flagPaired != 0 {
		if s.TLen > 0 {
			s.TLen += int32(int(s.Pos) - int(newPos))
			s.Cigar = newCigar
			s.Pos = newPos
		} else {
			oldEnd := s.GetChromEnd()
			s.Cigar = newCigar
			s.Pos = newPos
			s.TLen += int32(oldEnd - s.GetChromEnd())
		}
	} else {
		s.Cigar = newCigar
		s.Pos = newPos
	}
	return s
}

// boostMapQ raises the mapping quality of a cleaned read by a tenth of the window improvement.
func boostMapQ(s *sam.Sam, improvement float64) {
	s.MapQ = uint8(numbers.Min(int(s.MapQ)+int(improvement/10.0), MaxMapQ))
}

// editDistance counts mismatched, inserted and deleted bases of s against the window.
func editDistance(s *sam.Sam, w Window) int {
	var dist int
	refIdx := s.GetChromStart() - w.Start
	var readIdx int
	for _, c := range s.Cigar {
		switch c.Op {
		case 'M', '=', 'X':
			for k := 0; k < c.RunLength; k, refIdx, readIdx = k+1, refIdx+1, readIdx+1 {
				if refIdx < 0 || refIdx >= len(w.Seq) || readIdx >= len(s.Seq) {
					continue
				}
				if dna.ToUpper(s.Seq[readIdx]) != dna.ToUpper(w.Seq[refIdx]) {
					dist++
				}
			}
		case 'I':
			dist += c.RunLength
			readIdx += c.RunLength
		case 'D':
			dist += c.RunLength
			refIdx += c.RunLength
		case 'S':
			readIdx += c.RunLength
		case 'N':
			refIdx += c.RunLength
		}
	}
	return dist
}

// setEditDistanceTag replaces the NM tag of s and drops its MD tag, which no longer describes the alignment.
// All other tags are kept.
func setEditDistanceTag(s *sam.Sam, nm int) {
	if s.Extra == "" {
		sam.ParseExtra(s) // moves unparsed bam tags into Extra, errors only when there are none
	}
	var fields []string
	if s.Extra != "" {
		for _, field := range strings.Split(s.Extra, "\t") {
			if strings.HasPrefix(field, "NM:") || strings.HasPrefix(field, "MD:") {
				continue
			}
			fields = append(fields, field)
		}
	}
	fields = append(fields, fmt.Sprintf("NM:i:%d", nm))
	s.Extra = strings.Join(fields, "\t")
}
