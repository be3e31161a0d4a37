package realign

import (
	"errors"
	"github.com/vertgenlab/gonomics/cigar"
	"github.com/vertgenlab/gonomics/dna"
	"testing"
)

func TestPlaceOnConsensus(t *testing.T) {
	var start int
	var c []cigar.Cigar
	var err error

	check := func(altCigar string, altRefIdx, posOnAlt, readLen, expStart int, expCigar string) {
		start, c, err = placeOnConsensus(cigar.FromString(altCigar), altRefIdx, posOnAlt, readLen)
		if err != nil {
			t.Errorf("placing read at %d on %s: unexpected error %s", posOnAlt, altCigar, err)
			return
		}
		if start != expStart || cigar.ToString(c) != expCigar {
			t.Errorf("placing read at %d on %s: expected %d %s, found %d %s", posOnAlt, altCigar, expStart, expCigar, start, cigar.ToString(c))
		}
		if queryLength(c) != readLen {
			t.Errorf("placing read at %d on %s: cigar %s does not consume %d bases", posOnAlt, altCigar, cigar.ToString(c), readLen)
		}
	}

	check("14M3D10M", 10, 4, 24, 4, "20M3D4M") // spans deletion
	check("14M3D10M", 10, 2, 10, 2, "10M")     // ends before deletion
	check("14M3D10M", 10, 30, 10, 33, "10M")   // starts after deletion
	check("5M2I5M", 0, 3, 6, 3, "2M2I2M")      // spans insertion
	check("5M2I5M", 0, 3, 3, 3, "2M1I")        // ends inside insertion
	check("5M2I5M", 0, 5, 6, 5, "2I4M")        // starts at the insertion
	check("5M2I5M", 0, 6, 4, 5, "1I3M")        // starts inside insertion
	check("5M2I5M", 0, 8, 4, 6, "4M")          // starts after insertion
	check("2I5M", 3, 0, 6, 0, "3M2I1M")        // consensus starting with the insertion
	check("12M", 0, 7, 5, 7, "5M")             // no indel

	if _, _, err = placeOnConsensus(cigar.FromString("5M2I5M"), 0, 5, 2); !errors.Is(err, ErrReadInsideInsertion) {
		t.Errorf("expected ErrReadInsideInsertion, found %v", err)
	}
	if _, _, err = placeOnConsensus(cigar.FromString("2D5M"), 0, 0, 5); !errors.Is(err, ErrUnsupportedCigar) {
		t.Errorf("expected ErrUnsupportedCigar, found %v", err)
	}
	if _, _, err = placeOnConsensus(cigar.FromString("5M5M"), 0, 0, 5); !errors.Is(err, ErrUnsupportedCigar) {
		t.Errorf("expected ErrUnsupportedCigar, found %v", err)
	}
}

func TestFinalize(t *testing.T) {
	s := newTestRead("read", 11, "10M", "ACGTACGTAC")
	ans := Finalize(s, Proposal{Start: 14, Cigar: cigar.FromString("4M2D6M")})
	if ans.Pos != 15 || cigar.ToString(ans.Cigar) != "4M2D6M" {
		t.Errorf("expected 15 4M2D6M, found %d %s", ans.Pos, cigar.ToString(ans.Cigar))
	}
	if s.Pos != 11 || cigar.ToString(s.Cigar) != "10M" {
		t.Error("original read was modified")
	}

	// forward mate: insert size shrinks as the start moves right
	s.Flag = flagPaired
	s.TLen = 300
	ans = Finalize(s, Proposal{Start: 14, Cigar: cigar.FromString("4M2D6M")})
	if ans.TLen != 296 {
		t.Errorf("expected TLen 296, found %d", ans.TLen)
	}

	// reverse mate: insert size follows the end, 20 before and 26 after
	s.TLen = -300
	ans = Finalize(s, Proposal{Start: 14, Cigar: cigar.FromString("4M2D6M")})
	if ans.TLen != -306 {
		t.Errorf("expected TLen -306, found %d", ans.TLen)
	}
}

func TestBoostMapQ(t *testing.T) {
	s := newTestRead("read", 1, "4M", "ACGT")
	boostMapQ(&s, 87)
	if s.MapQ != 68 {
		t.Errorf("expected 68, found %d", s.MapQ)
	}
	s.MapQ = 250
	boostMapQ(&s, 120)
	if s.MapQ != 255 {
		t.Errorf("expected mapq to be capped at 255, found %d", s.MapQ)
	}
}

func TestEditDistance(t *testing.T) {
	w := Window{Chrom: "chr1", Start: 100, Seq: dna.StringToBases("ACGTACGTACGT")}

	s := newTestRead("read", 102, "3M2D3M", "CGTGTC")
	if d := editDistance(&s, w); d != 3 {
		t.Errorf("expected 3, found %d", d)
	}

	s = newTestRead("read", 101, "2M1I3M", "ACTGTA")
	if d := editDistance(&s, w); d != 1 {
		t.Errorf("expected 1, found %d", d)
	}

	setEditDistanceTag(&s, 1)
	if s.Extra != "NM:i:1" {
		t.Errorf("expected NM:i:1, found %s", s.Extra)
	}

	s.Extra = "RG:Z:grp1\tNM:i:0\tMD:Z:6\tXS:i:20"
	setEditDistanceTag(&s, 1)
	if s.Extra != "RG:Z:grp1\tXS:i:20\tNM:i:1" {
		t.Errorf("expected other tags to be kept, found %s", s.Extra)
	}
}

func TestPending(t *testing.T) {
	s := newTestRead("read", 11, "10M", "ACGTACGTAC")
	r := &alignedRead{read: &s}
	if r.pending() != nil {
		t.Error("read without proposals should have nothing pending")
	}

	r.leftAligned = &Proposal{Start: 10, Cigar: cigar.FromString("10M")}
	if r.pending() != nil {
		t.Error("proposal identical to the read should not be pending")
	}

	r.cleaned = &Proposal{Start: 12, Cigar: cigar.FromString("10M")}
	if p := r.pending(); p == nil || p.Start != 12 {
		t.Error("cleaned proposal should take precedence")
	}
}
