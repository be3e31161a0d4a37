package realign

import (
	"github.com/vertgenlab/gonomics/cigar"
	"github.com/vertgenlab/gonomics/dna"
	"testing"
)

func TestLeftAlignIndel(t *testing.T) {
	ref := dna.StringToBases("CCTATATATAGG")
	read := dna.StringToBases("CCTATATAGG")

	// any AT deleted from the repeat moves to the leftmost copy
	for _, c := range []string{"6M2D4M", "4M2D6M", "2M2D8M"} {
		ans := cigar.ToString(LeftAlignIndel(cigar.FromString(c), ref, read, 0, 0))
		if ans != "2M2D8M" {
			t.Errorf("left aligning %s: expected 2M2D8M, found %s", c, ans)
		}
	}

	// deleting any AT from TATATATA reports the first one
	for _, c := range []string{"1M2D5M", "3M2D3M", "5M2D1M"} {
		ans := cigar.ToString(LeftAlignIndel(cigar.FromString(c), dna.StringToBases("TATATATA"), dna.StringToBases("TATATA"), 0, 0))
		if ans != "1M2D5M" {
			t.Errorf("left aligning %s in TATATATA: expected 1M2D5M, found %s", c, ans)
		}
	}

	// insertion in a homopolymer
	ans := cigar.ToString(LeftAlignIndel(cigar.FromString("5M1I2M"), dna.StringToBases("ACCCCGT"), dna.StringToBases("ACCCCCGT"), 0, 0))
	if ans != "1M1I6M" {
		t.Errorf("expected 1M1I6M, found %s", ans)
	}

	// indel at the end of the alignment gains a trailing match
	ans = cigar.ToString(LeftAlignIndel(cigar.FromString("5M1I"), dna.StringToBases("ACCCCG"), dna.StringToBases("ACCCCC"), 0, 0))
	if ans != "1M1I4M" {
		t.Errorf("expected 1M1I4M, found %s", ans)
	}

	// indel that can reach the start of the alignment drops the empty leading match
	ans = cigar.ToString(LeftAlignIndel(cigar.FromString("2M2D4M"), dna.StringToBases("TATATAGG"), dna.StringToBases("TATAGG"), 0, 0))
	if ans != "2D6M" {
		t.Errorf("expected 2D6M, found %s", ans)
	}

	// offsets on the reference are respected
	ans = cigar.ToString(LeftAlignIndel(cigar.FromString("4M2D4M"), ref, dna.StringToBases("TATATAGG"), 2, 0))
	if ans != "2D8M" {
		t.Errorf("expected 2D8M, found %s", ans)
	}

	// nothing to move
	ans = cigar.ToString(LeftAlignIndel(cigar.FromString("3M1D3M"), dna.StringToBases("ACGTACG"), dna.StringToBases("ACGACG"), 0, 0))
	if ans != "3M1D3M" {
		t.Errorf("expected 3M1D3M, found %s", ans)
	}

	// only alignments starting with a match are moved
	ans = cigar.ToString(LeftAlignIndel(cigar.FromString("2S4M2D4M"), ref, dna.StringToBases("GGTATATAGG"), 0, 0))
	if ans != "2S4M2D4M" {
		t.Errorf("expected 2S4M2D4M, found %s", ans)
	}
}
