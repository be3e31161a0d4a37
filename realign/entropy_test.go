package realign

import (
	"github.com/vertgenlab/gonomics/cigar"
	"github.com/vertgenlab/gonomics/dna"
	"testing"
)

func TestColumnCallString(t *testing.T) {
	if s := (ColumnCall{Chrom: "chr2", Pos: 15, StillMismatch: true}).String(); s != "chr2:15 SAME_SNP" {
		t.Errorf("expected chr2:15 SAME_SNP, found %s", s)
	}
	if s := (ColumnCall{Chrom: "chr2", Pos: 15}).String(); s != "chr2:15 NOT_SNP" {
		t.Errorf("expected chr2:15 NOT_SNP, found %s", s)
	}
}

func TestReducesEntropy(t *testing.T) {
	w := Window{Chrom: "chr1", Start: 50, Seq: dna.StringToBases("ACGTACGTAC")}
	s := newTestRead("read", 51, "10M", "ACGTACGTTT")
	r := &alignedRead{read: &s, quals: baseQuals(&s)}
	reads := []*alignedRead{r}

	// nothing proposed, so no column changes
	reduces, calls := reducesEntropy(reads, w, 0.15)
	if !reduces || len(calls) != 0 {
		t.Errorf("expected true with no calls, found %v with %d calls", reduces, len(calls))
	}

	// moving the mismatching bases into an insertion leaves the columns uncovered, which still counts as mismatching
	r.cleaned = &Proposal{Start: 50, Cigar: cigar.FromString("8M2I")}
	reduces, calls = reducesEntropy(reads, w, 0.15)
	if reduces {
		t.Error("uncovered columns should not reduce entropy")
	}
	if len(calls) != 2 || calls[0].String() != "chr1:59 SAME_SNP" || calls[1].String() != "chr1:60 SAME_SNP" {
		t.Errorf("unexpected column calls: %v", calls)
	}

	// reads with more than one block do not take part
	s2 := newTestRead("read2", 51, "5M1D4M", "ACGTAGTTT")
	r2 := &alignedRead{read: &s2, quals: baseQuals(&s2), cleaned: &Proposal{Start: 52, Cigar: cigar.FromString("9M")}}
	reduces, calls = reducesEntropy([]*alignedRead{r2}, w, 0.15)
	if !reduces || len(calls) != 0 {
		t.Errorf("expected true with no calls, found %v with %d calls", reduces, len(calls))
	}
}
