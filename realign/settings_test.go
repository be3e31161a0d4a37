package realign

import (
	"github.com/vertgenlab/gonomics/dna"
	"testing"
)

func TestValidate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Errorf("default settings should be valid: %s", err)
	}

	s := DefaultSettings()
	s.LodThreshold = -1
	if s.Validate() == nil {
		t.Error("negative LOD should be rejected")
	}

	s = DefaultSettings()
	s.EntropyThreshold = 0
	if s.Validate() == nil {
		t.Error("zero entropy threshold should be rejected")
	}

	s = DefaultSettings()
	s.MaxConsensuses = 0
	if s.Validate() == nil {
		t.Error("zero max consensuses should be rejected")
	}

	s = DefaultSettings()
	s.MaxReadsForConsensuses = 0
	if s.Validate() == nil {
		t.Error("zero max reads should be rejected")
	}
}

func TestWindowString(t *testing.T) {
	w := Window{Chrom: "chr3", Start: 99, Seq: dna.StringToBases("ACGTACGTAC")}
	if w.String() != "chr3:100-109" || w.End() != 109 {
		t.Errorf("expected chr3:100-109, found %s", w.String())
	}
}
