package realign

import (
	"github.com/vertgenlab/gonomics/dna"
	"testing"
)

func TestMismatchQualitySum(t *testing.T) {
	read := dna.StringToBases("ACGT")
	quals := []uint8{30, 30, 30, 30}

	if sum := mismatchQualitySum(read, quals, dna.StringToBases("ACGA"), 0); sum != 30 {
		t.Errorf("expected 30, found %d", sum)
	}

	// first base hangs off the left end, the rest are all shifted
	if sum := mismatchQualitySum(read, quals, dna.StringToBases("ACGA"), -1); sum != MaxQual+90 {
		t.Errorf("expected %d, found %d", MaxQual+90, sum)
	}

	// last two bases hang off the right end
	if sum := mismatchQualitySum(read, quals, dna.StringToBases("ACGA"), 2); sum != 2*MaxQual+60 {
		t.Errorf("expected %d, found %d", 2*MaxQual+60, sum)
	}

	// ambiguous bases and case differences are free
	if sum := mismatchQualitySum(dna.StringToBases("aNGT"), quals, dna.StringToBases("ACNT"), 0); sum != 0 {
		t.Errorf("expected 0, found %d", sum)
	}
}

func TestFindBestOffset(t *testing.T) {
	quals := []uint8{30, 30, 30, 30, 30, 30, 30}

	offset, score := findBestOffset(dna.StringToBases("TTTTACGTACCCGGG"), dna.StringToBases("ACGTACC"), quals)
	if offset != 4 || score != 0 {
		t.Errorf("expected offset 4 score 0, found offset %d score %d", offset, score)
	}

	// equal scores keep the leftmost offset
	offset, score = findBestOffset(dna.StringToBases("ACTTACTT"), dna.StringToBases("ACG"), quals[:3])
	if offset != 0 || score != 30 {
		t.Errorf("expected offset 0 score 30, found offset %d score %d", offset, score)
	}

	// last possible offset is searched
	offset, score = findBestOffset(dna.StringToBases("TTTTTTTTTTTTTTTTTACG"), dna.StringToBases("ACG"), quals[:3])
	if offset != 17 || score != 0 {
		t.Errorf("expected offset 17 score 0, found offset %d score %d", offset, score)
	}

	// 20 base sequence, 10 base read found at the last of 11 offsets
	quals10 := []uint8{30, 30, 30, 30, 30, 30, 30, 30, 30, 30}
	offset, score = findBestOffset(dna.StringToBases("GGGGGGGGGGACGTACGTAC"), dna.StringToBases("ACGTACGTAC"), quals10)
	if offset != 10 || score != 0 {
		t.Errorf("expected offset 10 score 0, found offset %d score %d", offset, score)
	}

	// sequence shorter than the read
	offset, score = findBestOffset(dna.StringToBases("ACG"), dna.StringToBases("ACGT"), quals[:4])
	if offset != 0 || score != MaxQual {
		t.Errorf("expected offset 0 score %d, found offset %d score %d", MaxQual, offset, score)
	}
}
