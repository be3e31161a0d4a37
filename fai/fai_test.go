package fai

import (
	"testing"
)

func TestReadIndex(t *testing.T) {
	idx := ReadIndex("testdata/test.fa.fai")
	expected := "chr1\t60\t6\t20\t21\nchr2\t25\t75\t20\t21\n"
	if idx.String() != expected {
		t.Errorf("problem reading index. expected:\n%s\nreceived:\n%s", expected, idx.String())
	}

	size, found := idx.Size("chr2")
	if !found || size != 25 {
		t.Errorf("expected chr2 to have length 25, found %d (present: %v)", size, found)
	}
	if _, found = idx.Size("chr3"); found {
		t.Error("chr3 should not be in the index")
	}
}

func TestClamp(t *testing.T) {
	idx := ReadIndex("testdata/test.fa.fai")

	start, end, err := idx.Clamp("chr1", -10, 80)
	if err != nil || start != 0 || end != 60 {
		t.Errorf("expected 0-60, found %d-%d (%v)", start, end, err)
	}

	start, end, err = idx.Clamp("chr2", 5, 10)
	if err != nil || start != 5 || end != 10 {
		t.Errorf("expected 5-10, found %d-%d (%v)", start, end, err)
	}

	if _, _, err = idx.Clamp("chr2", 30, 40); err == nil {
		t.Error("expected error for range past the end of chr2")
	}
	if _, _, err = idx.Clamp("chrX", 0, 10); err == nil {
		t.Error("expected error for missing chromosome")
	}
}
