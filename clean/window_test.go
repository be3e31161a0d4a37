package clean

import (
	"github.com/dasnellings/indelTools/fai"
	"github.com/vertgenlab/gonomics/chromInfo"
	"testing"
)

func TestReadWindows(t *testing.T) {
	windows := readWindows("testdata/intervals.bed", fai.ReadIndex("testdata/ref.fa.fai"), 10)
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, found %d", len(windows))
	}
	if windows[0].String() != "chr1:91-162" || windows[0].order != 0 {
		t.Errorf("expected chr1:91-162, found %s", windows[0])
	}
	if windows[1].String() != "chr1:151-200" || windows[1].order != 1 {
		t.Errorf("expected padding to be clamped to chr1:151-200, found %s", windows[1])
	}
}

func TestCheckChr(t *testing.T) {
	chroms := []chromInfo.ChromInfo{{Name: "chr1"}, {Name: "chr2"}}
	if !checkChr("chr2", chroms) || checkChr("chrUn", chroms) {
		t.Error("problem checking chromosome names")
	}
}
