package clean

import (
	"fmt"
	"github.com/dasnellings/indelTools/fai"
	"github.com/vertgenlab/gonomics/bed"
	"github.com/vertgenlab/gonomics/chromInfo"
	"github.com/vertgenlab/gonomics/interval"
	"github.com/vertgenlab/gonomics/sam"
	"log"
)

// window is a padded interval along with the reads collected for it so far.
type window struct {
	chrom string
	start int // 0-based, padded and clamped to the chromosome
	end   int
	order int // position in the interval file
	done  bool
	reads []sam.Sam
	owned []bool // false for reads that were first collected by an earlier window
}

func (w *window) GetChrom() string {
	return w.chrom
}

func (w *window) GetChromStart() int {
	return w.start
}

func (w *window) GetChromEnd() int {
	return w.end
}

func (w *window) String() string {
	return fmt.Sprintf("%s:%d-%d", w.chrom, w.start+1, w.end)
}

// readWindows reads intervals from a bed file, pads each by pad bases on either side and clamps them
// to the chromosome lengths in idx. Intervals on chromosomes missing from idx are skipped.
func readWindows(filename string, idx fai.Index, pad int) []*window {
	regions := bed.Read(filename)
	windows := make([]*window, 0, len(regions))
	var start, end int
	var err error
	for i := range regions {
		start, end, err = idx.Clamp(regions[i].Chrom, regions[i].ChromStart-pad, regions[i].ChromEnd+pad)
		if err != nil {
			log.Printf("WARNING: skipping interval %s:%d-%d\n%s\n", regions[i].Chrom, regions[i].ChromStart+1, regions[i].ChromEnd, err)
			continue
		}
		windows = append(windows, &window{chrom: regions[i].Chrom, start: start, end: end, order: len(windows)})
	}
	return windows
}

// buildTree indexes windows for overlap queries.
func buildTree(windows []*window) map[string]*interval.IntervalNode {
	intervals := make([]interval.Interval, len(windows))
	for i := range windows {
		intervals[i] = windows[i]
	}
	return interval.BuildTree(intervals)
}

// warnMissingChroms logs every window chromosome that the alignment header does not list.
func warnMissingChroms(windows []*window, chroms []chromInfo.ChromInfo) {
	reported := make(map[string]bool)
	for _, w := range windows {
		if reported[w.chrom] || checkChr(w.chrom, chroms) {
			continue
		}
		reported[w.chrom] = true
		log.Printf("WARNING: %s present in intervals, but not in bam file. Intervals on %s will be skipped.\n", w.chrom, w.chrom)
	}
}

func checkChr(chr string, list []chromInfo.ChromInfo) bool {
	for i := range list {
		if list[i].Name == chr {
			return true
		}
	}
	return false
}
