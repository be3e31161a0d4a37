package clean

import (
	"github.com/dasnellings/indelTools/fai"
	"github.com/dasnellings/indelTools/realign"
	"github.com/dasnellings/indelTools/report"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fasta"
	"github.com/vertgenlab/gonomics/fileio"
	"github.com/vertgenlab/gonomics/sam"
	"log"
)

// Options holds the parts of a cleaning run that do not affect how a window is cleaned.
type Options struct {
	IndelsFile  string // indels found in clean windows, one per line
	StatsFile   string // decision for every window
	SnpsFile    string // originally mismatching columns of clean windows
	PlotFile    string // histogram of window improvement scores
	WindowPad   int    // reference bases added to either side of each interval
	CleanedOnly bool   // only write reads that were changed
	Verbose     int
}

// Clean realigns the reads of the coordinate sorted bam file input around indels in each interval
// of the bed file intervals and writes all reads to output. reference must be indexed.
func Clean(input, output, reference, intervals string, s realign.Settings, o Options) report.Summary {
	var err error
	reads, header := sam.GoReadToChan(input)
	if len(header.Metadata.SortOrder) == 0 || header.Metadata.SortOrder[0] != sam.Coordinate {
		log.Fatal("ERROR: Input file must be coordinate sorted.")
	}

	idx := fai.ReadIndex(reference + ".fai")
	seeker := fasta.NewSeeker(reference, "")
	windows := readWindows(intervals, idx, o.WindowPad)
	warnMissingChroms(windows, header.Chroms)
	if o.Verbose > 0 {
		log.Printf("Cleaning %d intervals\n", len(windows))
	}

	out := fileio.EasyCreate(output)
	bw := sam.NewBamWriter(out, header)

	e := newEngine(seeker, idx, windows, s, o, func(r sam.Sam) {
		sam.WriteToBamFileHandle(bw, r, 0)
	})
	for r := range reads {
		e.add(r)
	}
	e.close()

	err = bw.Close()
	exception.PanicOnErr(err)
	err = out.Close()
	exception.PanicOnErr(err)
	err = seeker.Close()
	exception.PanicOnErr(err)

	if o.Verbose > 0 {
		log.Printf("Wrote %d reads\n%s", e.sink.emitted, e.summary.String())
		if h := e.summary.Histogram(20); h != "" {
			log.Printf("\n%s\n", h)
		}
	}
	if o.PlotFile != "" {
		if err = e.summary.PlotHistogram(o.PlotFile, 20); err != nil {
			log.Printf("WARNING: could not plot improvement histogram\n%s\n", err)
		}
	}
	return e.summary
}
