package clean

import (
	"fmt"
	"github.com/dasnellings/indelTools/fai"
	"github.com/dasnellings/indelTools/realign"
	"github.com/dasnellings/indelTools/report"
	"github.com/vertgenlab/gonomics/fasta"
	"github.com/vertgenlab/gonomics/interval"
	"github.com/vertgenlab/gonomics/numbers"
	"github.com/vertgenlab/gonomics/sam"
	"log"
	"math"
	"math/rand"
	"sort"
)

// engine collects coordinate sorted reads into windows, cleans each window once no further read can
// overlap it, and hands every read to the sink exactly once. Every window gets a decision, including
// windows no read reaches.
type engine struct {
	ref         *fasta.Seeker
	idx         fai.Index
	tree        map[string]*interval.IntervalNode
	windows     []*window            // interval file order
	byChrom     map[string][]*window // sorted by end
	next        map[string]int       // first window in byChrom that may still be unfinished
	settings    realign.Settings
	cleanedOnly bool
	verbose     int
	rng         *rand.Rand

	currChrom string
	open      []*window // windows holding reads, in interval file order
	sink      *sink

	indels  *report.Stream
	stats   *report.Stream
	snps    *report.Stream
	summary report.Summary
}

func newEngine(ref *fasta.Seeker, idx fai.Index, windows []*window, s realign.Settings, o Options, emit func(sam.Sam)) *engine {
	cleanedOnly := s.CleanedOnly || o.CleanedOnly
	s.CleanedOnly = false // ownership of reads shared between windows is resolved by index
	byChrom := make(map[string][]*window)
	for _, w := range windows {
		byChrom[w.chrom] = append(byChrom[w.chrom], w)
	}
	for _, ws := range byChrom {
		sort.SliceStable(ws, func(i, j int) bool { return ws[i].end < ws[j].end })
	}
	return &engine{
		ref:         ref,
		idx:         idx,
		tree:        buildTree(windows),
		windows:     windows,
		byChrom:     byChrom,
		next:        make(map[string]int),
		settings:    s,
		cleanedOnly: cleanedOnly,
		verbose:     o.Verbose,
		rng:         rand.New(rand.NewSource(realign.RandomSeed)),
		sink:        newSink(emit),
		indels:      report.Open(o.IndelsFile),
		stats:       report.Open(o.StatsFile),
		snps:        report.Open(o.SnpsFile),
	}
}

// add takes the next read in coordinate order.
func (e *engine) add(r sam.Sam) {
	if r.RName != e.currChrom {
		e.finishAll()
		e.finishEmpty(e.currChrom, math.MaxInt)
		e.sink.flushAll()
		e.currChrom = r.RName
	}

	if bypassesCleaning(&r) {
		e.passThrough(r)
		return
	}

	start := int(r.Pos) - 1
	e.finishBefore(start)
	e.finishEmpty(r.RName, start)

	var hits []*window
	for _, i := range interval.Query(e.tree, r, "any") {
		if w := i.(*window); !w.done {
			hits = append(hits, w)
		}
	}
	if len(hits) == 0 {
		e.passThrough(r)
		e.sink.flush(e.bound(start))
		return
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].order < hits[j].order })
	for i, w := range hits {
		if len(w.reads) == 0 {
			e.openWindow(w)
		}
		w.reads = append(w.reads, r)
		w.owned = append(w.owned, i == 0)
	}
	e.sink.flush(e.bound(start))
}

func (e *engine) passThrough(r sam.Sam) {
	if e.cleanedOnly {
		return
	}
	e.sink.add(r)
}

func (e *engine) openWindow(w *window) {
	i := sort.Search(len(e.open), func(i int) bool { return e.open[i].order > w.order })
	e.open = append(e.open, nil)
	copy(e.open[i+1:], e.open[i:])
	e.open[i] = w
}

// bound returns the leftmost position any read still to be emitted could take: reads are only
// ever moved within their window and later reads start at or after start.
func (e *engine) bound(start int) int {
	for _, w := range e.open {
		start = numbers.Min(start, w.start)
		start = numbers.Min(start, int(w.reads[0].Pos)-1)
	}
	return start
}

// finishBefore cleans every open window that ends at or before the 0-based position start.
func (e *engine) finishBefore(start int) {
	var kept int
	for _, w := range e.open {
		if w.end <= start {
			e.finish(w)
			continue
		}
		e.open[kept] = w
		kept++
	}
	e.open = e.open[:kept]
}

func (e *engine) finishAll() {
	for _, w := range e.open {
		e.finish(w)
	}
	e.open = e.open[:0]
}

// finishEmpty decides the windows on chrom that end at or before the 0-based position before and
// never received a read.
func (e *engine) finishEmpty(chrom string, before int) {
	ws := e.byChrom[chrom]
	i := e.next[chrom]
	for ; i < len(ws) && ws[i].end <= before; i++ {
		if !ws[i].done && len(ws[i].reads) == 0 {
			e.finish(ws[i])
		}
	}
	e.next[chrom] = i
}

// reference fetches the sequence reads of w are cleaned against. It spans the window and every
// base of the reads collected for it.
func (e *engine) reference(w *window) (realign.Window, error) {
	start, end := w.start, w.end
	for i := range w.reads {
		start = numbers.Min(start, w.reads[i].GetChromStart())
		end = numbers.Max(end, w.reads[i].GetChromEnd())
	}
	start, end, err := e.idx.Clamp(w.chrom, start, end)
	if err != nil {
		return realign.Window{}, err
	}
	seq, err := fasta.SeekByName(e.ref, w.chrom, start, end)
	return realign.Window{Chrom: w.chrom, Start: start, Seq: seq}, err
}

// finish cleans w and passes the reads it owns to the sink.
func (e *engine) finish(w *window) {
	w.done = true
	ref := realign.Window{Chrom: w.chrom, Start: w.start}
	if len(w.reads) > 0 {
		var err error
		ref, err = e.reference(w)
		if err != nil {
			log.Printf("WARNING: could not fetch reference for %s. Reads in this window will not be cleaned.\n%s\n", w, err)
			for i := range w.reads {
				if w.owned[i] {
					e.passThrough(w.reads[i])
				}
			}
			w.reads, w.owned = nil, nil
			return
		}
	}

	res := realign.Clean(ref, w.reads, e.settings, e.rng)
	e.summary.Add(res)
	e.stats.WriteLine(fmt.Sprintf("%s\t%s", w, res.Decision()))
	if res.Indel != nil {
		e.indels.WriteLine(res.Indel.String())
	}
	for _, c := range res.Columns {
		e.snps.WriteLine(c.String())
	}
	if e.verbose > 1 {
		log.Printf("%s\t%s\treads: %d\tcleaned: %d\n", w, res.Decision(), len(w.reads), res.Cleaned)
	}

	for i, out := range res.Reads {
		if !w.owned[i] || (e.cleanedOnly && !out.Changed) {
			continue
		}
		e.sink.add(out.Read)
	}
	w.reads, w.owned = nil, nil
}

// close cleans all remaining windows, emits all remaining reads and closes the reports.
func (e *engine) close() {
	e.finishAll()
	e.finishEmpty(e.currChrom, math.MaxInt)
	for _, w := range e.windows {
		if !w.done {
			e.finish(w)
		}
	}
	e.sink.flushAll()
	e.indels.Close()
	e.stats.Close()
	e.snps.Close()
}
