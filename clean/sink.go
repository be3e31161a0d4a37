package clean

import (
	"github.com/vertgenlab/gonomics/sam"
	"golang.org/x/exp/slices"
	"sort"
)

// sink holds output reads sorted by alignment start until it is known that no read still to come
// can start before them. Reads in the sink must all be on the same chromosome.
type sink struct {
	buf     []sam.Sam
	emit    func(sam.Sam)
	emitted int
}

func newSink(emit func(sam.Sam)) *sink {
	return &sink{emit: emit}
}

// add places r after any buffered reads with the same start.
func (s *sink) add(r sam.Sam) {
	i := sort.Search(len(s.buf), func(i int) bool { return s.buf[i].Pos > r.Pos })
	s.buf = slices.Insert(s.buf, i, r)
}

// flush emits all reads starting before the 0-based position bound.
func (s *sink) flush(bound int) {
	var i int
	for i = 0; i < len(s.buf) && int(s.buf[i].Pos)-1 < bound; i++ {
		s.emit(s.buf[i])
	}
	s.emitted += i
	s.buf = slices.Delete(s.buf, 0, i)
}

func (s *sink) flushAll() {
	for i := range s.buf {
		s.emit(s.buf[i])
	}
	s.emitted += len(s.buf)
	s.buf = s.buf[:0]
}

func (s *sink) len() int {
	return len(s.buf)
}
