package report

import (
	"fmt"
	"github.com/vertgenlab/gonomics/fileio"
	"log"
)

// Stream is an optional line oriented output file. A Stream that cannot be created
// or written to logs a single warning and then silently drops all further lines, so
// that report failures never interrupt the main output.
type Stream struct {
	name     string
	out      *fileio.EasyWriter
	disabled bool
}

// Open creates filename for writing. An empty filename returns a Stream that discards everything.
func Open(filename string) *Stream {
	s := &Stream{name: filename}
	if filename == "" {
		s.disabled = true
		return s
	}
	s.out = create(s)
	return s
}

// create opens the file behind s, disabling s instead of panicking if that fails.
func create(s *Stream) (out *fileio.EasyWriter) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("WARNING: could not create %s. Output will not be written.\n%v\n", s.name, r)
			s.disabled = true
			out = nil
		}
	}()
	return fileio.EasyCreate(s.name)
}

// WriteLine writes line followed by a newline.
func (s *Stream) WriteLine(line string) {
	if s == nil || s.disabled {
		return
	}
	if _, err := fmt.Fprintln(s.out, line); err != nil {
		log.Printf("WARNING: problem writing to %s. No further output will be written to this file.\n%s\n", s.name, err)
		s.disabled = true
	}
}

// Enabled reports whether lines written to s will be kept.
func (s *Stream) Enabled() bool {
	return s != nil && !s.disabled
}

// Close flushes and closes the underlying file.
func (s *Stream) Close() {
	if s == nil || s.out == nil {
		return
	}
	if err := s.out.Close(); err != nil {
		log.Printf("WARNING: problem closing %s\n%s\n", s.name, err)
	}
	s.out = nil
	s.disabled = true
}
