package fai

import (
	"fmt"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"log"
	"strconv"
	"strings"
)

// Index holds the length of each reference sequence listed in a fasta index, in file order.
type Index struct {
	chroms  []chrOffset    // for search by index
	nameMap map[string]int // maps chr name to index in chroms
}

// String method for Index enables easy writing with the fmt package.
func (idx Index) String() string {
	answer := new(strings.Builder)
	for i := range idx.chroms {
		answer.WriteString(idx.chroms[i].String())
		answer.WriteByte('\n')
	}
	return answer.String()
}

// Size returns the length of chr and false if chr is not in the index.
func (idx Index) Size(chr string) (int, bool) {
	i, found := idx.nameMap[chr]
	if !found {
		return 0, false
	}
	return idx.chroms[i].len, true
}

// Clamp trims the 0-based half-open range start-end so that it lies on chr.
// Returns an error if chr is not in the index or nothing of the range is left.
func (idx Index) Clamp(chr string, start, end int) (int, int, error) {
	size, found := idx.Size(chr)
	if !found {
		return 0, 0, fmt.Errorf("%s not found in fasta index", chr)
	}
	if start < 0 {
		start = 0
	}
	if end > size {
		end = size
	}
	if start >= end {
		return 0, 0, fmt.Errorf("%s:%d-%d lies outside of %s (length %d)", chr, start+1, end, chr, size)
	}
	return start, end, nil
}

// chrOffset has offset information about each reference. Equivalent to one line of a fai file.
type chrOffset struct {
	name         string // Name of this reference sequence
	len          int    // Total length of this reference sequence, in bases
	offset       int    // Offset within the FASTA file of this sequence's first base
	basesPerLine int    // The number of bases on each line
	bytesPerLine int    // The number of bytes in each line, including the newline
}

// String method for chrOffset enables easy writing with the fmt package.
func (c chrOffset) String() string {
	return fmt.Sprintf("%s\t%d\t%d\t%d\t%d", c.name, c.len, c.offset, c.basesPerLine, c.bytesPerLine)
}

// ReadIndex reads a fai index file. Only the first two columns are required,
// so chrom.sizes files are accepted as well.
func ReadIndex(filename string) Index {
	file := fileio.EasyOpen(filename)
	var answer Index
	var curr chrOffset
	var line string
	var col []string
	var done bool
	var err error
	for line, done = fileio.EasyNextRealLine(file); !done; line, done = fileio.EasyNextRealLine(file) {
		col = strings.Split(line, "\t")
		if len(col) != 5 && len(col) != 2 {
			log.Fatalf("ERROR: malformed index file: %s\nerror on line:\n%s\n", filename, line)
		}

		curr = chrOffset{name: col[0]}
		curr.len, err = strconv.Atoi(col[1])
		exception.PanicOnErr(err)
		if len(col) == 5 {
			curr.offset, err = strconv.Atoi(col[2])
			exception.PanicOnErr(err)
			curr.basesPerLine, err = strconv.Atoi(col[3])
			exception.PanicOnErr(err)
			curr.bytesPerLine, err = strconv.Atoi(col[4])
			exception.PanicOnErr(err)
		}

		answer.chroms = append(answer.chroms, curr)
	}

	err = file.Close()
	exception.PanicOnErr(err)

	answer.nameMap = make(map[string]int)
	for i := range answer.chroms {
		answer.nameMap[answer.chroms[i].name] = i
	}
	return answer
}
