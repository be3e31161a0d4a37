package realign

import (
	"errors"
	"fmt"
	"github.com/vertgenlab/gonomics/dna"
)

// MaxQual is the penalty charged for each read base that hangs off the end of the sequence it is scored against.
const MaxQual int = 99

// MaxMapQ caps the mapping quality boost given to cleaned reads.
const MaxMapQ int = 255

// RandomSeed seeds the source used to subsample reads when there are too many to align.
const RandomSeed int64 = 1252863495

// fraction of mismatches that need to no longer mismatch for a column to be considered cleaned
const mismatchColumnCleanedFraction float64 = 0.75

// Alignment scores used to discover indels in reads without an existing single indel.
// Favors few long gaps over many short ones.
const (
	swMatch     int = 30
	swMismatch  int = -10
	swGapOpen   int = -10
	swGapExtend int = -2
)

// Settings holds the parameters that control when a window gets cleaned.
type Settings struct {
	LodThreshold           float64 // minimum improvement (in tenths of summed base quality) to clean a window
	EntropyThreshold       float64 // fraction of quality-weighted mismatches for a column to be considered high entropy
	MaxConsensuses         int     // max alternate consensuses to try when reads are subsampled
	MaxReadsForConsensuses int     // max reads aligned to find alternate consensuses
	CleanedOnly            bool    // only return reads that were changed
}

// DefaultSettings returns the settings used when none are specified on the command line.
func DefaultSettings() Settings {
	return Settings{
		LodThreshold:           5.0,
		EntropyThreshold:       0.15,
		MaxConsensuses:         30,
		MaxReadsForConsensuses: 120,
	}
}

// Validate checks that the settings describe a usable configuration.
func (s Settings) Validate() error {
	if s.LodThreshold < 0 {
		return errors.New("LOD threshold cannot be a negative number")
	}
	if s.EntropyThreshold <= 0 || s.EntropyThreshold > 1 {
		return errors.New("entropy threshold must be a fraction between 0 and 1")
	}
	if s.MaxConsensuses < 1 {
		return fmt.Errorf("maxConsensuses must be >= 1, found %d", s.MaxConsensuses)
	}
	if s.MaxReadsForConsensuses < 1 {
		return fmt.Errorf("maxReadsForConsensuses must be >= 1, found %d", s.MaxReadsForConsensuses)
	}
	return nil
}

// Window is the reference sequence reads are cleaned against.
type Window struct {
	Chrom string
	Start int // 0-based genomic coordinate of Seq[0]
	Seq   []dna.Base
}

// End returns the 0-based, open genomic coordinate of the end of the window.
func (w Window) End() int {
	return w.Start + len(w.Seq)
}

// String formats the window as chrom:start-end in 1-based closed coordinates.
func (w Window) String() string {
	return fmt.Sprintf("%s:%d-%d", w.Chrom, w.Start+1, w.End())
}
