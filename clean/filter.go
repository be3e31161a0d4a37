package clean

import (
	"github.com/vertgenlab/gonomics/sam"
)

const (
	flagUnmapped  uint16 = 0x4
	flagSecondary uint16 = 0x100
)

// bypassesCleaning reports whether r goes straight to the output without being considered for
// cleaning: unmapped, secondary and mapping quality zero reads, and reads without an alignment start.
func bypassesCleaning(r *sam.Sam) bool {
	switch {
	case r.Flag&flagUnmapped != 0:
		return true
	case r.Flag&flagSecondary != 0:
		return true
	case r.MapQ == 0:
		return true
	case r.Pos == 0 || r.RName == "*" || r.RName == "":
		return true
	default:
		return false
	}
}
