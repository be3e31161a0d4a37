package clean

import (
	"testing"
)

func TestBypassesCleaning(t *testing.T) {
	r := newTestRead("read", 10, "4M", "ACGT")
	if bypassesCleaning(&r) {
		t.Error("mapped primary read should be considered for cleaning")
	}

	unmapped := r
	unmapped.Flag = flagUnmapped
	secondary := r
	secondary.Flag = flagSecondary
	mapQ0 := r
	mapQ0.MapQ = 0
	noStart := r
	noStart.Pos = 0

	for _, s := range []struct {
		name string
		skip bool
	}{
		{"unmapped", bypassesCleaning(&unmapped)},
		{"secondary", bypassesCleaning(&secondary)},
		{"mapQ0", bypassesCleaning(&mapQ0)},
		{"noStart", bypassesCleaning(&noStart)},
	} {
		if !s.skip {
			t.Errorf("%s read should bypass cleaning", s.name)
		}
	}
}
