package profile

import (
	"fmt"
	"strconv"
	"strings"
)

// debug utilities

func samplePathStringer(sample Sample, sep string) string {
	if len(sample.Frames) == len(sample.Path) && len(sample.Frames) > 0 {
		return strings.Join(sample.Frames, sep)
	}
	parts := make([]string, 0, len(sample.Path))
	for _, sym := range sample.Path {
		parts = append(parts, strconv.FormatUint(sym, 10))
	}
	return strings.Join(parts, sep)
}

// String renders the snapshot one path per line, hottest first.
func (s *Snapshot) String() string {
	var b strings.Builder
	for _, sample := range s.Samples {
		fmt.Fprintf(&b, "%10d  %s\n", sample.Count, samplePathStringer(sample, ";"))
	}
	return b.String()
}
