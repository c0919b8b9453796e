package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSkipperAlternates(t *testing.T) {
	for _, tc := range []struct {
		initial   bool
		events    int
		processed int
	}{
		{initial: false, events: 1, processed: 0},
		{initial: false, events: 7, processed: 3},
		{initial: false, events: 8, processed: 4},
		{initial: true, events: 1, processed: 1},
		{initial: true, events: 7, processed: 4},
	} {
		s := NewSkipper(tc.initial)
		processed := 0
		last := -1
		for i := 0; i < tc.events; i++ {
			if s.CanSkipFrame() {
				continue
			}
			if last >= 0 {
				require.Equal(t, 2, i-last, "processed events must alternate")
			}
			last = i
			processed++
		}
		require.Equal(t, tc.processed, processed, "initial=%v events=%d", tc.initial, tc.events)
	}
}
