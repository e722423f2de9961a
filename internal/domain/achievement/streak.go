package achievement

import (
	"time"

	"github.com/jobtrackr/backend/pkg/dateutil"
	"golang.org/x/exp/slices"
)

// StreakResult is the outcome of a full recomputation over the distinct
// activity days. Nothing here is patched incrementally; drift is impossible
// because every cycle starts from the raw dates.
type StreakResult struct {
	Current int
	Longest int

	LastActivity time.Time
	StreakStart  time.Time
}

// CalculateStreak computes the current and longest runs of consecutive
// calendar days. The input days must already be truncated to midnight in a
// single reference timezone; duplicates collapse to one.
func CalculateStreak(days []time.Time) StreakResult {
	if len(days) == 0 {
		return StreakResult{}
	}

	distinct := make([]time.Time, 0, len(days))
	seen := map[time.Time]struct{}{}
	for _, day := range days {
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		distinct = append(distinct, day)
	}

	// Most recent first.
	slices.SortFunc(distinct, func(a, b time.Time) bool { return a.After(b) })

	result := StreakResult{
		Current:      1,
		LastActivity: distinct[0],
		StreakStart:  distinct[0],
	}

	// The current streak is the run starting at the most recent day.
	current := 1
	onCurrentRun := true

	longest := 1
	run := 1

	for i := 1; i < len(distinct); i++ {
		if dateutil.IsPreviousDay(distinct[i], distinct[i-1]) {
			run++
			if onCurrentRun {
				current++
				result.StreakStart = distinct[i]
			}
		} else {
			onCurrentRun = false
			run = 1
		}

		if run > longest {
			longest = run
		}
	}

	result.Current = current
	result.Longest = longest
	return result
}
