package history

import "github.com/vijay-prabhu/subjectline/internal/analyzer"

// Score bands used by Summarize
const (
	StrongScore = 70
	WeakScore   = 40
)

// Stats summarizes a set of analyses
type Stats struct {
	Count   int              `json:"count"`
	Average float64          `json:"average"`
	Strong  int              `json:"strong"`
	Weak    int              `json:"weak"`
	Best    *analyzer.Result `json:"best,omitempty"`
	Worst   *analyzer.Result `json:"worst,omitempty"`
}

// Summarize computes stats over results, which are expected newest first.
// Ties for best or worst go to the newest result.
func Summarize(results []analyzer.Result) Stats {
	var stats Stats
	if len(results) == 0 {
		return stats
	}

	total := 0
	for i := range results {
		r := &results[i]
		total += r.Score

		switch {
		case r.Score >= StrongScore:
			stats.Strong++
		case r.Score < WeakScore:
			stats.Weak++
		}

		if stats.Best == nil || r.Score > stats.Best.Score {
			stats.Best = r
		}
		if stats.Worst == nil || r.Score < stats.Worst.Score {
			stats.Worst = r
		}
	}

	stats.Count = len(results)
	stats.Average = float64(total) / float64(len(results))
	return stats
}
