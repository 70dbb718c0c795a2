package history

import (
	"sort"

	"github.com/ngmaloney/poseidon/internal/models"
)

// SuccessRate is the fraction of matching outings with a positive count.
// An empty species matches every species. No matching records gives 0.
func SuccessRate(recs []models.CatchRecord, area, species string) float64 {
	f := Filter{Area: area, Species: species}
	total, successes := 0, 0
	for _, r := range recs {
		if !f.Match(r) {
			continue
		}
		total++
		if r.Success() {
			successes++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(successes) / float64(total)
}

// SeriesPoint is one date in a success-rate time series
type SeriesPoint struct {
	Date           string
	Outings        int
	Successes      int
	Rate           float64
	CumulativeRate float64
}

// SuccessSeries groups matching records by date in ascending order,
// giving the rate for each date and the running rate up to it.
// Records with unparsable dates are skipped.
func SuccessSeries(recs []models.CatchRecord, area, species string) []SeriesPoint {
	f := Filter{Area: area, Species: species}
	byDate := make(map[string]*SeriesPoint)
	for _, r := range recs {
		if !f.Match(r) {
			continue
		}
		day, err := r.Day()
		if err != nil {
			continue
		}
		key := day.Format(models.DateLayout)
		p, ok := byDate[key]
		if !ok {
			p = &SeriesPoint{Date: key}
			byDate[key] = p
		}
		p.Outings++
		if r.Success() {
			p.Successes++
		}
	}

	series := make([]SeriesPoint, 0, len(byDate))
	for _, p := range byDate {
		series = append(series, *p)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })

	outings, successes := 0, 0
	for i := range series {
		p := &series[i]
		p.Rate = float64(p.Successes) / float64(p.Outings)
		outings += p.Outings
		successes += p.Successes
		p.CumulativeRate = float64(successes) / float64(outings)
	}
	return series
}

// SpeciesSeen lists the distinct species in recs in first-seen order
func SpeciesSeen(recs []models.CatchRecord) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range recs {
		if r.Species == "" || seen[r.Species] {
			continue
		}
		seen[r.Species] = true
		out = append(out, r.Species)
	}
	return out
}
