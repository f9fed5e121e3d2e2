package summary

import (
	"faqreport/domain/classify"
	"faqreport/domain/run"

	"github.com/montanaflynn/stats"
)

// Compute derives the descriptive statistics of one classification pass for
// the run manifest: tag counts over surviving rows, bucket sizes over
// produced categories and the overall match rate.
func Compute(res *classify.Result) run.Stats {
	var s run.Stats
	if res == nil {
		return s
	}

	if len(res.TagsPerRow) > 0 {
		tags := make([]float64, len(res.TagsPerRow))
		for i, n := range res.TagsPerRow {
			tags[i] = float64(n)
		}
		s.TagsPerRowMean = mustStat(stats.Mean(tags))
		s.TagsPerRowMedian = mustStat(stats.Median(tags))
		s.TagsPerRowP90 = mustStat(stats.Percentile(tags, 90))

		survived := len(res.TagsPerRow)
		s.MatchRate = float64(survived-res.Unmatched) / float64(survived)
	}

	produced := res.Produced()
	if len(produced) > 0 {
		sizes := make([]float64, len(produced))
		for i, cat := range produced {
			sizes[i] = float64(res.BucketRows(cat))
			if res.BucketRows(cat) > s.RowsPerCategoryMax {
				s.RowsPerCategoryMax = res.BucketRows(cat)
			}
		}
		s.RowsPerCategoryMean = mustStat(stats.Mean(sizes))
	}

	return s
}

// mustStat zeroes out the error cases (empty input) the callers already guard
func mustStat(v float64, err error) float64 {
	if err != nil {
		return 0
	}
	return v
}
