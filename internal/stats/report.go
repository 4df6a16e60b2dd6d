package stats

import (
	"context"
	"time"

	"github.com/verte-zerg/nihongo/internal/model"
)

// ResultLister reads stored quiz results.
type ResultLister interface {
	ListResults(ctx context.Context, category model.Category, since *time.Time) ([]model.ResultRecord, error)
}

// Report contains precomputed data for history rendering.
type Report struct {
	Records []model.ResultRecord
	Window  []model.ResultRecord
}

// BuildReport loads results for category (all when empty), keeps the last
// `last` of them when last > 0, and marks the trailing `window` records.
func BuildReport(ctx context.Context, lister ResultLister, category model.Category, since *time.Time, last, window int) (Report, error) {
	records, err := lister.ListResults(ctx, category, since)
	if err != nil {
		return Report{}, err
	}
	if last > 0 && len(records) > last {
		records = records[len(records)-last:]
	}
	windowed := records
	if window > 0 && len(records) > window {
		windowed = records[len(records)-window:]
	}
	return Report{Records: records, Window: windowed}, nil
}
