package usecase

import (
	"sort"
	"strings"
	"time"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/entity"
)

// Date layouts the ledger has been observed to hold. SQL-style
// "date time" strings are normalized to the T-separated form first.
var collectionDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// AggregateCollections folds collection history into an ordered
// month-by-province histogram. Records without a parseable date are
// silently dropped. Unknown or empty provinces count as Gauteng; that
// fallback is deliberate, not a bug.
func AggregateCollections(records []entity.CollectionRecord) []entity.MonthlyProvinceCount {
	type bucket struct {
		entity.MonthlyProvinceCount
		sortKey int
	}
	buckets := make(map[string]*bucket)

	for _, record := range records {
		date, ok := parseCollectionDate(record)
		if !ok {
			continue
		}

		label := date.Format("Jan 2006")
		b, exists := buckets[label]
		if !exists {
			b = &bucket{
				MonthlyProvinceCount: entity.MonthlyProvinceCount{Label: label},
				sortKey:              date.Year()*100 + int(date.Month()) - 1,
			}
			buckets[label] = b
		}

		if strings.Contains(strings.ToLower(record.Province), "limpopo") {
			b.Limpopo++
		} else {
			b.Gauteng++
		}
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].sortKey < ordered[j].sortKey
	})

	result := make([]entity.MonthlyProvinceCount, 0, len(ordered))
	for _, b := range ordered {
		result = append(result, b.MonthlyProvinceCount)
	}
	return result
}

// parseCollectionDate takes the record's date from whichever field
// carries one: the ledger date column first, the row insert timestamp
// as a fallback.
func parseCollectionDate(record entity.CollectionRecord) (time.Time, bool) {
	raw := strings.TrimSpace(record.Date)
	if raw == "" {
		if record.CreatedAt.IsZero() {
			return time.Time{}, false
		}
		return record.CreatedAt, true
	}

	// "2025-12-05 06:57:00" -> "2025-12-05T06:57:00"
	raw = strings.Replace(raw, " ", "T", 1)

	for _, layout := range collectionDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CollectionTotals sums a histogram into per-province grand totals.
func CollectionTotals(histogram []entity.MonthlyProvinceCount) (gauteng, limpopo int) {
	for _, b := range histogram {
		gauteng += b.Gauteng
		limpopo += b.Limpopo
	}
	return gauteng, limpopo
}
