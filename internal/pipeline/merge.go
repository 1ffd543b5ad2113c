package pipeline

import "github.com/sells-group/leadgen-cli/internal/model"

// MergeFair interleaves per-sector buckets into a single selection of
// at most limit place ids. Buckets are drained in lockstep one slot at
// a time: round r takes index r from every bucket in input order,
// skipping buckets already exhausted at that index. A sector that runs
// out early simply stops contributing while its peers keep receiving
// slots, so fairness is positional equality per round, not final
// proportional equality.
func MergeFair(buckets [][]model.Candidate, limit int) []string {
	if limit <= 0 {
		return nil
	}

	var selection []string
	for i := 0; ; i++ {
		any := false
		for _, bucket := range buckets {
			if i >= len(bucket) {
				continue
			}
			any = true
			selection = append(selection, bucket[i].PlaceID)
			if len(selection) >= limit {
				return selection
			}
		}
		if !any {
			return selection
		}
	}
}

// PerSectorQuota splits a district limit across sectors, rounding up so
// that the merged selection can always reach the limit. Never below 1.
func PerSectorQuota(limit, sectorCount int) int {
	if sectorCount < 1 {
		sectorCount = 1
	}
	q := (limit + sectorCount - 1) / sectorCount
	if q < 1 {
		q = 1
	}
	return q
}
