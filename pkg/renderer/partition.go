package renderer

// RowRange is a contiguous half-open range of image rows [Start, End).
// Row 0 is the bottom of the image.
type RowRange struct {
	Start int
	End   int
}

// Len returns the number of rows in the range
func (r RowRange) Len() int {
	return r.End - r.Start
}

// PartitionRows splits height rows into jobs contiguous ranges that cover
// every row exactly once. Ranges are ordered from the top of the image
// down and differ in size by at most one row. The job count is clamped to
// [1, height]; a non-positive height yields no ranges.
func PartitionRows(height, jobs int) []RowRange {
	if height <= 0 {
		return nil
	}
	jobs = max(1, min(jobs, height))

	base := height / jobs
	extra := height % jobs

	ranges := make([]RowRange, 0, jobs)
	end := height
	for i := 0; i < jobs; i++ {
		size := base
		if i < extra {
			size++
		}
		ranges = append(ranges, RowRange{Start: end - size, End: end})
		end -= size
	}
	return ranges
}
