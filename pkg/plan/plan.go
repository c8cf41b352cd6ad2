// Package plan builds the in-memory copy plan for a photosort run
package plan

import (
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

// 📅 DateBucket is the (year, YYYY-MM-DD) pair a file is filed under. It is
// always derived from a file's modification timestamp in local time and
// never stored independently.
type DateBucket struct {
	Year int    // e.g. 2022
	Date string // e.g. "2022-03-01"
}

// 🏭 NewDateBucket derives a bucket from a timestamp
func NewDateBucket(t time.Time) DateBucket {
	return DateBucket{
		Year: t.Year(),
		Date: t.Format("2006-01-02"),
	}
}

// 📁 Dir returns the destination directory for this bucket
func (b DateBucket) Dir(destRoot string) string {
	return filepath.Join(destRoot, strconv.Itoa(b.Year), b.Date)
}

// 📋 Plan is the planner's output: the directories that must exist and the
// file copies to perform. It is built in one pass, never mutated after
// construction, and discarded after the run.
type Plan struct {
	// Directories maps year to the set of date strings under it. Every
	// entry corresponds to at least one planned copy.
	Directories map[int]map[string]struct{}

	// Files maps each absolute source path to its absolute destination
	// path, of the form destRoot/year/YYYY-MM-DD/filename.
	Files map[string]string
}

// 🏭 NewPlan creates an empty plan
func NewPlan() *Plan {
	return &Plan{
		Directories: map[int]map[string]struct{}{},
		Files:       map[string]string{},
	}
}

// 📝 Add records one planned copy and its date bucket. Inserting the same
// bucket twice is a no-op, so directories stay a set.
func (p *Plan) Add(bucket DateBucket, src, dst string) {
	dates, ok := p.Directories[bucket.Year]
	if !ok {
		dates = map[string]struct{}{}
		p.Directories[bucket.Year] = dates
	}
	dates[bucket.Date] = struct{}{}
	p.Files[src] = dst
}

// 🔢 SortedBuckets returns the planned directories sorted by year then date.
// The destination layout does not depend on order; sorting only keeps logs
// and failure points deterministic.
func (p *Plan) SortedBuckets() []DateBucket {
	buckets := make([]DateBucket, 0, len(p.Directories))
	for year, dates := range p.Directories {
		for date := range dates {
			buckets = append(buckets, DateBucket{Year: year, Date: date})
		}
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Year != buckets[j].Year {
			return buckets[i].Year < buckets[j].Year
		}
		return buckets[i].Date < buckets[j].Date
	})
	return buckets
}

// 🔢 SortedSources returns the planned source paths in sorted order
func (p *Plan) SortedSources() []string {
	sources := make([]string, 0, len(p.Files))
	for src := range p.Files {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	return sources
}
