package timing

import "sort"

// Record holds the statistics collected for one function in one log file.
// A Record only exists once a function has been observed, so Count is never zero.
type Record struct {
	TotalTime   float64
	Count       int
	MinTime     float64
	MaxTime     float64
	AverageTime float64
	// FirstLine is the 1-based line of the first observation
	FirstLine int
}

func newRecord(ms float64, line int) *Record {
	return &Record{
		TotalTime: ms,
		Count:     1,
		MinTime:   ms,
		MaxTime:   ms,
		FirstLine: line,
	}
}

func (r *Record) observe(ms float64) {
	r.TotalTime += ms
	r.Count++
	if ms < r.MinTime {
		r.MinTime = ms
	}
	if ms > r.MaxTime {
		r.MaxTime = ms
	}
}

func (r *Record) finalize() {
	avg := r.TotalTime / float64(r.Count)
	// rounding in the running total can push the mean just outside the observed range
	if avg < r.MinTime {
		avg = r.MinTime
	}
	if avg > r.MaxTime {
		avg = r.MaxTime
	}
	r.AverageTime = avg
}

// Table maps a function name to its timing record.
type Table map[string]*Record

// Names returns the function names in lexicographic order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a copy of the record for name, and whether it was present.
func (t Table) Lookup(name string) (Record, bool) {
	r, ok := t[name]
	if !ok || r == nil {
		return Record{}, false
	}
	return *r, true
}

// Get returns the record for name, or the zero Record when the function was
// never observed. The zero value is a display convention only: its MinTime
// and MaxTime of 0 do not describe any real observation.
func (t Table) Get(name string) Record {
	r, _ := t.Lookup(name)
	return r
}
