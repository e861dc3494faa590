package export

import (
	"io"
	"sort"

	"github.com/google/pprof/profile"
	"github.com/pkg/errors"

	"perfcmp/timing"
)

const nanosPerMilli = 1e6

// NewProfile converts a timing table into a pprof profile with one sample per
// function. Each sample carries the observation count and the total time in
// nanoseconds, slowest function first.
func NewProfile(t timing.Table) *profile.Profile {
	p := &profile.Profile{
		SampleType: []*profile.ValueType{
			{Type: "count", Unit: "count"},
			{Type: "time", Unit: "nanoseconds"},
		},
		DefaultSampleType: "time",
		PeriodType:        &profile.ValueType{Type: "time", Unit: "nanoseconds"},
		Period:            1,
	}

	records := t.Records()
	sort.Sort(records)
	for i, nr := range records {
		id := uint64(i + 1)
		fn := &profile.Function{
			ID:         id,
			Name:       nr.Name,
			SystemName: nr.Name,
		}
		loc := &profile.Location{
			ID:   id,
			Line: []profile.Line{{Function: fn, Line: int64(nr.Record.FirstLine)}},
		}
		total := int64(nr.Record.TotalTime * nanosPerMilli)
		p.Function = append(p.Function, fn)
		p.Location = append(p.Location, loc)
		p.Sample = append(p.Sample, &profile.Sample{
			Location: []*profile.Location{loc},
			Value:    []int64{int64(nr.Record.Count), total},
		})
		p.DurationNanos += total
	}
	return p
}

// WriteProfile writes the gzipped pprof encoding of t to w.
func WriteProfile(w io.Writer, t timing.Table) error {
	p := NewProfile(t)
	if err := p.CheckValid(); err != nil {
		return errors.Wrap(err, "invalid profile")
	}
	if err := p.Write(w); err != nil {
		return errors.Wrap(err, "failed to write profile")
	}
	return nil
}
