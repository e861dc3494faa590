package timing

// NamedRecord pairs a record with the function it was collected for.
type NamedRecord struct {
	Name   string
	Record Record
}

// ByTotalTime sorts records slowest first, ties broken by name.
type ByTotalTime []NamedRecord

func (l ByTotalTime) Len() int {
	return len(l)
}

func (l ByTotalTime) Less(i, j int) bool {
	// we want to sort greatest first
	if l[i].Record.TotalTime != l[j].Record.TotalTime {
		return l[i].Record.TotalTime > l[j].Record.TotalTime
	}
	return l[i].Name < l[j].Name
}

func (l ByTotalTime) Swap(i, j int) {
	l[i], l[j] = l[j], l[i]
}

// Records flattens the table into a slice in name order.
func (t Table) Records() ByTotalTime {
	out := make(ByTotalTime, 0, len(t))
	for _, name := range t.Names() {
		out = append(out, NamedRecord{Name: name, Record: *t[name]})
	}
	return out
}
