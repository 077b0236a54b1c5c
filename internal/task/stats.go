package task

// Statistics summarises the store.
type Statistics struct {
	Total          int
	Completed      int
	Pending        int
	CompletionRate float64 // Completed / Total, 0 when Total is 0

	// PendingByPriority counts pending tasks per level. Every level is present.
	PendingByPriority map[Priority]int
}

// Statistics computes totals over every task in the store.
func (s *Store) Statistics() Statistics {
	st := Statistics{
		PendingByPriority: make(map[Priority]int, 3),
	}
	for _, p := range Priorities() {
		st.PendingByPriority[p] = 0
	}
	for _, t := range s.tasks {
		st.Total++
		if t.Completed {
			st.Completed++
			continue
		}
		st.Pending++
		st.PendingByPriority[t.Priority]++
	}
	if st.Total > 0 {
		st.CompletionRate = float64(st.Completed) / float64(st.Total)
	}
	return st
}

// CompletionPercent returns the completion rate as a percentage.
func (st Statistics) CompletionPercent() float64 {
	return st.CompletionRate * 100
}
