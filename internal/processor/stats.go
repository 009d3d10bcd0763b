package processor

// Stats tracks aggregate counters across a batch run.
type Stats struct {
	Total   int
	Done    int
	Skipped int
	Failed  int
}

// AllSettled reports whether every item ended Done or Skipped.
func (s Stats) AllSettled() bool {
	return s.Failed == 0 && s.Done+s.Skipped == s.Total
}
