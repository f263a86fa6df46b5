package entity

// RunStatistics counts outcomes across one batch of applications.
// The batch is processed by a single cooperative flow, so plain increments
// are enough; pass the struct by pointer instead of keeping globals.
type RunStatistics struct {
	ApplicationsSubmitted int
	ApplicationsFailed    int
	FieldsFilled          int
	ErrorsEncountered     int
}

func (s *RunStatistics) AddSubmitted()   { s.ApplicationsSubmitted++ }
func (s *RunStatistics) AddFailed()      { s.ApplicationsFailed++ }
func (s *RunStatistics) AddFieldFilled() { s.FieldsFilled++ }
func (s *RunStatistics) AddError()       { s.ErrorsEncountered++ }

// LogFields returns the counters as key/value pairs for structured logging.
func (s *RunStatistics) LogFields() []any {
	return []any{
		"applications_submitted", s.ApplicationsSubmitted,
		"applications_failed", s.ApplicationsFailed,
		"fields_filled", s.FieldsFilled,
		"errors_encountered", s.ErrorsEncountered,
	}
}
