package entity

// Outcome is the terminal (or pending) result of one application.
type Outcome string

const (
	OutcomePending   Outcome = "pending"
	OutcomeSubmitted Outcome = "submitted"
	OutcomeAborted   Outcome = "aborted"
	OutcomeTimedOut  Outcome = "timed_out"
)

// Failed reports whether the outcome counts against applications_failed.
func (o Outcome) Failed() bool {
	return o == OutcomeAborted || o == OutcomeTimedOut
}

// Terminal reports whether the session is finished.
func (o Outcome) Terminal() bool {
	return o != OutcomePending
}

// ApplicationSession tracks one job application from modal acquisition to a
// terminal outcome. The modal handle it drives is owned exclusively by the
// session and must not be referenced after the outcome turns terminal.
type ApplicationSession struct {
	JobIndex          int
	Page              int
	Step              int
	ConsecutiveErrors int
	Outcome           Outcome
	Screenshots       []string // artifact paths, append-only
}

func NewApplicationSession(jobIndex int) *ApplicationSession {
	return &ApplicationSession{
		JobIndex: jobIndex,
		Page:     1,
		Outcome:  OutcomePending,
	}
}

// RecordErrorPass bumps the consecutive-error counter after a fill pass that
// left validation errors behind.
func (s *ApplicationSession) RecordErrorPass() int {
	s.ConsecutiveErrors++
	return s.ConsecutiveErrors
}

// RecordCleanPass resets the counter after an error-free fill pass.
func (s *ApplicationSession) RecordCleanPass() {
	s.ConsecutiveErrors = 0
}

func (s *ApplicationSession) AttachScreenshot(path string) {
	s.Screenshots = append(s.Screenshots, path)
}
