package apply

import "errors"

// Every failure in this package resolves to a terminal per-application
// outcome; none of them is fatal to the batch.
var (
	// ErrModalNotFound: the application modal never appeared within the
	// locator's retry budget.
	ErrModalNotFound = errors.New("application modal not found")

	// ErrNoOptionMatched: no choice option overlapped the generated answer
	// (surfaced only in strict mode; otherwise the first option is taken).
	ErrNoOptionMatched = errors.New("no option matched answer")
)
