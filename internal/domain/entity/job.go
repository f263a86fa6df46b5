package entity

// Job is one candidate listing from the search results.
type Job struct {
	Index       int
	Title       string
	Description string // cleaned text, handed to the answer model as context
}

// Screenshot is one captured page image before persistence.
type Screenshot struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

// ScreenshotPolicy controls capture and retention of diagnostic artifacts.
type ScreenshotPolicy struct {
	Enabled       bool
	SaveOnSuccess bool
	SaveOnError   bool
	SaveFinalOnly bool
}
