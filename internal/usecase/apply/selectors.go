package apply

// Selector contract with the job board's Easy Apply markup. The modal
// selectors are probed in order; the first hit wins.
var modalSelectors = []string{
	".jobs-easy-apply-modal",
	`[role="dialog"]`,
	".jobs-easy-apply-content",
}

const (
	selTextInputs  = `input[type="text"], input[type="tel"], input[type="email"], input[type="number"], textarea`
	selFieldsets   = "fieldset"
	selLegend      = "legend"
	selRadios      = `input[type="radio"]`
	selCheckboxes  = `input[type="checkbox"]`
	selSelects     = "select"
	selOptions     = "option"
	selFileInputs  = `input[type="file"]`
	selSubmit      = `button[aria-label*="Submit application"]`
	selNext        = `button[aria-label*="Continue to next step"]`
	selReview      = `button[aria-label*="Review"]`
	selInlineError = ".artdeco-inline-feedback--error"
	selDismiss     = `button[aria-label*="Dismiss"]`
)

// skipKeywords mark page controls that are not part of the application form
// (search bars, result filters). A field whose label contains one of these is
// never touched, whatever else the classifier or answer collaborator says.
var skipKeywords = []string{
	"search by title",
	"search for",
	"type to search",
	"filter results by",
	"filter by",
}

// consentKeywords identify checkboxes that are ticked without consulting the
// answer collaborator.
var consentKeywords = []string{
	"agree", "consent", "acknowledge", "accept", "authorize", "understand",
}

// selectPlaceholders are option labels that do not count as a real choice.
var selectPlaceholders = map[string]bool{
	"":                 true,
	"select":           true,
	"select an option": true,
}
