package entity

// FieldKind is the raw control kind as found in the DOM.
type FieldKind string

const (
	FieldText       FieldKind = "text"
	FieldTextArea   FieldKind = "textarea"
	FieldRadioGroup FieldKind = "radio-group"
	FieldCheckbox   FieldKind = "checkbox"
	FieldSelect     FieldKind = "select"
)

// Classification is the semantic answer type expected for a field.
type Classification string

const (
	ClassNumeric Classification = "numeric"
	ClassBoolean Classification = "boolean"
	ClassText    Classification = "text"
)

// FieldDescriptor captures one form control during a scan pass.
// Descriptors are created fresh on every pass and never persisted.
type FieldDescriptor struct {
	Label     string
	Kind      FieldKind
	InputType string // declared "type" attribute for text-like inputs
	Value     string
	Options   []string // option labels for radio groups and selects
}

// AnswerRequest is one question posed to the answer collaborator.
type AnswerRequest struct {
	Question       string
	Classification Classification
}

// AnswerResult is the collaborator's cleaned answer, or no answer at all.
type AnswerResult struct {
	Value    string
	Answered bool
}

func NoAnswer() AnswerResult {
	return AnswerResult{}
}

func Answered(value string) AnswerResult {
	return AnswerResult{Value: value, Answered: true}
}
