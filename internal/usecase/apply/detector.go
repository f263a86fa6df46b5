package apply

import (
	"context"
	"strings"

	"autoapply/internal/application/port/output"
)

// ErrorDetector scans a container for inline validation-error indicators.
// Detection never mutates page state.
type ErrorDetector struct {
	logger output.LoggerPort
}

func NewErrorDetector(logger output.LoggerPort) *ErrorDetector {
	return &ErrorDetector{logger: logger}
}

// Detect returns whether any inline errors are present, plus their text for
// diagnostic logging.
func (d *ErrorDetector) Detect(ctx context.Context, container output.Element) (bool, []string) {
	els, err := container.Elements(ctx, selInlineError)
	if err != nil || len(els) == 0 {
		return false, nil
	}

	var messages []string
	for _, el := range els {
		text, err := el.Text(ctx)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			messages = append(messages, text)
		}
	}
	return true, messages
}
