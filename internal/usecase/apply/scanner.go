package apply

import (
	"context"
	"fmt"
	"strings"

	"autoapply/internal/application/port/output"
	"autoapply/internal/domain/entity"
)

// maxPrefilledLen bounds the "already satisfied" check: a non-empty value
// shorter than this is left alone, anything longer is treated as junk and
// refilled.
const maxPrefilledLen = 100

const unknownLabel = "Unknown"

// Field pairs a descriptor with the live element handles needed to fill it.
// Fields live only for the scan pass that produced them.
type Field struct {
	Desc entity.FieldDescriptor
	El   output.Element
	// OptionEls are the individual radio inputs of a radio group, aligned
	// with Desc.Options.
	OptionEls []output.Element
}

// Scanner enumerates the fillable controls of a container in a fixed order:
// text-like inputs, radio groups, checkboxes, selects. Queries are strictly
// scoped to the container so the host page's own controls are never touched.
type Scanner struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewScanner(browser output.BrowserPort, logger output.LoggerPort) *Scanner {
	return &Scanner{browser: browser, logger: logger}
}

func (s *Scanner) Scan(ctx context.Context, container output.Element) []Field {
	var result []Field
	result = append(result, s.scanTextInputs(ctx, container)...)
	result = append(result, s.scanRadioGroups(ctx, container)...)
	result = append(result, s.scanCheckboxes(ctx, container)...)
	result = append(result, s.scanSelects(ctx, container)...)
	return result
}

func (s *Scanner) scanTextInputs(ctx context.Context, container output.Element) []Field {
	els, err := container.Elements(ctx, selTextInputs)
	if err != nil {
		return nil
	}
	s.logger.Debug("Scanned text inputs", "count", len(els))

	var result []Field
	for _, el := range els {
		if !s.interactable(ctx, el) {
			continue
		}

		label := s.resolveLabel(ctx, el)
		if isSkipLabel(label) {
			s.logger.Info("Skipped non-application field", "label", label)
			continue
		}

		value, _ := el.Value(ctx)
		if satisfied(value) {
			s.logger.Debug("Field already filled", "label", label, "value", value)
			continue
		}

		inputType, _ := el.Attribute(ctx, "type")
		kind := entity.FieldText
		if inputType == "" {
			kind = entity.FieldTextArea
		}

		result = append(result, Field{
			Desc: entity.FieldDescriptor{
				Label:     label,
				Kind:      kind,
				InputType: inputType,
				Value:     value,
			},
			El: el,
		})
	}
	return result
}

func (s *Scanner) scanRadioGroups(ctx context.Context, container output.Element) []Field {
	fieldsets, err := container.Elements(ctx, selFieldsets)
	if err != nil {
		return nil
	}
	s.logger.Debug("Scanned radio groups", "count", len(fieldsets))

	var result []Field
	for _, fs := range fieldsets {
		legend, err := fs.Element(ctx, selLegend)
		if err != nil {
			continue
		}
		label, _ := legend.Text(ctx)
		label = strings.TrimSpace(label)

		if isSkipLabel(label) {
			s.logger.Info("Skipped filter control", "label", label)
			continue
		}

		radios, err := fs.Elements(ctx, selRadios)
		if err != nil || len(radios) == 0 {
			continue
		}

		alreadySelected := false
		for _, r := range radios {
			if checked, _ := r.Checked(ctx); checked {
				alreadySelected = true
				break
			}
		}
		if alreadySelected {
			s.logger.Debug("Radio group already selected", "label", label)
			continue
		}

		options := make([]string, 0, len(radios))
		for _, r := range radios {
			text, _ := r.SiblingLabel(ctx)
			options = append(options, strings.TrimSpace(text))
		}

		result = append(result, Field{
			Desc: entity.FieldDescriptor{
				Label:   label,
				Kind:    entity.FieldRadioGroup,
				Options: options,
			},
			El:        fs,
			OptionEls: radios,
		})
	}
	return result
}

func (s *Scanner) scanCheckboxes(ctx context.Context, container output.Element) []Field {
	els, err := container.Elements(ctx, selCheckboxes)
	if err != nil {
		return nil
	}
	s.logger.Debug("Scanned checkboxes", "count", len(els))

	var result []Field
	for _, el := range els {
		if !s.interactable(ctx, el) {
			continue
		}

		label := s.resolveLabel(ctx, el)
		if isSkipLabel(label) {
			s.logger.Info("Skipped non-application checkbox", "label", label)
			continue
		}

		if checked, _ := el.Checked(ctx); checked {
			s.logger.Debug("Checkbox already checked", "label", label)
			continue
		}

		result = append(result, Field{
			Desc: entity.FieldDescriptor{
				Label: label,
				Kind:  entity.FieldCheckbox,
			},
			El: el,
		})
	}
	return result
}

func (s *Scanner) scanSelects(ctx context.Context, container output.Element) []Field {
	els, err := container.Elements(ctx, selSelects)
	if err != nil {
		return nil
	}
	s.logger.Debug("Scanned selects", "count", len(els))

	var result []Field
	for _, el := range els {
		if visible, _ := el.Visible(ctx); !visible {
			continue
		}

		label := s.resolveLabel(ctx, el)
		if isSkipLabel(label) {
			s.logger.Info("Skipped non-application select", "label", label)
			continue
		}

		value, _ := el.Value(ctx)
		if value != "" && !selectPlaceholders[strings.ToLower(value)] {
			s.logger.Debug("Select already chosen", "label", label, "value", value)
			continue
		}

		options := s.selectOptionLabels(ctx, el)
		if len(options) < 2 {
			continue
		}

		result = append(result, Field{
			Desc: entity.FieldDescriptor{
				Label:   label,
				Kind:    entity.FieldSelect,
				Options: options,
			},
			El: el,
		})
	}
	return result
}

func (s *Scanner) selectOptionLabels(ctx context.Context, sel output.Element) []string {
	optionEls, err := sel.Elements(ctx, selOptions)
	if err != nil {
		return nil
	}
	var options []string
	for _, opt := range optionEls {
		text, _ := opt.Text(ctx)
		text = strings.TrimSpace(text)
		if selectPlaceholders[strings.ToLower(text)] {
			continue
		}
		options = append(options, text)
	}
	return options
}

// resolveLabel applies the fixed label-resolution precedence: accessible
// label attribute, associated label element, placeholder, ancestor label.
// Classification and skip logic depend on this order producing the most
// specific text available.
func (s *Scanner) resolveLabel(ctx context.Context, el output.Element) string {
	if aria, err := el.Attribute(ctx, "aria-label"); err == nil && strings.TrimSpace(aria) != "" {
		return strings.TrimSpace(aria)
	}

	if id, err := el.Attribute(ctx, "id"); err == nil && id != "" {
		if labelEl, err := s.browser.Element(ctx, fmt.Sprintf("label[for=%q]", id)); err == nil && labelEl != nil {
			if text, err := labelEl.Text(ctx); err == nil && strings.TrimSpace(text) != "" {
				return strings.TrimSpace(text)
			}
		}
	}

	if placeholder, err := el.Attribute(ctx, "placeholder"); err == nil && strings.TrimSpace(placeholder) != "" {
		return strings.TrimSpace(placeholder)
	}

	if text, err := el.AncestorLabel(ctx); err == nil && strings.TrimSpace(text) != "" {
		return strings.TrimSpace(text)
	}

	return unknownLabel
}

func (s *Scanner) interactable(ctx context.Context, el output.Element) bool {
	if visible, err := el.Visible(ctx); err != nil || !visible {
		return false
	}
	if enabled, err := el.Enabled(ctx); err != nil || !enabled {
		return false
	}
	return true
}

func isSkipLabel(label string) bool {
	l := strings.ToLower(label)
	for _, kw := range skipKeywords {
		if strings.Contains(l, kw) {
			return true
		}
	}
	return false
}

func satisfied(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed != "" && len(value) < maxPrefilledLen
}
