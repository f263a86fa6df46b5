package apply

import (
	"context"
	"fmt"
	"strings"

	"autoapply/internal/application/port/output"
	"autoapply/internal/domain/entity"
	"autoapply/internal/domain/fields"
)

const (
	radioOptionLimit  = 5
	selectOptionLimit = 8
)

// Filler applies one answer to one control. A failed fill is logged and
// counted but never aborts the pass; the engine moves on to the next field.
type Filler struct {
	answers output.AnswerPort
	logger  output.LoggerPort
	stats   *entity.RunStatistics
	// strict disables the first-option guess for unmatched radio groups and
	// records a fill failure instead.
	strict bool
}

func NewFiller(answers output.AnswerPort, logger output.LoggerPort, stats *entity.RunStatistics, strict bool) *Filler {
	return &Filler{answers: answers, logger: logger, stats: stats, strict: strict}
}

func (f *Filler) Fill(ctx context.Context, field Field) error {
	switch field.Desc.Kind {
	case entity.FieldRadioGroup:
		return f.fillRadioGroup(ctx, field)
	case entity.FieldCheckbox:
		return f.fillCheckbox(ctx, field)
	case entity.FieldSelect:
		return f.fillSelect(ctx, field)
	default:
		return f.fillText(ctx, field)
	}
}

func (f *Filler) fillText(ctx context.Context, field Field) error {
	class := fields.Classify(field.Desc.Label, field.Desc.InputType)
	res := f.answers.Answer(ctx, entity.AnswerRequest{
		Question:       field.Desc.Label,
		Classification: class,
	})
	if !res.Answered || res.Value == "" {
		f.logger.Debug("No answer for field", "label", field.Desc.Label)
		return nil
	}

	if err := f.writeValue(ctx, field.El, res.Value); err != nil {
		f.stats.AddError()
		return fmt.Errorf("fill %q: %w", field.Desc.Label, err)
	}

	f.verify(ctx, field, res.Value)
	f.stats.AddFieldFilled()
	f.logger.Info("Filled field", "label", field.Desc.Label, "class", class, "value", res.Value)
	return nil
}

func (f *Filler) writeValue(ctx context.Context, el output.Element, value string) error {
	if err := el.Clear(ctx); err != nil {
		return err
	}
	if err := el.Input(ctx, value); err != nil {
		return err
	}
	return el.DispatchInputEvents(ctx)
}

func (f *Filler) verify(ctx context.Context, field Field, want string) {
	got, err := field.El.Value(ctx)
	if err == nil && got != want {
		f.logger.Warn("Filled value readback mismatch", "label", field.Desc.Label, "want", want, "got", got)
	}
}

func (f *Filler) fillRadioGroup(ctx context.Context, field Field) error {
	choice := f.askChoice(ctx, field.Desc.Label, field.Desc.Options, radioOptionLimit)

	if idx := bestOptionMatch(field.Desc.Options, choice); idx >= 0 {
		if err := field.OptionEls[idx].Click(ctx); err != nil {
			f.stats.AddError()
			return fmt.Errorf("select radio %q: %w", field.Desc.Options[idx], err)
		}
		f.stats.AddFieldFilled()
		f.logger.Info("Selected radio option", "label", field.Desc.Label, "option", field.Desc.Options[idx])
		return nil
	}

	if f.strict {
		f.stats.AddError()
		return fmt.Errorf("radio group %q: %w", field.Desc.Label, ErrNoOptionMatched)
	}

	// Deterministic fallback: take the first option rather than leave a
	// required group empty.
	if len(field.OptionEls) > 0 {
		if err := field.OptionEls[0].Click(ctx); err != nil {
			f.stats.AddError()
			return fmt.Errorf("select fallback radio: %w", err)
		}
		f.stats.AddFieldFilled()
		f.logger.Warn("No option matched, selected first", "label", field.Desc.Label, "option", field.Desc.Options[0])
	}
	return nil
}

func (f *Filler) fillCheckbox(ctx context.Context, field Field) error {
	label := strings.ToLower(field.Desc.Label)

	shouldCheck := false
	for _, kw := range consentKeywords {
		if strings.Contains(label, kw) {
			// Consent boxes are ticked unconditionally, no collaborator call.
			shouldCheck = true
			break
		}
	}

	if !shouldCheck {
		res := f.answers.Answer(ctx, entity.AnswerRequest{
			Question:       fmt.Sprintf("Should I check this checkbox: %s?", field.Desc.Label),
			Classification: entity.ClassBoolean,
		})
		shouldCheck = res.Answered && strings.Contains(strings.ToLower(res.Value), "yes")
	}

	if !shouldCheck {
		f.logger.Debug("Checkbox left unchecked", "label", field.Desc.Label)
		return nil
	}

	if checked, _ := field.El.Checked(ctx); checked {
		return nil
	}
	if err := field.El.Click(ctx); err != nil {
		f.stats.AddError()
		return fmt.Errorf("check %q: %w", field.Desc.Label, err)
	}
	f.stats.AddFieldFilled()
	f.logger.Info("Checked checkbox", "label", field.Desc.Label)
	return nil
}

func (f *Filler) fillSelect(ctx context.Context, field Field) error {
	choice := f.askChoice(ctx, field.Desc.Label, field.Desc.Options, selectOptionLimit)

	idx := bestOptionMatch(field.Desc.Options, choice)
	if idx < 0 {
		// No overlap at all: leave the select unset rather than guess.
		f.logger.Warn("No select option matched", "label", field.Desc.Label, "answer", choice)
		return nil
	}

	if err := field.El.SelectOption(ctx, field.Desc.Options[idx]); err != nil {
		f.stats.AddError()
		return fmt.Errorf("select option %q: %w", field.Desc.Options[idx], err)
	}
	f.stats.AddFieldFilled()
	f.logger.Info("Selected dropdown option", "label", field.Desc.Label, "option", field.Desc.Options[idx])
	return nil
}

// askChoice builds the choice question (label plus an enumerated option
// list) and returns the collaborator's answer.
func (f *Filler) askChoice(ctx context.Context, label string, options []string, limit int) string {
	shown := options
	if len(shown) > limit {
		shown = shown[:limit]
	}
	question := fmt.Sprintf("%s Options: %s", label, strings.Join(shown, ", "))

	res := f.answers.Answer(ctx, entity.AnswerRequest{
		Question:       question,
		Classification: entity.ClassText,
	})
	if !res.Answered {
		return ""
	}
	return res.Value
}

// bestOptionMatch returns the first option with bidirectional substring
// overlap against the answer, or -1.
func bestOptionMatch(options []string, answer string) int {
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "" {
		return -1
	}
	for i, opt := range options {
		o := strings.ToLower(strings.TrimSpace(opt))
		if o == "" {
			continue
		}
		if strings.Contains(o, answer) || strings.Contains(answer, o) {
			return i
		}
	}
	return -1
}
