package linkedin

import (
	"context"
	"fmt"

	"autoapply/internal/application/port/input"
	"autoapply/internal/application/port/output"
	"autoapply/internal/domain/entity"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}
func (l nopLogger) WithField(key string, value any) output.LoggerPort {
	return l
}
func (nopLogger) Close() error { return nil }

type fakeElement struct {
	text     string
	html     string
	visible  bool
	children map[string][]*fakeElement

	onClick func()

	clicks int
	inputs []string
}

func newFakeElement() *fakeElement {
	return &fakeElement{visible: true, children: map[string][]*fakeElement{}}
}

func (e *fakeElement) Attribute(ctx context.Context, name string) (string, error) { return "", nil }

func (e *fakeElement) Text(ctx context.Context) (string, error)  { return e.text, nil }
func (e *fakeElement) HTML(ctx context.Context) (string, error)  { return e.html, nil }
func (e *fakeElement) Value(ctx context.Context) (string, error) { return "", nil }

func (e *fakeElement) Clear(ctx context.Context) error { return nil }

func (e *fakeElement) Input(ctx context.Context, text string) error {
	e.inputs = append(e.inputs, text)
	return nil
}

func (e *fakeElement) DispatchInputEvents(ctx context.Context) error { return nil }

func (e *fakeElement) Click(ctx context.Context) error {
	e.clicks++
	if e.onClick != nil {
		e.onClick()
	}
	return nil
}

func (e *fakeElement) SelectOption(ctx context.Context, label string) error { return nil }

func (e *fakeElement) SetFiles(ctx context.Context, paths []string) error { return nil }

func (e *fakeElement) FileCount(ctx context.Context) (int, error) { return 0, nil }

func (e *fakeElement) Visible(ctx context.Context) (bool, error) { return e.visible, nil }
func (e *fakeElement) Enabled(ctx context.Context) (bool, error) { return true, nil }
func (e *fakeElement) Checked(ctx context.Context) (bool, error) { return false, nil }

func (e *fakeElement) SiblingLabel(ctx context.Context) (string, error)  { return "", nil }
func (e *fakeElement) AncestorLabel(ctx context.Context) (string, error) { return "", nil }

func (e *fakeElement) ScrollTo(ctx context.Context, fraction float64) error { return nil }

func (e *fakeElement) ScrollIntoView(ctx context.Context) error { return nil }

func (e *fakeElement) Element(ctx context.Context, selector string) (output.Element, error) {
	els := e.children[selector]
	if len(els) == 0 {
		return nil, fmt.Errorf("no element for selector %q", selector)
	}
	return els[0], nil
}

func (e *fakeElement) Elements(ctx context.Context, selector string) ([]output.Element, error) {
	els := e.children[selector]
	result := make([]output.Element, 0, len(els))
	for _, el := range els {
		result = append(result, el)
	}
	return result, nil
}

// fakeBrowser resolves single elements and element lists by literal selector.
// Navigation lands on the requested URL unless a redirect is registered.
type fakeBrowser struct {
	elements  map[string]*fakeElement
	lists     map[string][]*fakeElement
	redirects map[string]string

	navigated  []string
	queried    []string
	currentURL string
}

func newFakeBrowser() *fakeBrowser {
	return &fakeBrowser{
		elements:  map[string]*fakeElement{},
		lists:     map[string][]*fakeElement{},
		redirects: map[string]string{},
	}
}

func (b *fakeBrowser) Navigate(ctx context.Context, url string) error {
	b.navigated = append(b.navigated, url)
	if target, ok := b.redirects[url]; ok {
		b.currentURL = target
	} else {
		b.currentURL = url
	}
	return nil
}

func (b *fakeBrowser) Element(ctx context.Context, selector string) (output.Element, error) {
	b.queried = append(b.queried, selector)
	el, ok := b.elements[selector]
	if !ok {
		return nil, fmt.Errorf("no element for selector %q", selector)
	}
	return el, nil
}

func (b *fakeBrowser) ElementR(ctx context.Context, selector, pattern string) (output.Element, error) {
	return nil, fmt.Errorf("no element for %q matching %q", selector, pattern)
}

func (b *fakeBrowser) Elements(ctx context.Context, selector string) ([]output.Element, error) {
	els := b.lists[selector]
	result := make([]output.Element, 0, len(els))
	for _, el := range els {
		result = append(result, el)
	}
	return result, nil
}

func (b *fakeBrowser) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	return &entity.Screenshot{Data: []byte{0xff}, Format: "jpeg", Width: 1, Height: 1}, nil
}

func (b *fakeBrowser) CurrentURL() string { return b.currentURL }
func (b *fakeBrowser) Close()             {}

// fakeApplicant replays scripted outcomes in order; unscripted calls submit.
type fakeApplicant struct {
	outcomes []entity.Outcome
	jobs     []entity.Job
}

func (f *fakeApplicant) Apply(ctx context.Context, job entity.Job) (*input.ApplyResult, error) {
	f.jobs = append(f.jobs, job)
	outcome := entity.OutcomeSubmitted
	if n := len(f.jobs) - 1; n < len(f.outcomes) {
		outcome = f.outcomes[n]
	}
	return &input.ApplyResult{Outcome: outcome, Pages: 1, Steps: 1}, nil
}

type fakeContextSetter struct {
	descriptions []string
}

func (f *fakeContextSetter) SetJobContext(description string) {
	f.descriptions = append(f.descriptions, description)
}
