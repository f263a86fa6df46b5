package apply

import (
	"context"
	"fmt"

	"autoapply/internal/application/port/output"
	"autoapply/internal/domain/entity"
)

// In-memory DOM stand-ins. Selectors are matched literally against the keys
// registered on each node, which keeps tests honest about the exact queries
// the production code issues.

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
	attrs         map[string]string
	text          string
	html          string
	value         string
	checked       bool
	visible       bool
	enabled       bool
	siblingLabel  string
	ancestorLabel string
	fileCount     int

	children map[string][]*fakeElement

	onClick func()

	clicks     int
	inputs     []string
	cleared    int
	dispatched int
	selections []string
	filesSet   [][]string
}

func newFakeElement() *fakeElement {
	return &fakeElement{
		attrs:    map[string]string{},
		visible:  true,
		enabled:  true,
		children: map[string][]*fakeElement{},
	}
}

func (e *fakeElement) addChild(selector string, child *fakeElement) *fakeElement {
	e.children[selector] = append(e.children[selector], child)
	return e
}

func (e *fakeElement) Attribute(ctx context.Context, name string) (string, error) {
	return e.attrs[name], nil
}

func (e *fakeElement) Text(ctx context.Context) (string, error)  { return e.text, nil }
func (e *fakeElement) HTML(ctx context.Context) (string, error)  { return e.html, nil }
func (e *fakeElement) Value(ctx context.Context) (string, error) { return e.value, nil }

func (e *fakeElement) Clear(ctx context.Context) error {
	e.cleared++
	e.value = ""
	return nil
}

func (e *fakeElement) Input(ctx context.Context, text string) error {
	e.inputs = append(e.inputs, text)
	e.value += text
	return nil
}

func (e *fakeElement) DispatchInputEvents(ctx context.Context) error {
	e.dispatched++
	return nil
}

func (e *fakeElement) Click(ctx context.Context) error {
	e.clicks++
	if e.onClick != nil {
		e.onClick()
	}
	return nil
}

func (e *fakeElement) SelectOption(ctx context.Context, label string) error {
	e.selections = append(e.selections, label)
	e.value = label
	return nil
}

func (e *fakeElement) SetFiles(ctx context.Context, paths []string) error {
	e.filesSet = append(e.filesSet, paths)
	e.fileCount = len(paths)
	return nil
}

func (e *fakeElement) FileCount(ctx context.Context) (int, error) { return e.fileCount, nil }

func (e *fakeElement) Visible(ctx context.Context) (bool, error) { return e.visible, nil }
func (e *fakeElement) Enabled(ctx context.Context) (bool, error) { return e.enabled, nil }
func (e *fakeElement) Checked(ctx context.Context) (bool, error) { return e.checked, nil }

func (e *fakeElement) SiblingLabel(ctx context.Context) (string, error) {
	return e.siblingLabel, nil
}

func (e *fakeElement) AncestorLabel(ctx context.Context) (string, error) {
	return e.ancestorLabel, nil
}

func (e *fakeElement) ScrollTo(ctx context.Context, fraction float64) error { return nil }
func (e *fakeElement) ScrollIntoView(ctx context.Context) error             { return nil }

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

type fakeBrowser struct {
	elements    map[string]*fakeElement
	currentURL  string
	screenshots int
	navigated   []string
}

func newFakeBrowser() *fakeBrowser {
	return &fakeBrowser{elements: map[string]*fakeElement{}}
}

func (b *fakeBrowser) Navigate(ctx context.Context, url string) error {
	b.navigated = append(b.navigated, url)
	b.currentURL = url
	return nil
}

func (b *fakeBrowser) Element(ctx context.Context, selector string) (output.Element, error) {
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
	el, ok := b.elements[selector]
	if !ok {
		return nil, nil
	}
	return []output.Element{el}, nil
}

func (b *fakeBrowser) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	b.screenshots++
	return &entity.Screenshot{Data: []byte{0xff}, Format: "jpeg", Width: 1, Height: 1}, nil
}

func (b *fakeBrowser) CurrentURL() string { return b.currentURL }
func (b *fakeBrowser) Close()             {}

// fakeAnswers returns canned answers by exact question match, falling back
// to fallbackValue. Every request is recorded.
type fakeAnswers struct {
	byQuestion    map[string]string
	fallbackValue string
	requests      []entity.AnswerRequest
}

func (f *fakeAnswers) Answer(ctx context.Context, req entity.AnswerRequest) entity.AnswerResult {
	f.requests = append(f.requests, req)
	if v, ok := f.byQuestion[req.Question]; ok {
		return entity.Answered(v)
	}
	if f.fallbackValue != "" {
		return entity.Answered(f.fallbackValue)
	}
	return entity.NoAnswer()
}

type fakeArtifacts struct {
	saved     []string
	discarded []string
}

func (f *fakeArtifacts) Save(ctx context.Context, name string, shot *entity.Screenshot) (string, error) {
	path := "artifacts/" + name + ".jpg"
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *fakeArtifacts) Discard(paths []string) {
	f.discarded = append(f.discarded, paths...)
}
