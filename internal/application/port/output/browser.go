package output

import (
	"context"

	"autoapply/internal/domain/entity"
)

// Element is one DOM element handle. All queries made through an element are
// scoped to its subtree, which is what keeps form filling inside the
// application modal and away from the host page's own controls.
type Element interface {
	// Attribute returns the attribute value, or "" when absent.
	Attribute(ctx context.Context, name string) (string, error)
	Text(ctx context.Context) (string, error)
	// HTML returns the element's outer markup.
	HTML(ctx context.Context) (string, error)
	Value(ctx context.Context) (string, error)

	Clear(ctx context.Context) error
	Input(ctx context.Context, text string) error
	// DispatchInputEvents raises synthetic input/change events so host-page
	// validation observes a programmatic write.
	DispatchInputEvents(ctx context.Context) error
	Click(ctx context.Context) error
	SelectOption(ctx context.Context, label string) error
	SetFiles(ctx context.Context, paths []string) error
	FileCount(ctx context.Context) (int, error)

	Visible(ctx context.Context) (bool, error)
	Enabled(ctx context.Context) (bool, error)
	Checked(ctx context.Context) (bool, error)

	// SiblingLabel resolves the visible text next to an option input.
	SiblingLabel(ctx context.Context) (string, error)
	// AncestorLabel resolves the text of a wrapping <label>, if any.
	AncestorLabel(ctx context.Context) (string, error)

	ScrollTo(ctx context.Context, fraction float64) error
	ScrollIntoView(ctx context.Context) error

	Element(ctx context.Context, selector string) (Element, error)
	Elements(ctx context.Context, selector string) ([]Element, error)
}

// BrowserPort is the browser-automation collaborator.
type BrowserPort interface {
	Navigate(ctx context.Context, url string) error
	Element(ctx context.Context, selector string) (Element, error)
	ElementR(ctx context.Context, selector, pattern string) (Element, error)
	Elements(ctx context.Context, selector string) ([]Element, error)
	Screenshot(ctx context.Context) (*entity.Screenshot, error)
	CurrentURL() string
	Close()
}
