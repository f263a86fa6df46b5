// Package rod adapts go-rod to the BrowserPort/Element contract the
// application engine works against.
package rod

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"autoapply/internal/application/port/output"
	"autoapply/internal/domain/entity"
)

var _ output.BrowserPort = (*BrowserAdapter)(nil)

type BrowserAdapter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	timeout  time.Duration
}

type BrowserConfig struct {
	Headless   bool
	SlowMotion time.Duration
	Timeout    time.Duration
	NoSandbox  bool
	DevTools   bool
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:   false,
		SlowMotion: 500 * time.Millisecond,
		Timeout:    10 * time.Second,
		NoSandbox:  true,
	}
}

func NewBrowserAdapter(ctx context.Context, cfg BrowserConfig) (*BrowserAdapter, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	l := launcher.New().
		Headless(cfg.Headless).
		Devtools(cfg.DevTools).
		NoSandbox(cfg.NoSandbox).
		Delete("use-mock-keychain")

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().
		ControlURL(url).
		SlowMotion(cfg.SlowMotion).
		Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &BrowserAdapter{
		browser:  browser,
		launcher: l,
		page:     page,
		timeout:  cfg.Timeout,
	}, nil
}

func (b *BrowserAdapter) Navigate(ctx context.Context, url string) error {
	if err := b.page.Context(ctx).Navigate(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if err := b.page.Context(ctx).WaitLoad(); err != nil {
		return fmt.Errorf("page load failed: %w", err)
	}
	b.page.WaitIdle(5 * time.Second)
	return nil
}

func (b *BrowserAdapter) Element(ctx context.Context, selector string) (output.Element, error) {
	el, err := b.page.Context(ctx).Timeout(b.timeout).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("element not found: %s: %w", selector, err)
	}
	return &element{el: el, page: b.page, timeout: b.timeout}, nil
}

func (b *BrowserAdapter) ElementR(ctx context.Context, selector, pattern string) (output.Element, error) {
	el, err := b.page.Context(ctx).Timeout(b.timeout).ElementR(selector, pattern)
	if err != nil {
		return nil, fmt.Errorf("element not found: %s (%s): %w", selector, pattern, err)
	}
	return &element{el: el, page: b.page, timeout: b.timeout}, nil
}

func (b *BrowserAdapter) Elements(ctx context.Context, selector string) ([]output.Element, error) {
	els, err := b.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("elements query failed: %s: %w", selector, err)
	}
	return wrapAll(els, b.page, b.timeout), nil
}

func (b *BrowserAdapter) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	data, err := b.page.Context(ctx).Screenshot(true, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(80),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("screenshot decode failed: %w", err)
	}

	return &entity.Screenshot{
		Data:   data,
		Format: "jpeg",
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

func (b *BrowserAdapter) CurrentURL() string {
	info, err := b.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (b *BrowserAdapter) Close() {
	if b.browser != nil {
		_ = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
}

var _ output.Element = (*element)(nil)

type element struct {
	el      *rod.Element
	page    *rod.Page
	timeout time.Duration
}

func wrapAll(els rod.Elements, page *rod.Page, timeout time.Duration) []output.Element {
	result := make([]output.Element, 0, len(els))
	for _, el := range els {
		result = append(result, &element{el: el, page: page, timeout: timeout})
	}
	return result
}

func (e *element) Attribute(ctx context.Context, name string) (string, error) {
	attr, err := e.el.Context(ctx).Attribute(name)
	if err != nil {
		return "", fmt.Errorf("attribute %s: %w", name, err)
	}
	if attr == nil {
		return "", nil
	}
	return *attr, nil
}

func (e *element) Text(ctx context.Context) (string, error) {
	text, err := e.el.Context(ctx).Text()
	if err != nil {
		return "", fmt.Errorf("element text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func (e *element) HTML(ctx context.Context) (string, error) {
	html, err := e.el.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("element html: %w", err)
	}
	return html, nil
}

func (e *element) Value(ctx context.Context) (string, error) {
	prop, err := e.el.Context(ctx).Property("value")
	if err != nil {
		return "", fmt.Errorf("value property: %w", err)
	}
	return prop.Str(), nil
}

func (e *element) Clear(ctx context.Context) error {
	_, err := e.el.Context(ctx).Eval(`() => { this.value = ""; }`)
	return err
}

func (e *element) Input(ctx context.Context, text string) error {
	if err := e.el.Context(ctx).Input(text); err != nil {
		return fmt.Errorf("input failed: %w", err)
	}
	return nil
}

// DispatchInputEvents fires synthetic input/change events so framework
// listeners pick up programmatic edits.
func (e *element) DispatchInputEvents(ctx context.Context) error {
	_, err := e.el.Context(ctx).Eval(`() => {
		this.dispatchEvent(new Event("input", { bubbles: true }));
		this.dispatchEvent(new Event("change", { bubbles: true }));
	}`)
	return err
}

func (e *element) Click(ctx context.Context) error {
	if err := e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}

func (e *element) SelectOption(ctx context.Context, label string) error {
	if err := e.el.Context(ctx).Select([]string{label}, true, rod.SelectorTypeText); err != nil {
		return fmt.Errorf("select option %q: %w", label, err)
	}
	return nil
}

func (e *element) SetFiles(ctx context.Context, paths []string) error {
	if err := e.el.Context(ctx).SetFiles(paths); err != nil {
		return fmt.Errorf("set files: %w", err)
	}
	return nil
}

func (e *element) FileCount(ctx context.Context) (int, error) {
	res, err := e.el.Context(ctx).Eval(`() => this.files ? this.files.length : 0`)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

func (e *element) Visible(ctx context.Context) (bool, error) {
	return e.el.Context(ctx).Visible()
}

func (e *element) Enabled(ctx context.Context) (bool, error) {
	prop, err := e.el.Context(ctx).Property("disabled")
	if err != nil {
		return false, err
	}
	return !prop.Bool(), nil
}

func (e *element) Checked(ctx context.Context) (bool, error) {
	prop, err := e.el.Context(ctx).Property("checked")
	if err != nil {
		return false, err
	}
	return prop.Bool(), nil
}

// SiblingLabel returns the text of the label element following a radio or
// checkbox input, the usual markup on application forms.
func (e *element) SiblingLabel(ctx context.Context) (string, error) {
	res, err := e.el.Context(ctx).Eval(`() =>
		(this.nextElementSibling && this.nextElementSibling.textContent) ||
		(this.parentElement && this.parentElement.textContent) || ""`)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Value.Str()), nil
}

func (e *element) AncestorLabel(ctx context.Context) (string, error) {
	res, err := e.el.Context(ctx).Eval(`() => {
		const label = this.closest("label");
		return label ? label.textContent : "";
	}`)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Value.Str()), nil
}

func (e *element) ScrollTo(ctx context.Context, fraction float64) error {
	_, err := e.el.Context(ctx).Eval(
		`(fraction) => { this.scrollTop = this.scrollHeight * fraction; }`, fraction)
	return err
}

func (e *element) ScrollIntoView(ctx context.Context) error {
	return e.el.Context(ctx).ScrollIntoView()
}

func (e *element) Element(ctx context.Context, selector string) (output.Element, error) {
	el, err := e.el.Context(ctx).Timeout(e.timeout).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("element not found: %s: %w", selector, err)
	}
	return &element{el: el, page: e.page, timeout: e.timeout}, nil
}

func (e *element) Elements(ctx context.Context, selector string) ([]output.Element, error) {
	els, err := e.el.Context(ctx).Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("elements query failed: %s: %w", selector, err)
	}
	return wrapAll(els, e.page, e.timeout), nil
}
