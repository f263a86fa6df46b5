package apply

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocator_FirstSelectorWins(t *testing.T) {
	browser := newFakeBrowser()
	browser.elements[".jobs-easy-apply-modal"] = newFakeElement()
	browser.elements[`[role="dialog"]`] = newFakeElement()

	l := NewLocator(browser, nopLogger{})

	el, err := l.Find(context.Background())
	require.NoError(t, err)
	assert.Same(t, browser.elements[".jobs-easy-apply-modal"], el)
}

func TestLocator_FallbackSelector(t *testing.T) {
	browser := newFakeBrowser()
	browser.elements[".jobs-easy-apply-content"] = newFakeElement()

	l := NewLocator(browser, nopLogger{})

	el, err := l.Find(context.Background())
	require.NoError(t, err)
	assert.Same(t, browser.elements[".jobs-easy-apply-content"], el)
}

func TestLocator_ExhaustsRetries(t *testing.T) {
	l := NewLocator(newFakeBrowser(), nopLogger{})
	l.delay = time.Millisecond

	_, err := l.Find(context.Background())
	assert.ErrorIs(t, err, ErrModalNotFound)
}

func TestLocator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := NewLocator(newFakeBrowser(), nopLogger{})
	l.delay = time.Minute

	_, err := l.Find(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
