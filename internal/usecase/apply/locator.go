package apply

import (
	"context"
	"fmt"
	"time"

	"autoapply/internal/application/port/output"
)

const (
	defaultLocatorRetries = 3
	defaultLocatorDelay   = 2 * time.Second
)

// Locator finds the application-modal container with bounded retries.
// Exhausting the budget is recoverable: the current application is marked
// failed and the batch moves on.
type Locator struct {
	browser   output.BrowserPort
	logger    output.LoggerPort
	selectors []string
	retries   int
	delay     time.Duration
}

func NewLocator(browser output.BrowserPort, logger output.LoggerPort) *Locator {
	return &Locator{
		browser:   browser,
		logger:    logger,
		selectors: modalSelectors,
		retries:   defaultLocatorRetries,
		delay:     defaultLocatorDelay,
	}
}

// Find probes each modal selector in order, once per retry round.
func (l *Locator) Find(ctx context.Context) (output.Element, error) {
	for attempt := 1; attempt <= l.retries; attempt++ {
		for _, selector := range l.selectors {
			el, err := l.browser.Element(ctx, selector)
			if err == nil && el != nil {
				l.logger.Info("Modal found", "selector", selector, "attempt", attempt)
				return el, nil
			}
		}

		if attempt < l.retries {
			l.logger.Warn("Modal not found, retrying", "attempt", attempt, "max", l.retries)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(l.delay):
			}
		}
	}

	return nil, fmt.Errorf("%w after %d attempts", ErrModalNotFound, l.retries)
}
