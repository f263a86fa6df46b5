// Package linkedin hosts the batch loop: sign in, search Easy Apply
// postings, and hand each one to the application engine.
package linkedin

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"autoapply/internal/application/port/input"
	"autoapply/internal/application/port/output"
	"autoapply/internal/domain/entity"
	"autoapply/internal/infrastructure/htmlclean"
)

var _ input.BatchRunner = (*Bot)(nil)

const (
	baseURL   = "https://www.linkedin.com"
	feedURL   = baseURL + "/feed/"
	loginURL  = baseURL + "/login"
	searchURL = baseURL + "/jobs/search/"

	selUsername = "#username"
	selPassword = "#password"
	selSignIn   = `button[type="submit"]`

	selJobCard         = "li.jobs-search-results__list-item"
	selJobCardFallback = ".scaffold-layout__list-item"
	selJobList         = ".jobs-search-results-list"
	selJobTitle        = ".job-card-list__title"
	selJobDescription  = ".jobs-description__content"
	selEasyApplyButton = ".jobs-apply-button"

	verificationWait = 5 * time.Minute
	verificationPoll = 5 * time.Second

	listScrollRounds = 3
)

// JobContextSetter is the slice of the answer provider the bot needs: the
// current job description travels to the model through it.
type JobContextSetter interface {
	SetJobContext(description string)
}

type Config struct {
	Username string
	Password string
	Keywords string
	Location string
	// Limit caps applications attempted in one run.
	Limit int
}

// Bot walks the search results and applies to each Easy Apply posting.
// One job failing never stops the batch.
type Bot struct {
	browser   output.BrowserPort
	applicant input.JobApplicant
	answers   JobContextSetter
	logger    output.LoggerPort
	stats     *entity.RunStatistics
	cfg       Config
}

func NewBot(
	browser output.BrowserPort,
	applicant input.JobApplicant,
	answers JobContextSetter,
	logger output.LoggerPort,
	stats *entity.RunStatistics,
	cfg Config,
) *Bot {
	return &Bot{
		browser:   browser,
		applicant: applicant,
		answers:   answers,
		logger:    logger,
		stats:     stats,
		cfg:       cfg,
	}
}

// Run signs in, opens the filtered search, and processes jobs until the
// per-run limit is reached or the results run out.
func (b *Bot) Run(ctx context.Context) (*entity.RunStatistics, error) {
	if err := b.Login(ctx); err != nil {
		return b.stats, fmt.Errorf("login: %w", err)
	}
	if err := b.SearchJobs(ctx); err != nil {
		return b.stats, fmt.Errorf("job search: %w", err)
	}

	cards, err := b.collectJobCards(ctx)
	if err != nil {
		return b.stats, fmt.Errorf("collect job cards: %w", err)
	}
	b.logger.Info("Job cards found", "count", len(cards))

	applied := 0
	for i, card := range cards {
		if applied >= b.cfg.Limit {
			b.logger.Info("Application limit reached", "limit", b.cfg.Limit)
			break
		}
		if ctx.Err() != nil {
			return b.stats, ctx.Err()
		}

		job, ok := b.openJob(ctx, card, i)
		if !ok {
			continue
		}

		result, err := b.applicant.Apply(ctx, job)
		if err != nil {
			return b.stats, err
		}
		if result.Outcome == entity.OutcomeSubmitted {
			applied++
		}
	}

	b.logger.Info("Batch finished", b.stats.LogFields()...)
	return b.stats, nil
}

// Login is a no-op when an existing session carries the feed. Otherwise it
// submits credentials and, when the site asks for verification, waits for a
// human to finish the challenge.
func (b *Bot) Login(ctx context.Context) error {
	if err := b.browser.Navigate(ctx, feedURL); err != nil {
		return err
	}
	if strings.Contains(b.browser.CurrentURL(), "/feed") {
		b.logger.Info("Existing session found, skipping login")
		b.dismissOverlays(ctx)
		return nil
	}

	b.logger.Info("Signing in")
	if err := b.browser.Navigate(ctx, loginURL); err != nil {
		return err
	}

	userEl, err := b.browser.Element(ctx, selUsername)
	if err != nil {
		return fmt.Errorf("username field: %w", err)
	}
	if err := userEl.Input(ctx, b.cfg.Username); err != nil {
		return err
	}

	passEl, err := b.browser.Element(ctx, selPassword)
	if err != nil {
		return fmt.Errorf("password field: %w", err)
	}
	if err := passEl.Input(ctx, b.cfg.Password); err != nil {
		return err
	}

	signIn, err := b.browser.Element(ctx, selSignIn)
	if err != nil {
		return fmt.Errorf("sign-in button: %w", err)
	}
	if err := signIn.Click(ctx); err != nil {
		return err
	}

	if err := b.awaitVerification(ctx); err != nil {
		return err
	}
	b.dismissOverlays(ctx)
	return nil
}

// awaitVerification polls the URL until the security challenge clears or
// the wait budget runs out.
func (b *Bot) awaitVerification(ctx context.Context) error {
	deadline := time.Now().Add(verificationWait)
	for {
		current := b.browser.CurrentURL()
		if strings.Contains(current, "/feed") {
			return nil
		}
		if !strings.Contains(current, "checkpoint") && !strings.Contains(current, "challenge") &&
			!strings.Contains(current, "/login") {
			return nil
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("verification not completed within %s", verificationWait)
		}
		b.logger.Warn("Waiting for manual verification", "url", current)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(verificationPoll):
		}
	}
}

func (b *Bot) dismissOverlays(ctx context.Context) {
	if btn, err := b.browser.Element(ctx, `button[aria-label*="Dismiss"]`); err == nil && btn != nil {
		if visible, _ := btn.Visible(ctx); visible {
			_ = btn.Click(ctx)
		}
	}
}

// SearchJobs opens the search pre-filtered to Easy Apply postings.
func (b *Bot) SearchJobs(ctx context.Context) error {
	b.logger.Info("Searching jobs", "keywords", b.cfg.Keywords, "location", b.cfg.Location)
	return b.browser.Navigate(ctx, SearchURL(b.cfg.Keywords, b.cfg.Location))
}

// SearchURL builds the jobs-search URL with the Easy Apply filter applied.
func SearchURL(keywords, location string) string {
	q := url.Values{}
	q.Set("keywords", keywords)
	q.Set("location", location)
	q.Set("f_AL", "true")
	return searchURL + "?" + q.Encode()
}

// collectJobCards scrolls the result list a few times to force lazy cards to
// render, then returns whichever card selector matches.
func (b *Bot) collectJobCards(ctx context.Context) ([]output.Element, error) {
	if list, err := b.browser.Element(ctx, selJobList); err == nil && list != nil {
		for i := 0; i < listScrollRounds; i++ {
			_ = list.ScrollTo(ctx, float64(i+1)/listScrollRounds)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Second):
			}
		}
	}

	cards, err := b.browser.Elements(ctx, selJobCard)
	if err == nil && len(cards) > 0 {
		return cards, nil
	}
	return b.browser.Elements(ctx, selJobCardFallback)
}

// openJob clicks a card, confirms the posting is Easy Apply, loads its
// description into the answer context, and clicks the apply button.
func (b *Bot) openJob(ctx context.Context, card output.Element, index int) (entity.Job, bool) {
	job := entity.Job{Index: index}
	log := b.logger.WithField("job", index)

	_ = card.ScrollIntoView(ctx)
	if err := card.Click(ctx); err != nil {
		log.Warn("Could not open job card", "error", err)
		return job, false
	}

	if titleEl, err := card.Element(ctx, selJobTitle); err == nil && titleEl != nil {
		job.Title, _ = titleEl.Text(ctx)
	}

	applyBtn, err := b.browser.Element(ctx, selEasyApplyButton)
	if err != nil || applyBtn == nil {
		log.Info("No apply button, skipping", "title", job.Title)
		return job, false
	}
	btnText, _ := applyBtn.Text(ctx)
	if !strings.Contains(strings.ToLower(btnText), "easy apply") {
		log.Info("External application, skipping", "title", job.Title)
		return job, false
	}

	if descEl, err := b.browser.Element(ctx, selJobDescription); err == nil && descEl != nil {
		if raw, err := descEl.HTML(ctx); err == nil {
			job.Description = htmlclean.Text(raw, nil)
			b.answers.SetJobContext(job.Description)
		}
	}

	if err := applyBtn.Click(ctx); err != nil {
		log.Warn("Apply click failed", "error", err)
		return job, false
	}

	log.Info("Opened application", "title", job.Title)
	return job, true
}
