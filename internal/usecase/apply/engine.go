package apply

import (
	"context"
	"fmt"
	"time"

	"autoapply/internal/application/port/input"
	"autoapply/internal/application/port/output"
	"autoapply/internal/domain/entity"
)

var _ input.JobApplicant = (*Engine)(nil)

// EngineConfig bounds one application run.
type EngineConfig struct {
	// MaxSteps is the hard step budget per application.
	MaxSteps int
	// ErrorThreshold aborts the application after this many consecutive
	// error-bearing fill passes.
	ErrorThreshold int
	// StepDelay lets the page settle between steps.
	StepDelay time.Duration
	// ResumePath is attached to any empty file-upload control.
	ResumePath string
	// Strict disables the first-option guess for unmatched radio groups.
	Strict      bool
	Screenshots entity.ScreenshotPolicy
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MaxSteps:       30,
		ErrorThreshold: 3,
		StepDelay:      time.Second,
		Screenshots: entity.ScreenshotPolicy{
			Enabled:     true,
			SaveOnError: true,
		},
	}
}

// Engine drives one job application end-to-end:
//
//	LOCATING -> (SCANNING <-> FILLING) -> CHECKING_ERRORS ->
//	{ADVANCING | REVIEWING | SUBMITTING} -> {SUBMITTED | ABORTED | TIMED_OUT}
//
// Every terminal transition updates the shared RunStatistics and settles the
// session's diagnostic artifacts per the screenshot policy.
type Engine struct {
	browser   output.BrowserPort
	answers   output.AnswerPort
	artifacts output.ArtifactPort
	logger    output.LoggerPort
	stats     *entity.RunStatistics
	cfg       EngineConfig

	locator  *Locator
	scanner  *Scanner
	filler   *Filler
	detector *ErrorDetector
}

func NewEngine(
	browser output.BrowserPort,
	answers output.AnswerPort,
	artifacts output.ArtifactPort,
	logger output.LoggerPort,
	stats *entity.RunStatistics,
	cfg EngineConfig,
) *Engine {
	return &Engine{
		browser:   browser,
		answers:   answers,
		artifacts: artifacts,
		logger:    logger,
		stats:     stats,
		cfg:       cfg,
		locator:   NewLocator(browser, logger),
		scanner:   NewScanner(browser, logger),
		filler:    NewFiller(answers, logger, stats, cfg.Strict),
		detector:  NewErrorDetector(logger),
	}
}

// Apply processes one application to a terminal outcome. The returned error
// is non-nil only on context cancellation; every domain failure resolves to
// an outcome and the batch continues.
func (e *Engine) Apply(ctx context.Context, job entity.Job) (*input.ApplyResult, error) {
	session := entity.NewApplicationSession(job.Index)
	log := e.logger.WithField("job", job.Index)

	modal, err := e.locator.Find(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Error("Could not locate application modal", "error", err)
		e.stats.AddError()
		return e.terminate(ctx, session, entity.OutcomeAborted, log), nil
	}

	for session.Step < e.cfg.MaxSteps {
		session.Step++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(e.cfg.StepDelay):
		}

		log.Info("Form step", "page", session.Page, "step", session.Step)
		e.captureStep(ctx, session)

		_ = modal.ScrollTo(ctx, 0)

		if submitted, err := e.trySubmit(ctx, modal, session, log); err != nil {
			return nil, err
		} else if submitted {
			return e.terminate(ctx, session, entity.OutcomeSubmitted, log), nil
		}

		e.uploadResume(ctx, modal, log)

		for _, field := range e.scanner.Scan(ctx, modal) {
			if err := e.filler.Fill(ctx, field); err != nil {
				log.Warn("Field fill failed", "label", field.Desc.Label, "error", err)
			}
		}

		_ = modal.ScrollTo(ctx, 1)

		hasErrors, messages := e.detector.Detect(ctx, modal)
		if hasErrors {
			consecutive := session.RecordErrorPass()
			log.Error("Validation errors on form", "consecutive", consecutive, "messages", messages)
			e.captureError(ctx, session)

			if consecutive >= e.cfg.ErrorThreshold {
				log.Error("Too many consecutive validation errors, aborting")
				return e.terminate(ctx, session, entity.OutcomeAborted, log), nil
			}
		} else {
			session.RecordCleanPass()
		}

		if e.clickNav(ctx, modal, selNext, log, "next") {
			session.Page++
			continue
		}
		if e.clickNav(ctx, modal, selReview, log, "review") {
			continue
		}

		log.Warn("No actionable controls on this step")
	}

	log.Warn("Step budget exhausted", "steps", session.Step)
	return e.terminate(ctx, session, entity.OutcomeTimedOut, log), nil
}

// trySubmit checks for an enabled submit control; clicking it is the only
// path to a successful outcome. A disabled submit button means more fields
// still need filling.
func (e *Engine) trySubmit(ctx context.Context, modal output.Element, session *entity.ApplicationSession, log output.LoggerPort) (bool, error) {
	btn, err := modal.Element(ctx, selSubmit)
	if err != nil || btn == nil {
		return false, ctx.Err()
	}

	enabled, _ := btn.Enabled(ctx)
	if !enabled {
		log.Warn("Submit button disabled, filling more fields")
		return false, nil
	}

	e.captureFinal(ctx, session)
	log.Info("Submitting application")
	if err := btn.Click(ctx); err != nil {
		log.Error("Submit click failed", "error", err)
		e.stats.AddError()
		return false, nil
	}
	return true, nil
}

// uploadResume attaches the configured resume to any empty file control.
// Already-populated controls are left alone.
func (e *Engine) uploadResume(ctx context.Context, modal output.Element, log output.LoggerPort) {
	if e.cfg.ResumePath == "" {
		return
	}

	inputs, err := modal.Elements(ctx, selFileInputs)
	if err != nil {
		return
	}
	for _, in := range inputs {
		count, err := in.FileCount(ctx)
		if err == nil && count > 0 {
			log.Debug("Resume already uploaded")
			continue
		}
		if err := in.SetFiles(ctx, []string{e.cfg.ResumePath}); err != nil {
			log.Warn("Resume upload failed", "error", err)
			e.stats.AddError()
			continue
		}
		log.Info("Resume uploaded", "path", e.cfg.ResumePath)
	}
}

func (e *Engine) clickNav(ctx context.Context, modal output.Element, selector string, log output.LoggerPort, kind string) bool {
	btn, err := modal.Element(ctx, selector)
	if err != nil || btn == nil {
		return false
	}

	visible, _ := btn.Visible(ctx)
	enabled, _ := btn.Enabled(ctx)
	if !visible || !enabled {
		log.Debug("Navigation control not ready", "kind", kind, "visible", visible, "enabled", enabled)
		return false
	}

	if err := btn.Click(ctx); err != nil {
		log.Warn("Navigation click failed", "kind", kind, "error", err)
		e.stats.AddError()
		return false
	}
	log.Info("Advanced form", "kind", kind)
	return true
}

// terminate settles the session: counters, modal dismissal and artifact
// retention. The modal handle is dead after this returns.
func (e *Engine) terminate(ctx context.Context, session *entity.ApplicationSession, outcome entity.Outcome, log output.LoggerPort) *input.ApplyResult {
	session.Outcome = outcome

	switch {
	case outcome == entity.OutcomeSubmitted:
		e.stats.AddSubmitted()
	case outcome.Failed():
		e.stats.AddFailed()
	}

	e.closeModal(ctx)
	e.settleArtifacts(session)

	log.Info("Application finished", "outcome", outcome, "pages", session.Page, "steps", session.Step)
	return &input.ApplyResult{
		Outcome: outcome,
		Pages:   session.Page,
		Steps:   session.Step,
	}
}

// closeModal dismisses the application modal, confirming the discard prompt
// when one appears.
func (e *Engine) closeModal(ctx context.Context) {
	btn, err := e.browser.Element(ctx, selDismiss)
	if err != nil || btn == nil {
		return
	}
	if err := btn.Click(ctx); err != nil {
		return
	}

	if discard, err := e.browser.ElementR(ctx, "button", "Discard"); err == nil && discard != nil {
		_ = discard.Click(ctx)
	}
}

func (e *Engine) captureStep(ctx context.Context, session *entity.ApplicationSession) {
	if !e.cfg.Screenshots.Enabled {
		return
	}
	// save_final_only captures only the application's first step plus the
	// final submit shot.
	if e.cfg.Screenshots.SaveFinalOnly && session.Step != 1 {
		return
	}
	e.capture(ctx, session, fmt.Sprintf("job_%d_p%d_s%d", session.JobIndex, session.Page, session.Step))
}

func (e *Engine) captureFinal(ctx context.Context, session *entity.ApplicationSession) {
	if !e.cfg.Screenshots.Enabled {
		return
	}
	e.capture(ctx, session, fmt.Sprintf("job_%d_final_submit", session.JobIndex))
}

func (e *Engine) captureError(ctx context.Context, session *entity.ApplicationSession) {
	if !e.cfg.Screenshots.Enabled {
		return
	}
	e.capture(ctx, session, fmt.Sprintf("job_%d_error_p%d", session.JobIndex, session.Page))
}

func (e *Engine) capture(ctx context.Context, session *entity.ApplicationSession, name string) {
	shot, err := e.browser.Screenshot(ctx)
	if err != nil {
		e.logger.Warn("Screenshot failed", "name", name, "error", err)
		return
	}
	path, err := e.artifacts.Save(ctx, name, shot)
	if err != nil {
		e.logger.Warn("Screenshot save failed", "name", name, "error", err)
		return
	}
	session.AttachScreenshot(path)
}

// settleArtifacts applies the retention policy: successful submissions drop
// their screenshots unless save_on_success keeps them; aborts and timeouts
// keep theirs for post-mortem unless save_on_error is off.
func (e *Engine) settleArtifacts(session *entity.ApplicationSession) {
	if len(session.Screenshots) == 0 {
		return
	}

	keep := false
	switch session.Outcome {
	case entity.OutcomeSubmitted:
		keep = e.cfg.Screenshots.SaveOnSuccess
	default:
		keep = e.cfg.Screenshots.SaveOnError
	}

	if !keep {
		e.artifacts.Discard(session.Screenshots)
	}
	session.Screenshots = nil
}
