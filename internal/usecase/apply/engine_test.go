package apply

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoapply/internal/domain/entity"
)

func newTestEngine(browser *fakeBrowser, answers *fakeAnswers, artifacts *fakeArtifacts, stats *entity.RunStatistics, cfg EngineConfig) *Engine {
	e := NewEngine(browser, answers, artifacts, nopLogger{}, stats, cfg)
	e.locator.delay = time.Millisecond
	return e
}

func fastConfig() EngineConfig {
	cfg := DefaultEngineConfig()
	cfg.StepDelay = time.Millisecond
	return cfg
}

func TestEngine_ModalNotFoundAborts(t *testing.T) {
	stats := &entity.RunStatistics{}
	e := newTestEngine(newFakeBrowser(), &fakeAnswers{}, &fakeArtifacts{}, stats, fastConfig())

	result, err := e.Apply(context.Background(), entity.Job{Index: 0})
	require.NoError(t, err)

	assert.Equal(t, entity.OutcomeAborted, result.Outcome)
	assert.Equal(t, 1, stats.ApplicationsFailed)
	assert.Zero(t, stats.ApplicationsSubmitted)
	assert.Equal(t, 1, stats.ErrorsEncountered)
}

func TestEngine_TwoPageHappyPath(t *testing.T) {
	modal := newFakeElement()
	modal.addChild(selTextInputs, textInput("Phone number", "tel", ""))

	submit := newFakeElement()
	next := newFakeElement()
	next.onClick = func() {
		// advancing swaps the modal content: second page carries the
		// enabled submit control
		delete(modal.children, selNext)
		delete(modal.children, selTextInputs)
		modal.addChild(selSubmit, submit)
	}
	modal.addChild(selNext, next)

	browser := newFakeBrowser()
	browser.elements[".jobs-easy-apply-modal"] = modal

	answers := &fakeAnswers{fallbackValue: "5551234567"}
	artifacts := &fakeArtifacts{}
	stats := &entity.RunStatistics{}
	e := newTestEngine(browser, answers, artifacts, stats, fastConfig())

	result, err := e.Apply(context.Background(), entity.Job{Index: 1})
	require.NoError(t, err)

	assert.Equal(t, entity.OutcomeSubmitted, result.Outcome)
	assert.Equal(t, 2, result.Pages)
	assert.Equal(t, 1, next.clicks)
	assert.Equal(t, 1, submit.clicks)
	assert.Equal(t, 1, stats.ApplicationsSubmitted)
	assert.Zero(t, stats.ApplicationsFailed)
	assert.Equal(t, 1, stats.FieldsFilled)

	// success without save_on_success drops all diagnostics
	assert.NotEmpty(t, artifacts.saved)
	assert.ElementsMatch(t, artifacts.saved, artifacts.discarded)
}

func TestEngine_ConsecutiveErrorsAbort(t *testing.T) {
	errEl := newFakeElement()
	errEl.text = "This field is required"

	modal := newFakeElement()
	modal.addChild(selInlineError, errEl)

	browser := newFakeBrowser()
	browser.elements[".jobs-easy-apply-modal"] = modal

	stats := &entity.RunStatistics{}
	artifacts := &fakeArtifacts{}
	e := newTestEngine(browser, &fakeAnswers{}, artifacts, stats, fastConfig())

	result, err := e.Apply(context.Background(), entity.Job{Index: 2})
	require.NoError(t, err)

	assert.Equal(t, entity.OutcomeAborted, result.Outcome)
	assert.Equal(t, 3, result.Steps)
	assert.Equal(t, 1, stats.ApplicationsFailed)

	// error diagnostics are kept by default
	assert.NotEmpty(t, artifacts.saved)
	assert.Empty(t, artifacts.discarded)
}

func TestEngine_CleanPassResetsErrorCounter(t *testing.T) {
	errEl := newFakeElement()
	errEl.text = "Required"

	modal := newFakeElement()
	setErrors := func(on bool) {
		if on {
			modal.children[selInlineError] = []*fakeElement{errEl}
		} else {
			delete(modal.children, selInlineError)
		}
	}

	// two error passes, a clean pass, two more error passes: the counter
	// resets in between and the threshold of three is never reached
	schedule := []bool{true, true, false, true, true, false}
	setErrors(schedule[0])

	step := 0
	next := newFakeElement()
	next.onClick = func() {
		step++
		if step < len(schedule) {
			setErrors(schedule[step])
		}
	}
	modal.addChild(selNext, next)

	browser := newFakeBrowser()
	browser.elements[".jobs-easy-apply-modal"] = modal

	stats := &entity.RunStatistics{}
	cfg := fastConfig()
	cfg.MaxSteps = len(schedule)
	e := newTestEngine(browser, &fakeAnswers{}, &fakeArtifacts{}, stats, cfg)

	result, err := e.Apply(context.Background(), entity.Job{Index: 8})
	require.NoError(t, err)

	assert.Equal(t, entity.OutcomeTimedOut, result.Outcome)
	assert.Equal(t, len(schedule), result.Steps)
}

func TestEngine_StepBudgetTimesOut(t *testing.T) {
	browser := newFakeBrowser()
	browser.elements[".jobs-easy-apply-modal"] = newFakeElement()

	stats := &entity.RunStatistics{}
	cfg := fastConfig()
	cfg.MaxSteps = 2
	e := newTestEngine(browser, &fakeAnswers{}, &fakeArtifacts{}, stats, cfg)

	result, err := e.Apply(context.Background(), entity.Job{Index: 3})
	require.NoError(t, err)

	assert.Equal(t, entity.OutcomeTimedOut, result.Outcome)
	assert.Equal(t, 2, result.Steps)
	assert.Equal(t, 1, stats.ApplicationsFailed)
}

func TestEngine_UploadsResumeOnce(t *testing.T) {
	empty := newFakeElement()
	populated := newFakeElement()
	populated.fileCount = 1

	modal := newFakeElement()
	modal.addChild(selFileInputs, empty)
	modal.addChild(selFileInputs, populated)

	browser := newFakeBrowser()
	browser.elements[".jobs-easy-apply-modal"] = modal

	cfg := fastConfig()
	cfg.MaxSteps = 1
	cfg.ResumePath = "/tmp/resume.pdf"
	e := newTestEngine(browser, &fakeAnswers{}, &fakeArtifacts{}, &entity.RunStatistics{}, cfg)

	_, err := e.Apply(context.Background(), entity.Job{Index: 4})
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"/tmp/resume.pdf"}}, empty.filesSet)
	assert.Empty(t, populated.filesSet)
}

func TestEngine_ReviewAdvancesWithoutPageBump(t *testing.T) {
	modal := newFakeElement()

	submit := newFakeElement()
	review := newFakeElement()
	review.onClick = func() {
		delete(modal.children, selReview)
		modal.addChild(selSubmit, submit)
	}
	modal.addChild(selReview, review)

	browser := newFakeBrowser()
	browser.elements[".jobs-easy-apply-modal"] = modal

	e := newTestEngine(browser, &fakeAnswers{}, &fakeArtifacts{}, &entity.RunStatistics{}, fastConfig())

	result, err := e.Apply(context.Background(), entity.Job{Index: 5})
	require.NoError(t, err)

	assert.Equal(t, entity.OutcomeSubmitted, result.Outcome)
	assert.Equal(t, 1, result.Pages)
	assert.Equal(t, 1, review.clicks)
}

func TestEngine_DisabledSubmitKeepsFilling(t *testing.T) {
	modal := newFakeElement()

	submit := newFakeElement()
	submit.enabled = false
	modal.addChild(selSubmit, submit)

	input := textInput("Email", "email", "")
	modal.addChild(selTextInputs, input)

	// advancing the step is what unlocks the submit control
	next := newFakeElement()
	next.onClick = func() { submit.enabled = true }
	modal.addChild(selNext, next)

	browser := newFakeBrowser()
	browser.elements[".jobs-easy-apply-modal"] = modal

	answers := &fakeAnswers{fallbackValue: "alex@example.com"}
	e := newTestEngine(browser, answers, &fakeArtifacts{}, &entity.RunStatistics{}, fastConfig())

	result, err := e.Apply(context.Background(), entity.Job{Index: 6})
	require.NoError(t, err)

	assert.Equal(t, entity.OutcomeSubmitted, result.Outcome)
	assert.Equal(t, 1, submit.clicks)
}

func TestEngine_ContextCancellation(t *testing.T) {
	browser := newFakeBrowser()
	browser.elements[".jobs-easy-apply-modal"] = newFakeElement()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := newTestEngine(browser, &fakeAnswers{}, &fakeArtifacts{}, &entity.RunStatistics{}, fastConfig())

	_, err := e.Apply(ctx, entity.Job{Index: 7})
	assert.ErrorIs(t, err, context.Canceled)
}
