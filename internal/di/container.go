package di

import (
	"context"
	"fmt"
	"os"

	"autoapply/internal/application/port/input"
	"autoapply/internal/application/port/output"
	"autoapply/internal/domain/entity"
	"autoapply/internal/infrastructure/artifacts"
	"autoapply/internal/infrastructure/browser/rod"
	"autoapply/internal/infrastructure/config"
	"autoapply/internal/infrastructure/llm/ollama"
	"autoapply/internal/infrastructure/llm/openaicompat"
	"autoapply/internal/infrastructure/logger"
	"autoapply/internal/usecase/answer"
	"autoapply/internal/usecase/apply"
	"autoapply/internal/usecase/linkedin"
)

type Container struct {
	Browser   output.BrowserPort
	Model     output.AnswerModelPort
	Answers   *answer.Provider
	Artifacts output.ArtifactPort
	Logger    output.LoggerPort
	Stats     *entity.RunStatistics
	Applicant input.JobApplicant
	Runner    input.BatchRunner
}

func NewContainer(ctx context.Context, cfg *config.Config, secrets config.Secrets) (*Container, error) {
	log, err := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		FilePath:   cfg.Logger.FilePath,
		MaxSizeMB:  cfg.Logger.MaxSizeMB,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAgeDays: cfg.Logger.MaxAgeDays,
		Console:    cfg.Logger.Console,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	browser, err := rod.NewBrowserAdapter(ctx, rod.BrowserConfig{
		Headless:   cfg.Browser.Headless,
		SlowMotion: cfg.Browser.SlowMotion,
		Timeout:    cfg.Browser.Timeout,
		NoSandbox:  cfg.Browser.NoSandbox,
	})
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create browser: %w", err)
	}

	model, err := newAnswerModel(cfg, secrets)
	if err != nil {
		browser.Close()
		log.Close()
		return nil, err
	}

	store, err := artifacts.NewStore(artifacts.Config{
		Dir:      cfg.Screenshots.Dir,
		MaxWidth: cfg.Screenshots.MaxWidth,
	}, log)
	if err != nil {
		browser.Close()
		log.Close()
		return nil, fmt.Errorf("failed to create artifact store: %w", err)
	}

	stats := &entity.RunStatistics{}

	resumeText := ""
	if cfg.Paths.ResumeText != "" {
		data, err := os.ReadFile(cfg.Paths.ResumeText)
		if err != nil {
			log.Warn("Resume text not readable", "path", cfg.Paths.ResumeText, "error", err)
		} else {
			resumeText = string(data)
		}
	}

	answers := answer.NewProvider(model, log, stats, resumeText)

	engineCfg := apply.DefaultEngineConfig()
	if cfg.Engine.MaxSteps > 0 {
		engineCfg.MaxSteps = cfg.Engine.MaxSteps
	}
	if cfg.Engine.ErrorThreshold > 0 {
		engineCfg.ErrorThreshold = cfg.Engine.ErrorThreshold
	}
	if cfg.Engine.StepDelay > 0 {
		engineCfg.StepDelay = cfg.Engine.StepDelay
	}
	engineCfg.Strict = cfg.Engine.Strict
	engineCfg.ResumePath = cfg.Paths.Resume
	engineCfg.Screenshots = cfg.Screenshots.Policy()

	applicant := apply.NewEngine(browser, answers, store, log, stats, engineCfg)

	runner := linkedin.NewBot(browser, applicant, answers, log, stats, linkedin.Config{
		Username: secrets.Username,
		Password: secrets.Password,
		Keywords: cfg.Search.Keywords,
		Location: cfg.Search.Location,
		Limit:    cfg.Limits.ApplicationsPerRun,
	})

	return &Container{
		Browser:   browser,
		Model:     model,
		Answers:   answers,
		Artifacts: store,
		Logger:    log,
		Stats:     stats,
		Applicant: applicant,
		Runner:    runner,
	}, nil
}

func newAnswerModel(cfg *config.Config, secrets config.Secrets) (output.AnswerModelPort, error) {
	switch cfg.LLM.Provider {
	case "openai":
		return openaicompat.NewAdapter(openaicompat.Config{
			APIKey:  secrets.LLMAPIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
		}), nil
	case "", "ollama":
		model, err := ollama.NewAdapter(ollama.Config{
			Model:     cfg.LLM.Model,
			ServerURL: cfg.LLM.ServerURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama adapter: %w", err)
		}
		return model, nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.LLM.Provider)
	}
}

func (c *Container) Close() {
	if c.Browser != nil {
		c.Browser.Close()
	}
	if c.Logger != nil {
		c.Logger.Close()
	}
}
