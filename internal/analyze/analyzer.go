package analyze

import (
	"context"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/careercompass/career-compass/internal/ai"
	"github.com/careercompass/career-compass/internal/logger"
	"go.uber.org/zap"
)

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// Analyzer evaluates the match between a job description and a resume by
// delegating the reasoning to the LLM and shaping its output into a validated
// AnalysisResult. It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	completer ai.Completer
	logger    *zap.Logger
	maxLogLen int
}

func NewAnalyzer(completer ai.Completer, maxLogLength int, log *zap.Logger) *Analyzer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Analyzer{
		completer: completer,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// Analyze runs a single completion and pipes the response through extraction
// and validation. It never fails: an upstream error or unusable response
// degrades to the Default Result, with the cause logged for diagnostics.
func (a *Analyzer) Analyze(ctx context.Context, jobDescription, resumeText string) AnalysisResult {
	prompt := buildPrompt(jobDescription, resumeText)

	a.logger.Debug("analysis request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		a.logger.Warn("analysis completion failed", zap.Error(err))
		return DefaultResult()
	}

	a.logger.Debug("analysis response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, a.maxLogLen)),
	)

	data, err := ExtractJSON(raw)
	if err != nil {
		a.logger.Warn("analysis response is not parseable",
			zap.Error(err),
			zap.String("response_preview", logger.TruncateForLog(raw, a.maxLogLen)),
		)
		return DefaultResult()
	}

	return validate(data)
}

func buildPrompt(jobDescription, resumeText string) string {
	prompt := strings.ReplaceAll(promptTemplate, "{{JOB_DESCRIPTION}}", jobDescription)
	prompt = strings.ReplaceAll(prompt, "{{RESUME_TEXT}}", resumeText)
	return prompt
}
