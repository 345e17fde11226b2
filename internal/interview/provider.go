package interview

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/skillgate/interviewd/internal/ai"
	"github.com/skillgate/interviewd/internal/metrics"
)

// QuestionSource supplies pre-authored questions for a role and level. It is
// the fallback behind the generation delegate and must never return an empty
// set.
type QuestionSource interface {
	Questions(role, level string, max int) []Question
}

// Provider turns a résumé and skill profile into a validated question
// sequence. The delegate is tried first; any failure, including a batch that
// does not survive validation, falls back to the bank. Provisioning itself
// never fails.
type Provider struct {
	generator ai.QuestionGenerator
	bank      QuestionSource
	timeout   time.Duration
	log       *zap.Logger
	metrics   *metrics.Metrics
}

// NewProvider builds a Provider. The generator may be nil, in which case
// every batch comes from the bank.
func NewProvider(generator ai.QuestionGenerator, bank QuestionSource, timeout time.Duration, log *zap.Logger, m *metrics.Metrics) *Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{
		generator: generator,
		bank:      bank,
		timeout:   timeout,
		log:       log,
		metrics:   m,
	}
}

// Provision returns a validated question sequence of at most req.Count
// questions with sequential ids starting at 1.
func (p *Provider) Provision(ctx context.Context, req ai.GenerateRequest) []Question {
	questions, err := p.generate(ctx, req)
	if err == nil {
		return questions
	}

	p.log.Warn("question generation fell back to the bank",
		zap.String("role", req.Role),
		zap.String("level", req.Level),
		zap.Error(err),
	)
	if p.metrics != nil {
		p.metrics.IncrementFallbackBatch()
	}

	return p.bank.Questions(req.Role, req.Level, req.Count)
}

func (p *Provider) generate(ctx context.Context, req ai.GenerateRequest) ([]Question, error) {
	if p.generator == nil {
		return nil, ErrNoDelegate
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	drafts, err := p.generator.GenerateQuestions(ctx, req)
	if p.metrics != nil {
		p.metrics.IncrementDelegateCall(err == nil)
	}
	if err != nil {
		return nil, err
	}

	return QuestionsFromDrafts(drafts, req.Count)
}
