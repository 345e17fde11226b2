package interview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skillgate/interviewd/internal/ai"
	"github.com/skillgate/interviewd/internal/metrics"
	"github.com/skillgate/interviewd/internal/skills"
)

// SessionStore persists sessions between requests. Implementations decide the
// expiry policy; Get must return ErrSessionNotFound for unknown or expired
// ids.
type SessionStore interface {
	Create(session *Session) error
	Get(id string) (*Session, error)
	Delete(id string)
}

// ResultSink receives completed interviews for archival. Sink failures are
// logged, never surfaced to the candidate.
type ResultSink interface {
	SaveResult(session *Session) error
}

// Config is the tunable surface of the engine. Zero values are replaced with
// the defaults the service shipped with.
type Config struct {
	RequiredSkills     []string
	MatchThreshold     float64
	MaxQuestions       int
	QuestionTimeLimit  time.Duration
	FallbackConfidence float64
	DelegateTimeout    time.Duration
	Thresholds         Thresholds
	DefaultResume      string
	Vocabulary         *skills.Vocabulary
}

// Deps are the engine's collaborators. Store and Bank are required; the
// delegates, metrics and results sink may be nil.
type Deps struct {
	Store     SessionStore
	Bank      QuestionSource
	Generator ai.QuestionGenerator
	Grader    ai.AnswerGrader
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	Results   ResultSink
	Clock     func() time.Time
}

// Engine drives the whole interview: résumé gate, question provisioning,
// per-answer grading and the final decision.
type Engine struct {
	cfg      Config
	store    SessionStore
	provider *Provider
	grader   ai.AnswerGrader
	log      *zap.Logger
	metrics  *metrics.Metrics
	results  ResultSink
	now      func() time.Time
}

const (
	defaultMatchThreshold  = 7.0
	defaultMaxQuestions    = 10
	defaultTimeLimit       = 120 * time.Second
	defaultFallbackConf    = 0.4
	defaultDelegateTimeout = 30 * time.Second

	defaultRole  = "Analyst"
	defaultLevel = "Intermediate"
)

// NewEngine builds an Engine, filling unset config fields with defaults.
func NewEngine(cfg Config, deps Deps) *Engine {
	if cfg.MatchThreshold <= 0 {
		cfg.MatchThreshold = defaultMatchThreshold
	}
	if cfg.MaxQuestions <= 0 {
		cfg.MaxQuestions = defaultMaxQuestions
	}
	if cfg.QuestionTimeLimit <= 0 {
		cfg.QuestionTimeLimit = defaultTimeLimit
	}
	if cfg.FallbackConfidence <= 0 {
		cfg.FallbackConfidence = defaultFallbackConf
	}
	if cfg.DelegateTimeout <= 0 {
		cfg.DelegateTimeout = defaultDelegateTimeout
	}
	if cfg.Thresholds == (Thresholds{}) {
		cfg.Thresholds = DefaultThresholds()
	}
	if cfg.Vocabulary == nil {
		cfg.Vocabulary = skills.DefaultVocabulary()
	}

	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Engine{
		cfg:      cfg,
		store:    deps.Store,
		provider: NewProvider(deps.Generator, deps.Bank, cfg.DelegateTimeout, log, deps.Metrics),
		grader:   deps.Grader,
		log:      log,
		metrics:  deps.Metrics,
		results:  deps.Results,
		now:      clock,
	}
}

// StartRequest opens an interview for one candidate.
type StartRequest struct {
	CandidateName string `json:"candidate_name"`
	Role          string `json:"role"`
	Level         string `json:"level"`
	ResumeText    string `json:"resume_text"`
}

// StartResponse is the first message of the interview. For blocked
// candidates Question is nil and Reason explains the gate outcome.
type StartResponse struct {
	SessionID    string    `json:"session_id"`
	Blocked      bool      `json:"blocked"`
	Greeting     string    `json:"greeting,omitempty"`
	Reason       string    `json:"reason,omitempty"`
	Question     *Question `json:"question,omitempty"`
	TimeLimitSec int       `json:"time_limit_sec,omitempty"`
}

// SubmitRequest carries one answer for the session's current question.
type SubmitRequest struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
}

// SubmitResponse acknowledges one answer. Exactly one of Question and
// Summary is set: the next question while the interview runs, the final
// decision once it ends.
type SubmitResponse struct {
	Feedback     string    `json:"feedback"`
	Question     *Question `json:"question,omitempty"`
	TimeLimitSec int       `json:"time_limit_sec,omitempty"`
	Summary      *Decision `json:"summary,omitempty"`
}

// Start runs the résumé gate and, for admitted candidates, provisions the
// question sequence and arms the first deadline.
func (e *Engine) Start(ctx context.Context, req StartRequest) (*StartResponse, error) {
	name := strings.TrimSpace(req.CandidateName)
	if name == "" {
		return nil, NewValidationError("candidate_name", "must not be empty")
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = defaultRole
	}
	level := strings.TrimSpace(req.Level)
	if level == "" {
		level = defaultLevel
	}
	resume := req.ResumeText
	if strings.TrimSpace(resume) == "" {
		resume = e.cfg.DefaultResume
	}

	if e.metrics != nil {
		e.metrics.IncrementInterviewsStarted()
	}

	extracted := skills.Extract(resume, e.cfg.Vocabulary)
	overlap := skills.EvaluateGate(extracted, e.cfg.RequiredSkills, e.cfg.MatchThreshold)

	now := e.now()
	session := &Session{
		ID:            uuid.NewString(),
		CandidateName: name,
		Role:          role,
		Level:         level,
		MatchedSkills: overlap.Matched,
		OverlapScore:  overlap.Score10,
		StartedAt:     now,
		LastActivity:  now,
	}

	log := e.log.With(zap.String("session", session.ID), zap.String("role", role), zap.String("level", level))

	if !overlap.Admitted {
		session.Status = StatusBlocked
		if err := e.store.Create(session); err != nil {
			return nil, fmt.Errorf("storing session: %w", err)
		}
		if e.metrics != nil {
			e.metrics.IncrementInterviewsBlocked()
		}
		log.Info("candidate blocked at the gate",
			zap.Float64("overlap_score", overlap.Score10),
			zap.Int("matched_skills", len(overlap.Matched)),
		)
		return &StartResponse{
			SessionID: session.ID,
			Blocked:   true,
			Greeting:  fmt.Sprintf("Hello %s! Thanks for sharing your resume.", name),
			Reason:    blockedReason(overlap, e.cfg.MatchThreshold),
		}, nil
	}

	questions := e.provider.Provision(ctx, ai.GenerateRequest{
		Role:       role,
		Level:      level,
		ResumeText: resume,
		Skills:     overlap.Matched,
		Count:      e.cfg.MaxQuestions,
	})

	session.Status = StatusActive
	session.Questions = questions
	session.Deadline = now.Add(e.cfg.QuestionTimeLimit)
	if err := e.store.Create(session); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}
	if e.metrics != nil {
		e.metrics.AddQuestionsAsked(len(questions))
	}

	log.Info("interview started",
		zap.Float64("overlap_score", overlap.Score10),
		zap.Int("questions", len(questions)),
	)

	first := questions[0].Presented()
	return &StartResponse{
		SessionID:    session.ID,
		Greeting:     greeting(name, overlap, len(questions), e.cfg.QuestionTimeLimit),
		Question:     &first,
		TimeLimitSec: int(e.cfg.QuestionTimeLimit / time.Second),
	}, nil
}

// Submit evaluates one answer. A submission past the deadline is recorded as
// a timeout without consulting any delegate. The last answer closes the
// interview and returns the decision.
func (e *Engine) Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	id := strings.TrimSpace(req.SessionID)
	if id == "" {
		return nil, NewValidationError("session_id", "must not be empty")
	}

	session, err := e.store.Get(id)
	if err != nil {
		return nil, err
	}

	if session.Status == StatusBlocked {
		return e.closeBlocked(session), nil
	}

	question := session.CurrentQuestion()
	if question == nil {
		e.store.Delete(session.ID)
		return nil, ErrSessionNotFound
	}

	now := e.now()
	grade := e.grade(ctx, session, *question, req.Answer, now)

	// A late answer is never evaluated, so its text is not kept either.
	answerText := req.Answer
	if grade.TimedOut {
		answerText = ""
	}

	session.Signals = session.Signals.Apply(grade.Contribution)
	session.Answers = append(session.Answers, AnswerRecord{
		QuestionID: question.ID,
		Type:       question.Type,
		Skill:      question.Skill,
		Answer:     answerText,
		Score:      grade.Total,
		Confidence: grade.Confidence,
		Feedback:   grade.Feedback,
		TimedOut:   grade.TimedOut,
	})

	if session.Advance(now, e.cfg.QuestionTimeLimit) {
		next := session.CurrentQuestion().Presented()
		return &SubmitResponse{
			Feedback:     grade.Feedback,
			Question:     &next,
			TimeLimitSec: int(e.cfg.QuestionTimeLimit / time.Second),
		}, nil
	}

	return e.complete(session, grade.Feedback), nil
}

func (e *Engine) grade(ctx context.Context, session *Session, question Question, answer string, now time.Time) GradeResult {
	if now.After(session.Deadline) {
		e.log.Info("answer arrived past the deadline",
			zap.String("session", session.ID),
			zap.Int("question", question.ID),
		)
		return TimeoutGrade()
	}

	if question.Type == MultipleChoice {
		return GradeMultipleChoice(question, answer)
	}

	gradeCtx, cancel := context.WithTimeout(ctx, e.cfg.DelegateTimeout)
	defer cancel()

	result, err := GradeOpenEnded(gradeCtx, e.grader, question, answer, e.cfg.FallbackConfidence)
	if e.metrics != nil {
		e.metrics.IncrementDelegateCall(err == nil)
	}
	if err != nil {
		e.log.Warn("grading fell back to the heuristic",
			zap.String("session", session.ID),
			zap.Int("question", question.ID),
			zap.Error(err),
		)
		if e.metrics != nil {
			e.metrics.IncrementFallbackGrade()
		}
	}
	return result
}

func (e *Engine) closeBlocked(session *Session) *SubmitResponse {
	decision := Decision{
		Passed: false,
		Feedback: fmt.Sprintf(
			"Interview not conducted: skill match %.1f/10 did not reach the required bar.",
			session.OverlapScore,
		),
	}
	e.store.Delete(session.ID)
	return &SubmitResponse{
		Feedback: decision.Feedback,
		Summary:  &decision,
	}
}

func (e *Engine) complete(session *Session, feedback string) *SubmitResponse {
	decision := Decide(session.Signals, e.cfg.Thresholds)
	session.Decision = &decision
	session.Status = StatusCompleted

	if e.metrics != nil {
		e.metrics.IncrementInterviewsCompleted()
	}
	if e.results != nil {
		if err := e.results.SaveResult(session); err != nil {
			e.log.Error("saving interview result", zap.String("session", session.ID), zap.Error(err))
		}
	}
	e.store.Delete(session.ID)

	e.log.Info("interview completed",
		zap.String("session", session.ID),
		zap.Bool("passed", decision.Passed),
		zap.Float64("required_skill", decision.RequiredSkillRating),
		zap.Float64("soft_skill", decision.SoftSkillRating),
		zap.Float64("confidence", decision.ConfidenceRating),
		zap.Float64("cheating", decision.CheatingScore),
	)

	return &SubmitResponse{
		Feedback: feedback,
		Summary:  &decision,
	}
}

func greeting(name string, overlap skills.Overlap, questions int, limit time.Duration) string {
	return fmt.Sprintf(
		"Hello %s! Your resume matched %d required skills (%.1f/10). The interview has %d questions; you have %d seconds per question.",
		name, len(overlap.Matched), overlap.Score10, questions, int(limit/time.Second),
	)
}

func blockedReason(overlap skills.Overlap, threshold float64) string {
	return fmt.Sprintf(
		"Skill match %.1f/10 is below the %.1f bar; the interview was not started.",
		overlap.Score10, threshold,
	)
}
