package interview

import "time"

// Status is the lifecycle state of a session.
type Status string

const (
	StatusActive    Status = "active"
	StatusBlocked   Status = "blocked"
	StatusCompleted Status = "completed"
)

// AnswerRecord is the evaluated outcome of one question, kept for the final
// summary and the persisted result.
type AnswerRecord struct {
	QuestionID int          `json:"question_id"`
	Type       QuestionType `json:"type"`
	Skill      string       `json:"skill"`
	Answer     string       `json:"answer"`
	Score      float64      `json:"score"`
	Confidence float64      `json:"confidence"`
	Feedback   string       `json:"feedback"`
	TimedOut   bool         `json:"timed_out"`
}

// Session holds the full state of one interview. It is owned by the session
// store and mutated only by the engine; callers must serialize concurrent
// submissions per session id.
type Session struct {
	ID            string     `json:"id"`
	CandidateName string     `json:"candidate_name"`
	Role          string     `json:"role"`
	Level         string     `json:"level"`
	Status        Status     `json:"status"`
	MatchedSkills []string   `json:"matched_skills"`
	OverlapScore  float64    `json:"overlap_score"`
	Questions     []Question `json:"questions"`
	// CurrentIndex is the position of the question awaiting an answer.
	// Monotonically non-decreasing, bounded by len(Questions).
	CurrentIndex int            `json:"current_index"`
	Deadline     time.Time      `json:"deadline"`
	Signals      Signals        `json:"signals"`
	Answers      []AnswerRecord `json:"answers"`
	Decision     *Decision      `json:"decision,omitempty"`
	StartedAt    time.Time      `json:"started_at"`
	LastActivity time.Time      `json:"last_activity"`
}

// CurrentQuestion returns the question awaiting an answer, or nil when the
// interview holds no further questions.
func (s *Session) CurrentQuestion() *Question {
	if s.Status != StatusActive {
		return nil
	}
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentIndex]
}

// Advance moves the session to the next question and arms its deadline.
// Returns false when the interview is exhausted.
func (s *Session) Advance(now time.Time, limit time.Duration) bool {
	s.CurrentIndex++
	s.LastActivity = now
	if s.CurrentIndex >= len(s.Questions) {
		return false
	}
	s.Deadline = now.Add(limit)
	return true
}
