package interview

import "github.com/skillgate/interviewd/internal/ai"

// Signals are the per-session running averages of behavioral metrics. The
// three score accumulators live in [0,1] and are reported on a 0-10 scale by
// the decision engine; the cheating accumulator is reported as-is.
type Signals struct {
	RequiredSkill float64 `json:"required_skill"`
	SoftSkill     float64 `json:"soft_skill"`
	Confidence    float64 `json:"confidence"`
	Cheating      float64 `json:"cheating"`
	Answered      int     `json:"answered"`
}

// Contribution is what one evaluated answer adds to the signals. All values
// are clamped into [0,1] before averaging, so a hostile grading delegate
// cannot push an accumulator out of bounds.
type Contribution struct {
	RequiredSkill float64
	SoftSkill     float64
	Confidence    float64
	Cheating      float64
}

// Apply folds one contribution into the running averages and returns the new
// signals. Pure: the receiver is not modified. Each accumulator is updated
// exactly once per answered or skipped question.
func (s Signals) Apply(c Contribution) Signals {
	n := float64(s.Answered)

	next := Signals{Answered: s.Answered + 1}
	next.RequiredSkill = runningAverage(s.RequiredSkill, n, ai.Clamp01(c.RequiredSkill, 0))
	next.SoftSkill = runningAverage(s.SoftSkill, n, ai.Clamp01(c.SoftSkill, 0))
	next.Confidence = runningAverage(s.Confidence, n, ai.Clamp01(c.Confidence, 0))
	next.Cheating = runningAverage(s.Cheating, n, ai.Clamp01(c.Cheating, 0))

	return next
}

func runningAverage(avg, n, contribution float64) float64 {
	return (avg*n + contribution) / (n + 1)
}
