package scoring

import (
	"fmt"
	"math"
)

// In is a minimal view of one category's responses needed for scoring.
// Boolean answers arrive as 0/1, likert answers as 1..5.
type In struct {
	Scale  string
	Values []float64
}

// Out is the reduced score for a single category.
type Out struct {
	Score    float64
	Answered int  // responses that contributed
	Scored   bool // false for scales that never produce a number
}

// Strategy reduces one category's responses to a score.
type Strategy interface {
	Reduce(in In) (Out, error)
}

// Reducer routes by scale to the correct Strategy.
type Reducer interface {
	Reduce(in In) (Out, error)
}

type defaultReducer struct {
	strategies map[string]Strategy
}

func (r *defaultReducer) Reduce(in In) (Out, error) {
	s, ok := r.strategies[in.Scale]
	if !ok {
		return Out{}, fmt.Errorf("no scoring strategy for scale %q", in.Scale)
	}
	return s.Reduce(in)
}

// Reducer options

type Option func(*config)

type config struct {
	MeanPrecision int // decimal places for likert means
}

func WithMeanPrecision(n int) Option { return func(c *config) { c.MeanPrecision = n } }

// NewDefaultReducer installs built-in strategies.
func NewDefaultReducer(opts ...Option) Reducer {
	cfg := &config{MeanPrecision: 1}
	for _, o := range opts {
		o(cfg)
	}
	return &defaultReducer{
		strategies: map[string]Strategy{
			"boolean":  countStrategy{},
			"likert":   meanStrategy{precision: cfg.MeanPrecision},
			"freeform": unscoredStrategy{},
		},
	}
}

// --- Strategies ---

// countStrategy sums positive responses: a category's score is the
// number of "yes" answers among its questions.
type countStrategy struct{}

func (countStrategy) Reduce(in In) (Out, error) {
	sum := 0.0
	for _, v := range in.Values {
		if v != 0 {
			sum++
		}
	}
	return Out{Score: sum, Answered: len(in.Values), Scored: true}, nil
}

// meanStrategy averages 1..5 responses, rounded to a fixed precision.
// A category with no responses scores 0 and is flagged unanswered so
// callers can exclude it from ranking.
type meanStrategy struct{ precision int }

func (s meanStrategy) Reduce(in In) (Out, error) {
	if len(in.Values) == 0 {
		return Out{Score: 0, Answered: 0, Scored: true}, nil
	}
	sum := 0.0
	for _, v := range in.Values {
		if v < 1 || v > 5 {
			return Out{}, fmt.Errorf("likert value %v out of range", v)
		}
		sum += v
	}
	mean := sum / float64(len(in.Values))
	return Out{Score: RoundTo(mean, s.precision), Answered: len(in.Values), Scored: true}, nil
}

type unscoredStrategy struct{}

func (unscoredStrategy) Reduce(in In) (Out, error) {
	return Out{Answered: len(in.Values), Scored: false}, nil
}

// RoundTo rounds half away from zero at n decimal places.
func RoundTo(x float64, n int) float64 {
	p := math.Pow10(n)
	return math.Round(x*p) / p
}

// QuotientScale linearly maps a raw mean in [RawMin,RawMax] onto
// [OutMin,OutMax], clamping out-of-range input.
type QuotientScale struct {
	RawMin, RawMax float64
	OutMin, OutMax float64
}

// DefaultQuotientScale maps a likert mean (1..5) onto 0..10.
var DefaultQuotientScale = QuotientScale{RawMin: 1, RawMax: 5, OutMin: 0, OutMax: 10}

func (q QuotientScale) Scale(raw float64) float64 {
	if raw < q.RawMin {
		raw = q.RawMin
	}
	if raw > q.RawMax {
		raw = q.RawMax
	}
	frac := (raw - q.RawMin) / (q.RawMax - q.RawMin)
	return RoundTo(q.OutMin+frac*(q.OutMax-q.OutMin), 1)
}
