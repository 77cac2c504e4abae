package assessment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/careerbridge/assessment/internal/scoring"
)

// ScoreVector maps category letter to its score. Every category the
// bank declares is present, at 0 if nothing was answered for it.
type ScoreVector map[string]float64

// ScoreReport is the full aggregation output for one section.
type ScoreReport struct {
	Vector   ScoreVector    `json:"vector"`
	Answered map[string]int `json:"answered"` // per-category answered counts
	Ranking  []string       `json:"ranking"`  // category letters, best first
	Summary  string         `json:"summary"`  // Holland code or quotient label
	Quotient float64        `json:"quotient,omitempty"`
}

// Aggregate reduces a response set into per-category scores and the
// section's derived summary. Pure: same inputs, same output.
func Aggregate(bank Bank, rs *ResponseSet) (ScoreReport, error) {
	return aggregate(bank, rs, scoring.NewDefaultReducer())
}

func aggregate(bank Bank, rs *ResponseSet, reducer scoring.Reducer) (ScoreReport, error) {
	rep := ScoreReport{
		Vector:   ScoreVector{},
		Answered: map[string]int{},
	}
	if bank.Scale == ScaleFreeform {
		// Open-ended sections have no vector; summary reflects coverage.
		rep.Summary = fmt.Sprintf("%d/%d reflections", rs.CompletionCount(), len(bank.Questions))
		return rep, nil
	}

	for _, cat := range bank.Categories {
		in := scoring.In{Scale: string(bank.Scale)}
		for _, q := range bank.Questions {
			if q.Category != cat.Letter {
				continue
			}
			a, ok := rs.Answer(q.ID)
			if !ok {
				continue
			}
			in.Values = append(in.Values, answerValue(bank.Scale, a))
		}
		out, err := reducer.Reduce(in)
		if err != nil {
			return ScoreReport{}, fmt.Errorf("category %s: %w", cat.Letter, err)
		}
		rep.Vector[cat.Letter] = out.Score
		rep.Answered[cat.Letter] = out.Answered
	}

	rep.Ranking = rank(bank, rep)
	switch bank.Section {
	case SectionInterest:
		rep.Summary = hollandCode(rep.Ranking, 3)
	case SectionEmployability:
		rep.Quotient = quotient(bank, rep)
		rep.Summary = fmt.Sprintf("EQ %.1f/10", rep.Quotient)
	}
	return rep, nil
}

func answerValue(scale Scale, a Answer) float64 {
	switch scale {
	case ScaleBoolean:
		if a.Flag != nil && *a.Flag {
			return 1
		}
		return 0
	case ScaleLikert:
		if a.Level != nil {
			return float64(*a.Level)
		}
	}
	return 0
}

// rank orders category letters by descending score. Categories with no
// answered questions are excluded. Ties resolve by the bank's category
// declaration order, so the result is stable regardless of the sort
// implementation underneath.
func rank(bank Bank, rep ScoreReport) []string {
	order := make(map[string]int, len(bank.Categories))
	letters := make([]string, 0, len(bank.Categories))
	for i, c := range bank.Categories {
		order[c.Letter] = i
		if rep.Answered[c.Letter] > 0 {
			letters = append(letters, c.Letter)
		}
	}
	sort.SliceStable(letters, func(i, j int) bool {
		si, sj := rep.Vector[letters[i]], rep.Vector[letters[j]]
		if si != sj {
			return si > sj
		}
		return order[letters[i]] < order[letters[j]]
	})
	return letters
}

// hollandCode concatenates the top-n ranked letters.
func hollandCode(ranking []string, n int) string {
	if len(ranking) < n {
		n = len(ranking)
	}
	return strings.Join(ranking[:n], "")
}

// quotient maps the overall mean of answered category means onto the
// 0..10 employability scale.
func quotient(bank Bank, rep ScoreReport) float64 {
	sum, n := 0.0, 0
	for _, c := range bank.Categories {
		if rep.Answered[c.Letter] > 0 {
			sum += rep.Vector[c.Letter]
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return scoring.DefaultQuotientScale.Scale(sum / float64(n))
}
