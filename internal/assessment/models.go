package assessment

// Scale identifies how a section's questions are answered and scored.
type Scale string

const (
	ScaleBoolean  Scale = "boolean"  // yes/no, category score = count of yes
	ScaleLikert   Scale = "likert"   // 1..5, category score = mean
	ScaleFreeform Scale = "freeform" // open text, not scored
)

// Section names the three self-assessment flows.
type Section string

const (
	SectionInterest      Section = "interest"
	SectionEmployability Section = "employability"
	SectionInsights      Section = "insights"
)

// Sections lists all known sections in delivery order.
var Sections = []Section{SectionInterest, SectionEmployability, SectionInsights}

// Question is a single bank entry. Statements are display-only; scoring
// depends solely on ID and Category.
type Question struct {
	ID        string `json:"id"`
	Statement string `json:"statement"`
	Category  string `json:"category,omitempty"` // empty for freeform questions
}

// Category is a scoring bucket. Letter feeds derived codes (e.g. the
// Holland code); declaration order breaks ranking ties.
type Category struct {
	Letter string `json:"letter"`
	Name   string `json:"name"`
}

// Bank is the static ordered question list for one section.
type Bank struct {
	Section    Section    `json:"section"`
	Scale      Scale      `json:"scale"`
	Categories []Category `json:"categories"`
	Questions  []Question `json:"questions"`
}

// QuestionByID returns the bank question with the given id.
func (b Bank) QuestionByID(id string) (Question, bool) {
	for _, q := range b.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Answer is one recorded response. Exactly one field is set, matching
// the owning bank's scale.
type Answer struct {
	Flag  *bool   `json:"flag,omitempty"`
	Level *int    `json:"level,omitempty"`
	Text  *string `json:"text,omitempty"`
}

func BoolAnswer(v bool) Answer { return Answer{Flag: &v} }

func LikertAnswer(level int) Answer { return Answer{Level: &level} }

func TextAnswer(text string) Answer { return Answer{Text: &text} }

// MatchesScale reports whether the answer carries a value of the right
// shape (and range, for likert) for the given scale.
func (a Answer) MatchesScale(s Scale) bool {
	switch s {
	case ScaleBoolean:
		return a.Flag != nil && a.Level == nil && a.Text == nil
	case ScaleLikert:
		return a.Level != nil && a.Flag == nil && a.Text == nil &&
			*a.Level >= LikertMin && *a.Level <= LikertMax
	case ScaleFreeform:
		return a.Text != nil && a.Flag == nil && a.Level == nil && *a.Text != ""
	default:
		return false
	}
}

const (
	LikertMin = 1
	LikertMax = 5
)
