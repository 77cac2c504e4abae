package assessment

import "fmt"

// ValidationResult enumerates missing answers at submission time.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Missing []string `json:"missing,omitempty"` // question ids, bank order
	Errors  []string `json:"validation_errors,omitempty"`
}

// Validate checks that every bank question has a recorded answer. It
// never guesses or fills in defaults; incomplete sets go back to the
// user with the exact questions still open.
func Validate(bank Bank, rs *ResponseSet) ValidationResult {
	res := ValidationResult{IsValid: true}
	for i, q := range bank.Questions {
		if _, ok := rs.Answer(q.ID); ok {
			continue
		}
		res.IsValid = false
		res.Missing = append(res.Missing, q.ID)
		res.Errors = append(res.Errors, fmt.Sprintf("Question %d not answered", i+1))
	}
	return res
}

// ValidateSnapshot applies the same completeness rule to a raw answer
// map, for server-side checks where no ResponseSet exists.
func ValidateSnapshot(bank Bank, answers map[string]Answer) ValidationResult {
	rs := NewResponseSet(bank)
	rs.Restore(answers)
	return Validate(bank, rs)
}
