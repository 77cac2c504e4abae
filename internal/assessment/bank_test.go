package assessment_test

import (
	"testing"

	"github.com/careerbridge/assessment/internal/assessment"
)

func TestBanks_WellFormed(t *testing.T) {
	for _, section := range assessment.Sections {
		bank, err := assessment.BankFor(section)
		if err != nil {
			t.Fatalf("%s: %v", section, err)
		}
		if bank.Section != section {
			t.Fatalf("%s: bank labeled %s", section, bank.Section)
		}
		declared := map[string]bool{}
		for _, c := range bank.Categories {
			if declared[c.Letter] {
				t.Fatalf("%s: duplicate category %s", section, c.Letter)
			}
			declared[c.Letter] = true
		}
		seen := map[string]bool{}
		for _, q := range bank.Questions {
			if seen[q.ID] {
				t.Fatalf("%s: duplicate question id %s", section, q.ID)
			}
			seen[q.ID] = true
			if bank.Scale == assessment.ScaleFreeform {
				if q.Category != "" {
					t.Fatalf("%s: freeform question %s has category", section, q.ID)
				}
				continue
			}
			if !declared[q.Category] {
				t.Fatalf("%s: question %s references undeclared category %q", section, q.ID, q.Category)
			}
		}
	}
}

func TestBankFor_UnknownSection(t *testing.T) {
	if _, err := assessment.BankFor("astrology"); err == nil {
		t.Fatal("unknown section accepted")
	}
}
