package assessment

import "fmt"

// BankFor returns the static bank for a section.
func BankFor(section Section) (Bank, error) {
	switch section {
	case SectionInterest:
		return interestBank, nil
	case SectionEmployability:
		return employabilityBank, nil
	case SectionInsights:
		return insightsBank, nil
	default:
		return Bank{}, fmt.Errorf("unknown section: %s", section)
	}
}

// RIASEC letters, declaration order is the ranking tie-break.
var riasecCategories = []Category{
	{Letter: "R", Name: "Realistic"},
	{Letter: "I", Name: "Investigative"},
	{Letter: "A", Name: "Artistic"},
	{Letter: "S", Name: "Social"},
	{Letter: "E", Name: "Enterprising"},
	{Letter: "C", Name: "Conventional"},
}

// STEPS letters.
var stepsCategories = []Category{
	{Letter: "S", Name: "Self-management"},
	{Letter: "T", Name: "Teamwork"},
	{Letter: "E", Name: "Enterprising"},
	{Letter: "P", Name: "Problem-solving"},
	{Letter: "K", Name: "Speaking & listening"},
}

var interestBank = Bank{
	Section:    SectionInterest,
	Scale:      ScaleBoolean,
	Categories: riasecCategories,
	Questions: []Question{
		{ID: "ri-01", Statement: "I like to work on cars or machines.", Category: "R"},
		{ID: "ri-02", Statement: "I enjoy building things with my hands.", Category: "R"},
		{ID: "ri-03", Statement: "I would enjoy working outdoors.", Category: "R"},
		{ID: "ri-04", Statement: "I like putting things together or repairing them.", Category: "R"},
		{ID: "ri-05", Statement: "I enjoy using tools and operating equipment.", Category: "R"},
		{ID: "ri-06", Statement: "I like to do puzzles and brain teasers.", Category: "I"},
		{ID: "ri-07", Statement: "I enjoy science classes and experiments.", Category: "I"},
		{ID: "ri-08", Statement: "I like to analyze problems before acting.", Category: "I"},
		{ID: "ri-09", Statement: "I enjoy reading about new discoveries.", Category: "I"},
		{ID: "ri-10", Statement: "I like figuring out how things work.", Category: "I"},
		{ID: "ri-11", Statement: "I am good at working independently on creative projects.", Category: "A"},
		{ID: "ri-12", Statement: "I enjoy drawing, painting, or designing.", Category: "A"},
		{ID: "ri-13", Statement: "I like to write stories, poetry, or music.", Category: "A"},
		{ID: "ri-14", Statement: "I enjoy performing in front of others.", Category: "A"},
		{ID: "ri-15", Statement: "I like expressing myself in original ways.", Category: "A"},
		{ID: "ri-16", Statement: "I like to help people with their problems.", Category: "S"},
		{ID: "ri-17", Statement: "I enjoy teaching or training others.", Category: "S"},
		{ID: "ri-18", Statement: "I am good at understanding how others feel.", Category: "S"},
		{ID: "ri-19", Statement: "I enjoy volunteering for community causes.", Category: "S"},
		{ID: "ri-20", Statement: "I like working in groups more than alone.", Category: "S"},
		{ID: "ri-21", Statement: "I like to lead group projects.", Category: "E"},
		{ID: "ri-22", Statement: "I enjoy persuading others to see my point of view.", Category: "E"},
		{ID: "ri-23", Statement: "I would enjoy starting my own business.", Category: "E"},
		{ID: "ri-24", Statement: "I am ambitious and like setting goals.", Category: "E"},
		{ID: "ri-25", Statement: "I enjoy selling things or promoting ideas.", Category: "E"},
		{ID: "ri-26", Statement: "I like keeping my things neat and organized.", Category: "C"},
		{ID: "ri-27", Statement: "I enjoy working with numbers and records.", Category: "C"},
		{ID: "ri-28", Statement: "I like following clear step-by-step instructions.", Category: "C"},
		{ID: "ri-29", Statement: "I am good at paying attention to detail.", Category: "C"},
		{ID: "ri-30", Statement: "I enjoy planning schedules and keeping lists.", Category: "C"},
	},
}

var employabilityBank = Bank{
	Section:    SectionEmployability,
	Scale:      ScaleLikert,
	Categories: stepsCategories,
	Questions: []Question{
		{ID: "em-01", Statement: "I finish tasks on time without being reminded.", Category: "S"},
		{ID: "em-02", Statement: "I stay calm when things do not go as planned.", Category: "S"},
		{ID: "em-03", Statement: "I set personal goals and track my progress.", Category: "S"},
		{ID: "em-04", Statement: "I manage my time well across competing priorities.", Category: "S"},
		{ID: "em-05", Statement: "I take responsibility for my own mistakes.", Category: "S"},
		{ID: "em-06", Statement: "I contribute my share when working in a team.", Category: "T"},
		{ID: "em-07", Statement: "I listen to teammates even when I disagree.", Category: "T"},
		{ID: "em-08", Statement: "I help resolve conflicts within a group.", Category: "T"},
		{ID: "em-09", Statement: "I adapt my role to what the team needs.", Category: "T"},
		{ID: "em-10", Statement: "I give and accept constructive feedback.", Category: "T"},
		{ID: "em-11", Statement: "I spot opportunities others may have missed.", Category: "E"},
		{ID: "em-12", Statement: "I am comfortable taking calculated risks.", Category: "E"},
		{ID: "em-13", Statement: "I take initiative without waiting to be told.", Category: "E"},
		{ID: "em-14", Statement: "I can turn ideas into concrete plans.", Category: "E"},
		{ID: "em-15", Statement: "I persist when a new idea meets resistance.", Category: "E"},
		{ID: "em-16", Statement: "I break big problems into smaller steps.", Category: "P"},
		{ID: "em-17", Statement: "I gather facts before jumping to a solution.", Category: "P"},
		{ID: "em-18", Statement: "I consider several options before deciding.", Category: "P"},
		{ID: "em-19", Statement: "I learn from solutions that did not work.", Category: "P"},
		{ID: "em-20", Statement: "I stay focused on a problem until it is solved.", Category: "P"},
		{ID: "em-21", Statement: "I explain my ideas clearly to others.", Category: "K"},
		{ID: "em-22", Statement: "I adjust how I speak to suit my audience.", Category: "K"},
		{ID: "em-23", Statement: "I ask questions when I do not understand.", Category: "K"},
		{ID: "em-24", Statement: "I pay full attention when someone is speaking.", Category: "K"},
		{ID: "em-25", Statement: "I am comfortable presenting to a group.", Category: "K"},
	},
}

var insightsBank = Bank{
	Section: SectionInsights,
	Scale:   ScaleFreeform,
	Questions: []Question{
		{ID: "pi-01", Statement: "Describe an achievement you are proud of and why."},
		{ID: "pi-02", Statement: "What kind of work environment brings out your best?"},
		{ID: "pi-03", Statement: "Which skills would you most like to develop in the next year?"},
		{ID: "pi-04", Statement: "Describe a challenge you overcame and what you learned."},
		{ID: "pi-05", Statement: "What does a successful career look like to you in five years?"},
	},
}
