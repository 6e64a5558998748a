// Package wizard drives the questionnaire: a linear section state machine,
// the single-writer engine that owns the record, and the review projection
// for the final confirmation step.
package wizard

import "fmt"

// Section is one named step of the fixed wizard sequence
type Section string

const (
	SectionIntroduction          Section = "introduction"
	SectionDemographics          Section = "demographics"
	SectionHealthStatus          Section = "health-status"
	SectionHealthcareUtilization Section = "healthcare-utilization"
	SectionPreferences           Section = "preferences"
	SectionFamilyPlanning        Section = "family-planning"
	SectionReview                Section = "review"
)

// SectionOrder is the fixed, strictly linear sequence of sections.
var SectionOrder = []Section{
	SectionIntroduction,
	SectionDemographics,
	SectionHealthStatus,
	SectionHealthcareUtilization,
	SectionPreferences,
	SectionFamilyPlanning,
	SectionReview,
}

func sectionIndex(s Section) int {
	for i, sec := range SectionOrder {
		if sec == s {
			return i
		}
	}
	return -1
}

// Machine tracks the current position in the section sequence. Transitions
// never touch the record; the engine layers the hasStarted gate on top.
type Machine struct {
	index int
}

// NewMachine starts at the introduction section
func NewMachine() *Machine {
	return &Machine{}
}

// Current returns the current section
func (m *Machine) Current() Section {
	return SectionOrder[m.index]
}

// Advance moves one step forward. At the terminal review section it is a
// no-op; the only forward action from there is submission.
func (m *Machine) Advance() Section {
	if m.index < len(SectionOrder)-1 {
		m.index++
	}
	return m.Current()
}

// Retreat moves one step back; a no-op at the introduction.
func (m *Machine) Retreat() Section {
	if m.index > 0 {
		m.index--
	}
	return m.Current()
}

// JumpTo moves directly to a named section, used by the review step's
// jump-to-edit action.
func (m *Machine) JumpTo(s Section) error {
	i := sectionIndex(s)
	if i < 0 {
		return fmt.Errorf("unknown section %q", s)
	}
	m.index = i
	return nil
}

// Progress reports completion as a fraction in (0, 1].
func (m *Machine) Progress() float64 {
	return float64(m.index+1) / float64(len(SectionOrder))
}

// Reset returns to the introduction
func (m *Machine) Reset() {
	m.index = 0
}
