package wizard

import (
	"fmt"

	"github.com/medmatch/intake/internal/record"
	"github.com/medmatch/intake/internal/shared/types"
)

// SummaryRow is one line of the review screen. Section names the wizard step
// that edits the row's underlying answers, so a reviewer can jump straight
// back to it.
type SummaryRow struct {
	Section Section `json:"section"`
	Title   string  `json:"title"`
	Value   string  `json:"value"`
}

// Summarize projects the record into the fixed review rows. Identity numbers
// are masked; only the birth date prefix stays visible.
func Summarize(r *record.Record) []SummaryRow {
	name := r.PersonalDetails.FullName
	if name == "" {
		name = "-"
	}

	procedures := "None"
	if r.HasPlannedProcedures {
		procedures = fmt.Sprintf("%d procedures", len(r.PlannedProcedures))
	}

	return []SummaryRow{
		{Section: SectionDemographics, Title: "Personal details", Value: name},
		{Section: SectionDemographics, Title: "Identity number", Value: types.IDNumber(r.PersonalDetails.IDNumber).Masked()},
		{Section: SectionDemographics, Title: "Who needs cover", Value: string(r.CoverageType)},
		{Section: SectionHealthStatus, Title: "Chronic conditions", Value: string(r.ChronicConditionStatus)},
		{Section: SectionHealthStatus, Title: "Planned procedures", Value: procedures},
		{Section: SectionHealthcareUtilization, Title: "Current medical aid", Value: string(r.MedicalAidStatus)},
		{Section: SectionPreferences, Title: "Monthly budget", Value: string(r.BudgetRange)},
		{Section: SectionPreferences, Title: "Network preference", Value: string(r.NetworkPreference)},
		{Section: SectionFamilyPlanning, Title: "Family planning", Value: string(r.PregnancyStatus)},
	}
}
