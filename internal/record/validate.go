package record

import (
	"fmt"
	"regexp"

	"github.com/medmatch/intake/internal/shared/types"
)

// FieldError attaches a human-readable reason to one record field path.
type FieldError struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var digitsRegex = regexp.MustCompile(`^\d+$`)

// Validate checks the entire record structurally and semantically and returns
// every violation found. It never mutates the record. An empty result means
// the record is submittable.
//
// Soft-hidden fields are exempt: scheme/satisfaction when medicalAidStatus is
// "no", birth preference when not expecting, and the chronic condition set
// when the status is "no".
func Validate(r *Record) []FieldError {
	var errs []FieldError
	add := func(path, reason string) {
		errs = append(errs, FieldError{Path: path, Reason: reason})
	}

	validatePersonalDetails(r, add)
	validateCoverage(r, add)
	validateHealthStatus(r, add)
	validateUtilization(r, add)
	validatePreferences(r, add)
	validateFamilyPlanning(r, add)

	return errs
}

func validatePersonalDetails(r *Record, add func(path, reason string)) {
	pd := r.PersonalDetails
	if len(pd.FullName) < 2 {
		add("personalDetails.fullName", "full name is required")
	}
	if len(pd.IDNumber) < 13 {
		add("personalDetails.idNumber", "ID number must be at least 13 characters")
	} else if digitsRegex.MatchString(pd.IDNumber) && len(pd.IDNumber) == 13 &&
		!types.IDNumber(pd.IDNumber).IsValid() {
		add("personalDetails.idNumber", "ID number check digit is invalid")
	}
	if pd.DateOfBirth == "" {
		add("personalDetails.dateOfBirth", "date of birth is required")
	}
	if !pd.Gender.IsValid() {
		add("personalDetails.gender", "unknown gender")
	}
	if !emailRegex.MatchString(pd.Email) {
		add("personalDetails.email", "please enter a valid email address")
	}
	if len(pd.Phone) < 10 {
		add("personalDetails.phone", "phone number is required")
	}
	if len(pd.Address) < 5 {
		add("personalDetails.address", "address is required")
	}
}

func validateCoverage(r *Record, add func(path, reason string)) {
	if !r.CoverageType.IsValid() {
		add("coverageType", "unknown coverage type")
		return
	}
	if r.NumberOfChildren < 0 {
		add("numberOfChildren", "number of children cannot be negative")
	}
	if r.NumberOfChildren > MaxChildren {
		add("numberOfChildren", fmt.Sprintf("at most %d children are supported", MaxChildren))
	}

	spouses, children := 0, 0
	for i, d := range r.Dependents {
		path := fmt.Sprintf("dependents.%d", i)
		switch d.Relationship {
		case RelationshipSpouse:
			spouses++
		case RelationshipChild:
			children++
		default:
			add(path+".relationship", "unknown relationship")
		}
		if len(d.Name) < 2 {
			add(path+".name", "name is required")
		}
		if d.DateOfBirth == "" {
			add(path+".dateOfBirth", "date of birth is required")
		}
		if d.HasChronicCondition && d.ChronicConditionName == "" {
			add(path+".chronicConditionName", "please specify the chronic condition")
		}
	}

	// The derivation pass keeps these in lockstep; a mismatch in a submitted
	// record is a defect upstream, reported against the driving field.
	wantSpouses := 0
	if r.CoverageType.IncludesSpouse() {
		wantSpouses = 1
	}
	wantChildren := 0
	if r.CoverageType.IncludesChildren() {
		wantChildren = r.NumberOfChildren
	}
	if spouses != wantSpouses {
		add("coverageType", fmt.Sprintf("expected %d spouse dependent(s), found %d", wantSpouses, spouses))
	}
	if children != wantChildren {
		add("numberOfChildren", fmt.Sprintf("expected %d child dependent(s), found %d", wantChildren, children))
	}
}

func validateHealthStatus(r *Record, add func(path, reason string)) {
	if !r.ChronicConditionStatus.IsValid() {
		add("chronicConditionStatus", "unknown chronic condition status")
	}
	if r.ChronicConditionStatus != ChronicStatusNo {
		for i, c := range r.ChronicConditions {
			if !KnownCondition(c) {
				add(fmt.Sprintf("chronicConditions.%d", i), "unknown condition")
			}
		}
	}
	if r.HasPlannedProcedures {
		for i, p := range r.PlannedProcedures {
			path := fmt.Sprintf("plannedProcedures.%d", i)
			if !p.Who.IsValid() {
				add(path+".who", "unknown subject")
			}
			if p.ProcedureType == "" {
				add(path+".procedureType", "procedure type is required")
			}
			if p.EstimatedCost == "" {
				add(path+".estimatedCost", "estimated cost is required")
			}
		}
	}
}

func validateUtilization(r *Record, add func(path, reason string)) {
	if !r.MedicalAidStatus.IsValid() {
		add("medicalAidStatus", "unknown medical aid status")
	}
	if r.MedicalAidStatus != AidStatusNo {
		if r.CurrentScheme != nil && !r.CurrentScheme.IsValid() {
			add("currentScheme", "unknown scheme")
		}
		if r.SatisfactionLevel != nil && !r.SatisfactionLevel.IsValid() {
			add("satisfactionLevel", "unknown satisfaction level")
		}
	}
	if !r.DoctorVisits.IsValid() {
		add("doctorVisits", "unknown visit frequency")
	}
	if !r.HospitalAdmissions.IsValid() {
		add("hospitalAdmissions", "unknown admission frequency")
	}
}

func validatePreferences(r *Record, add func(path, reason string)) {
	if !r.BudgetRange.IsValid() {
		add("budgetRange", "unknown budget range")
	}
	if !r.DayToDayPreference.IsValid() {
		add("dayToDayPreference", "unknown day-to-day preference")
	}
	if !r.NetworkPreference.IsValid() {
		add("networkPreference", "unknown network preference")
	}
	if !r.CoPaymentPreference.IsValid() {
		add("coPaymentPreference", "unknown co-payment preference")
	}

	priorities := []struct {
		path  string
		value BenefitPriority
	}{
		{"benefitPriorities.maternity", r.BenefitPriorities.Maternity},
		{"benefitPriorities.mentalHealth", r.BenefitPriorities.MentalHealth},
		{"benefitPriorities.dental", r.BenefitPriorities.Dental},
		{"benefitPriorities.optical", r.BenefitPriorities.Optical},
		{"benefitPriorities.alternativeMedicine", r.BenefitPriorities.AlternativeMedicine},
		{"benefitPriorities.travelCover", r.BenefitPriorities.TravelCover},
	}
	for _, p := range priorities {
		if !p.value.IsValid() {
			add(p.path, "unknown priority level")
		}
	}
}

func validateFamilyPlanning(r *Record, add func(path, reason string)) {
	if !r.PregnancyStatus.IsValid() {
		add("pregnancyStatus", "unknown pregnancy status")
	}
	if r.PregnancyStatus.Expecting() {
		if r.BirthPreference != nil && !r.BirthPreference.IsValid() {
			add("birthPreference", "unknown birth preference")
		}
	}
}
