// Package record defines the questionnaire answer aggregate, its validation
// rules and the conditional derivation rules that keep structurally dependent
// parts of the aggregate consistent.
package record

import (
	"encoding/json"
	"fmt"

	"github.com/medmatch/intake/internal/shared/types"
)

// PersonalDetails is the identity and contact block
type PersonalDetails struct {
	FullName    string `json:"fullName"`
	IDNumber    string `json:"idNumber"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      Gender `json:"gender"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

// Dependent is a spouse or child covered alongside the respondent
type Dependent struct {
	ID                   types.ID     `json:"id"`
	Name                 string       `json:"name"`
	DateOfBirth          string       `json:"dateOfBirth"`
	Relationship         Relationship `json:"relationship"`
	HasChronicCondition  bool         `json:"hasChronicCondition"`
	ChronicConditionName string       `json:"chronicConditionName,omitempty"`
}

// PlannedProcedure is a known upcoming procedure for any covered person
type PlannedProcedure struct {
	ID            types.ID         `json:"id"`
	Who           ProcedureSubject `json:"who"`
	ProcedureType string           `json:"procedureType"`
	EstimatedCost string           `json:"estimatedCost"`
}

// BenefitPriorities ranks the six benefit categories. Every category is
// always present; there is no "unset" state.
type BenefitPriorities struct {
	Maternity           BenefitPriority `json:"maternity"`
	MentalHealth        BenefitPriority `json:"mentalHealth"`
	Dental              BenefitPriority `json:"dental"`
	Optical             BenefitPriority `json:"optical"`
	AlternativeMedicine BenefitPriority `json:"alternativeMedicine"`
	TravelCover         BenefitPriority `json:"travelCover"`
}

// Record is the full questionnaire answer aggregate for one respondent.
// It is mutated only through the wizard engine, which applies the derivation
// pass after every field change.
type Record struct {
	HasStarted      bool            `json:"hasStarted"`
	PersonalDetails PersonalDetails `json:"personalDetails"`

	CoverageType     CoverageType `json:"coverageType"`
	NumberOfChildren int          `json:"numberOfChildren"`
	Dependents       []Dependent  `json:"dependents"`

	ChronicConditionStatus ChronicConditionStatus `json:"chronicConditionStatus"`
	ChronicConditions      []string               `json:"chronicConditions"`
	HasPlannedProcedures   bool                   `json:"hasPlannedProcedures"`
	PlannedProcedures      []PlannedProcedure     `json:"plannedProcedures"`

	MedicalAidStatus   MedicalAidStatus   `json:"medicalAidStatus"`
	CurrentScheme      *MedicalAidScheme  `json:"currentScheme,omitempty"`
	SatisfactionLevel  *SatisfactionLevel `json:"satisfactionLevel,omitempty"`
	DoctorVisits       DoctorVisits       `json:"doctorVisits"`
	HospitalAdmissions HospitalAdmissions `json:"hospitalAdmissions"`
	HighCostDental     bool               `json:"highCostDental"`
	PreferredProviders string             `json:"preferredProviders"`

	BudgetRange         BudgetRange         `json:"budgetRange"`
	DayToDayPreference  DayToDayPreference  `json:"dayToDayPreference"`
	NetworkPreference   NetworkPreference   `json:"networkPreference"`
	CoPaymentPreference CoPaymentPreference `json:"coPaymentPreference"`
	BenefitPriorities   BenefitPriorities   `json:"benefitPriorities"`

	PregnancyStatus PregnancyStatus  `json:"pregnancyStatus"`
	BirthPreference *BirthPreference `json:"birthPreference,omitempty"`

	LocationConfirmed bool            `json:"locationConfirmed"`
	Location          *types.Location `json:"location,omitempty"`
}

// Default returns the fixed initial record: enums at their defaults, all
// collections empty, every benefit priority present.
func Default() *Record {
	return &Record{
		HasStarted: false,
		PersonalDetails: PersonalDetails{
			Gender: GenderMale,
		},
		CoverageType:           CoverageJustMe,
		NumberOfChildren:       0,
		Dependents:             []Dependent{},
		ChronicConditionStatus: ChronicStatusNo,
		ChronicConditions:      []string{},
		HasPlannedProcedures:   false,
		PlannedProcedures:      []PlannedProcedure{},
		MedicalAidStatus:       AidStatusNo,
		DoctorVisits:           VisitsNone,
		HospitalAdmissions:     AdmissionsNone,
		HighCostDental:         false,
		BudgetRange:            BudgetNone,
		DayToDayPreference:     DayToDayNotSure,
		NetworkPreference:      NetworkMaybeDepends,
		CoPaymentPreference:    CoPaymentYesLowerCost,
		BenefitPriorities: BenefitPriorities{
			Maternity:           PriorityImportant,
			MentalHealth:        PriorityNiceToHave,
			Dental:              PriorityImportant,
			Optical:             PriorityNiceToHave,
			AlternativeMedicine: PriorityNotImportant,
			TravelCover:         PriorityNiceToHave,
		},
		PregnancyStatus:   PregnancyNotPlanning,
		LocationConfirmed: false,
	}
}

// Clone returns a deep copy of the record
func (r *Record) Clone() *Record {
	data, err := json.Marshal(r)
	if err != nil {
		panic(fmt.Sprintf("record: clone marshal: %v", err))
	}
	out := &Record{}
	if err := json.Unmarshal(data, out); err != nil {
		panic(fmt.Sprintf("record: clone unmarshal: %v", err))
	}
	return out
}

// Spouse returns the spouse dependent, if present
func (r *Record) Spouse() *Dependent {
	for i := range r.Dependents {
		if r.Dependents[i].Relationship == RelationshipSpouse {
			return &r.Dependents[i]
		}
	}
	return nil
}

// Children returns the child dependents in order
func (r *Record) Children() []Dependent {
	var children []Dependent
	for _, d := range r.Dependents {
		if d.Relationship == RelationshipChild {
			children = append(children, d)
		}
	}
	return children
}

// WellFormed checks that a decoded snapshot is structurally plausible before
// it is trusted as a restore source: driver enums must be members of their
// vocabularies and the dependent/procedure entries must carry valid
// relationships. Field-level content is NOT validated here; an in-progress
// record is well-formed long before it is submittable.
func (r *Record) WellFormed() error {
	if !r.PersonalDetails.Gender.IsValid() {
		return fmt.Errorf("unknown gender %q", r.PersonalDetails.Gender)
	}
	if !r.CoverageType.IsValid() {
		return fmt.Errorf("unknown coverage type %q", r.CoverageType)
	}
	if r.NumberOfChildren < 0 || r.NumberOfChildren > MaxChildren {
		return fmt.Errorf("child count %d out of range", r.NumberOfChildren)
	}
	if len(r.Dependents) > MaxChildren+1 {
		return fmt.Errorf("too many dependents: %d", len(r.Dependents))
	}
	if !r.ChronicConditionStatus.IsValid() {
		return fmt.Errorf("unknown chronic condition status %q", r.ChronicConditionStatus)
	}
	if !r.MedicalAidStatus.IsValid() {
		return fmt.Errorf("unknown medical aid status %q", r.MedicalAidStatus)
	}
	if !r.DoctorVisits.IsValid() {
		return fmt.Errorf("unknown doctor visits bucket %q", r.DoctorVisits)
	}
	if !r.HospitalAdmissions.IsValid() {
		return fmt.Errorf("unknown hospital admissions bucket %q", r.HospitalAdmissions)
	}
	if !r.BudgetRange.IsValid() {
		return fmt.Errorf("unknown budget range %q", r.BudgetRange)
	}
	if !r.DayToDayPreference.IsValid() {
		return fmt.Errorf("unknown day-to-day preference %q", r.DayToDayPreference)
	}
	if !r.NetworkPreference.IsValid() {
		return fmt.Errorf("unknown network preference %q", r.NetworkPreference)
	}
	if !r.CoPaymentPreference.IsValid() {
		return fmt.Errorf("unknown co-payment preference %q", r.CoPaymentPreference)
	}
	if !r.PregnancyStatus.IsValid() {
		return fmt.Errorf("unknown pregnancy status %q", r.PregnancyStatus)
	}
	for _, p := range []BenefitPriority{
		r.BenefitPriorities.Maternity, r.BenefitPriorities.MentalHealth,
		r.BenefitPriorities.Dental, r.BenefitPriorities.Optical,
		r.BenefitPriorities.AlternativeMedicine, r.BenefitPriorities.TravelCover,
	} {
		if !p.IsValid() {
			return fmt.Errorf("unknown benefit priority %q", p)
		}
	}
	for i, d := range r.Dependents {
		if !d.Relationship.IsValid() {
			return fmt.Errorf("dependent %d: unknown relationship %q", i, d.Relationship)
		}
	}
	for i, p := range r.PlannedProcedures {
		if !p.Who.IsValid() {
			return fmt.Errorf("planned procedure %d: unknown subject %q", i, p.Who)
		}
	}
	return nil
}
