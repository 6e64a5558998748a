package record

// Gender of the respondent
type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
)

// IsValid reports whether the value is a known gender
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderPreferNotToSay:
		return true
	}
	return false
}

// CoverageType drives the shape of the dependents list
type CoverageType string

const (
	CoverageJustMe           CoverageType = "just_me"
	CoverageMeSpouse         CoverageType = "me_spouse"
	CoverageMeChildren       CoverageType = "me_children"
	CoverageMeSpouseChildren CoverageType = "me_spouse_children"
)

func (c CoverageType) IsValid() bool {
	switch c {
	case CoverageJustMe, CoverageMeSpouse, CoverageMeChildren, CoverageMeSpouseChildren:
		return true
	}
	return false
}

// IncludesSpouse reports whether this coverage carries a spouse dependent
func (c CoverageType) IncludesSpouse() bool {
	return c == CoverageMeSpouse || c == CoverageMeSpouseChildren
}

// IncludesChildren reports whether this coverage carries child dependents
func (c CoverageType) IncludesChildren() bool {
	return c == CoverageMeChildren || c == CoverageMeSpouseChildren
}

// Relationship of a dependent to the respondent
type Relationship string

const (
	RelationshipSpouse Relationship = "spouse"
	RelationshipChild  Relationship = "child"
)

func (r Relationship) IsValid() bool {
	return r == RelationshipSpouse || r == RelationshipChild
}

// ChronicConditionStatus identifies who, if anyone, has a chronic condition
type ChronicConditionStatus string

const (
	ChronicStatusNo     ChronicConditionStatus = "no"
	ChronicStatusMe     ChronicConditionStatus = "me"
	ChronicStatusSpouse ChronicConditionStatus = "spouse"
	ChronicStatusChild  ChronicConditionStatus = "child"
)

func (s ChronicConditionStatus) IsValid() bool {
	switch s {
	case ChronicStatusNo, ChronicStatusMe, ChronicStatusSpouse, ChronicStatusChild:
		return true
	}
	return false
}

// MedicalAidStatus describes current medical aid membership
type MedicalAidStatus string

const (
	AidStatusNo             MedicalAidStatus = "no"
	AidStatusIndividual     MedicalAidStatus = "individual"
	AidStatusEmployer       MedicalAidStatus = "employer"
	AidStatusSpouseEmployer MedicalAidStatus = "spouse_employer"
)

func (s MedicalAidStatus) IsValid() bool {
	switch s {
	case AidStatusNo, AidStatusIndividual, AidStatusEmployer, AidStatusSpouseEmployer:
		return true
	}
	return false
}

// MedicalAidScheme is the respondent's current scheme, when they have one
type MedicalAidScheme string

const (
	SchemeDiscovery      MedicalAidScheme = "discovery"
	SchemeBonitas        MedicalAidScheme = "bonitas"
	SchemeBestmed        MedicalAidScheme = "bestmed"
	SchemeMedihelp       MedicalAidScheme = "medihelp"
	SchemeMomentum       MedicalAidScheme = "momentum"
	SchemeFedhealth      MedicalAidScheme = "fedhealth"
	SchemeOther          MedicalAidScheme = "other"
	SchemePreferNotToSay MedicalAidScheme = "prefer_not_to_say"
)

func (s MedicalAidScheme) IsValid() bool {
	switch s {
	case SchemeDiscovery, SchemeBonitas, SchemeBestmed, SchemeMedihelp,
		SchemeMomentum, SchemeFedhealth, SchemeOther, SchemePreferNotToSay:
		return true
	}
	return false
}

// SatisfactionLevel with the current scheme
type SatisfactionLevel string

const (
	SatisfactionVerySatisfied SatisfactionLevel = "very_satisfied"
	SatisfactionSatisfied     SatisfactionLevel = "satisfied"
	SatisfactionNeutral       SatisfactionLevel = "neutral"
	SatisfactionDissatisfied  SatisfactionLevel = "dissatisfied"
)

func (s SatisfactionLevel) IsValid() bool {
	switch s {
	case SatisfactionVerySatisfied, SatisfactionSatisfied, SatisfactionNeutral, SatisfactionDissatisfied:
		return true
	}
	return false
}

// DoctorVisits is the yearly GP visit frequency bucket
type DoctorVisits string

const (
	VisitsNone       DoctorVisits = "0"
	VisitsOneToThree DoctorVisits = "1-3"
	VisitsFourToSix  DoctorVisits = "4-6"
	VisitsSevenPlus  DoctorVisits = "7+"
)

func (v DoctorVisits) IsValid() bool {
	switch v {
	case VisitsNone, VisitsOneToThree, VisitsFourToSix, VisitsSevenPlus:
		return true
	}
	return false
}

// HospitalAdmissions is the yearly admission frequency bucket
type HospitalAdmissions string

const (
	AdmissionsNone      HospitalAdmissions = "0"
	AdmissionsOne       HospitalAdmissions = "1"
	AdmissionsTwo       HospitalAdmissions = "2"
	AdmissionsThreePlus HospitalAdmissions = "3+"
)

func (a HospitalAdmissions) IsValid() bool {
	switch a {
	case AdmissionsNone, AdmissionsOne, AdmissionsTwo, AdmissionsThreePlus:
		return true
	}
	return false
}

// BudgetRange is the monthly contribution budget in rand
type BudgetRange string

const (
	BudgetUnder2000 BudgetRange = "under_2000"
	Budget2000To4k  BudgetRange = "2000_4000"
	Budget4000To6k  BudgetRange = "4000_6000"
	Budget6000To8k  BudgetRange = "6000_8000"
	Budget8000To12k BudgetRange = "8000_12000"
	BudgetOver12k   BudgetRange = "over_12000"
	BudgetNone      BudgetRange = "no_budget"
)

func (b BudgetRange) IsValid() bool {
	switch b {
	case BudgetUnder2000, Budget2000To4k, Budget4000To6k, Budget6000To8k,
		Budget8000To12k, BudgetOver12k, BudgetNone:
		return true
	}
	return false
}

// DayToDayPreference is the day-to-day medical spending style
type DayToDayPreference string

const (
	DayToDaySavingsAccount DayToDayPreference = "savings_account"
	DayToDayUnlimitedCover DayToDayPreference = "unlimited_cover"
	DayToDayOutOfPocket    DayToDayPreference = "out_of_pocket"
	DayToDayNotSure        DayToDayPreference = "not_sure"
)

func (d DayToDayPreference) IsValid() bool {
	switch d {
	case DayToDaySavingsAccount, DayToDayUnlimitedCover, DayToDayOutOfPocket, DayToDayNotSure:
		return true
	}
	return false
}

// NetworkPreference is the tolerance for network-restricted plans
type NetworkPreference string

const (
	NetworkYesLowestCost NetworkPreference = "yes_lowest_cost"
	NetworkMaybeDepends  NetworkPreference = "maybe_depends"
	NetworkNeedFreedom   NetworkPreference = "no_need_freedom"
)

func (n NetworkPreference) IsValid() bool {
	switch n {
	case NetworkYesLowestCost, NetworkMaybeDepends, NetworkNeedFreedom:
		return true
	}
	return false
}

// CoPaymentPreference is the tolerance for procedure co-payments
type CoPaymentPreference string

const (
	CoPaymentYesLowerCost    CoPaymentPreference = "yes_lower_cost"
	CoPaymentNoComprehensive CoPaymentPreference = "no_comprehensive"
)

func (c CoPaymentPreference) IsValid() bool {
	return c == CoPaymentYesLowerCost || c == CoPaymentNoComprehensive
}

// BenefitPriority ranks one benefit category
type BenefitPriority string

const (
	PriorityCritical     BenefitPriority = "critical"
	PriorityImportant    BenefitPriority = "important"
	PriorityNiceToHave   BenefitPriority = "nice_to_have"
	PriorityNotImportant BenefitPriority = "not_important"
)

func (p BenefitPriority) IsValid() bool {
	switch p {
	case PriorityCritical, PriorityImportant, PriorityNiceToHave, PriorityNotImportant:
		return true
	}
	return false
}

// PregnancyStatus for the family planning section
type PregnancyStatus string

const (
	PregnancyCurrent        PregnancyStatus = "currently_pregnant"
	PregnancyPlanning12M    PregnancyStatus = "planning_12_months"
	PregnancyPlanningFuture PregnancyStatus = "planning_future"
	PregnancyNotPlanning    PregnancyStatus = "not_planning"
)

func (p PregnancyStatus) IsValid() bool {
	switch p {
	case PregnancyCurrent, PregnancyPlanning12M, PregnancyPlanningFuture, PregnancyNotPlanning:
		return true
	}
	return false
}

// Expecting reports whether birth preference applies for this status
func (p PregnancyStatus) Expecting() bool {
	return p == PregnancyCurrent || p == PregnancyPlanning12M
}

// BirthPreference applies only when expecting
type BirthPreference string

const (
	BirthHospital    BirthPreference = "hospital"
	BirthHomeMidwife BirthPreference = "home_midwife"
	BirthNotSure     BirthPreference = "not_sure"
)

func (b BirthPreference) IsValid() bool {
	switch b {
	case BirthHospital, BirthHomeMidwife, BirthNotSure:
		return true
	}
	return false
}

// ProcedureSubject identifies who a planned procedure is for
type ProcedureSubject string

const (
	SubjectMe     ProcedureSubject = "me"
	SubjectSpouse ProcedureSubject = "spouse"
	SubjectChild  ProcedureSubject = "child"
)

func (s ProcedureSubject) IsValid() bool {
	switch s {
	case SubjectMe, SubjectSpouse, SubjectChild:
		return true
	}
	return false
}
