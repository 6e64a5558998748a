package record

// CDLConditions are the chronic disease list conditions every scheme must
// cover as prescribed minimum benefits.
var CDLConditions = []string{
	"Addison's Disease",
	"Asthma",
	"Bipolar Mood Disorder",
	"Bronchiectasis",
	"Cardiac Failure",
	"Cardiomyopathy",
	"Chronic Obstructive Pulmonary Disease (COPD)",
	"Chronic Renal Disease",
	"Coronary Artery Disease",
	"Crohn's Disease",
	"Diabetes Insipidus",
	"Diabetes Mellitus Type 1",
	"Diabetes Mellitus Type 2",
	"Dysrhythmias",
	"Epilepsy",
	"Glaucoma",
	"Haemophilia",
	"HIV/AIDS",
	"Hyperlipidaemia",
	"Hypertension",
	"Hypothyroidism",
	"Multiple Sclerosis",
	"Parkinson's Disease",
	"Rheumatoid Arthritis",
	"Schizophrenia",
	"Systemic Lupus Erythematosus",
	"Ulcerative Colitis",
}

// NonCDLConditions are common chronic conditions outside the prescribed list.
var NonCDLConditions = []string{
	"Anxiety Disorders",
	"Depression",
	"Eczema (severe)",
	"Gout",
	"Insomnia (chronic)",
	"Migraine (chronic)",
	"Osteoarthritis",
	"Psoriasis",
	"Other",
}

// AllConditions is the full selectable vocabulary, CDL first.
var AllConditions = append(append([]string{}, CDLConditions...), NonCDLConditions...)

// KnownCondition reports whether name is in the selectable vocabulary
func KnownCondition(name string) bool {
	for _, c := range AllConditions {
		if c == name {
			return true
		}
	}
	return false
}
