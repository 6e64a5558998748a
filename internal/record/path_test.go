package record

import "testing"

func TestSetFieldScalars(t *testing.T) {
	r := Default()

	if err := SetField(r, "personalDetails.fullName", "Nomsa Dlamini"); err != nil {
		t.Fatal(err)
	}
	if r.PersonalDetails.FullName != "Nomsa Dlamini" {
		t.Errorf("fullName = %q", r.PersonalDetails.FullName)
	}

	if err := SetField(r, "coverageType", "me_spouse"); err != nil {
		t.Fatal(err)
	}
	if r.CoverageType != CoverageMeSpouse {
		t.Errorf("coverageType = %q", r.CoverageType)
	}

	// decoded JSON numbers arrive as float64
	if err := SetField(r, "numberOfChildren", float64(2)); err != nil {
		t.Fatal(err)
	}
	if r.NumberOfChildren != 2 {
		t.Errorf("numberOfChildren = %d", r.NumberOfChildren)
	}

	if err := SetField(r, "highCostDental", true); err != nil {
		t.Fatal(err)
	}
	if !r.HighCostDental {
		t.Error("highCostDental not set")
	}
}

func TestSetFieldNested(t *testing.T) {
	r := Default()
	r.CoverageType = CoverageMeSpouseChildren
	Derive(r, "coverageType")

	if err := SetField(r, "dependents.1.name", "Sipho"); err != nil {
		t.Fatal(err)
	}
	if r.Dependents[1].Name != "Sipho" {
		t.Errorf("dependents.1.name = %q", r.Dependents[1].Name)
	}

	if err := SetField(r, "benefitPriorities.maternity", "critical"); err != nil {
		t.Fatal(err)
	}
	if r.BenefitPriorities.Maternity != PriorityCritical {
		t.Errorf("maternity priority = %q", r.BenefitPriorities.Maternity)
	}
}

func TestSetFieldOptionalBlock(t *testing.T) {
	r := Default()

	if err := SetField(r, "currentScheme", "discovery"); err != nil {
		t.Fatal(err)
	}
	if r.CurrentScheme == nil || *r.CurrentScheme != SchemeDiscovery {
		t.Errorf("currentScheme = %v", r.CurrentScheme)
	}

	if err := SetField(r, "location.city", "Cape Town"); err != nil {
		t.Fatal(err)
	}
	if r.Location == nil || r.Location.City != "Cape Town" {
		t.Errorf("location = %+v", r.Location)
	}
}

func TestSetFieldRejectsUnknownPaths(t *testing.T) {
	r := Default()

	for _, path := range []string{
		"noSuchField",
		"personalDetails.noSuchField",
		"dependents.0.name", // out of range on an empty list
		"dependents.x.name",
	} {
		if err := SetField(r, path, "x"); err == nil {
			t.Errorf("expected error for path %q", path)
		}
	}
}

func TestSetFieldRejectsIncompatibleValue(t *testing.T) {
	r := Default()
	if err := SetField(r, "numberOfChildren", "two"); err == nil {
		t.Error("expected error assigning string to int field")
	}
}

func TestGetField(t *testing.T) {
	r := Default()
	r.PersonalDetails.Email = "nomsa@example.com"

	v, err := GetField(r, "personalDetails.email")
	if err != nil {
		t.Fatal(err)
	}
	if v != "nomsa@example.com" {
		t.Errorf("got %v", v)
	}

	if _, err := GetField(r, "no.such.path"); err == nil {
		t.Error("expected error for unknown path")
	}
}

func TestGetFieldDoesNotAllocateOptionals(t *testing.T) {
	r := Default()
	if _, err := GetField(r, "location.city"); err != nil {
		t.Fatal(err)
	}
	if r.Location != nil {
		t.Error("reading through an unset optional block mutated the record")
	}
}
