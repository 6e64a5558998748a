package wizard

import (
	"testing"

	"github.com/medmatch/intake/internal/record"
)

func TestSummarizeEmptyRecord(t *testing.T) {
	rows := Summarize(record.Default())
	if len(rows) != 9 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0].Value != "-" {
		t.Errorf("empty name row = %q", rows[0].Value)
	}
	if rows[4].Value != "None" {
		t.Errorf("procedures row = %q", rows[4].Value)
	}
}

func TestSummarizeMasksIdentityNumber(t *testing.T) {
	r := record.Default()
	r.PersonalDetails.IDNumber = "8001015009087"
	rows := Summarize(r)
	if rows[1].Value != "800101*******" {
		t.Errorf("identity row = %q", rows[1].Value)
	}
}

func TestSummarizeCountsProcedures(t *testing.T) {
	r := record.Default()
	r.HasPlannedProcedures = true
	r.PlannedProcedures = []record.PlannedProcedure{
		{ID: "a", Who: record.SubjectMe, ProcedureType: "Tonsillectomy", EstimatedCost: "25000"},
		{ID: "b", Who: record.SubjectSpouse, ProcedureType: "Knee replacement", EstimatedCost: "180000"},
	}
	rows := Summarize(r)
	if rows[4].Value != "2 procedures" {
		t.Errorf("procedures row = %q", rows[4].Value)
	}
}

func TestSummarizeRowsCarryEditTargets(t *testing.T) {
	for _, row := range Summarize(record.Default()) {
		if sectionIndex(row.Section) < 0 {
			t.Errorf("row %q points at unknown section %q", row.Title, row.Section)
		}
		if row.Section == SectionIntroduction || row.Section == SectionReview {
			t.Errorf("row %q points at non-editable section %q", row.Title, row.Section)
		}
	}
}
