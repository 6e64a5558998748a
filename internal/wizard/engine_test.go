package wizard

import (
	"context"
	"testing"

	"github.com/medmatch/intake/internal/record"
	"github.com/medmatch/intake/internal/snapshot"
)

// fillPersonalDetails drives the engine to a submittable state. The default
// record already passes every other rule once the wizard has been started.
func fillPersonalDetails(t *testing.T, ctx context.Context, e *Engine) {
	t.Helper()
	fields := map[string]any{
		"personalDetails.fullName":    "Nomsa Dlamini",
		"personalDetails.idNumber":    "8001015009087",
		"personalDetails.dateOfBirth": "1980-01-01",
		"personalDetails.gender":      "female",
		"personalDetails.email":       "nomsa@example.com",
		"personalDetails.phone":       "0821234567",
		"personalDetails.address":     "12 Long Street, Cape Town",
	}
	for path, value := range fields {
		if err := e.SetField(ctx, path, value); err != nil {
			t.Fatalf("SetField(%s): %v", path, err)
		}
	}
}

func TestEngineAdvanceRequiresStart(t *testing.T) {
	e := NewEngine(context.Background(), nil)

	if _, err := e.Advance(); err == nil {
		t.Fatal("expected advancing past the introduction to fail before Start")
	}
	if e.Current() != SectionIntroduction {
		t.Errorf("failed advance moved the wizard to %s", e.Current())
	}

	e.Start(context.Background())
	if e.Current() != SectionDemographics {
		t.Errorf("Start() landed on %s, want demographics", e.Current())
	}
	if s, err := e.Advance(); err != nil || s != SectionHealthStatus {
		t.Errorf("Advance() = %s, %v", s, err)
	}
}

func TestEngineSetFieldRunsDerivation(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(ctx, nil)

	if err := e.SetField(ctx, "coverageType", "me_spouse_children"); err != nil {
		t.Fatal(err)
	}
	if err := e.SetField(ctx, "numberOfChildren", 2); err != nil {
		t.Fatal(err)
	}

	r := e.Record()
	if r.Spouse() == nil {
		t.Error("expected a derived spouse dependent")
	}
	if got := len(r.Children()); got != 2 {
		t.Errorf("expected 2 derived children, got %d", got)
	}
}

func TestEngineSetFieldClampsChildCount(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(ctx, nil)

	if err := e.SetField(ctx, "coverageType", "me_children"); err != nil {
		t.Fatal(err)
	}
	if err := e.SetField(ctx, "numberOfChildren", 500000); err != nil {
		t.Fatal(err)
	}

	r := e.Record()
	if r.NumberOfChildren != record.MaxChildren {
		t.Errorf("numberOfChildren = %d, want %d", r.NumberOfChildren, record.MaxChildren)
	}
	if got := len(r.Dependents); got != record.MaxChildren {
		t.Errorf("dependents allocated: %d, want %d", got, record.MaxChildren)
	}
}

func TestEngineAutosavesEveryEdit(t *testing.T) {
	ctx := context.Background()
	store := snapshot.NewMemoryStore("test")
	e := NewEngine(ctx, store)

	if err := e.SetField(ctx, "personalDetails.fullName", "Zanele Khumalo"); err != nil {
		t.Fatal(err)
	}

	saved, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if saved.PersonalDetails.FullName != "Zanele Khumalo" {
		t.Errorf("snapshot holds %q", saved.PersonalDetails.FullName)
	}
}

func TestEngineRestoresSnapshot(t *testing.T) {
	ctx := context.Background()
	store := snapshot.NewMemoryStore("test")

	first := NewEngine(ctx, store)
	first.Start(ctx)
	fillPersonalDetails(t, ctx, first)

	second := NewEngine(ctx, store)
	r := second.Record()
	if !r.HasStarted {
		t.Error("restored record lost hasStarted")
	}
	if r.PersonalDetails.FullName != "Nomsa Dlamini" {
		t.Errorf("restored record holds %q", r.PersonalDetails.FullName)
	}
	if second.Current() != SectionDemographics {
		t.Errorf("restored session resumed at %s", second.Current())
	}
}

func TestEngineSubmitRejectsIncompleteRecord(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(ctx, nil)
	e.Start(ctx)

	before := e.Record()
	completed, errs := e.Submit(ctx)
	if completed != nil {
		t.Fatal("incomplete record was accepted")
	}
	if len(errs) == 0 {
		t.Fatal("expected field errors")
	}

	// rejection must not change any state
	after := e.Record()
	if !after.HasStarted || after.PersonalDetails != before.PersonalDetails {
		t.Error("failed submission changed the record")
	}
	if e.Current() != SectionDemographics {
		t.Errorf("failed submission moved the wizard to %s", e.Current())
	}
}

func TestEngineSubmitRequiresLocationConfirmation(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(ctx, nil)
	e.Start(ctx)
	fillPersonalDetails(t, ctx, e)

	if completed, errs := e.Submit(ctx); completed != nil {
		t.Fatal("submission accepted without location confirmation")
	} else if len(errs) != 1 || errs[0].Path != "locationConfirmed" {
		t.Fatalf("unexpected errors %v", errs)
	}
}

func TestEngineSubmitSuccessResetsState(t *testing.T) {
	ctx := context.Background()
	store := snapshot.NewMemoryStore("test")
	e := NewEngine(ctx, store)
	e.Start(ctx)
	fillPersonalDetails(t, ctx, e)
	if err := e.SetField(ctx, "locationConfirmed", true); err != nil {
		t.Fatal(err)
	}

	completed, errs := e.Submit(ctx)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	if completed.PersonalDetails.FullName != "Nomsa Dlamini" {
		t.Errorf("completed record holds %q", completed.PersonalDetails.FullName)
	}

	if e.Record().HasStarted {
		t.Error("record was not reset after submission")
	}
	if e.Current() != SectionIntroduction {
		t.Errorf("wizard resumed at %s after submission", e.Current())
	}
	if _, err := store.Load(ctx); err != snapshot.ErrNoSnapshot {
		t.Errorf("snapshot survived submission: %v", err)
	}
}

func TestEngineProcedureLifecycle(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(ctx, nil)

	id := e.AddProcedure(ctx)
	r := e.Record()
	if !r.HasPlannedProcedures || len(r.PlannedProcedures) != 1 {
		t.Fatalf("AddProcedure left %d procedures", len(r.PlannedProcedures))
	}
	if r.PlannedProcedures[0].Who != record.SubjectMe {
		t.Errorf("new procedure subject = %q", r.PlannedProcedures[0].Who)
	}

	if err := e.RemoveProcedure(ctx, id); err != nil {
		t.Fatal(err)
	}
	if got := len(e.Record().PlannedProcedures); got != 0 {
		t.Errorf("RemoveProcedure left %d procedures", got)
	}
	if err := e.RemoveProcedure(ctx, id); err == nil {
		t.Error("expected not-found for a removed procedure")
	}
}

func TestEngineToggleCondition(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(ctx, nil)

	if err := e.ToggleCondition(ctx, "Asthma"); err != nil {
		t.Fatal(err)
	}
	if got := e.Record().ChronicConditions; len(got) != 1 || got[0] != "Asthma" {
		t.Fatalf("conditions = %v", got)
	}
	if err := e.ToggleCondition(ctx, "Asthma"); err != nil {
		t.Fatal(err)
	}
	if got := e.Record().ChronicConditions; len(got) != 0 {
		t.Fatalf("conditions = %v after second toggle", got)
	}
	if err := e.ToggleCondition(ctx, "Bad Hair Day"); err == nil {
		t.Error("expected unknown condition to be rejected")
	}
}

func TestEngineObserverSeesChanges(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(ctx, nil)

	var seen []string
	e.Subscribe(func(r *record.Record) {
		seen = append(seen, r.PersonalDetails.FullName)
	})

	if err := e.SetField(ctx, "personalDetails.fullName", "Sipho Ndlovu"); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 1 || seen[0] != "Sipho Ndlovu" {
		t.Errorf("observer saw %v", seen)
	}
}

func TestEngineObserverMayCallBack(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(ctx, nil)

	// an observer reading derived state back out must not deadlock
	var seen any
	e.Subscribe(func(r *record.Record) {
		v, err := e.GetField("coverageType")
		if err != nil {
			t.Errorf("GetField inside observer: %v", err)
			return
		}
		seen = v
	})

	if err := e.SetField(ctx, "coverageType", "me_spouse"); err != nil {
		t.Fatal(err)
	}
	if seen != record.CoverageMeSpouse {
		t.Errorf("observer read %v", seen)
	}
}

func TestEngineResetDiscardsEverything(t *testing.T) {
	ctx := context.Background()
	store := snapshot.NewMemoryStore("test")
	e := NewEngine(ctx, store)
	e.Start(ctx)
	fillPersonalDetails(t, ctx, e)

	e.Reset(ctx)
	if e.Record().HasStarted {
		t.Error("record survived reset")
	}
	if e.Current() != SectionIntroduction {
		t.Errorf("wizard resumed at %s after reset", e.Current())
	}
	if _, err := store.Load(ctx); err != snapshot.ErrNoSnapshot {
		t.Errorf("snapshot survived reset: %v", err)
	}
}
