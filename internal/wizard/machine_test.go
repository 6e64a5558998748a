package wizard

import "testing"

func TestMachineWalksForward(t *testing.T) {
	m := NewMachine()
	if m.Current() != SectionIntroduction {
		t.Fatalf("expected to start at introduction, got %s", m.Current())
	}

	for _, want := range SectionOrder[1:] {
		if got := m.Advance(); got != want {
			t.Errorf("Advance() = %s, want %s", got, want)
		}
	}
}

func TestMachineAdvanceStopsAtReview(t *testing.T) {
	m := NewMachine()
	if err := m.JumpTo(SectionReview); err != nil {
		t.Fatal(err)
	}
	if got := m.Advance(); got != SectionReview {
		t.Errorf("Advance() past review = %s, want review", got)
	}
}

func TestMachineRetreatStopsAtIntroduction(t *testing.T) {
	m := NewMachine()
	if got := m.Retreat(); got != SectionIntroduction {
		t.Errorf("Retreat() at introduction = %s, want introduction", got)
	}
}

func TestMachineJumpThenRetreat(t *testing.T) {
	m := NewMachine()
	if err := m.JumpTo(SectionPreferences); err != nil {
		t.Fatal(err)
	}
	if got := m.Retreat(); got != SectionHealthcareUtilization {
		t.Errorf("Retreat() from preferences = %s, want healthcare-utilization", got)
	}
}

func TestMachineJumpToUnknownSection(t *testing.T) {
	m := NewMachine()
	if err := m.JumpTo(Section("payment")); err == nil {
		t.Error("expected error for unknown section")
	}
	if m.Current() != SectionIntroduction {
		t.Errorf("failed jump moved the machine to %s", m.Current())
	}
}

func TestMachineProgress(t *testing.T) {
	m := NewMachine()
	if got := m.Progress(); got != 1.0/7 {
		t.Errorf("Progress() at introduction = %v", got)
	}
	if err := m.JumpTo(SectionReview); err != nil {
		t.Fatal(err)
	}
	if got := m.Progress(); got != 1.0 {
		t.Errorf("Progress() at review = %v", got)
	}
}
