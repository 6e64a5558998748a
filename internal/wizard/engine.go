package wizard

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/medmatch/intake/internal/record"
	"github.com/medmatch/intake/internal/shared/errors"
	"github.com/medmatch/intake/internal/shared/metrics"
	"github.com/medmatch/intake/internal/shared/types"
	"github.com/medmatch/intake/internal/snapshot"
)

// Observer is notified after every record mutation, once the derivation
// pass has run. Observers run without the engine lock and receive their own
// copy, so they may call back into the engine; they must not retain the copy
// across calls.
type Observer func(r *record.Record)

// Engine is the single-writer state container for one respondent's
// questionnaire. Every mutation runs the full derivation pass, notifies
// observers, then mirrors the record to the snapshot store. Snapshot
// failures are logged and swallowed; they never block the caller.
type Engine struct {
	mu        sync.Mutex
	rec       *record.Record
	machine   *Machine
	store     snapshot.Store
	observers []Observer
}

// NewEngine restores a well-formed snapshot from the store or starts from
// the default record.
func NewEngine(ctx context.Context, store snapshot.Store) *Engine {
	e := &Engine{
		rec:     record.Default(),
		machine: NewMachine(),
		store:   store,
	}

	if store != nil {
		r, err := store.Load(ctx)
		switch {
		case err == nil:
			e.rec = r
			if r.HasStarted {
				// resume inside the wizard rather than on the intro screen
				_ = e.machine.JumpTo(SectionDemographics)
			}
		case err == snapshot.ErrNoSnapshot:
			// first visit
		default:
			log.Printf("snapshot restore failed, starting fresh: %v", err)
			metrics.RecordSnapshotError("load")
		}
	}

	return e
}

// Subscribe registers an observer for record changes.
func (e *Engine) Subscribe(fn Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, fn)
}

// Record returns a copy of the current record.
func (e *Engine) Record() *record.Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rec.Clone()
}

// GetField reads one field by path.
func (e *Engine) GetField(path string) (any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return record.GetField(e.rec, path)
}

// SetField assigns one field by path, applies the derivation rules for that
// field, notifies observers and autosaves. Field-level validation problems
// do not block the write; they surface at submission.
func (e *Engine) SetField(ctx context.Context, path string, value any) error {
	e.mu.Lock()
	if err := record.SetField(e.rec, path, value); err != nil {
		e.mu.Unlock()
		return err
	}
	if record.Derive(e.rec, path) {
		metrics.RecordDerivation()
	}
	metrics.RecordFieldEdit(path)
	e.changed(ctx)
	return nil
}

// AddProcedure appends an empty planned procedure for the respondent and
// returns its id.
func (e *Engine) AddProcedure(ctx context.Context) types.ID {
	e.mu.Lock()
	p := record.PlannedProcedure{ID: types.NewID(), Who: record.SubjectMe}
	e.rec.HasPlannedProcedures = true
	e.rec.PlannedProcedures = append(e.rec.PlannedProcedures, p)
	e.changed(ctx)
	return p.ID
}

// RemoveProcedure deletes a planned procedure by id.
func (e *Engine) RemoveProcedure(ctx context.Context, id types.ID) error {
	e.mu.Lock()
	for i, p := range e.rec.PlannedProcedures {
		if p.ID == id {
			e.rec.PlannedProcedures = append(e.rec.PlannedProcedures[:i], e.rec.PlannedProcedures[i+1:]...)
			e.changed(ctx)
			return nil
		}
	}
	e.mu.Unlock()
	return errors.NotFound("planned procedure", id.String())
}

// ToggleCondition adds the named condition to the disclosure set, or removes
// it when already present.
func (e *Engine) ToggleCondition(ctx context.Context, name string) error {
	if !record.KnownCondition(name) {
		return errors.BadRequest(fmt.Sprintf("unknown condition %q", name))
	}

	e.mu.Lock()
	for i, c := range e.rec.ChronicConditions {
		if c == name {
			e.rec.ChronicConditions = append(e.rec.ChronicConditions[:i], e.rec.ChronicConditions[i+1:]...)
			e.changed(ctx)
			return nil
		}
	}
	e.rec.ChronicConditions = append(e.rec.ChronicConditions, name)
	e.changed(ctx)
	return nil
}

// Start marks the questionnaire as started and enters the first real section.
func (e *Engine) Start(ctx context.Context) Section {
	e.mu.Lock()
	e.rec.HasStarted = true
	_ = e.machine.JumpTo(SectionDemographics)
	s := e.machine.Current()
	e.changed(ctx)
	return s
}

// Current returns the current section.
func (e *Engine) Current() Section {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.machine.Current()
}

// Progress reports wizard completion as a fraction in (0, 1].
func (e *Engine) Progress() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.machine.Progress()
}

// Advance moves one section forward. Leaving the introduction requires the
// questionnaire to have been started.
func (e *Engine) Advance() (Section, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.machine.Current() == SectionIntroduction && !e.rec.HasStarted {
		return SectionIntroduction, errors.Conflict("questionnaire has not been started")
	}
	s := e.machine.Advance()
	metrics.RecordSectionTransition("advance", string(s))
	return s, nil
}

// Retreat moves one section back; a no-op at the introduction.
func (e *Engine) Retreat() Section {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.machine.Retreat()
	metrics.RecordSectionTransition("retreat", string(s))
	return s
}

// JumpTo moves directly to a named section.
func (e *Engine) JumpTo(s Section) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.machine.JumpTo(s); err != nil {
		return errors.BadRequest(err.Error())
	}
	metrics.RecordSectionTransition("jump", string(s))
	return nil
}

// Summary projects the current record into review rows.
func (e *Engine) Summary() []SummaryRow {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Summarize(e.rec)
}

// Submit validates the whole record. On failure it returns the field errors
// and performs no state change. On success it returns the completed record,
// clears the snapshot and resets record and section machine to their
// initial states.
func (e *Engine) Submit(ctx context.Context) (*record.Record, []record.FieldError) {
	e.mu.Lock()
	errs := record.Validate(e.rec)
	if !e.rec.LocationConfirmed {
		errs = append(errs, record.FieldError{
			Path:   "locationConfirmed",
			Reason: "please confirm your home location",
		})
	}
	if len(errs) > 0 {
		e.mu.Unlock()
		metrics.RecordSubmission(false)
		return nil, errs
	}

	completed := e.rec
	e.rec = record.Default()
	e.machine.Reset()
	e.mu.Unlock()

	e.clear(ctx)
	metrics.RecordSubmission(true)
	return completed, nil
}

// Reset discards the record and snapshot and returns to the introduction.
func (e *Engine) Reset(ctx context.Context) {
	e.mu.Lock()
	e.rec = record.Default()
	e.machine.Reset()
	snap, observers := e.snapshotLocked()
	e.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
	e.clear(ctx)
}

// changed finishes a mutation: it clones the record and observer list, then
// releases the lock before notifying observers and autosaving. Observers may
// therefore call back into the engine. Callers must hold the lock and must
// not touch engine state after calling.
func (e *Engine) changed(ctx context.Context) {
	snap, observers := e.snapshotLocked()
	e.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
	if e.store == nil {
		return
	}
	if err := e.store.Save(ctx, snap); err != nil {
		log.Printf("snapshot save failed: %v", err)
		metrics.RecordSnapshotError("save")
	}
}

// snapshotLocked copies everything the post-mutation pipeline needs so it
// can run without the lock.
func (e *Engine) snapshotLocked() (*record.Record, []Observer) {
	return e.rec.Clone(), append([]Observer(nil), e.observers...)
}

func (e *Engine) clear(ctx context.Context) {
	if e.store == nil {
		return
	}
	if err := e.store.Clear(ctx); err != nil {
		log.Printf("snapshot clear failed: %v", err)
		metrics.RecordSnapshotError("clear")
	}
}
