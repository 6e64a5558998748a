package record

import (
	"fmt"
	"strings"

	"github.com/medmatch/intake/internal/shared/types"
)

// Derive applies the conditional derivation rules for a single changed field
// and returns whether the record was structurally altered. It is a pure
// function of (record, changed path): no I/O, and re-deriving from the same
// inputs is idempotent. Derived dependent IDs are deterministic UUIDv5 values
// so a rebuilt list compares equal to an identically shaped one.
//
// Rules:
//   - coverageType drives the dependents list shape and resets the child count
//   - numberOfChildren rebuilds the child entries, preserving the spouse entry
//     and the first N children already captured
//   - chronicConditionStatus=no and medicalAidStatus=no soft-hide their
//     dependent fields without clearing them
//   - pregnancyStatus outside currently_pregnant/planning_12_months soft-hides
//     the birth preference
func Derive(r *Record, changedPath string) bool {
	switch {
	case changedPath == "coverageType":
		return deriveCoverage(r)
	case changedPath == "numberOfChildren":
		return deriveChildCount(r)
	case strings.HasPrefix(changedPath, "dependents"):
		// edits inside an existing entry never change the list shape
		return false
	default:
		return false
	}
}

func deriveCoverage(r *Record) bool {
	switch r.CoverageType {
	case CoverageJustMe:
		r.NumberOfChildren = 0
		r.Dependents = []Dependent{}
	case CoverageMeSpouse:
		r.NumberOfChildren = 0
		r.Dependents = []Dependent{newSpouse()}
	case CoverageMeChildren:
		r.NumberOfChildren = 1
		r.Dependents = []Dependent{newChild(1)}
	case CoverageMeSpouseChildren:
		r.NumberOfChildren = 1
		r.Dependents = []Dependent{newSpouse(), newChild(1)}
	default:
		return false
	}
	return true
}

// MaxChildren bounds the child count; the intake flow offers at most ten.
// The clamp keeps a single field edit from allocating an arbitrarily large
// dependents list.
const MaxChildren = 10

func deriveChildCount(r *Record) bool {
	if r.NumberOfChildren < 0 {
		r.NumberOfChildren = 0
	}
	if r.NumberOfChildren > MaxChildren {
		r.NumberOfChildren = MaxChildren
	}

	var next []Dependent
	if spouse := r.Spouse(); spouse != nil {
		next = append(next, *spouse)
	}

	// keep already-captured child data up to the new count
	existing := r.Children()
	for i := 0; i < r.NumberOfChildren; i++ {
		if i < len(existing) {
			next = append(next, existing[i])
		} else {
			next = append(next, newChild(i+1))
		}
	}

	if next == nil {
		next = []Dependent{}
	}
	r.Dependents = next
	return true
}

func newSpouse() Dependent {
	return Dependent{
		ID:           types.NewDeterministicID("dependent", "spouse"),
		Relationship: RelationshipSpouse,
	}
}

func newChild(n int) Dependent {
	return Dependent{
		ID:           types.NewDeterministicID("dependent", fmt.Sprintf("child-%d", n)),
		Relationship: RelationshipChild,
	}
}
