// Package mapping implements the de-identification engine's single
// shared mutable resource: the old-value → new-value mapping store
// that gives stable per-scope replacement values for UIDs, text, and
// shifted datetimes.
//
// Grounded on original_source's database.py (DBDicomMapping): the same
// composite key (value_type, old_value, scope_type, scope_value) and
// insert-or-return-existing contract, adapted from a Postgres
// UPSERT...RETURNING statement into a Go interface with two
// implementations.
package mapping

import (
	"context"
	"fmt"

	"github.com/codeninja55/go-radx/deidentify/engineerr"
)

// ScopeType is the granularity at which a mapping entry is reused
// across instances.
type ScopeType string

const (
	ScopeAlways   ScopeType = "always"
	ScopePatient  ScopeType = "patient"
	ScopeStudy    ScopeType = "study"
	ScopeSeries   ScopeType = "series"
	ScopeInstance ScopeType = "instance"
)

// ValueType partitions the mapping namespace by the kind of value
// being replaced.
type ValueType string

const (
	ValueUID      ValueType = "UID"
	ValueDateTime ValueType = "DATETIME"
	ValueText     ValueType = "TEXT"
)

// Key identifies one mapping entry.
type Key struct {
	ValueType  ValueType
	OldValue   string
	ScopeType  ScopeType
	ScopeValue string
}

// Store is the single source of truth for stable re-identification
// across instances. Implementations must make LookupOrInsert atomic:
// concurrent callers racing on the same Key must all observe the same
// stored new value.
type Store interface {
	// LookupOrInsert atomically inserts (key, candidateNewValue) if the
	// key is absent and returns candidateNewValue; otherwise it returns
	// the previously stored new value, leaving the store unchanged.
	//
	// ScopeValue == "" is invalid for any ScopeType other than
	// ScopeAlways and must fail with engineerr.ErrPreconditionFailed.
	LookupOrInsert(ctx context.Context, key Key, candidateNewValue string) (string, error)
}

// ReuseScope maps a config.ReuseMapping name (kept as a bare string
// here to avoid an import cycle with package config) to the
// (scope_type, scope_value) pair the pipeline should key its lookup
// under.
func ReuseScope(reuseMapping, patientID, studyUID, seriesUID, instanceUID string) (ScopeType, string, error) {
	switch reuseMapping {
	case "", "Always":
		return ScopeAlways, "always", nil
	case "SamePatient":
		return ScopePatient, patientID, nil
	case "SameStudy":
		return ScopeStudy, studyUID, nil
	case "SameSeries":
		return ScopeSeries, seriesUID, nil
	case "SameInstance":
		return ScopeInstance, instanceUID, nil
	default:
		return "", "", engineerr.MappingStoreError(fmt.Sprintf("unknown reuse mapping %q", reuseMapping), nil)
	}
}

func validateKey(key Key) error {
	if key.ScopeType != ScopeAlways && key.ScopeValue == "" {
		return engineerr.PreconditionFailed("", fmt.Sprintf(
			"scope value required for scope type %q (value_type=%s, old_value=%s)",
			key.ScopeType, key.ValueType, key.OldValue))
	}
	return nil
}
