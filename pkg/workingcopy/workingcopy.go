// Package workingcopy tracks every open working copy, the in-memory
// editable representation of a resource, and aggregates per-resource and
// global unsaved-changes state.
package workingcopy

import (
	"github.com/grovetools/draft/pkg/event"
	"github.com/grovetools/draft/pkg/resource"
)

// Capability is a bit-set of optional working copy traits. The registry
// itself is capability-agnostic; observers consult these bits.
type Capability uint8

const (
	// CapabilityNone marks a plain working copy.
	CapabilityNone Capability = 0
	// CapabilityUntitled marks a copy with no backing resource on disk yet.
	CapabilityUntitled Capability = 1 << 0
	// CapabilityAutoSave marks a copy participating in auto-save.
	CapabilityAutoSave Capability = 1 << 1
)

// Has reports whether all bits of other are set.
func (c Capability) Has(other Capability) bool {
	return c&other == other
}

// WorkingCopy is the contract a registered working copy fulfills. The
// resource must be stable for the registration's lifetime, and the
// dirty-change emitter must fire once per dirty/clean transition.
type WorkingCopy interface {
	// Resource identifies the backing store this copy represents.
	Resource() resource.Key

	// Name is a short human-readable label, typically the base name.
	Name() string

	// Capabilities returns the copy's optional trait bits.
	Capabilities() Capability

	// IsDirty reports whether the copy has unsaved modifications.
	IsDirty() bool

	// OnDidChangeDirty fires on every dirty/clean transition, with no
	// payload; observers re-query IsDirty.
	OnDidChangeDirty() *event.Emitter[struct{}]
}
