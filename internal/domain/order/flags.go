package order

import (
	"sort"

	vo "allaccess/internal/domain/pass/valueobjects"
)

// PassFlags is the per-order annotation tracking which pass keys the order
// has activated and which it has expired. The expired set is append-only:
// once a key lands there the grant from this order can never go active
// again.
type PassFlags struct {
	activated map[vo.PassKey]struct{}
	expired   map[vo.PassKey]struct{}
}

// NewPassFlags returns an empty annotation.
func NewPassFlags() *PassFlags {
	return &PassFlags{
		activated: make(map[vo.PassKey]struct{}),
		expired:   make(map[vo.PassKey]struct{}),
	}
}

// ReconstructPassFlags rebuilds the annotation from its stored key lists.
// Malformed keys are dropped rather than failing the whole order.
func ReconstructPassFlags(activated, expired []string) *PassFlags {
	f := NewPassFlags()
	for _, raw := range activated {
		if key, err := vo.ParsePassKey(raw); err == nil {
			f.activated[key] = struct{}{}
		}
	}
	for _, raw := range expired {
		if key, err := vo.ParsePassKey(raw); err == nil {
			f.expired[key] = struct{}{}
		}
	}
	return f
}

// IsActivated reports whether the key is flagged active for this order.
func (f *PassFlags) IsActivated(key vo.PassKey) bool {
	_, ok := f.activated[key]
	return ok
}

// IsExpired reports whether the key is flagged expired for this order.
func (f *PassFlags) IsExpired(key vo.PassKey) bool {
	_, ok := f.expired[key]
	return ok
}

// FlagActivated marks the key active. Returns false when the key is already
// expired: an expired key cannot be re-flagged.
func (f *PassFlags) FlagActivated(key vo.PassKey) bool {
	if f.IsExpired(key) {
		return false
	}
	f.activated[key] = struct{}{}
	return true
}

// FlagExpired moves the key from the active set to the expired set. The
// expired set only grows.
func (f *PassFlags) FlagExpired(key vo.PassKey) {
	delete(f.activated, key)
	f.expired[key] = struct{}{}
}

// ClearActivated removes the active flag without expiring the key. Used by
// the staleness self-healing path.
func (f *PassFlags) ClearActivated(key vo.PassKey) {
	delete(f.activated, key)
}

// HasActive reports whether any key is still flagged active.
func (f *PassFlags) HasActive() bool {
	return len(f.activated) > 0
}

// ActivatedKeys returns the active key strings in stable order.
func (f *PassFlags) ActivatedKeys() []string {
	return sortedKeys(f.activated)
}

// ExpiredKeys returns the expired key strings in stable order.
func (f *PassFlags) ExpiredKeys() []string {
	return sortedKeys(f.expired)
}

func sortedKeys(set map[vo.PassKey]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k.String())
	}
	sort.Strings(out)
	return out
}
