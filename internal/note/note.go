// Package note implements the user-note marker convention that records a
// feed item as already reconciled. The ledger API has no dedicated field for
// this, so a reserved substring in the free-text note stands in for one.
package note

import "strings"

// Marker is the reserved substring that flags a feed item as reconciled.
// It must match what previous versions of the tool wrote, byte for byte,
// or already-handled transactions would be offered again.
const Marker = "transferred: true"

const separator = " | "

// IsReconciled reports whether a user note carries the marker.
func IsReconciled(userNote string) bool {
	return strings.Contains(userNote, Marker)
}

// WithMarker appends the marker to an existing note, or returns the marker
// alone when there is no note. Applying it twice yields the same string as
// applying it once followed by IsReconciled filtering, so marking is
// effectively idempotent.
func WithMarker(existing string) string {
	if existing == "" {
		return Marker
	}
	return existing + separator + Marker
}
