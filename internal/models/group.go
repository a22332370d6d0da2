package models

// Group represents a roster of people who share expenses. All balance and
// settlement computations run over one group's members and records.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string

	// Members is the list of member names, unique within the group. The
	// stored order is the roster order the calculator uses for
	// deterministic tie-breaking, so it must be preserved round-trip.
	Members []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64

	// CreatedBy is the user ID who created the group.
	CreatedBy string
}
