package resultmode

// Mode controls which result views the response carries.
type Mode string

// Result mode constants.
const (
	// Interleaved ships a single merged list capped by the global limit.
	Interleaved Mode = "interleaved"
	// PerCollection ships hits grouped by collection, each group capped
	// by that collection's own limit.
	PerCollection Mode = "per_collection"
	// Both ships both views; the grouped view drives included counts.
	Both Mode = "both"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Interleaved || m == PerCollection || m == Both
}

// WantsInterleaved reports whether the merged list view is produced.
func (m Mode) WantsInterleaved() bool {
	return m == Interleaved || m == Both
}

// WantsGrouped reports whether the per-collection view is produced.
func (m Mode) WantsGrouped() bool {
	return m == PerCollection || m == Both
}
