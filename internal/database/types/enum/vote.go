package enum

// VoteType represents the direction of a software vote.
type VoteType string

const (
	// VoteTypeUp counts toward a software's recommendation score.
	VoteTypeUp VoteType = "up"
	// VoteTypeDown counts against a software's recommendation score.
	VoteTypeDown VoteType = "down"
)

// Valid reports whether the vote type is a known value.
func (v VoteType) Valid() bool {
	return v == VoteTypeUp || v == VoteTypeDown
}
