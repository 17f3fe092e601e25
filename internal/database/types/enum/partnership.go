package enum

// PartnershipType classifies what kind of partner the listing owner is
// looking for.
type PartnershipType string

const (
	PartnershipTypeResell         PartnershipType = "resell"
	PartnershipTypeImplementation PartnershipType = "implementation"
	PartnershipTypeLeadGeneration PartnershipType = "lead_generation"
)

// Valid reports whether the partnership type is a known value.
func (p PartnershipType) Valid() bool {
	return p == PartnershipTypeResell || p == PartnershipTypeImplementation || p == PartnershipTypeLeadGeneration
}
