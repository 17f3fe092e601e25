package enum

// SoftwareStatus tracks a software listing through vendor submission
// and moderation.
type SoftwareStatus string

const (
	SoftwareStatusPending  SoftwareStatus = "pending"
	SoftwareStatusApproved SoftwareStatus = "approved"
	SoftwareStatusRejected SoftwareStatus = "rejected"
)

// Valid reports whether the software status is a known value.
func (s SoftwareStatus) Valid() bool {
	return s == SoftwareStatusPending || s == SoftwareStatusApproved || s == SoftwareStatusRejected
}

// PriceBracket buckets softwares by monthly price for catalog filtering.
type PriceBracket string

const (
	// PriceBracketUnknown marks softwares whose pricing text could not be classified.
	PriceBracketUnknown   PriceBracket = ""
	PriceBracketFree      PriceBracket = "free"
	PriceBracketUpTo100   PriceBracket = "ate-100"
	PriceBracket100To300  PriceBracket = "100-300"
	PriceBracket300To1000 PriceBracket = "300-1000"
	PriceBracketAbove1000 PriceBracket = "acima-1000"
)
