// Package catalog filters the in-memory software catalog.
//
// The engine holds the full list loaded from the database and computes
// filtered projections from composable criteria. Filtering never hits
// the database; it is recomputed from the latest loaded snapshot.
package catalog

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/database/types/enum"
)

// AvailabilityMode selects how a buyer wants to engage with a software.
type AvailabilityMode string

const (
	AvailabilityAll          AvailabilityMode = ""
	AvailabilityPartnership  AvailabilityMode = "parceiros"
	AvailabilityPurchase     AvailabilityMode = "compra"
	AvailabilitySubscription AvailabilityMode = "assinatura"
)

// Criteria is the current set of filter selections for a catalog view.
// Zero values mean "match all" for that dimension. Criteria live only
// for the page session and are never persisted.
type Criteria struct {
	Category     string
	CompanySize  string
	Problem      string
	Price        enum.PriceBracket
	Availability AvailabilityMode
	Query        string
}

// IsZero reports whether no filter is active.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// priceAmountPattern extracts the first currency amount from pricing
// text such as "R$ 99/mês" or "A partir de R$ 1.200".
var priceAmountPattern = regexp.MustCompile(`r\$\s*(\d+(?:\.\d{3})*(?:,\d+)?)`)

// ClassifyPrice buckets a software into a price bracket.
// The structured monthly price is authoritative when present; listings
// that only carry free-form pricing text fall back to parsing it.
func ClassifyPrice(s *types.Software) enum.PriceBracket {
	if s.PriceMonthly != nil {
		return bracketForAmount(*s.PriceMonthly)
	}

	return classifyPricingText(s.Pricing)
}

func bracketForAmount(amount float64) enum.PriceBracket {
	switch {
	case amount <= 0:
		return enum.PriceBracketFree
	case amount <= 100:
		return enum.PriceBracketUpTo100
	case amount <= 300:
		return enum.PriceBracket100To300
	case amount <= 1000:
		return enum.PriceBracket300To1000
	default:
		return enum.PriceBracketAbove1000
	}
}

// classifyPricingText applies the legacy heuristic for rows that predate
// the structured price field. The text is accent-folded first so
// "Grátis" and "gratis" classify the same.
func classifyPricingText(pricing string) enum.PriceBracket {
	text := newNormalizer().Normalize(pricing)
	if text == "" {
		return enum.PriceBracketUnknown
	}

	if strings.Contains(text, "gratis") || strings.Contains(text, "gratuito") {
		return enum.PriceBracketFree
	}

	if match := priceAmountPattern.FindStringSubmatch(text); match != nil {
		raw := strings.ReplaceAll(match[1], ".", "")
		raw = strings.ReplaceAll(raw, ",", ".")

		if amount, err := strconv.ParseFloat(raw, 64); err == nil {
			return bracketForAmount(amount)
		}
	}

	if strings.Contains(text, "acima") {
		return enum.PriceBracketAbove1000
	}

	return enum.PriceBracketUnknown
}

// matches reports whether a software passes every active criterion.
// Softwares missing company-size or problem tags pass those filters
// rather than disappearing from every tagged view.
func (c Criteria) matches(s *types.Software, n *normalizer) bool {
	if c.Category != "" && !hasCategory(s, c.Category) {
		return false
	}

	if c.CompanySize != "" && len(s.CompanySizes) > 0 && !slices.Contains(s.CompanySizes, c.CompanySize) {
		return false
	}

	if c.Problem != "" && len(s.Problems) > 0 && !slices.Contains(s.Problems, c.Problem) {
		return false
	}

	if c.Price != enum.PriceBracketUnknown && ClassifyPrice(s) != c.Price {
		return false
	}

	switch c.Availability {
	case AvailabilityPartnership:
		if !s.PartnershipAvailable {
			return false
		}
	case AvailabilityPurchase:
		if !s.PurchaseAvailable {
			return false
		}
	case AvailabilitySubscription:
		if !s.SubscriptionAvailable {
			return false
		}
	case AvailabilityAll:
	}

	if c.Query != "" && !n.contains(searchableText(s), c.Query) {
		return false
	}

	return true
}

func hasCategory(s *types.Software, slug string) bool {
	for _, category := range s.Categories {
		if category.Slug == slug {
			return true
		}
	}

	return false
}

// searchableText concatenates the fields free-text search runs over.
func searchableText(s *types.Software) string {
	var b strings.Builder

	b.WriteString(s.Name)
	b.WriteByte(' ')
	b.WriteString(s.Company)
	b.WriteByte(' ')
	b.WriteString(s.Description)

	for _, category := range s.Categories {
		b.WriteByte(' ')
		b.WriteString(category.Name)
	}

	return b.String()
}
