package deal

import (
	"fmt"
	"math"
	"time"
)

// Band is the discrete presentation category for a discount percentage,
// ordered cold to hot.
type Band int

const (
	BandCold Band = iota // below 40%
	BandNeutral          // 40-49%
	BandWarm             // 50-59%
	BandVeryWarm         // 60-69%
	BandHot              // 70%+
)

// String returns the band name used in logs and tests.
func (b Band) String() string {
	switch b {
	case BandHot:
		return "hot"
	case BandVeryWarm:
		return "very warm"
	case BandWarm:
		return "warm"
	case BandNeutral:
		return "neutral"
	default:
		return "cold"
	}
}

// DiscountBand partitions a discount percentage into its band. Boundaries
// are inclusive lower bounds: 70 is hot, 69 is very warm, 40 is neutral,
// 39 is cold. The claim-button and price-text color mappings both key off
// this single function so they can never drift apart.
func DiscountBand(percentage int) Band {
	switch {
	case percentage >= 70:
		return BandHot
	case percentage >= 60:
		return BandVeryWarm
	case percentage >= 50:
		return BandWarm
	case percentage >= 40:
		return BandNeutral
	default:
		return BandCold
	}
}

// verifiedNetThreshold is the minimum net score (upvotes - downvotes) for
// the feed's verified badge.
const verifiedNetThreshold = 60

// VerifiedBadge reports whether the deal earns the feed's verified badge.
// This is the derived rule and it overrides the stored Verified flag for
// display: net likes decide, not the vendor's word.
func (d *Deal) VerifiedBadge() bool {
	return d.Upvotes-d.Downvotes >= verifiedNetThreshold
}

// HighlightMessage is the tiered hype line keyed on raw upvotes. It is a
// separate ladder from the badge rule and intentionally ignores downvotes;
// the two can disagree for the same deal.
func (d *Deal) HighlightMessage() string {
	switch {
	case d.Upvotes >= 100:
		return "This is the MOJO!"
	case d.Upvotes >= 80:
		return "Wow, this is a deal!"
	case d.Upvotes >= 60:
		return "Verified Deal"
	default:
		return ""
	}
}

// Eligibility thresholds. A deal must clear every threshold that applies
// to it, so the effective minimum is the max of the applicable ones.
const (
	minDiscountBase        = 35
	minDiscountDamaged     = 45
	minDiscountFoodMonth   = 55 // Food expiring within 30 days
	minDiscountFoodNearExp = 65 // Food expiring within 14 days
)

// Valid reports whether the deal qualifies for the feed at all.
func (d *Deal) Valid(now time.Time) bool {
	if d.Category == CategoryFood && !d.ExpiryDate.IsZero() {
		days := int(math.Ceil(d.ExpiryDate.Sub(now).Hours() / 24))
		if days <= 14 && d.DiscountPercentage < minDiscountFoodNearExp {
			return false
		}
		if days <= 30 && d.DiscountPercentage < minDiscountFoodMonth {
			return false
		}
	}
	if d.IsDamaged && d.DiscountPercentage < minDiscountDamaged {
		return false
	}
	return d.DiscountPercentage >= minDiscountBase
}

// CollectionTimeLimit returns how long the buyer has to collect: 24 hours
// for food, 48 otherwise. The per-deal CollectionTimeLimitHours field is
// reserved and deliberately not consulted here.
func (d *Deal) CollectionTimeLimit() time.Duration {
	if d.Category == CategoryFood {
		return 24 * time.Hour
	}
	return 48 * time.Hour
}

// FormatPrice renders a KSh amount rounded to whole shillings with
// thousands separators, e.g. "Ksh 38,554".
func FormatPrice(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return "Ksh " + sign + s
}
