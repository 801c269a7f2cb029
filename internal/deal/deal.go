// Package deal defines the deal record and the presentation rules
// derived from it.
package deal

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a deal lookup misses. Callers treat it as a
// normal branch (render a "deal not found" state), not a failure.
var ErrNotFound = errors.New("deal not found")

// Category of a deal. Free-form in storage; Food carries special
// eligibility and collection rules.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryFood        Category = "Food"
	CategoryWearables   Category = "Wearables"
	CategoryAudio       Category = "Audio"
	CategoryGroceries   Category = "Groceries"
)

// FallbackImage is substituted at render time when a deal carries no images.
const FallbackImage = "placeholder://deal-image-not-available"

// Deal is a time-limited discounted offer. Source fields are immutable for
// the deal's lifetime; the vote/watch counters are mutated upstream and
// only read here.
type Deal struct {
	ID          string `validate:"required"`
	Title       string `validate:"required"`
	Description string

	// Prices are KSh amounts, converted once at seed time.
	// Invariant: DiscountPrice <= OriginalPrice.
	OriginalPrice float64 `validate:"gt=0"`
	DiscountPrice float64 `validate:"gt=0,ltefield=OriginalPrice"`

	// DiscountPercentage is the stored banding input, 0-100. It is NOT
	// recomputed from the prices; the seed is the source of truth.
	DiscountPercentage int `validate:"gte=0,lte=100"`

	TimeLeftSeconds int `validate:"gte=0"`

	Images []string

	Watching  int `validate:"gte=0"`
	Claimed   int `validate:"gte=0"`
	Upvotes   int `validate:"gte=0"`
	Downvotes int `validate:"gte=0"`

	// Verified is the raw stored flag. The feed badge uses the derived
	// net-score rule instead; see Verified() in rules.go.
	Verified bool

	Inventory int `validate:"gte=0"`

	Category   Category
	ExpiryDate time.Time // zero when the deal has no expiry
	IsDamaged  bool

	CollectionLocation string
	// CollectionTimeLimitHours is carried from the store but reserved:
	// the effective limit comes from CollectionTimeLimit() in rules.go.
	CollectionTimeLimitHours int

	VendorID string
	Terms    string
}

// Normalize substitutes documented defaults for absent optional fields so
// that nothing downstream has to branch on missing values.
func (d *Deal) Normalize() {
	if d.Watching < 0 {
		d.Watching = 0
	}
	if d.Claimed < 0 {
		d.Claimed = 0
	}
	if d.Upvotes < 0 {
		d.Upvotes = 0
	}
	if d.Downvotes < 0 {
		d.Downvotes = 0
	}
	if d.Inventory < 0 {
		d.Inventory = 0
	}
	if d.DiscountPercentage < 0 {
		d.DiscountPercentage = 0
	}
	if d.TimeLeftSeconds < 0 {
		d.TimeLeftSeconds = 0
	}
}

// ImageAt returns the image reference at index i, or the fallback
// placeholder when the deal has no images. The index wraps so the card's
// left/right navigation never runs off the end.
func (d *Deal) ImageAt(i int) string {
	if len(d.Images) == 0 {
		return FallbackImage
	}
	i %= len(d.Images)
	if i < 0 {
		i += len(d.Images)
	}
	return d.Images[i]
}
