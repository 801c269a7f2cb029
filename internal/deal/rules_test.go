package deal

import (
	"testing"
	"time"
)

func TestDiscountBandBoundaries(t *testing.T) {
	cases := []struct {
		pct  int
		want Band
	}{
		{0, BandCold},
		{34, BandCold},
		{39, BandCold},
		{40, BandNeutral},
		{49, BandNeutral},
		{50, BandWarm},
		{59, BandWarm},
		{60, BandVeryWarm},
		{69, BandVeryWarm},
		{70, BandHot},
		{100, BandHot},
	}

	for _, c := range cases {
		if got := DiscountBand(c.pct); got != c.want {
			t.Errorf("DiscountBand(%d) = %v, want %v", c.pct, got, c.want)
		}
	}
}

func TestDiscountBandMonotonic(t *testing.T) {
	prev := DiscountBand(0)
	for pct := 1; pct <= 100; pct++ {
		b := DiscountBand(pct)
		if b < prev {
			t.Fatalf("band decreased at %d%%: %v -> %v", pct, prev, b)
		}
		prev = b
	}
}

func TestVerifiedBadgeUsesNetScore(t *testing.T) {
	d := Deal{Upvotes: 89, Downvotes: 12} // net 77
	if !d.VerifiedBadge() {
		t.Error("net 77 should earn the badge")
	}

	d = Deal{Upvotes: 57, Downvotes: 14} // net 43
	if d.VerifiedBadge() {
		t.Error("net 43 should not earn the badge")
	}

	// Exactly at the threshold counts.
	d = Deal{Upvotes: 60, Downvotes: 0}
	if !d.VerifiedBadge() {
		t.Error("net 60 should earn the badge")
	}

	// The stored flag does not rescue a low net score.
	d = Deal{Upvotes: 10, Verified: true}
	if d.VerifiedBadge() {
		t.Error("stored flag must not override the net-score rule")
	}
}

func TestHighlightMessageLadderIgnoresDownvotes(t *testing.T) {
	// Raw upvotes drive the ladder; a deal can be hyped but unverified.
	d := Deal{Upvotes: 100, Downvotes: 90}
	if msg := d.HighlightMessage(); msg != "This is the MOJO!" {
		t.Errorf("HighlightMessage = %q", msg)
	}
	if d.VerifiedBadge() {
		t.Error("net 10 should not earn the badge even at the top tier")
	}

	for _, c := range []struct {
		upvotes int
		want    string
	}{
		{99, "Wow, this is a deal!"},
		{80, "Wow, this is a deal!"},
		{79, "Verified Deal"},
		{60, "Verified Deal"},
		{59, ""},
	} {
		d := Deal{Upvotes: c.upvotes}
		if got := d.HighlightMessage(); got != c.want {
			t.Errorf("HighlightMessage(upvotes=%d) = %q, want %q", c.upvotes, got, c.want)
		}
	}
}

func TestValidFoodNearExpiry(t *testing.T) {
	now := time.Now()

	d := Deal{
		Category:           CategoryFood,
		ExpiryDate:         now.Add(10 * 24 * time.Hour),
		DiscountPercentage: 60,
	}
	if d.Valid(now) {
		t.Error("food at 60%% expiring in 10 days needs >= 65%%")
	}

	d.DiscountPercentage = 66
	if !d.Valid(now) {
		t.Error("food at 66%% expiring in 10 days should qualify")
	}
}

func TestValidFoodMonthWindow(t *testing.T) {
	now := time.Now()

	d := Deal{
		Category:           CategoryFood,
		ExpiryDate:         now.Add(20 * 24 * time.Hour),
		DiscountPercentage: 50,
	}
	if d.Valid(now) {
		t.Error("food at 50%% expiring in 20 days needs >= 55%%")
	}

	d.DiscountPercentage = 56
	if !d.Valid(now) {
		t.Error("food at 56%% expiring in 20 days should qualify")
	}
}

func TestValidThresholdsCombine(t *testing.T) {
	now := time.Now()

	// Damaged food near expiry must clear the strictest applicable bar.
	d := Deal{
		Category:           CategoryFood,
		ExpiryDate:         now.Add(5 * 24 * time.Hour),
		IsDamaged:          true,
		DiscountPercentage: 50,
	}
	if d.Valid(now) {
		t.Error("damaged near-expiry food at 50%% should fail the 65%% bar")
	}
	d.DiscountPercentage = 65
	if !d.Valid(now) {
		t.Error("65%% clears every applicable threshold")
	}
}

func TestValidBaseline(t *testing.T) {
	now := time.Now()
	d := Deal{DiscountPercentage: 34}
	if d.Valid(now) {
		t.Error("34%% is below the base bar")
	}
	d.DiscountPercentage = 35
	if !d.Valid(now) {
		t.Error("35%% meets the base bar")
	}

	d = Deal{IsDamaged: true, DiscountPercentage: 44}
	if d.Valid(now) {
		t.Error("damaged at 44%% needs >= 45%%")
	}
}

func TestCollectionTimeLimit(t *testing.T) {
	food := Deal{Category: CategoryFood, CollectionTimeLimitHours: 72}
	if got := food.CollectionTimeLimit(); got != 24*time.Hour {
		t.Errorf("food limit = %v, want 24h (override field is reserved)", got)
	}

	other := Deal{Category: CategoryElectronics}
	if got := other.CollectionTimeLimit(); got != 48*time.Hour {
		t.Errorf("non-food limit = %v, want 48h", got)
	}
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "Ksh 0"},
		{899.4, "Ksh 899"},
		{899.5, "Ksh 900"},
		{11563.715, "Ksh 11,564"}, // 89.99 USD seed price
		{1027987.15, "Ksh 1,027,987"},
	}
	for _, c := range cases {
		if got := FormatPrice(c.amount); got != c.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", c.amount, got, c.want)
		}
	}
}

func TestSeedNormalized(t *testing.T) {
	now := time.Now()
	deals := Seed(now)
	if len(deals) == 0 {
		t.Fatal("seed is empty")
	}

	for _, d := range deals {
		if d.DiscountPrice > d.OriginalPrice {
			t.Errorf("deal %s: discount price above original", d.ID)
		}
		if d.TimeLeftSeconds < 0 || d.Watching < 0 || d.Upvotes < 0 {
			t.Errorf("deal %s: negative counter survived Normalize", d.ID)
		}
	}

	// The fruit combo (food, 56%, expiring in 4 days) fails the near-expiry
	// eligibility bar. The seed keeps it anyway: the feed renders the
	// catalogue as stored, eligibility gates vendor submissions.
	fruit := deals[len(deals)-1]
	if fruit.Category != CategoryFood {
		t.Fatalf("expected last seed deal to be food, got %s", fruit.Category)
	}
	if fruit.Valid(now) {
		t.Error("near-expiry food at 56%% should fail eligibility")
	}
}

func TestImageFallback(t *testing.T) {
	d := Deal{}
	if got := d.ImageAt(0); got != FallbackImage {
		t.Errorf("ImageAt on empty images = %q", got)
	}

	d.Images = []string{"a", "b", "c"}
	if got := d.ImageAt(4); got != "b" {
		t.Errorf("ImageAt(4) = %q, want wrap to b", got)
	}
	if got := d.ImageAt(-1); got != "c" {
		t.Errorf("ImageAt(-1) = %q, want wrap to c", got)
	}
}
