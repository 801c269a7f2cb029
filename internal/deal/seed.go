package deal

import "time"

// usdToKsh is the static conversion rate applied once at seed construction.
// Prices are stored and displayed in KSh; no further conversion happens.
const usdToKsh = 128.5

// Seed returns the launch catalogue. In production the store is populated
// by vendor submissions; the seed stands in until then and doubles as
// fixture data for the UI.
func Seed(now time.Time) []Deal {
	deals := []Deal{
		{
			ID:                 "1",
			Title:              "Premium Wireless Noise-Cancelling Headphones",
			Description:        "Experience crystal-clear audio with these premium wireless headphones featuring active noise cancellation and 30-hour battery life.",
			OriginalPrice:      299.99 * usdToKsh,
			DiscountPrice:      89.99 * usdToKsh,
			DiscountPercentage: 70,
			TimeLeftSeconds:    263,
			Images:             []string{"mockImages/photo-1505740420928-5e560c06d30e.avif"},
			Watching:           1243,
			Claimed:            486,
			Upvotes:            89,
			Downvotes:          12,
			Verified:           true,
			Inventory:          142,
			Category:           CategoryAudio,
			CollectionLocation: "Westlands, Nairobi",

			CollectionTimeLimitHours: 48,
		},
		{
			ID:                 "2",
			Title:              "Smart Fitness Watch with Heart Rate Monitor",
			Description:        "Track your fitness goals with this advanced smartwatch featuring heart rate monitoring, GPS, and water-resistance up to 50m.",
			OriginalPrice:      199.99 * usdToKsh,
			DiscountPrice:      79.99 * usdToKsh,
			DiscountPercentage: 60,
			TimeLeftSeconds:    541,
			Images:             []string{"mockImages/photo-1523275335684-37898b6baf30.avif"},
			Watching:           895,
			Claimed:            327,
			Upvotes:            62,
			Downvotes:          8,
			Verified:           true,
			Inventory:          87,
			Category:           CategoryWearables,
			CollectionLocation: "Kilimani, Nairobi",

			CollectionTimeLimitHours: 48,
		},
		{
			ID:                 "3",
			Title:              "Ultra HD 4K Smart TV - 55\"",
			Description:        "Transform your home entertainment with this 55\" 4K smart TV featuring HDR, built-in streaming apps, and voice control.",
			OriginalPrice:      799.99 * usdToKsh,
			DiscountPrice:      349.99 * usdToKsh,
			DiscountPercentage: 56,
			TimeLeftSeconds:    1249,
			Images:             []string{"mockImages/photo-1678874941590-c5025f1b24a5.avif"},
			Watching:           2134,
			Claimed:            952,
			Upvotes:            145,
			Downvotes:          23,
			Verified:           true,
			Inventory:          36,
			Category:           CategoryElectronics,
			CollectionLocation: "Lavington, Nairobi",

			CollectionTimeLimitHours: 48,
		},
		{
			ID:                 "4",
			Title:              "Professional Espresso Coffee Machine",
			Description:        "Brew barista-quality coffee at home with this professional-grade espresso machine with milk frother and customizable settings.",
			OriginalPrice:      499.99 * usdToKsh,
			DiscountPrice:      279.99 * usdToKsh,
			DiscountPercentage: 44,
			TimeLeftSeconds:    3672,
			Images:             []string{"mockImages/photo-1461988279488-1dac181a78f9.avif"},
			Watching:           754,
			Claimed:            198,
			Upvotes:            57,
			Downvotes:          14,
			Verified:           false,
			Inventory:          62,
			Category:           CategoryElectronics,
			CollectionLocation: "Karen, Nairobi",

			CollectionTimeLimitHours: 48,
		},
		{
			ID:                 "5",
			Title:              "Waterproof Bluetooth Portable Speaker",
			Description:        "Take your music anywhere with this waterproof portable speaker featuring 24-hour battery life and deep bass performance.",
			OriginalPrice:      129.99 * usdToKsh,
			DiscountPrice:      49.99 * usdToKsh,
			DiscountPercentage: 62,
			TimeLeftSeconds:    892,
			Images:             []string{"mockImages/photo-1608043152269-423dbba4e7e1.avif"},
			Watching:           1876,
			Claimed:            693,
			Upvotes:            104,
			Downvotes:          17,
			Verified:           true,
			Inventory:          95,
			Category:           CategoryAudio,
			CollectionLocation: "Westlands, Nairobi",

			CollectionTimeLimitHours: 48,
		},
		{
			ID:                 "6",
			Title:              "Fresh Fruits Combo Pack - Limited Time Offer",
			Description:        "A selection of fresh seasonal fruits including mangoes, pineapples, and passion fruits. Perfect for a healthy snack or breakfast.",
			OriginalPrice:      15.99 * usdToKsh,
			DiscountPrice:      6.99 * usdToKsh,
			DiscountPercentage: 56,
			TimeLeftSeconds:    178,
			Images:             []string{"mockImages/photo-1619566636858-adf3ef46400b.avif"},
			Watching:           437,
			Claimed:            156,
			Upvotes:            73,
			Downvotes:          5,
			Verified:           true,
			Inventory:          25,
			Category:           CategoryFood,
			ExpiryDate:         now.Add(4 * 24 * time.Hour),
			CollectionLocation: "City Market, Nairobi",

			CollectionTimeLimitHours: 24,
		},
	}

	for i := range deals {
		deals[i].Normalize()
	}
	return deals
}
