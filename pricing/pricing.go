package pricing

import (
	"math"
	"strings"

	"veyra/models"
)

// PlatformFeeRate is applied on top of every computed total.
const PlatformFeeRate = 0.12

// Breakdown is the result of a price calculation. TotalPrice is always
// TotalBeforeFee + PlatformFee.
type Breakdown struct {
	BasePrice      float64 `json:"basePrice"`
	PerPersonCost  float64 `json:"perPersonCost,omitempty"`
	PackageCost    float64 `json:"packageCost,omitempty"`
	TotalBeforeFee float64 `json:"totalBeforeFee"`
	PlatformFee    float64 `json:"platformFee"`
	TotalPrice     float64 `json:"totalPrice"`
	PackageName    string  `json:"packageName,omitempty"`
}

// Calculate resolves a price for the given booking parameters. Tiers are
// evaluated in order and the first match wins: a named package, then the
// configured base price (plus per-person rate), then the venue's
// duration-bracket rates. The minimum spend clamps the pre-fee total upward.
// Pure; no calendar or store access.
func Calculate(guestCount int, durationHours float64, packageName string, venue models.VenueProfile, rules models.PricingRules) Breakdown {
	var b Breakdown

	if pkg := findPackage(rules.Packages, packageName); pkg != nil {
		b.PackageName = pkg.Name
		b.PackageCost = pkg.Price
		if pkg.PerPerson {
			b.PackageCost = pkg.Price * float64(guestCount)
		}
		b.TotalBeforeFee = b.PackageCost
	} else if rules.BasePrice > 0 {
		b.BasePrice = rules.BasePrice
		if rules.PerPersonRate > 0 {
			b.PerPersonCost = rules.PerPersonRate * float64(guestCount)
		}
		b.TotalBeforeFee = b.BasePrice + b.PerPersonCost
	} else {
		b.BasePrice = bracketPrice(venue, durationHours)
		b.TotalBeforeFee = b.BasePrice
	}

	if rules.MinimumSpend > 0 && b.TotalBeforeFee < rules.MinimumSpend {
		b.TotalBeforeFee = rules.MinimumSpend
	}

	b.PlatformFee = math.Round(b.TotalBeforeFee * PlatformFeeRate)
	b.TotalPrice = b.TotalBeforeFee + b.PlatformFee
	return b
}

func findPackage(packages []models.PricingPackage, name string) *models.PricingPackage {
	if name == "" {
		return nil
	}
	for i, p := range packages {
		if strings.EqualFold(p.Name, name) {
			return &packages[i]
		}
	}
	return nil
}

// bracketPrice picks the venue's fallback rate for a duration. Short
// bookings are billed hourly; longer ones fall through half-day, evening and
// full-day rates, then down whatever rates the venue actually has.
func bracketPrice(v models.VenueProfile, hours float64) float64 {
	switch {
	case hours <= 4 && v.PriceHourly > 0:
		return v.PriceHourly * hours
	case hours <= 5 && v.PriceHalfDay > 0:
		return v.PriceHalfDay
	case hours <= 6 && v.PriceEvening > 0:
		return v.PriceEvening
	case v.PriceFullDay > 0:
		return v.PriceFullDay
	case v.PriceEvening > 0:
		return v.PriceEvening
	case v.PriceHalfDay > 0:
		return v.PriceHalfDay
	case v.PriceHourly > 0:
		return v.PriceHourly * hours
	}
	return 0
}
