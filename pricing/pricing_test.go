package pricing

import (
	"math"
	"testing"

	"veyra/models"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBasePlusPerPerson(t *testing.T) {
	rules := models.PricingRules{BasePrice: 5000, PerPersonRate: 100}

	b := Calculate(50, 4, "", models.VenueProfile{}, rules)

	assert.Equal(t, 5000.0, b.BasePrice)
	assert.Equal(t, 5000.0, b.PerPersonCost)
	assert.Equal(t, 10000.0, b.TotalBeforeFee)
	assert.Equal(t, 1200.0, b.PlatformFee)
	assert.Equal(t, 11200.0, b.TotalPrice)
}

func TestCalculatePackageWins(t *testing.T) {
	rules := models.PricingRules{
		BasePrice: 9999,
		Packages: []models.PricingPackage{
			{Name: "Deluxe", Price: 450, PerPerson: true},
			{Name: "Flat", Price: 8000},
		},
	}

	tests := []struct {
		name        string
		pkg         string
		guests      int
		wantPreFee  float64
		wantPackage string
	}{
		{"per-person package multiplies by guests", "deluxe", 20, 9000, "Deluxe"},
		{"flat package ignores guest count", "Flat", 200, 8000, "Flat"},
		{"unknown package falls through to base price", "gold", 10, 9999, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Calculate(tt.guests, 4, tt.pkg, models.VenueProfile{}, rules)
			assert.Equal(t, tt.wantPreFee, b.TotalBeforeFee)
			assert.Equal(t, tt.wantPackage, b.PackageName)
		})
	}
}

func TestCalculateBracketFallback(t *testing.T) {
	venue := models.VenueProfile{
		PriceHourly:  500,
		PriceHalfDay: 2200,
		PriceEvening: 3000,
		PriceFullDay: 4500,
	}

	tests := []struct {
		name  string
		hours float64
		want  float64
	}{
		{"short booking billed hourly", 3, 1500},
		{"five hours uses half-day", 5, 2200},
		{"six hours uses evening", 6, 3000},
		{"long booking uses full-day", 10, 4500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Calculate(10, tt.hours, "", venue, models.PricingRules{})
			assert.Equal(t, tt.want, b.TotalBeforeFee)
		})
	}
}

func TestCalculateBracketFinalFallbacks(t *testing.T) {
	// No hourly rate: a 3h booking falls through to evening, then half-day.
	b := Calculate(10, 3, "", models.VenueProfile{PriceEvening: 3000}, models.PricingRules{})
	assert.Equal(t, 3000.0, b.TotalBeforeFee)

	b = Calculate(10, 3, "", models.VenueProfile{PriceHalfDay: 2200}, models.PricingRules{})
	assert.Equal(t, 2200.0, b.TotalBeforeFee)

	// Nothing configured anywhere resolves to zero, not an error.
	b = Calculate(10, 3, "", models.VenueProfile{}, models.PricingRules{})
	assert.Equal(t, 0.0, b.TotalBeforeFee)
	assert.Equal(t, 0.0, b.TotalPrice)
}

func TestCalculateMinimumSpendClamp(t *testing.T) {
	rules := models.PricingRules{BasePrice: 1000, MinimumSpend: 5000}

	b := Calculate(2, 4, "", models.VenueProfile{}, rules)

	assert.Equal(t, 5000.0, b.TotalBeforeFee)
	assert.Equal(t, 600.0, b.PlatformFee)
	assert.Equal(t, 5600.0, b.TotalPrice)
}

func TestFeeInvariant(t *testing.T) {
	venue := models.VenueProfile{PriceHourly: 375, PriceFullDay: 7999}
	rules := models.PricingRules{
		MinimumSpend: 1234,
		Packages:     []models.PricingPackage{{Name: "Mingle", Price: 99.5, PerPerson: true}},
	}

	for _, guests := range []int{1, 7, 33, 120} {
		for _, hours := range []float64{2, 4.5, 8} {
			for _, pkg := range []string{"", "mingle"} {
				b := Calculate(guests, hours, pkg, venue, rules)
				assert.Equal(t, b.TotalBeforeFee+b.PlatformFee, b.TotalPrice)
				assert.Equal(t, math.Round(b.TotalBeforeFee*PlatformFeeRate), b.PlatformFee)
				assert.GreaterOrEqual(t, b.TotalBeforeFee, rules.MinimumSpend)
			}
		}
	}
}
