package calc

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const (
	NisabGoldGrams   = 85
	NisabSilverGrams = 595
	ZakatRate        = 0.025
	LunarYearDays    = 354

	// MaxAmount caps a single declared amount; MaxPricePerGram caps a metal price.
	MaxAmount       = 1e15
	MaxPricePerGram = 1e9
)

var (
	ErrNegativeAmount = errors.New("amount must be a non-negative number")
	ErrAmountTooLarge = errors.New("amount exceeds the supported maximum")
)

// Metal selects the nisab standard.
type Metal string

const (
	Gold   Metal = "gold"
	Silver Metal = "silver"
)

// MetalPrices are market prices per gram in the reporting currency.
type MetalPrices struct {
	GoldPerGram   float64   `json:"gold"`
	SilverPerGram float64   `json:"silver"`
	UpdatedAt     time.Time `json:"lastUpdated"`
}

type ZakatAssets struct {
	Cash           float64 `json:"cash"`
	Gold           float64 `json:"gold"`
	Silver         float64 `json:"silver"`
	Investments    float64 `json:"investments"`
	BusinessAssets float64 `json:"businessAssets"`
	Receivables    float64 `json:"receivables"`
	Cryptocurrency float64 `json:"cryptocurrency"`
	Other          float64 `json:"other"`
}

type ZakatDeductions struct {
	PersonalDebts     float64 `json:"personalDebts"`
	BusinessDebts     float64 `json:"businessDebts"`
	ImmediateExpenses float64 `json:"immediateExpenses"`
}

// ZakatInput holds declared wealth. Absent categories are zero.
type ZakatInput struct {
	ZakatAssets
	ZakatDeductions
}

type ZakatResult struct {
	TotalWealth float64         `json:"totalWealth"`
	NisabValue  float64         `json:"nisabValue"`
	ZakatDue    float64         `json:"zakatDue"`
	IsEligible  bool            `json:"isEligible"`
	Breakdown   ZakatAssets     `json:"breakdown"`
	Deductions  ZakatDeductions `json:"deductions"`
}

func (a ZakatAssets) fields() []namedAmount {
	return []namedAmount{
		{"cash", a.Cash},
		{"gold", a.Gold},
		{"silver", a.Silver},
		{"investments", a.Investments},
		{"businessAssets", a.BusinessAssets},
		{"receivables", a.Receivables},
		{"cryptocurrency", a.Cryptocurrency},
		{"other", a.Other},
	}
}

func (d ZakatDeductions) fields() []namedAmount {
	return []namedAmount{
		{"personalDebts", d.PersonalDebts},
		{"businessDebts", d.BusinessDebts},
		{"immediateExpenses", d.ImmediateExpenses},
	}
}

type namedAmount struct {
	name  string
	value float64
}

// Validate rejects negative, non-finite or oversized amounts. Malformed input
// is never coerced to zero.
func (in ZakatInput) Validate() error {
	all := append(in.ZakatAssets.fields(), in.ZakatDeductions.fields()...)
	for _, f := range all {
		if f.value < 0 || math.IsNaN(f.value) || math.IsInf(f.value, -1) {
			return fmt.Errorf("%w: %s", ErrNegativeAmount, f.name)
		}
		if f.value > MaxAmount {
			return fmt.Errorf("%w: %s", ErrAmountTooLarge, f.name)
		}
	}
	return nil
}

// Finite reports whether every figure in the result is representable.
func (r ZakatResult) Finite() bool {
	for _, v := range []float64{r.TotalWealth, r.NisabValue, r.ZakatDue} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ValidPrice reports whether a per-gram price is usable for nisab.
func ValidPrice(v float64) bool {
	return v >= 0 && v <= MaxPricePerGram && !math.IsNaN(v)
}

// NisabValue is the wealth threshold under the given metal standard.
func NisabValue(standard Metal, prices MetalPrices) float64 {
	return nisab(standard, prices).InexactFloat64()
}

func nisab(standard Metal, prices MetalPrices) decimal.Decimal {
	if standard == Silver {
		return decimal.NewFromInt(NisabSilverGrams).Mul(decimal.NewFromFloat(prices.SilverPerGram))
	}
	return decimal.NewFromInt(NisabGoldGrams).Mul(decimal.NewFromFloat(prices.GoldPerGram))
}

func sum(amounts []namedAmount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a.value))
	}
	return total
}

// Zakat computes eligibility and the amount due against the gold nisab.
// Input is assumed to have passed Validate.
func Zakat(in ZakatInput, prices MetalPrices) ZakatResult {
	net := sum(in.ZakatAssets.fields()).Sub(sum(in.ZakatDeductions.fields()))
	threshold := nisab(Gold, prices)

	eligible := net.GreaterThanOrEqual(threshold)
	due := decimal.Zero
	if eligible {
		due = net.Mul(decimal.NewFromFloat(ZakatRate))
	}

	return ZakatResult{
		TotalWealth: net.InexactFloat64(),
		NisabValue:  threshold.InexactFloat64(),
		ZakatDue:    due.InexactFloat64(),
		IsEligible:  eligible,
		Breakdown:   in.ZakatAssets,
		Deductions:  in.ZakatDeductions,
	}
}
