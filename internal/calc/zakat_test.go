package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPrices = MetalPrices{GoldPerGram: 65.50, SilverPerGram: 0.85}

func TestZakat_AllZero(t *testing.T) {
	res := Zakat(ZakatInput{}, testPrices)
	assert.False(t, res.IsEligible)
	assert.Equal(t, 0.0, res.ZakatDue)
	assert.Equal(t, 0.0, res.TotalWealth)
}

func TestZakat_CashAboveNisab(t *testing.T) {
	in := ZakatInput{ZakatAssets: ZakatAssets{Cash: 10000}}
	res := Zakat(in, testPrices)

	assert.Equal(t, 5567.50, res.NisabValue)
	assert.Equal(t, 10000.0, res.TotalWealth)
	assert.True(t, res.IsEligible)
	assert.Equal(t, 250.0, res.ZakatDue)
	assert.Equal(t, 10000.0, res.Breakdown.Cash)
}

func TestZakat_NisabBoundaryIsInclusive(t *testing.T) {
	in := ZakatInput{ZakatAssets: ZakatAssets{Cash: 5000, Gold: 567.50}}
	res := Zakat(in, testPrices)
	assert.Equal(t, res.NisabValue, res.TotalWealth)
	assert.True(t, res.IsEligible)
	assert.InDelta(t, 139.1875, res.ZakatDue, 1e-9)

	in.Cash = 4999.99
	res = Zakat(in, testPrices)
	assert.False(t, res.IsEligible)
	assert.Equal(t, 0.0, res.ZakatDue)
}

func TestZakat_DeductionsReduceWealth(t *testing.T) {
	in := ZakatInput{
		ZakatAssets: ZakatAssets{
			Cash:           8000,
			Investments:    3000,
			Cryptocurrency: 1000,
		},
		ZakatDeductions: ZakatDeductions{
			PersonalDebts:     1500,
			BusinessDebts:     300,
			ImmediateExpenses: 200,
		},
	}
	res := Zakat(in, testPrices)
	assert.Equal(t, 10000.0, res.TotalWealth)
	assert.Equal(t, 250.0, res.ZakatDue)
	assert.Equal(t, 1500.0, res.Deductions.PersonalDebts)
}

func TestZakat_DebtsAboveAssets(t *testing.T) {
	in := ZakatInput{
		ZakatAssets:     ZakatAssets{Cash: 1000},
		ZakatDeductions: ZakatDeductions{PersonalDebts: 3000},
	}
	res := Zakat(in, testPrices)
	assert.Equal(t, -2000.0, res.TotalWealth)
	assert.False(t, res.IsEligible)
	assert.Equal(t, 0.0, res.ZakatDue)
}

func TestZakatInput_Validate(t *testing.T) {
	require.NoError(t, ZakatInput{}.Validate())
	require.NoError(t, ZakatInput{ZakatAssets: ZakatAssets{Cash: 1}}.Validate())

	err := ZakatInput{ZakatAssets: ZakatAssets{Receivables: -1}}.Validate()
	assert.ErrorIs(t, err, ErrNegativeAmount)
	assert.Contains(t, err.Error(), "receivables")

	err = ZakatInput{ZakatDeductions: ZakatDeductions{BusinessDebts: -0.01}}.Validate()
	assert.ErrorIs(t, err, ErrNegativeAmount)
	assert.Contains(t, err.Error(), "businessDebts")

	require.NoError(t, ZakatInput{ZakatAssets: ZakatAssets{Cash: MaxAmount}}.Validate())
	err = ZakatInput{ZakatAssets: ZakatAssets{Gold: 1e308}}.Validate()
	assert.ErrorIs(t, err, ErrAmountTooLarge)
	err = ZakatInput{ZakatAssets: ZakatAssets{Cash: math.Inf(1)}}.Validate()
	assert.ErrorIs(t, err, ErrAmountTooLarge)
}

func TestZakatResult_Finite(t *testing.T) {
	prices := MetalPrices{GoldPerGram: 65.50}
	assert.True(t, Zakat(ZakatInput{ZakatAssets: ZakatAssets{Cash: MaxAmount, Gold: MaxAmount}}, prices).Finite())

	huge := ZakatInput{ZakatAssets: ZakatAssets{Cash: 1e308, Gold: 1e308}}
	assert.False(t, Zakat(huge, prices).Finite())
}

func TestNisabValue(t *testing.T) {
	assert.Equal(t, 5567.50, NisabValue(Gold, testPrices))
	assert.Equal(t, 505.75, NisabValue(Silver, testPrices))
}
