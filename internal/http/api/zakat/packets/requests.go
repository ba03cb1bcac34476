package packets

import "github.com/Nixie-Tech-LLC/ummah/internal/calc"

// body for /zakat/calculate; absent categories count as zero
type CalculateRequest struct {
	Cash           float64 `json:"cash"           binding:"min=0,max=1e15"`
	Gold           float64 `json:"gold"           binding:"min=0,max=1e15"`
	Silver         float64 `json:"silver"         binding:"min=0,max=1e15"`
	Investments    float64 `json:"investments"    binding:"min=0,max=1e15"`
	BusinessAssets float64 `json:"businessAssets" binding:"min=0,max=1e15"`
	Receivables    float64 `json:"receivables"    binding:"min=0,max=1e15"`
	Cryptocurrency float64 `json:"cryptocurrency" binding:"min=0,max=1e15"`
	Other          float64 `json:"other"          binding:"min=0,max=1e15"`

	PersonalDebts     float64 `json:"personalDebts"     binding:"min=0,max=1e15"`
	BusinessDebts     float64 `json:"businessDebts"     binding:"min=0,max=1e15"`
	ImmediateExpenses float64 `json:"immediateExpenses" binding:"min=0,max=1e15"`
}

func (r CalculateRequest) Input() calc.ZakatInput {
	return calc.ZakatInput{
		ZakatAssets: calc.ZakatAssets{
			Cash:           r.Cash,
			Gold:           r.Gold,
			Silver:         r.Silver,
			Investments:    r.Investments,
			BusinessAssets: r.BusinessAssets,
			Receivables:    r.Receivables,
			Cryptocurrency: r.Cryptocurrency,
			Other:          r.Other,
		},
		ZakatDeductions: calc.ZakatDeductions{
			PersonalDebts:     r.PersonalDebts,
			BusinessDebts:     r.BusinessDebts,
			ImmediateExpenses: r.ImmediateExpenses,
		},
	}
}

type SavedCalculation struct {
	TotalWealth float64 `json:"totalWealth" binding:"min=-1e16,max=1e16"`
	ZakatDue    float64 `json:"zakatDue"    binding:"min=0,max=1e15"`
	IsEligible  bool    `json:"isEligible"`
}

type SaveCalculationRequest struct {
	Calculation *SavedCalculation `json:"calculation" binding:"required"`
	Year        int               `json:"year"        binding:"required,min=1400,max=2100"`
	Notes       string            `json:"notes"       binding:"max=500"`
}

type HistoryQuery struct {
	Limit int `form:"limit,default=10" binding:"min=1,max=100"`
}

type UpdatePricesRequest struct {
	Gold   *float64 `json:"gold"   binding:"required,gt=0,max=1e9"`
	Silver *float64 `json:"silver" binding:"required,gt=0,max=1e9"`
}
