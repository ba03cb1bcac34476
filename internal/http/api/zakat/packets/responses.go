package packets

import (
	"time"

	"github.com/Nixie-Tech-LLC/ummah/internal/calc"
)

type NisabStandard struct {
	Grams        int     `json:"grams"`
	Value        float64 `json:"value"`
	PricePerGram float64 `json:"pricePerGram"`
}

type NisabInfo struct {
	GoldNisab   NisabStandard `json:"goldNisab"`
	SilverNisab NisabStandard `json:"silverNisab"`
}

type CalculateResponse struct {
	Message     string           `json:"message"`
	Calculation calc.ZakatResult `json:"calculation"`
	NisabInfo   NisabInfo        `json:"nisabInfo"`
	ZakatRate   float64          `json:"zakatRate"`
	LastUpdated time.Time        `json:"lastUpdated"`
}

type NisabStandards struct {
	Gold        NisabStandard `json:"gold"`
	Silver      NisabStandard `json:"silver"`
	Recommended calc.Metal    `json:"recommended"`
}

type NisabResponse struct {
	Nisab         NisabStandards `json:"nisab"`
	ZakatRate     float64        `json:"zakatRate"`
	LunarYearDays int            `json:"lunarYearDays"`
	LastUpdated   time.Time      `json:"lastUpdated"`
}

type ZakatRecordResponse struct {
	ID          int       `json:"id"`
	Year        int       `json:"year"`
	TotalWealth float64   `json:"totalWealth"`
	ZakatDue    float64   `json:"zakatDue"`
	IsEligible  bool      `json:"isEligible"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
}

type HistoryResponse struct {
	History           []ZakatRecordResponse `json:"history"`
	TotalCalculations int                   `json:"totalCalculations"`
}
