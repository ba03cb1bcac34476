package endpoints

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/ummah/internal/calc"
	"github.com/Nixie-Tech-LLC/ummah/internal/db"
	"github.com/Nixie-Tech-LLC/ummah/internal/http/api"
	"github.com/Nixie-Tech-LLC/ummah/internal/http/api/zakat/packets"
	"github.com/Nixie-Tech-LLC/ummah/internal/model"
	"github.com/Nixie-Tech-LLC/ummah/internal/notify"
	"github.com/Nixie-Tech-LLC/ummah/internal/prices"
)

// overridden in tests
var now = time.Now

type ZakatController struct {
	store  db.Store
	prices prices.Book
	events notify.Publisher
}

func NewZakatController(store db.Store, book prices.Book, events notify.Publisher) *ZakatController {
	return &ZakatController{store: store, prices: book, events: events}
}

// ZakatPublicModule mounts the calculator and nisab endpoints
func ZakatPublicModule(book prices.Book) api.Module {
	ctl := NewZakatController(nil, book, notify.Nop{})
	return api.ModuleFunc(func(c *api.Controller) {
		c.OPTIONAL_POST("/zakat/calculate", ctl.calculate)
		c.PUBLIC_GET("/zakat/nisab", ctl.getNisab)
		c.PUBLIC_GET("/zakat/prices", ctl.getPrices)
	})
}

// ZakatSessionModule mounts saved calculations and price updates (JWT required)
func ZakatSessionModule(store db.Store, book prices.Book, events notify.Publisher) api.Module {
	ctl := NewZakatController(store, book, events)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/zakat/save-calculation", ctl.saveCalculation)
		c.GET("/zakat/history", ctl.getHistory)
		c.PUT("/zakat/prices", ctl.updatePrices)
	})
}

func (z *ZakatController) currentPrices(ctx *gin.Context) (calc.MetalPrices, *api.APIError) {
	p, err := z.prices.Current(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load metal prices")
		return p, api.Internal("failed to load metal prices")
	}
	return p, nil
}

func nisabInfo(p calc.MetalPrices) packets.NisabInfo {
	return packets.NisabInfo{
		GoldNisab: packets.NisabStandard{
			Grams:        calc.NisabGoldGrams,
			Value:        calc.NisabValue(calc.Gold, p),
			PricePerGram: p.GoldPerGram,
		},
		SilverNisab: packets.NisabStandard{
			Grams:        calc.NisabSilverGrams,
			Value:        calc.NisabValue(calc.Silver, p),
			PricePerGram: p.SilverPerGram,
		},
	}
}

// POST /api/zakat/calculate
func (z *ZakatController) calculate(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CalculateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	input := request.Input()
	if err := input.Validate(); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	p, apiErr := z.currentPrices(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	result := calc.Zakat(input, p)
	if !result.Finite() {
		return nil, &api.APIError{Code: http.StatusUnprocessableEntity, Message: "amounts are too large to calculate"}
	}
	message := "Your wealth is below Nisab threshold. No Zakat is due."
	if result.IsEligible {
		message = fmt.Sprintf("Zakat calculation completed. You owe $%.2f in Zakat.", result.ZakatDue)
	}
	if user != nil {
		log.Debug().Int("user_id", user.ID).Bool("eligible", result.IsEligible).Msg("zakat calculated")
	}

	return packets.CalculateResponse{
		Message:     message,
		Calculation: result,
		NisabInfo:   nisabInfo(p),
		ZakatRate:   calc.ZakatRate,
		LastUpdated: p.UpdatedAt,
	}, nil
}

// GET /api/zakat/nisab
func (z *ZakatController) getNisab(ctx *gin.Context) (any, *api.APIError) {
	p, apiErr := z.currentPrices(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	info := nisabInfo(p)
	return packets.NisabResponse{
		Nisab: packets.NisabStandards{
			Gold:        info.GoldNisab,
			Silver:      info.SilverNisab,
			Recommended: calc.Gold,
		},
		ZakatRate:     calc.ZakatRate,
		LunarYearDays: calc.LunarYearDays,
		LastUpdated:   p.UpdatedAt,
	}, nil
}

// GET /api/zakat/prices
func (z *ZakatController) getPrices(ctx *gin.Context) (any, *api.APIError) {
	p, apiErr := z.currentPrices(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	return p, nil
}

// PUT /api/zakat/prices
func (z *ZakatController) updatePrices(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if !user.IsAdmin {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "admin access required"}
	}

	var request packets.UpdatePricesRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	p := calc.MetalPrices{
		GoldPerGram:   *request.Gold,
		SilverPerGram: *request.Silver,
		UpdatedAt:     now().UTC(),
	}
	if err := z.prices.Update(ctx.Request.Context(), p); err != nil {
		return nil, api.Internal("failed to update prices")
	}

	event := notify.NewPricesUpdated(p.GoldPerGram, p.SilverPerGram, user.ID, p.UpdatedAt)
	if err := z.events.Publish(notify.PricesTopic, event); err != nil {
		log.Warn().Err(err).Msg("failed to publish price update")
	}
	log.Info().Int("user_id", user.ID).Float64("gold", p.GoldPerGram).Float64("silver", p.SilverPerGram).Msg("metal prices updated")

	return p, nil
}

// POST /api/zakat/save-calculation
func (z *ZakatController) saveCalculation(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.SaveCalculationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	rec, err := z.store.SaveZakatRecord(model.ZakatRecord{
		UserID:      user.ID,
		Year:        request.Year,
		TotalWealth: request.Calculation.TotalWealth,
		ZakatDue:    request.Calculation.ZakatDue,
		IsEligible:  request.Calculation.IsEligible,
		Notes:       request.Notes,
	})
	if err != nil {
		return nil, api.Internal("failed to save calculation")
	}

	return gin.H{
		"message":     "Zakat calculation saved successfully",
		"calculation": recordResponse(rec),
	}, nil
}

// GET /api/zakat/history
func (z *ZakatController) getHistory(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var query packets.HistoryQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	records, err := z.store.ListZakatRecords(user.ID, query.Limit)
	if err != nil {
		return nil, api.Internal("failed to get calculation history")
	}

	response := packets.HistoryResponse{History: make([]packets.ZakatRecordResponse, 0, len(records))}
	for _, rec := range records {
		response.History = append(response.History, recordResponse(rec))
	}
	response.TotalCalculations = len(response.History)
	return response, nil
}

func recordResponse(rec model.ZakatRecord) packets.ZakatRecordResponse {
	return packets.ZakatRecordResponse{
		ID:          rec.ID,
		Year:        rec.Year,
		TotalWealth: rec.TotalWealth,
		ZakatDue:    rec.ZakatDue,
		IsEligible:  rec.IsEligible,
		Notes:       rec.Notes,
		CreatedAt:   rec.CreatedAt,
	}
}
