package db

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/ummah/internal/model"
)

func (s *pgStore) SaveZakatRecord(rec model.ZakatRecord) (model.ZakatRecord, error) {
	var out model.ZakatRecord
	const q = `
	INSERT INTO zakat_calculations (user_id, year, total_wealth, zakat_due, is_eligible, notes, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, now())
	RETURNING id, user_id, year, total_wealth, zakat_due, is_eligible, notes, created_at;`
	err := s.db.Get(&out, q, rec.UserID, rec.Year, rec.TotalWealth, rec.ZakatDue, rec.IsEligible, rec.Notes)
	if err != nil {
		log.Error().Err(err).Int("user_id", rec.UserID).Msg("SaveZakatRecord failed")
		return out, fmt.Errorf("save zakat record: %w", err)
	}
	return out, nil
}

func (s *pgStore) ListZakatRecords(userID int, limit int) ([]model.ZakatRecord, error) {
	out := []model.ZakatRecord{}
	const q = `
	SELECT id, user_id, year, total_wealth, zakat_due, is_eligible, notes, created_at
	  FROM zakat_calculations
	 WHERE user_id = $1
	 ORDER BY created_at DESC, id DESC
	 LIMIT $2;`
	if err := s.db.Select(&out, q, userID, limit); err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("ListZakatRecords failed")
		return nil, fmt.Errorf("list zakat records: %w", err)
	}
	return out, nil
}
