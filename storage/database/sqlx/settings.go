package sqlxrepos

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/hagwon/core/promotion"
)

type settingsRepository struct {
	db *sqlx.DB
}

var _ promotion.MarkerRepository = (*settingsRepository)(nil) // interface compliance check

func NewSettingsRepository(db *sqlx.DB) *settingsRepository {
	return &settingsRepository{db: db}
}

func (repo settingsRepository) ReadPromotionMarker(ctx context.Context) (*promotion.Marker, error) {
	var m promotion.Marker
	err := repo.db.GetContext(ctx, &m, "SELECT key, value, updated_at FROM settings WHERE key = $1", promotion.MarkerKey)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "selecting setting")
	}
	return &m, nil
}

func (repo settingsRepository) WritePromotionMarker(ctx context.Context, year int) error {
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		promotion.MarkerKey, strconv.Itoa(year))
	if err != nil {
		return errors.Wrap(err, "upserting setting")
	}
	return nil
}
