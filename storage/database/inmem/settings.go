package inmemdb

import (
	"context"
	"strconv"
	"time"

	"github.com/trezcool/hagwon/core/promotion"
)

type settingsRepository struct {
	db *settingsTable
}

var _ promotion.MarkerRepository = (*settingsRepository)(nil)

func NewSettingsRepository(db *DB) *settingsRepository {
	return &settingsRepository{db: db.settings}
}

func (repo *settingsRepository) ReadPromotionMarker(context.Context) (*promotion.Marker, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	m, ok := repo.db.table[promotion.MarkerKey]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (repo *settingsRepository) WritePromotionMarker(ctx context.Context, year int) error {
	return repo.SetValue(ctx, promotion.MarkerKey, strconv.Itoa(year))
}

// SetValue writes a raw setting.
func (repo *settingsRepository) SetValue(_ context.Context, key, value string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[key] = promotion.Marker{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return nil
}
