package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipment-gateway/feature/shipment/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const insertBatchSize = 200

// GormStore keeps the mirror in a SQL table.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&models.Shipment{})
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) LoadAll(ctx context.Context) ([]models.Shipment, error) {
	var out []models.Shipment
	if err := s.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("load shipments: %w", err)
	}
	return out, nil
}

func (s *GormStore) BulkInsert(ctx context.Context, items []models.Shipment) error {
	if len(items) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).CreateInBatches(items, insertBatchSize).Error
}

func (s *GormStore) Insert(ctx context.Context, item models.Shipment) error {
	return s.db.WithContext(ctx).Create(&item).Error
}

func (s *GormStore) Update(ctx context.Context, item models.Shipment) error {
	return s.db.WithContext(ctx).
		Model(&item).
		Select("*").
		Omit("shipment_id").
		Updates(item).Error
}

func (s *GormStore) Touch(ctx context.Context, keys []string, at time.Time) error {
	if len(keys) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Shipment{}).
		Where("shipment_id IN ?", keys).
		Update("sync_date", at).Error
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).
		Where("shipment_id = ?", key).
		Delete(&models.Shipment{}).Error
}

func (s *GormStore) Get(ctx context.Context, id string) (*models.Shipment, error) {
	var out models.Shipment
	err := s.db.WithContext(ctx).Where("shipment_id = ?", id).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get shipment %s: %w", id, err)
	}
	return &out, nil
}

func (s *GormStore) List(ctx context.Context, req models.ListRequest) ([]models.Shipment, error) {
	req = req.Defaults()
	out := make([]models.Shipment, 0, req.PageSize)
	err := s.filtered(ctx, req.IncludeCancelled).
		Order("created_date DESC").
		Order("shipment_id").
		Offset(req.Offset()).
		Limit(req.PageSize).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	return out, nil
}

func (s *GormStore) Count(ctx context.Context, includeCancelled bool) (int64, error) {
	var n int64
	if err := s.filtered(ctx, includeCancelled).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count shipments: %w", err)
	}
	return n, nil
}

func (s *GormStore) filtered(ctx context.Context, includeCancelled bool) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Shipment{})
	if !includeCancelled {
		q = q.Where("shipment_status <> ?", models.StatusCanceled)
	}
	return q
}

func (s *GormStore) LastSynced(ctx context.Context) (time.Time, error) {
	var latest models.Shipment
	err := s.db.WithContext(ctx).Order("sync_date DESC").Take(&latest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("last sync date: %w", err)
	}
	return latest.SyncDate, nil
}

func (s *GormStore) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	res := s.db.WithContext(ctx).
		Model(&models.Shipment{}).
		Where("shipment_id = ?", id).
		Update("shipment_status", status)
	if res.Error != nil {
		return fmt.Errorf("update status %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		// MySQL reports zero rows when the value did not change.
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *GormStore) Upsert(ctx context.Context, item models.Shipment) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shipment_id"}},
			UpdateAll: true,
		}).
		Create(&item).Error
}
