package repositories

import (
	"context"
	"errors"
	"fmt"

	apperrors "casacalc/internal/errors"
	"casacalc/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrDatabaseOperation = errors.New("database operation failed")

// CalculationRepository stores and retrieves calculation records.
type CalculationRepository interface {
	// Save inserts a new record.
	Save(ctx context.Context, rec *models.CalculationRecord) error

	// FindByID returns the record with id, or errors.ErrCalculationNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*models.CalculationRecord, error)
}

type calculationRepository struct {
	db *gorm.DB
}

// NewCalculationRepository creates a new instance of CalculationRepository
func NewCalculationRepository(db *gorm.DB) CalculationRepository {
	if db == nil {
		panic("db is required")
	}
	return &calculationRepository{db: db}
}

func (r *calculationRepository) Save(ctx context.Context, rec *models.CalculationRecord) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return nil
}

func (r *calculationRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.CalculationRecord, error) {
	var rec models.CalculationRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if err != nil {
		return nil, mapFindError(err)
	}
	return &rec, nil
}

func mapFindError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrCalculationNotFound
	}
	return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
}
