package repositories

import (
	"errors"
	"testing"

	"casacalc/internal/config"
	apperrors "casacalc/internal/errors"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapFindError(t *testing.T) {
	err := mapFindError(gorm.ErrRecordNotFound)
	assert.ErrorIs(t, err, apperrors.ErrCalculationNotFound)

	err = mapFindError(errors.New("connection reset"))
	assert.ErrorIs(t, err, ErrDatabaseOperation)
	assert.NotErrorIs(t, err, apperrors.ErrCalculationNotFound)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestDSN(t *testing.T) {
	cfg := config.DBConfig{
		Host:     "db",
		Port:     "5433",
		User:     "calc",
		Password: "secret",
		Name:     "casacalc",
		SSLMode:  "require",
	}
	assert.Equal(t, "host=db user=calc password=secret dbname=casacalc port=5433 sslmode=require", DSN(cfg))
}

func TestNewCalculationRepository_RequiresDB(t *testing.T) {
	assert.Panics(t, func() { NewCalculationRepository(nil) })
}
