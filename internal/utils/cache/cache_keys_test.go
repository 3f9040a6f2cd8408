package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateKey(t *testing.T) {
	assert.Equal(t, "rates:base:EUR", GenerateKey(EntityRates, KeyBase, "EUR"))
	assert.Equal(t, "rates:base:USD", GenerateKey(EntityRates, KeyBase, "USD"))
}
