package cache

import "fmt"

type EntityType string

const EntityRates EntityType = "rates"

type KeyType string

const KeyBase KeyType = "base"

// GenerateKey creates a standardized cache key
func GenerateKey(entity EntityType, keyType KeyType, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entity, keyType, value)
}
