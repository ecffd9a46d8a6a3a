package domain

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/mmcloughlin/geohash"
)

const fingerprintGeohashPrecision = 5

// normalizeAreaToBucket сводит площадь к номеру корзины, чтобы близкие
// значения давали одинаковый отпечаток.
func normalizeAreaToBucket(area *float64, bucketSize float64) string {
	if area == nil {
		return "null"
	}
	if bucketSize <= 0 {
		bucketSize = 1.0
	}
	return fmt.Sprintf("%d", int(*area/bucketSize))
}

// BuildAdFingerprint строит стабильный отпечаток объявления из его ключевых
// полей: усеченный geohash координат, тип земли и корзина площади.
// Используется для предупреждения о повторной отправке того же объявления.
func BuildAdFingerprint(lat, lng float64, landType string, area *float64) string {
	geohsh := geohash.Encode(lat, lng)

	parts := []string{
		geohsh[:fingerprintGeohashPrecision],
		strings.ToLower(strings.TrimSpace(landType)),
		normalizeAreaToBucket(area, 100.0),
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%x", sum)
}
