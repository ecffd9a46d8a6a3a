package rest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	price := 1250000.0
	assert.Equal(t, "1,250,000 SAR", FormatPrice(&price))

	fractional := 1234.5
	assert.Equal(t, "1,234.50 SAR", FormatPrice(&fractional))

	assert.Equal(t, "—", FormatPrice(nil))
}

func TestFormatArea(t *testing.T) {
	area := 6000.0
	assert.Equal(t, "6,000 м²", FormatArea(&area))

	assert.Equal(t, "—", FormatArea(nil))
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "30.08.2026", FormatDate(ts))

	assert.Equal(t, "", FormatDate(time.Time{}))
}

func TestStatusBadgeClass(t *testing.T) {
	assert.Equal(t, "badge-success", StatusBadgeClass("active"))
	assert.Equal(t, "badge-warning", StatusBadgeClass("pending"))
	assert.Equal(t, "badge-secondary", StatusBadgeClass("sold"))
	assert.Equal(t, "badge-danger", StatusBadgeClass("rejected"))
	assert.Equal(t, "badge-neutral", StatusBadgeClass("whatever"))
}
