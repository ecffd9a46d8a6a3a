package contracts

import (
	"testing"

	"marketplace-client/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLandAd() map[string]any {
	return map[string]any{
		"title":      "أرض سكنية للبيع شمال الرياض",
		"region":     "منطقة الرياض",
		"city":       "الرياض",
		"land_type":  "سكني",
		"purpose":    "بيع",
		"total_area": 6000.0,
		"price":      1250000.0,
		"phone":      "0512345678",
	}
}

func TestDraftValidator_LandAd(t *testing.T) {
	v := NewDraftValidator()

	t.Run("valid payload passes", func(t *testing.T) {
		errs := v.Validate(domain.DraftLandAd, validLandAd())
		assert.Empty(t, errs)
	})

	t.Run("area below minimum is rejected with the field name", func(t *testing.T) {
		fields := validLandAd()
		fields["total_area"] = 3000.0

		errs := v.Validate(domain.DraftLandAd, fields)

		require.NotEmpty(t, errs)
		assert.Equal(t, "total_area", errs[0].Field)
	})

	t.Run("missing required phone is reported", func(t *testing.T) {
		fields := validLandAd()
		delete(fields, "phone")

		errs := v.Validate(domain.DraftLandAd, fields)

		require.NotEmpty(t, errs)
		found := false
		for _, e := range errs {
			if e.Field == "phone" {
				found = true
			}
		}
		assert.True(t, found, "expected a violation attributed to phone, got %v", errs)
	})

	t.Run("phone format is enforced", func(t *testing.T) {
		fields := validLandAd()
		fields["phone"] = "12345"

		errs := v.Validate(domain.DraftLandAd, fields)

		require.NotEmpty(t, errs)
		assert.Equal(t, "phone", errs[0].Field)
	})

	t.Run("unknown land type is rejected", func(t *testing.T) {
		fields := validLandAd()
		fields["land_type"] = "космический"

		errs := v.Validate(domain.DraftLandAd, fields)
		require.NotEmpty(t, errs)
		assert.Equal(t, "land_type", errs[0].Field)
	})

	t.Run("unknown form kind is an error", func(t *testing.T) {
		errs := v.Validate("mystery_form", validLandAd())
		assert.NotEmpty(t, errs)
	})
}

func TestDraftValidator_OtherKinds(t *testing.T) {
	v := NewDraftValidator()

	// Остальные схемы скомпилированы и отвечают на пустой payload
	for _, kind := range []domain.DraftKind{
		domain.DraftAuctionAd,
		domain.DraftLandRequest,
		domain.DraftMarketingRequest,
	} {
		errs := v.Validate(kind, map[string]any{})
		assert.NotEmpty(t, errs, "kind %s should require fields", kind)
	}
}
