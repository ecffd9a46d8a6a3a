package usecase

import (
	"context"
	"fmt"
	"testing"

	"marketplace-client/internal/contracts"
	"marketplace-client/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthroughChecker принимает любой файл как изображение с заданным хэшем.
type passthroughChecker struct {
	hash string
}

func (c *passthroughChecker) Check(ctx context.Context, fileName string, data []byte) (domain.Attachment, error) {
	return domain.Attachment{
		FileName: fileName,
		MIMEType: "image/jpeg",
		Size:     int64(len(data)),
		Hash:     c.hash,
		Data:     data,
	}, nil
}

func newDraftsFixture(t *testing.T, api *fakeAPI, checker *passthroughChecker) (*ManageDraftsUseCase, *memoryStore) {
	t.Helper()
	store := newMemoryStore()
	if checker == nil {
		checker = &passthroughChecker{}
	}
	uc, err := NewManageDraftsUseCase(api, store, contracts.NewDraftValidator(), checker)
	require.NoError(t, err)
	return uc, store
}

// validLandAdFields - поля, проходящие схему объявления о земле.
func validLandAdFields() map[string]any {
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

func TestManageDrafts_Lifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("create and walk wizard steps", func(t *testing.T) {
		uc, _ := newDraftsFixture(t, &fakeAPI{}, nil)

		draft, err := uc.Create(ctx, domain.DraftLandAd)
		require.NoError(t, err)
		assert.Equal(t, 1, draft.CurrentStep)
		assert.NotEmpty(t, draft.ID)

		draft, err = uc.Advance(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, draft.CurrentStep)

		draft, err = uc.Back(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, draft.CurrentStep)

		// Назад с первого шага - остаемся на месте
		draft, err = uc.Back(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, draft.CurrentStep)
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		uc, _ := newDraftsFixture(t, &fakeAPI{}, nil)
		_, err := uc.Create(ctx, "mystery_form")
		assert.Error(t, err)
	})

	t.Run("advance flags errors only on filled fields", func(t *testing.T) {
		uc, _ := newDraftsFixture(t, &fakeAPI{}, nil)
		draft, err := uc.Create(ctx, domain.DraftLandAd)
		require.NoError(t, err)

		// Площадь ниже минимума - заполненное поле должно ругаться сразу
		_, err = uc.UpdateField(ctx, draft.ID, "total_area", 3000.0)
		require.NoError(t, err)

		_, err = uc.Advance(ctx, draft.ID)
		var verrs domain.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "total_area", verrs[0].Field)
	})

	t.Run("cancel destroys the draft", func(t *testing.T) {
		uc, _ := newDraftsFixture(t, &fakeAPI{}, nil)
		draft, err := uc.Create(ctx, domain.DraftLandRequest)
		require.NoError(t, err)

		require.NoError(t, uc.Cancel(ctx, draft.ID))

		_, err = uc.Get(ctx, draft.ID)
		assert.ErrorIs(t, err, domain.ErrDraftNotFound)
	})
}

func TestManageDrafts_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid draft never reaches the network", func(t *testing.T) {
		api := &fakeAPI{}
		uc, _ := newDraftsFixture(t, api, nil)

		draft, err := uc.Create(ctx, domain.DraftLandAd)
		require.NoError(t, err)
		for field, value := range validLandAdFields() {
			_, err = uc.UpdateField(ctx, draft.ID, field, value)
			require.NoError(t, err)
		}
		// Площадь ниже клиентского минимума
		_, err = uc.UpdateField(ctx, draft.ID, "total_area", 3000.0)
		require.NoError(t, err)

		err = uc.Submit(ctx, draft.ID, false)

		var verrs domain.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, 0, api.callCount())

		// Черновик выжил и может быть исправлен
		_, err = uc.Get(ctx, draft.ID)
		require.NoError(t, err)
	})

	t.Run("valid draft is submitted and destroyed", func(t *testing.T) {
		var submitted *domain.FormDraft
		api := &fakeAPI{
			submitDraft: func(draft *domain.FormDraft) error {
				submitted = draft
				return nil
			},
		}
		uc, _ := newDraftsFixture(t, api, nil)

		draft, err := uc.Create(ctx, domain.DraftLandAd)
		require.NoError(t, err)
		for field, value := range validLandAdFields() {
			_, err = uc.UpdateField(ctx, draft.ID, field, value)
			require.NoError(t, err)
		}

		require.NoError(t, uc.Submit(ctx, draft.ID, false))
		require.NotNil(t, submitted)
		assert.Equal(t, domain.DraftLandAd, submitted.Kind)

		_, err = uc.Get(ctx, draft.ID)
		assert.ErrorIs(t, err, domain.ErrDraftNotFound)
	})

	t.Run("server failure keeps the draft", func(t *testing.T) {
		api := &fakeAPI{
			submitDraft: func(draft *domain.FormDraft) error {
				return fmt.Errorf("server rejected submission")
			},
		}
		uc, _ := newDraftsFixture(t, api, nil)

		draft, err := uc.Create(ctx, domain.DraftLandAd)
		require.NoError(t, err)
		for field, value := range validLandAdFields() {
			_, err = uc.UpdateField(ctx, draft.ID, field, value)
			require.NoError(t, err)
		}

		require.Error(t, uc.Submit(ctx, draft.ID, false))

		_, err = uc.Get(ctx, draft.ID)
		require.NoError(t, err)
	})

	t.Run("repeated land ad is flagged as duplicate until forced", func(t *testing.T) {
		api := &fakeAPI{
			submitDraft: func(draft *domain.FormDraft) error { return nil },
		}
		uc, _ := newDraftsFixture(t, api, nil)

		fields := validLandAdFields()
		fields["latitude"] = 24.7136
		fields["longitude"] = 46.6753

		makeDraft := func() string {
			draft, err := uc.Create(ctx, domain.DraftLandAd)
			require.NoError(t, err)
			for field, value := range fields {
				_, err = uc.UpdateField(ctx, draft.ID, field, value)
				require.NoError(t, err)
			}
			return draft.ID
		}

		require.NoError(t, uc.Submit(ctx, makeDraft(), false))

		// То же место, тот же тип, та же площадь - похоже на повтор
		secondID := makeDraft()
		err := uc.Submit(ctx, secondID, false)
		assert.ErrorIs(t, err, domain.ErrPossibleDuplicate)

		// force=true пропускает предупреждение
		require.NoError(t, uc.Submit(ctx, secondID, true))
	})
}

func TestManageDrafts_Attachments(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate image is rejected", func(t *testing.T) {
		uc, _ := newDraftsFixture(t, &fakeAPI{}, &passthroughChecker{hash: "dhash-1"})

		draft, err := uc.Create(ctx, domain.DraftLandAd)
		require.NoError(t, err)

		_, err = uc.AddAttachment(ctx, draft.ID, "a.jpg", []byte("img-a"))
		require.NoError(t, err)

		_, err = uc.AddAttachment(ctx, draft.ID, "a-copy.jpg", []byte("img-a"))
		var verrs domain.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "attachments", verrs[0].Field)
	})

	t.Run("image limit allows a main photo plus ten extra", func(t *testing.T) {
		uc, _ := newDraftsFixture(t, &fakeAPI{}, nil)

		draft, err := uc.Create(ctx, domain.DraftLandAd)
		require.NoError(t, err)

		for i := 0; i < 11; i++ {
			_, err = uc.AddAttachment(ctx, draft.ID, fmt.Sprintf("photo-%d.jpg", i), []byte{byte(i)})
			require.NoError(t, err, "image %d should fit within the limit", i)
		}

		_, err = uc.AddAttachment(ctx, draft.ID, "one-too-many.jpg", []byte("extra"))
		var verrs domain.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "attachments", verrs[0].Field)
		assert.Contains(t, verrs[0].Message, "too many images")

		current, err := uc.Get(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, 11, current.ImageCount())
		assert.Equal(t, 10, current.AdditionalImageCount())
	})

	t.Run("attachment lands on the draft", func(t *testing.T) {
		uc, _ := newDraftsFixture(t, &fakeAPI{}, nil)

		draft, err := uc.Create(ctx, domain.DraftAuctionAd)
		require.NoError(t, err)

		draft, err = uc.AddAttachment(ctx, draft.ID, "plot.jpg", []byte("payload"))
		require.NoError(t, err)
		require.Len(t, draft.Attachments, 1)
		assert.Equal(t, "plot.jpg", draft.Attachments[0].FileName)
		assert.Equal(t, int64(7), draft.Attachments[0].Size)
	})
}
