package attachments

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"marketplace-client/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makePNG рисует маленькое тестовое изображение.
func makePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestChecker_Check(t *testing.T) {
	ctx := context.Background()
	checker := NewChecker()

	t.Run("png image gets hash and thumbnail", func(t *testing.T) {
		data := makePNG(t, 64, 64, color.RGBA{R: 200, A: 255})

		att, err := checker.Check(ctx, "plot.png", data)

		require.NoError(t, err)
		assert.Equal(t, "image/png", att.MIMEType)
		assert.Equal(t, int64(len(data)), att.Size)
		assert.NotEmpty(t, att.Hash)
		assert.NotEmpty(t, att.Thumbnail)
	})

	t.Run("identical images share a hash", func(t *testing.T) {
		a, err := checker.Check(ctx, "a.png", makePNG(t, 32, 32, color.RGBA{G: 120, A: 255}))
		require.NoError(t, err)
		b, err := checker.Check(ctx, "b.png", makePNG(t, 32, 32, color.RGBA{G: 120, A: 255}))
		require.NoError(t, err)

		assert.Equal(t, a.Hash, b.Hash)
	})

	t.Run("empty file is rejected", func(t *testing.T) {
		_, err := checker.Check(ctx, "empty.png", nil)

		var verrs domain.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "attachments", verrs[0].Field)
	})

	t.Run("disallowed type is rejected", func(t *testing.T) {
		// ZIP-архив по сигнатуре
		data := append([]byte("PK\x03\x04"), make([]byte, 64)...)

		_, err := checker.Check(ctx, "archive.zip", data)

		var verrs domain.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs[0].Message, "not allowed")
	})

	t.Run("pdf passes without hash", func(t *testing.T) {
		data := append([]byte("%PDF-1.4\n"), make([]byte, 64)...)

		att, err := checker.Check(ctx, "deed.pdf", data)

		require.NoError(t, err)
		assert.Equal(t, "application/pdf", att.MIMEType)
		assert.Empty(t, att.Hash)
		assert.Empty(t, att.Thumbnail)
	})

	t.Run("oversized image is rejected", func(t *testing.T) {
		// Валидный PNG-заголовок, дальше мусор нужного объема
		header := makePNG(t, 1, 1, color.White)
		data := append(header, make([]byte, maxImageSize)...)

		_, err := checker.Check(ctx, "huge.png", data)

		var verrs domain.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs[0].Message, "5MB")
	})
}
