package attachments

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"

	"github.com/corona10/goimagehash"
	"github.com/nfnt/resize"
)

const (
	// maxImageSize - клиентский предел размера изображения (5MB).
	maxImageSize = 5 << 20

	thumbnailMaxSide = 320
)

// allowedMIMETypes - разрешенные типы вложений. Проверка совещательная:
// сервер обязан перевалидировать.
var allowedMIMETypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// Checker выполняет клиентские проверки файлов перед отправкой формы.
// Для изображений дополнительно считается перцептивный dHash (отсечение
// дубликатов внутри черновика) и миниатюра для предпросмотра.
type Checker struct{}

func NewChecker() *Checker {
	return &Checker{}
}

func (c *Checker) Check(ctx context.Context, fileName string, data []byte) (domain.Attachment, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	checkLogger := logger.WithFields(port.Fields{
		"component": "AttachmentChecker",
		"file_name": fileName,
	})

	if len(data) == 0 {
		return domain.Attachment{}, domain.ValidationErrors{{
			Field:   "attachments",
			Message: "file is empty",
		}}
	}

	// Тип определяется по содержимому, а не по расширению.
	mimeType := http.DetectContentType(data)
	if idx := bytes.IndexByte([]byte(mimeType), ';'); idx > 0 {
		mimeType = mimeType[:idx]
	}
	if !allowedMIMETypes[mimeType] {
		checkLogger.Warn("Attachment rejected: MIME type not allowed", port.Fields{"mime_type": mimeType})
		return domain.Attachment{}, domain.ValidationErrors{{
			Field:   "attachments",
			Message: fmt.Sprintf("file type %s is not allowed", mimeType),
		}}
	}

	att := domain.Attachment{
		FileName: fileName,
		MIMEType: mimeType,
		Size:     int64(len(data)),
		Data:     data,
	}

	if isImage(mimeType) {
		if att.Size > maxImageSize {
			checkLogger.Warn("Attachment rejected: image too large", port.Fields{"size": att.Size})
			return domain.Attachment{}, domain.ValidationErrors{{
				Field:   "attachments",
				Message: "image exceeds the 5MB limit",
			}}
		}

		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			// webp декодировать нечем - пропускаем хэш и миниатюру,
			// сам файл при этом принимается.
			checkLogger.Debug("Image not decodable, skipping hash and thumbnail", port.Fields{"error": err.Error()})
			return att, nil
		}

		if hash, err := goimagehash.DifferenceHash(img); err == nil {
			att.Hash = hash.ToString()
		}

		thumb := resize.Thumbnail(thumbnailMaxSide, thumbnailMaxSide, img, resize.Lanczos3)
		var thumbBuf bytes.Buffer
		if err := jpeg.Encode(&thumbBuf, thumb, &jpeg.Options{Quality: 80}); err == nil {
			att.Thumbnail = thumbBuf.Bytes()
		}
	}

	checkLogger.Debug("Attachment passed client-side checks", port.Fields{
		"mime_type": att.MIMEType,
		"size":      att.Size,
	})
	return att, nil
}

func isImage(mimeType string) bool {
	return len(mimeType) >= 6 && mimeType[:6] == "image/"
}
