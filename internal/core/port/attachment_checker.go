package port

import (
	"context"
	"marketplace-client/internal/core/domain"
)

// AttachmentCheckerPort - клиентская проверка файла перед отправкой формы.
// Проверки совещательные: сервер обязан перепроверить.
type AttachmentCheckerPort interface {
	// Check валидирует файл (размер, MIME-тип) и для изображений
	// дополнительно считает перцептивный хэш и миниатюру.
	// Нарушение ограничений возвращается как domain.ValidationErrors.
	Check(ctx context.Context, fileName string, data []byte) (domain.Attachment, error)
}
