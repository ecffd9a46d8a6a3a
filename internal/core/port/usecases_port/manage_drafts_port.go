package usecases_port

import (
	"context"
	"marketplace-client/internal/core/domain"
)

// ManageDraftsUseCasePort - жизненный цикл черновиков многошаговых форм.
type ManageDraftsUseCasePort interface {
	// Create открывает новый черновик указанного вида.
	Create(ctx context.Context, kind domain.DraftKind) (*domain.FormDraft, error)

	Get(ctx context.Context, id string) (*domain.FormDraft, error)

	// UpdateField записывает значение поля и помечает черновик как тронутый.
	UpdateField(ctx context.Context, id, field string, value any) (*domain.FormDraft, error)

	// Advance переводит мастер на следующий шаг, предварительно валидируя
	// уже заполненные поля. Back возвращает на предыдущий без валидации.
	Advance(ctx context.Context, id string) (*domain.FormDraft, error)
	Back(ctx context.Context, id string) (*domain.FormDraft, error)

	// AddAttachment прогоняет файл через клиентские проверки и прикрепляет его.
	AddAttachment(ctx context.Context, id, fileName string, data []byte) (*domain.FormDraft, error)

	// Cancel уничтожает черновик.
	Cancel(ctx context.Context, id string) error

	// Submit валидирует черновик целиком и отправляет его. force=true
	// пропускает предупреждение о возможном дубликате объявления.
	Submit(ctx context.Context, id string, force bool) error
}
