package port

import "marketplace-client/internal/core/domain"

// DraftValidatorPort - клиентская валидация полей черновика по схеме
// соответствующего вида формы. Ошибки валидации никогда не уходят в сеть.
type DraftValidatorPort interface {
	Validate(kind domain.DraftKind, fields map[string]any) domain.ValidationErrors
}
