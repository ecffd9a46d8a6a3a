package port

import "context"

// LocalStorePort - контракт долговременного локального key-value хранилища
// (строковые ключи и значения). Это единственный источник истины для токена
// и наборов избранного, поэтому он передается потребителям явно, а не через
// глобальное состояние.
type LocalStorePort interface {
	// Get возвращает значение и признак его наличия.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set записывает значение (upsert).
	Set(ctx context.Context, key, value string) error

	// Delete удаляет ключ. Отсутствие ключа не является ошибкой.
	Delete(ctx context.Context, key string) error
}
