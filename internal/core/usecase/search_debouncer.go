package usecase

import (
	"sync"
	"time"
)

// SearchDebouncer сводит серию быстрых вызовов к одному: функция выполняется
// только после тихого периода без новых вызовов. Каждый Trigger отменяет
// предыдущий отложенный вызов. Используется для полей свободного текста,
// чтобы не отправлять запрос на каждое нажатие клавиши.
//
// Это политика производительности, не корректности: порядок результатов
// все равно защищен правилом last-request-wins в ListingsState.
type SearchDebouncer struct {
	mu    sync.Mutex
	quiet time.Duration
	timer *time.Timer
}

func NewSearchDebouncer(quiet time.Duration) *SearchDebouncer {
	if quiet <= 0 {
		quiet = 300 * time.Millisecond
	}
	return &SearchDebouncer{quiet: quiet}
}

// Trigger планирует fn через тихий период, отменяя ранее запланированный вызов.
func (d *SearchDebouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, fn)
}

// Cancel отменяет отложенный вызов, если он есть.
func (d *SearchDebouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
