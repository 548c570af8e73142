package browse

import (
	"sync"
	"time"
)

// DefaultDebounceDelay — пауза тишины перед применением поискового запроса.
const DefaultDebounceDelay = 300 * time.Millisecond

// Debouncer откладывает вызов функции до паузы между вызовами: каждый
// новый Do перезаводит таймер. Нулевая задержка выполняет функцию сразу
// (удобно в тестах).
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer создаёт debouncer с заданной задержкой.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Do планирует вызов fn после паузы, отменяя предыдущий запланированный.
func (d *Debouncer) Do(fn func()) {
	if d.delay <= 0 {
		fn()
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop отменяет запланированный вызов, если он есть.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
