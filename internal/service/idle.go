package service

import (
	"sync"
	"time"
)

// IdleLocker вызывает lock, если Touch не вызывался дольше timeout.
// Нулевой или отрицательный timeout отключает автоблокировку.
type IdleLocker struct {
	mu      sync.Mutex
	timeout time.Duration
	lock    func()
	timer   *time.Timer
}

// NewIdleLocker создаёт таймер неактивности; отсчёт начинается с первого Touch.
func NewIdleLocker(timeout time.Duration, lock func()) *IdleLocker {
	return &IdleLocker{timeout: timeout, lock: lock}
}

// Touch перезапускает отсчёт.
func (l *IdleLocker) Touch() {
	if l.timeout <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.timer == nil {
		l.timer = time.AfterFunc(l.timeout, l.lock)
		return
	}
	l.timer.Reset(l.timeout)
}

// Stop останавливает отсчёт до следующего Touch.
func (l *IdleLocker) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.timer != nil {
		l.timer.Stop()
	}
}
