// Package shutdown предоставляет функциональность для корректного завершения приложения
// по сигналам SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// NotifyContext возвращает контекст, отменяемый при получении SIGINT или SIGTERM.
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// Wait блокирует выполнение до получения сигнала завершения, затем параллельно
// выполняет все хуки, давая им не больше timeout на завершение.
func Wait(timeout time.Duration, hooks ...func(context.Context) error) {
	sigCtx, stop := NotifyContext(context.Background())
	defer stop()
	<-sigCtx.Done()

	RunHooks(timeout, hooks...)
}

// RunHooks параллельно выполняет хуки завершения в рамках timeout.
func RunHooks(timeout time.Duration, hooks ...func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var wgp sync.WaitGroup
	for _, hook := range hooks {
		wgp.Add(1)
		go func(fn func(context.Context) error) {
			defer wgp.Done()
			_ = fn(ctx)
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wgp.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}
