package shutdown_test

import (
	"context"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"sporttars/pkg/shutdown"
)

func sendTerm(t *testing.T) {
	t.Helper()

	process, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatalf("Failed to find process: %v", err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		t.Fatalf("Failed to send signal: %v", err)
	}
}

func TestWaitExecutesHooks(t *testing.T) {
	hook1Called := make(chan struct{})
	hook2Called := make(chan struct{})

	go func() {
		shutdown.Wait(time.Second,
			func(ctx context.Context) error {
				close(hook1Called)
				return nil
			},
			func(ctx context.Context) error {
				close(hook2Called)
				return nil
			},
		)
	}()

	time.Sleep(100 * time.Millisecond)
	sendTerm(t)

	for name, ch := range map[string]chan struct{}{"hook 1": hook1Called, "hook 2": hook2Called} {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Errorf("%s was not called", name)
		}
	}
}

func TestRunHooksRespectsTimeout(t *testing.T) {
	var mu sync.Mutex
	completed := false

	start := time.Now()
	shutdown.RunHooks(200*time.Millisecond, func(ctx context.Context) error {
		select {
		case <-time.After(2 * time.Second):
			mu.Lock()
			completed = true
			mu.Unlock()
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	if elapsed := time.Since(start); elapsed > 750*time.Millisecond {
		t.Errorf("RunHooks didn't respect timeout: took %v", elapsed)
	}

	mu.Lock()
	defer mu.Unlock()
	if completed {
		t.Error("The slow hook shouldn't have completed")
	}
}

func TestNotifyContextCancelsOnSignal(t *testing.T) {
	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	sendTerm(t)

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Error("context was not canceled after signal")
	}
}
