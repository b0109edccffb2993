package midi2key

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func TestWaitForExit(t *testing.T) {
	tests := []struct {
		name  string
		input io.Reader
	}{
		{"line", strings.NewReader("\n")},
		{"text", strings.NewReader("quit\nmore\n")},
		{"eof", strings.NewReader("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := WaitForExit(context.Background(), tt.input); err != nil {
				t.Errorf("WaitForExit() error = %v", err)
			}
		})
	}
}

func TestWaitForExit_Cancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- WaitForExit(ctx, r) }()

	select {
	case <-done:
		t.Fatal("WaitForExit returned before any input")
	case <-time.After(20 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("WaitForExit() error = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("WaitForExit did not return after cancel")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestWaitForExit_ReadError(t *testing.T) {
	if err := WaitForExit(context.Background(), failingReader{}); err == nil {
		t.Error("WaitForExit() error = nil, want read error")
	}
}
