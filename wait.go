package midi2key

import (
	"bufio"
	"context"
	"io"

	"github.com/pkg/errors"
)

// WaitForExit blocks until one line (or EOF) has been read from r or ctx
// is done. The reader is left to the caller; a pending read is abandoned
// when ctx ends first.
func WaitForExit(ctx context.Context, r io.Reader) error {
	done := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(r).ReadString('\n')
		if err == io.EOF {
			err = nil
		}
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return errors.Wrap(err, "could not read from stdin")
		}
		return nil
	case <-ctx.Done():
		return nil
	}
}
