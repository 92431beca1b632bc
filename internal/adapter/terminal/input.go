package terminal

import (
	"bufio"
	"context"
	"io"
)

type lineResult struct {
	line string
	err  error
}

// LineReader delivers input lines one at a time. Reads from the underlying
// reader happen on a single background goroutine so that a blocked read
// never holds up context cancellation.
type LineReader struct {
	results chan lineResult
}

// NewLineReader starts reading lines from r
func NewLineReader(r io.Reader) *LineReader {
	lr := &LineReader{results: make(chan lineResult)}

	go func() {
		defer close(lr.results)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lr.results <- lineResult{line: scanner.Text()}
		}
		err := scanner.Err()
		if err == nil {
			err = io.EOF
		}
		lr.results <- lineResult{err: err}
	}()

	return lr
}

// ReadLine blocks until a line is available, the input ends (io.EOF), or
// ctx is done.
func (lr *LineReader) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-lr.results:
		if !ok {
			return "", io.EOF
		}
		return res.line, res.err
	}
}
