package runner

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// stdoutCapture swaps os.Stdout for a pipe until stop is
// called.
type stdoutCapture struct {
	orig   *os.File
	reader *os.File
	writer *os.File
	done   chan string
}

func startCapture() (*stdoutCapture, error) {
	rd, wr, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf(
			"failed to create capture pipe: %w", err,
		)
	}

	c := &stdoutCapture{
		orig:   os.Stdout,
		reader: rd,
		writer: wr,
		done:   make(chan string, 1),
	}
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, rd)
		c.done <- buf.String()
	}()

	os.Stdout = wr
	return c, nil
}

// stop restores the original stdout and returns everything
// written while the capture was active.
func (c *stdoutCapture) stop() string {
	os.Stdout = c.orig
	_ = c.writer.Close()
	out := <-c.done
	_ = c.reader.Close()
	return out
}
