package clarify

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ConsoleChannel is a LineChannel over a reader/writer pair such as stdin and stdout.
type ConsoleChannel struct {
	reader    *bufio.Reader
	source    io.Reader
	output    io.Writer
	closeOnce sync.Once
	closeErr  error
	closed    bool
	// pending holds a read that outlived a cancelled ReadLine.
	pending chan lineResult
}

type lineResult struct {
	line string
	err  error
}

// NewConsoleChannel wraps input and output. The input is closed on Close when it is an io.Closer.
func NewConsoleChannel(input io.Reader, output io.Writer) *ConsoleChannel {
	return &ConsoleChannel{
		reader: bufio.NewReader(input),
		source: input,
		output: output,
	}
}

// ConsoleOpener returns a ChannelOpener that yields a fresh ConsoleChannel per loop.
func ConsoleOpener(input io.Reader, output io.Writer) ChannelOpener {
	return func() (LineChannel, error) {
		return NewConsoleChannel(input, output), nil
	}
}

// ReadLine writes prompt and waits for one line or ctx cancellation. A read
// abandoned by cancellation is handed to the next ReadLine on this channel.
func (c *ConsoleChannel) ReadLine(ctx context.Context, prompt string) (string, error) {
	if c.closed {
		return "", io.EOF
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := io.WriteString(c.output, prompt); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}
	results := c.pending
	if results == nil {
		results = make(chan lineResult, 1)
		go func() {
			line, err := c.reader.ReadString('\n')
			results <- lineResult{line: line, err: err}
		}()
	}
	select {
	case <-ctx.Done():
		c.pending = results
		return "", ctx.Err()
	case result := <-results:
		c.pending = nil
		return lineFromResult(result)
	}
}

func lineFromResult(result lineResult) (string, error) {
	if result.err != nil {
		if errors.Is(result.err, io.EOF) && result.line != "" {
			return trimLineTerminator(result.line), nil
		}
		return "", result.err
	}
	return trimLineTerminator(result.line), nil
}

func (c *ConsoleChannel) Close() error {
	c.closeOnce.Do(func() {
		c.closed = true
		if closer, ok := c.source.(io.Closer); ok {
			c.closeErr = closer.Close()
		}
	})
	return c.closeErr
}

func trimLineTerminator(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
