package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

const maxLineSize = 1 << 20

type Console struct {
	in     io.Reader
	out    io.Writer
	prompt string
	logger *slog.Logger

	mu sync.Mutex
}

func NewConsole(in io.Reader, out io.Writer, prompt string, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{in: in, out: out, prompt: prompt, logger: logger}
}

// Start reads lines until input ends, ctx is cancelled or the handler
// returns ErrStop. The handler runs on the calling goroutine and the next
// line is not dispatched until it returns.
func (c *Console) Start(ctx context.Context, handler func(context.Context, string) error) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	c.logger.Debug("console started")
	c.showPrompt()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("read input: %w", err)
					}
				default:
				}
				c.logger.Debug("input closed, console stopped")
				return nil
			}

			line = strings.TrimSuffix(line, "\r")
			if strings.TrimSpace(line) == "" {
				c.showPrompt()
				continue
			}

			if err := handler(ctx, line); err != nil {
				if errors.Is(err, ErrStop) {
					c.logger.Debug("console stopped by handler")
					return nil
				}
				c.logger.Debug("handler returned error", "error", err)
			}
			c.showPrompt()

		case <-ctx.Done():
			c.logger.Debug("console stopped by context cancellation")
			return ctx.Err()
		}
	}
}

func (c *Console) SendText(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := fmt.Fprintln(c.out, text); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

func (c *Console) showPrompt() {
	if c.prompt == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(c.out, c.prompt)
}
