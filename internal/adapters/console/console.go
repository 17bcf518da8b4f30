// Package console is a line-oriented terminal surface for the game. It keeps
// the text typed since the last submission as an input buffer, the way a
// text area would.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/labstack/gommon/color"

	"github.com/PabloGalante/frickbooks/internal/domain"
)

type Console struct {
	mu       sync.Mutex
	in       io.Reader
	out      io.Writer
	color    *color.Color
	buffer   string
	status   string
	disabled bool

	once    sync.Once
	lines   chan string
	done    chan struct{}
	stopped chan struct{}
	closed  sync.Once
}

// New creates a console reading from in and writing to out. With colored
// false no escape codes are written.
func New(in io.Reader, out io.Writer, colored bool) *Console {
	c := color.New()
	if colored {
		c.Enable()
	} else {
		c.Disable()
	}

	return &Console{
		in:      in,
		out:     out,
		color:   c,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (c *Console) Header(title string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rule := strings.Repeat("=", len(title)+4)
	fmt.Fprintln(c.out, c.color.Cyan(rule))
	fmt.Fprintln(c.out, c.color.Cyan("| "+title+" |"))
	fmt.Fprintln(c.out, c.color.Cyan(rule))
}

func (c *Console) Write(text string, col domain.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(c.out, c.paint(text, col))
}

func (c *Console) UpdateStatus(text string, col domain.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = text
	fmt.Fprintln(c.out, c.paint("> "+text, col))
}

func (c *Console) ClearInput() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buffer = ""
}

func (c *Console) SetInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buffer = text
}

func (c *Console) SetInputDisabled(disabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disabled = disabled
}

func (c *Console) InputDisabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disabled
}

func (c *Console) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffer
}

func (c *Console) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Type appends one entered line to the input buffer and returns the whole
// buffer. An empty line right after another one produces the "\n\n" submit gesture.
func (c *Console) Type(line string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	line = strings.TrimRight(line, "\r")
	if c.buffer != "" && !strings.HasSuffix(c.buffer, "\n") {
		c.buffer += "\n"
	}
	c.buffer += line + "\n"
	return c.buffer
}

// Lines streams input lines until the reader is exhausted or the console is
// closed, then closes the channel.
func (c *Console) Lines() <-chan string {
	c.once.Do(func() {
		c.lines = make(chan string)
		go func() {
			defer close(c.stopped)
			defer close(c.lines)
			sc := bufio.NewScanner(c.in)
			for sc.Scan() {
				select {
				case c.lines <- sc.Text():
				case <-c.done:
					return
				}
			}
		}()
	})
	return c.lines
}

// Close stops delivering lines. A read already blocked on the underlying
// reader still finishes, but its line is dropped.
func (c *Console) Close() error {
	c.closed.Do(func() { close(c.done) })
	return nil
}

func (c *Console) paint(text string, col domain.Color) string {
	switch col {
	case domain.ColorWhite:
		return c.color.White(text)
	case domain.ColorRed:
		return c.color.Red(text)
	case domain.ColorGreen:
		return c.color.Green(text)
	case domain.ColorBlue:
		return c.color.Blue(text)
	case domain.ColorOrange:
		return c.color.Yellow(text)
	case domain.ColorGrey:
		return c.color.Grey(text)
	default:
		return text
	}
}
