package content

import (
	"bufio"
	"context"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"

	"github.com/tuikit/scrollview/internal/safego"
)

// Command is a document fed by the output of a command running under a pty.
// Lines are appended as they stream, so the document grows while displayed.
// It implements Watchable; each appended line reports a size change.
type Command struct {
	Buffer

	cmd  *exec.Cmd
	ptmx *os.File

	mu       sync.Mutex
	onChange func()
	done     chan struct{}
}

// StartCommand launches name with args under a pty and begins collecting its
// output.
func StartCommand(name string, args ...string) (*Command, error) {
	c := &Command{
		cmd:  exec.Command(name, args...),
		done: make(chan struct{}),
	}
	ptmx, err := pty.Start(c.cmd)
	if err != nil {
		return nil, err
	}
	c.ptmx = ptmx

	safego.Go("content-command-read", func() {
		defer close(c.done)
		scanner := bufio.NewScanner(ptmx)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			c.Append(scanner.Text())
			c.notify()
		}
		_ = c.cmd.Wait()
	})
	return c, nil
}

// Watch registers onChange to fire after each appended line.
func (c *Command) Watch(ctx context.Context, onChange func()) error {
	c.mu.Lock()
	c.onChange = onChange
	c.mu.Unlock()

	safego.Go("content-command-watch", func() {
		select {
		case <-ctx.Done():
		case <-c.done:
		}
		c.mu.Lock()
		c.onChange = nil
		c.mu.Unlock()
	})
	return nil
}

func (c *Command) notify() {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Done is closed when the command's output has been fully consumed.
func (c *Command) Done() <-chan struct{} { return c.done }

// Close terminates the command and releases the pty.
func (c *Command) Close() error {
	if c.cmd != nil && c.cmd.Process != nil {
		_ = c.cmd.Process.Kill()
	}
	if c.ptmx != nil {
		return c.ptmx.Close()
	}
	return nil
}
