package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/fsman/internal/filesystem"
	"github.com/GriffinCanCode/fsman/internal/logging"
)

const bannerWidth = 50

// errQuit signals a clean exit requested through the exit command.
var errQuit = errors.New("quit")

// command binds a name to its prompt sequence and handler.
type command struct {
	name string
	desc string
	run  func(context.Context) error
}

// Options configures the interaction surface of the shell.
type Options struct {
	Input  io.Reader
	Output io.Writer
	Color  bool
}

// CLI drives the interactive command loop. Every session carries a uuid
// that tags the log events it produces.
type CLI struct {
	mgr      *filesystem.Manager
	log      *logging.Logger
	in       *bufio.Scanner
	out      io.Writer
	styles   styleSet
	commands []command
}

// New creates a shell around mgr. A nil logger is replaced with a no-op
// logger.
func New(mgr *filesystem.Manager, log *logging.Logger, opts Options) *CLI {
	if log == nil {
		log = logging.NewNop()
	}

	c := &CLI{
		mgr:    mgr,
		log:    log.Named("cli").With(zap.String("session", uuid.NewString())),
		in:     bufio.NewScanner(opts.Input),
		out:    opts.Output,
		styles: newStyleSet(opts.Color),
	}

	c.commands = []command{
		{"list", "List directory contents", c.cmdList},
		{"copy", "Copy a file", c.cmdCopy},
		{"move", "Move a file", c.cmdMove},
		{"delete", "Delete a file", c.cmdDelete},
		{"rename", "Rename a file", c.cmdRename},
		{"mkdir", "Create a directory", c.cmdMkdir},
		{"rmdir", "Delete a directory", c.cmdRmdir},
		{"ext", "Change a file's extension", c.cmdExt},
		{"bulk_ext", "Bulk change file extensions", c.cmdBulkExt},
		{"create", "Create an empty file", c.cmdCreate},
		{"size", "Get directory size", c.cmdSize},
		{"clean", "Clean directory contents", c.cmdClean},
		{"stat", "Show file or directory metadata", c.cmdStat},
		{"tree", "Show a directory tree", c.cmdTree},
		{"find", "Find files by glob pattern", c.cmdFind},
		{"hash", "Compute a file checksum", c.cmdHash},
		{"zip", "Archive a directory as ZIP", c.cmdZip},
		{"tar", "Archive a directory as TAR", c.cmdTar},
		{"unzip", "Extract an archive", c.cmdUnzip},
		{"help", "Show this help", c.cmdHelp},
		{"exit", "Exit the program", c.cmdExit},
	}
	return c
}

// Run drives the prompt loop until the exit command, end of input, or
// context cancellation. All three return nil; the session ending is not an
// error.
func (c *CLI) Run(ctx context.Context) error {
	c.banner()
	c.log.Info("session started")

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(c.out, "\nOperation cancelled by user.")
			c.log.Info("session interrupted")
			return nil
		}

		line, err := c.readLine("\n> ")
		if err != nil {
			if ctx.Err() != nil {
				fmt.Fprintln(c.out, "\nOperation cancelled by user.")
				c.log.Info("session interrupted")
				return nil
			}
			c.goodbye()
			return nil
		}

		name := strings.ToLower(line)
		if name == "" {
			continue
		}

		cmd, ok := c.lookup(name)
		if !ok {
			fmt.Fprintln(c.out, c.styles.Muted.Render("Invalid command. Type 'help' for available commands."))
			continue
		}

		c.log.Info("command", zap.String("name", name))
		if err := cmd.run(ctx); err != nil {
			switch {
			case errors.Is(err, errQuit):
				c.log.Info("session ended")
				return nil
			case ctx.Err() != nil || errors.Is(err, context.Canceled):
				fmt.Fprintln(c.out, "\nOperation cancelled by user.")
				c.log.Info("session interrupted")
				return nil
			case errors.Is(err, io.EOF):
				c.goodbye()
				return nil
			default:
				fmt.Fprintln(c.out, c.styles.Error.Render(fmt.Sprintf("Error: %v", err)))
			}
		}
	}
}

// lookup resolves a command by name.
func (c *CLI) lookup(name string) (*command, bool) {
	for i := range c.commands {
		if c.commands[i].name == name {
			return &c.commands[i], true
		}
	}
	return nil, false
}

// banner prints the session header.
func (c *CLI) banner() {
	line := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.styles.Banner.Render(line))
	fmt.Fprintln(c.out, c.styles.Banner.Render(center("FILE SYSTEM MANAGER", bannerWidth)))
	fmt.Fprintln(c.out, c.styles.Banner.Render(line))
	fmt.Fprintln(c.out, "\nType 'help' for available commands")
	fmt.Fprintln(c.out)
}

// goodbye closes the open prompt line and prints the farewell.
func (c *CLI) goodbye() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Goodbye!")
	c.log.Info("session ended")
}

// center pads s with spaces to width, extra padding on the right.
func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
