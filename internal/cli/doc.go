// Package cli implements the interactive maintenance shell.
//
// The shell reads one command name per line, walks that command's fixed
// prompt sequence, invokes a single filesystem.Manager operation, and
// renders the outcome before returning to the prompt. The command table is
// closed: commands are declared at construction and never registered at
// runtime.
//
// Destructive commands (delete, rmdir, clean) ask for confirmation first.
// End of input and context cancellation both end the session cleanly.
//
// Rendering goes through a lipgloss style set. With color disabled the
// styles are zero values and render plain text, which is also how tests
// script sessions against an in-memory reader and writer.
package cli
