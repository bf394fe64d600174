package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/fsman/internal/filesystem"
)

// readLine prints prompt and returns the next input line, trimmed. io.EOF
// reports the end of input.
func (c *CLI) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, c.styles.Prompt.Render(prompt))
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// readDefault reads a line, substituting fallback for blank input.
func (c *CLI) readDefault(prompt, fallback string) (string, error) {
	line, err := c.readLine(prompt)
	if err != nil {
		return "", err
	}
	if line == "" {
		return fallback, nil
	}
	return line, nil
}

// readBool reads a yes/no answer; anything but y or yes means no.
func (c *CLI) readBool(prompt string) (bool, error) {
	line, err := c.readLine(prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// confirm asks a formatted yes/no question.
func (c *CLI) confirm(format string, args ...interface{}) (bool, error) {
	return c.readBool(fmt.Sprintf(format, args...))
}

// success renders a confirmation line.
func (c *CLI) success(msg string) {
	fmt.Fprintln(c.out, c.styles.Success.Render(msg))
}

// printStats renders an operation counter snapshot.
func (c *CLI) printStats(stats filesystem.Stats) {
	fmt.Fprintln(c.out, "\nOperation completed:")
	fmt.Fprintf(c.out, "Files processed: %d\n", stats.FilesProcessed)
	fmt.Fprintf(c.out, "Directories processed: %d\n", stats.DirsProcessed)
	fmt.Fprintf(c.out, "Successful operations: %d\n", stats.Succeeded)
	fmt.Fprintf(c.out, "Failed operations: %d\n", stats.Failed)
}

// comma renders n with thousands separators.
func comma(n int64) string {
	return commaString(strconv.FormatInt(n, 10))
}

// commaFloat renders v with prec decimals and thousands separators in the
// integer part.
func commaFloat(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		return commaString(s[:dot]) + s[dot:]
	}
	return commaString(s)
}

func commaString(digits string) string {
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}

	var b strings.Builder
	for i := 0; i < len(digits); i++ {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(digits[i])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
