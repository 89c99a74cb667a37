package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/utf8check/internal/config"
	"github.com/harrison/utf8check/internal/scanner"
	"github.com/mattn/go-isatty"
)

const (
	successLine  = "✓ All files are valid UTF-8"
	findingsLine = "Found files with invalid UTF-8 encoding:"
)

// Report is the printable outcome of one scan
type Report struct {
	Root     string
	Findings []scanner.Finding
}

// NewReport builds a Report from a scan result
func NewReport(root string, result *scanner.ScanResult) Report {
	return Report{Root: root, Findings: result.Findings}
}

// ScanHeader returns the line printed before the walk starts
func ScanHeader(root string) string {
	return fmt.Sprintf("Scanning directory: %s\n", root)
}

// Display writes the result section of the report to out
func (r Report) Display(out io.Writer, colorOutput bool) {
	fmt.Fprint(out, r.render(colorOutput))
}

// Text returns the complete plain report (scan header included) for a report file
func (r Report) Text() string {
	return ScanHeader(r.Root) + r.render(false)
}

func (r Report) render(colorOutput bool) string {
	var b strings.Builder

	if len(r.Findings) == 0 {
		b.WriteString(paint(color.FgGreen, colorOutput, successLine))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(paint(color.FgRed, colorOutput, findingsLine))
	b.WriteString("\n")

	for _, f := range r.Findings {
		b.WriteString("\nFile: ")
		b.WriteString(f.Path)
		b.WriteString("\nError: ")
		b.WriteString(f.Description())
		b.WriteString("\n")
	}

	return b.String()
}

// paint wraps s in the given color when enabled, ignoring the global NoColor
func paint(attr color.Attribute, enabled bool, s string) string {
	c := color.New(attr)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}

// ColorEnabled resolves a color mode for the given writer
func ColorEnabled(mode string, out io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
