package output

import (
	"fmt"
	"io"

	"github.com/Kochuseyin65/muayane/internal/report"
)

// PrettyRenderer renders the run summary in a human-friendly format.
type PrettyRenderer struct {
	out io.Writer
}

// NewPretty creates a PrettyRenderer writing to the provided writer.
func NewPretty(out io.Writer) *PrettyRenderer {
	return &PrettyRenderer{out: out}
}

// Render prints one line per step followed by a totals footer.
func (p *PrettyRenderer) Render(summary report.Summary) error {
	for _, step := range summary.Details {
		mark := "PASS"
		if !step.Success {
			mark = "FAIL"
		}
		line := fmt.Sprintf("%s  %s", mark, step.Name)
		if step.Status != nil {
			line += fmt.Sprintf(" (%d)", *step.Status)
		}
		if step.Message != "" {
			line += ": " + step.Message
		}
		if _, err := fmt.Fprintln(p.out, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(p.out, "\n%d steps: %d passed, %d failed\n",
		summary.Total, summary.Passed, summary.Failed)
	return err
}

// RenderList prints the ordered step names without executing anything.
func (p *PrettyRenderer) RenderList(names []string) error {
	for i, name := range names {
		if _, err := fmt.Fprintf(p.out, "%2d. %s\n", i+1, name); err != nil {
			return err
		}
	}
	return nil
}
