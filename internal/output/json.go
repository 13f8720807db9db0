package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/Kochuseyin65/muayane/internal/report"
)

// JSONRenderer emits the run summary as indented JSON.
type JSONRenderer struct {
	out io.Writer
}

// NewJSON creates a JSON renderer writing to out.
func NewJSON(out io.Writer) *JSONRenderer {
	return &JSONRenderer{out: out}
}

// Render encodes the summary as JSON.
func (j *JSONRenderer) Render(summary report.Summary) error {
	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(summary)
}

// WriteFile writes the summary document to path.
func WriteFile(path string, summary report.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := NewJSON(f).Render(summary); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
