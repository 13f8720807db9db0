package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Kochuseyin65/muayane/internal/report"
)

func sampleSummary() report.Summary {
	status := 200
	return report.Summary{
		Total:  2,
		Passed: 1,
		Failed: 1,
		Details: []report.StepResult{
			{Name: "health", Success: true, Status: &status},
			{Name: "login_admin", Success: false, Message: "connection refused"},
		},
	}
}

func TestJSONRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := NewJSON(buf).Render(sampleSummary()); err != nil {
		t.Fatalf("render json: %v", err)
	}

	var decoded report.Summary
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if decoded.Total != 2 || decoded.Passed != 1 || decoded.Failed != 1 {
		t.Fatalf("counts mismatch: %+v", decoded)
	}
	if len(decoded.Details) != 2 || decoded.Details[0].Name != "health" {
		t.Fatalf("details mismatch: %+v", decoded.Details)
	}
	if decoded.Details[0].Status == nil || *decoded.Details[0].Status != 200 {
		t.Fatalf("status not serialized: %+v", decoded.Details[0])
	}
	if decoded.Details[1].Status != nil {
		t.Fatalf("absent status must stay absent: %+v", decoded.Details[1])
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := WriteFile(path, sampleSummary()); err != nil {
		t.Fatalf("write file: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	var decoded report.Summary
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode file: %v", err)
	}
	if decoded.Total != 2 {
		t.Fatalf("file content mismatch: %+v", decoded)
	}
}
