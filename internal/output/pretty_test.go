package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrettyRender(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := NewPretty(buf).Render(sampleSummary()); err != nil {
		t.Fatalf("render pretty: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "PASS  health (200)") {
		t.Fatalf("missing pass line:\n%s", out)
	}
	if !strings.Contains(out, "FAIL  login_admin: connection refused") {
		t.Fatalf("missing fail line:\n%s", out)
	}
	if !strings.Contains(out, "2 steps: 1 passed, 1 failed") {
		t.Fatalf("missing footer:\n%s", out)
	}
}

func TestPrettyRenderList(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := NewPretty(buf).RenderList([]string{"health", "login_admin"}); err != nil {
		t.Fatalf("render list: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, " 1. health") || !strings.Contains(out, " 2. login_admin") {
		t.Fatalf("unexpected list output:\n%s", out)
	}
}
