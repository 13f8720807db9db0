package report

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLogAppendOrder(t *testing.T) {
	log := &Log{}
	log.Append(StepResult{Name: "health", Success: true})
	log.Append(StepResult{Name: "login_admin", Success: false, Message: "boom"})
	log.Append(StepResult{Name: "login_admin", Success: true})

	results := log.Results()
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Name != "health" || results[1].Name != "login_admin" {
		t.Fatalf("insertion order not preserved: %+v", results)
	}
	// duplicates are allowed
	if results[2].Name != "login_admin" {
		t.Fatalf("duplicate entry lost: %+v", results)
	}
}

func TestResultsCopyDoesNotAliasLog(t *testing.T) {
	log := &Log{}
	log.Append(StepResult{Name: "health", Success: true})

	results := log.Results()
	results[0].Name = "mutated"

	if got := log.Results()[0].Name; got != "health" {
		t.Fatalf("log entry mutated through copy: %q", got)
	}
}

func TestSummaryDerivation(t *testing.T) {
	log := &Log{}
	log.Append(StepResult{Name: "a", Success: true})
	log.Append(StepResult{Name: "b", Success: false})
	log.Append(StepResult{Name: "c", Success: true})

	want := Summary{Total: 3, Passed: 2, Failed: 1, Details: log.Results()}
	if diff := cmp.Diff(want, log.Summary()); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
	if log.Summary().OK() {
		t.Fatal("summary with a failure must not be OK")
	}

	log.Append(StepResult{Name: "d", Success: true})
	if got := log.Summary().Total; got != 4 {
		t.Fatalf("summary not recomputed on demand: total %d", got)
	}
}

func TestEmptySummaryIsOK(t *testing.T) {
	log := &Log{}
	s := log.Summary()
	if s.Total != 0 || !s.OK() {
		t.Fatalf("empty log summary wrong: %+v", s)
	}
}
