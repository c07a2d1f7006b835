package installer

import (
	"strings"
	"testing"
)

func TestExtrasFixedOrder(t *testing.T) {
	want := []string{"core", "dev", "loggers", "notebooks", "openvino"}
	got := Extras()
	if len(got) != len(want) {
		t.Fatalf("extras = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("extras[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRequirementsPerExtra(t *testing.T) {
	for _, name := range Extras() {
		reqs, ok := Requirements(name)
		if !ok {
			t.Fatalf("extra %q missing", name)
		}
		if len(reqs) == 0 {
			t.Fatalf("extra %q is empty", name)
		}
		for _, r := range reqs {
			if strings.TrimSpace(r) != r || r == "" || strings.HasPrefix(r, "#") {
				t.Fatalf("extra %q: unparsed line %q", name, r)
			}
		}
	}
	if _, ok := Requirements("nope"); ok {
		t.Fatalf("unknown extra reported as known")
	}
}

func TestAssembleFullIsSupersetOfEveryExtra(t *testing.T) {
	full, err := Assemble(OptionFull)
	if err != nil {
		t.Fatalf("assemble full: %v", err)
	}
	inFull := make(map[string]bool, len(full))
	for _, r := range full {
		inFull[r] = true
	}
	for _, name := range Extras() {
		reqs, _ := Requirements(name)
		for _, r := range reqs {
			if !inFull[r] {
				t.Fatalf("full misses %q from extra %q", r, name)
			}
		}
	}
}

func TestAssembleEmptyOptionMeansFull(t *testing.T) {
	full, _ := Assemble(OptionFull)
	empty, err := Assemble("")
	if err != nil {
		t.Fatalf("assemble empty: %v", err)
	}
	if len(full) != len(empty) {
		t.Fatalf("empty option != full: %d vs %d", len(empty), len(full))
	}
}

func TestAssembleKnownExtra(t *testing.T) {
	reqs, err := Assemble("openvino")
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	want, _ := Requirements("openvino")
	if len(reqs) != len(want) {
		t.Fatalf("got %v, want %v", reqs, want)
	}
	for i := range want {
		if reqs[i] != want[i] {
			t.Fatalf("got %v, want %v", reqs, want)
		}
	}
}

func TestAssembleLiteralSpecifier(t *testing.T) {
	reqs, err := Assemble("anomalib==1.1.0")
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(reqs) != 1 || reqs[0] != "anomalib==1.1.0" {
		t.Fatalf("literal passthrough failed: %v", reqs)
	}
}

func TestAssembleRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"--upgrade", "a b", "==1.0"} {
		if _, err := Assemble(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestRequirementName(t *testing.T) {
	cases := map[string]string{
		"torch>=2":             "torch",
		"torchvision":          "torchvision",
		"torchmetrics>=0.10.3": "torchmetrics",
		"coverage[toml]":       "coverage",
		"open-clip-torch>=2":   "open-clip-torch",
		"Torch==2.1":           "torch",
	}
	for in, want := range cases {
		if got := requirementName(in); got != want {
			t.Fatalf("requirementName(%q) = %q, want %q", in, got, want)
		}
	}
}
