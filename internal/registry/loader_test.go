package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fakeSum = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

func writeRegistryFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadFilesMergesOverBuiltin(t *testing.T) {
	p := writeRegistryFile(t, "custom.yaml", `
weights:
  padim-r18:
    url: https://example.com/weights/`+fakeSum+`/padim-r18.pt
    description: PaDiM backbone
`)
	r, err := LoadFiles(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if r.Len() != 10 {
		t.Fatalf("entries = %d, want 10", r.Len())
	}
	e, ok := r.Lookup("padim-r18")
	if !ok {
		t.Fatalf("custom entry missing")
	}
	if e.Checksum != fakeSum || e.Filename != "padim-r18.pt" || e.Source != p {
		t.Fatalf("entry = %+v", e)
	}
	// Builtin entries survive the merge.
	if _, ok := r.Lookup("RN50"); !ok {
		t.Fatalf("builtin RN50 lost")
	}
}

func TestLoadFilesCustomOverridesBuiltin(t *testing.T) {
	p := writeRegistryFile(t, "override.yaml", `
weights:
  RN50:
    url: https://mirror.example.com/clip/`+fakeSum+`/RN50.pt
`)
	r, err := LoadFiles(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	e, _ := r.Lookup("RN50")
	if e.Source != p {
		t.Fatalf("override did not win, source = %s", e.Source)
	}
	if e.Checksum != fakeSum {
		t.Fatalf("checksum = %s", e.Checksum)
	}
	if r.Len() != 9 {
		t.Fatalf("override added instead of replacing: %d entries", r.Len())
	}
}

func TestLoadFilesLaterFileWins(t *testing.T) {
	first := writeRegistryFile(t, "a.yaml", `
weights:
  enc:
    url: https://a.example.com/w/`+fakeSum+`/enc.pt
`)
	otherSum := strings.Repeat("b", 64)
	second := writeRegistryFile(t, "b.yaml", `
weights:
  enc:
    url: https://b.example.com/w/`+otherSum+`/enc.pt
`)
	r, err := LoadFiles(first, second)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	e, _ := r.Lookup("enc")
	if e.Checksum != otherSum {
		t.Fatalf("later file did not win: %+v", e)
	}
}

func TestLoadFilesRejectsSchemaViolation(t *testing.T) {
	p := writeRegistryFile(t, "bad.yaml", `
weights:
  broken:
    description: url is required but missing
`)
	if _, err := LoadFiles(p); err == nil {
		t.Fatalf("expected schema error")
	}
}

func TestLoadFilesRejectsBadChecksumURL(t *testing.T) {
	p := writeRegistryFile(t, "nochk.yaml", `
weights:
  nochk:
    url: https://example.com/plain/weight.pt
`)
	_, err := LoadFiles(p)
	if err == nil {
		t.Fatalf("expected checksum extraction error")
	}
	if !strings.Contains(err.Error(), "nochk") {
		t.Fatalf("error does not name the weight: %v", err)
	}
}

func TestLoadFilesMissingFile(t *testing.T) {
	if _, err := LoadFiles(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
}
