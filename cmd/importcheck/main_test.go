package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRunQuestions(t *testing.T) {
	p := writeFile(t, "bank.txt", "Q1. Capital?\nA) Chittagong\nA) Dhaka (correct)\n")
	var out, errb bytes.Buffer
	if code := run([]string{"-no-color", p}, &out, &errb); code != 0 {
		t.Fatalf("exit %d: %s", code, errb.String())
	}
	want := "Q1. Capital?\n    1) Chittagong\n    2) Dhaka *\n"
	if out.String() != want {
		t.Fatalf("output =\n%s", out.String())
	}
}

func TestRunUsers(t *testing.T) {
	p := writeFile(t, "users.csv", "01840000000,John\n12345\n01912345678\n")
	var out, errb bytes.Buffer
	if code := run([]string{"-no-color", "-users", p}, &out, &errb); code != 0 {
		t.Fatalf("exit %d: %s", code, errb.String())
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.HasSuffix(lines[0], "01840000000") || !strings.HasSuffix(lines[1], "01912345678") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunLegacyOrphan(t *testing.T) {
	p := writeFile(t, "bank.txt", "Answer: stray\nQ1. x\n")
	var out, errb bytes.Buffer
	if code := run([]string{"-no-color", p}, &out, &errb); code != 0 {
		t.Fatalf("corrected rule: exit %d", code)
	}
	if code := run([]string{"-no-color", "-legacy", p}, &out, &errb); code != 1 {
		t.Fatalf("legacy rule: exit %d", code)
	}
}

func TestRunRejects(t *testing.T) {
	var out, errb bytes.Buffer
	if code := run(nil, &out, &errb); code != 2 {
		t.Fatalf("no args: exit %d", code)
	}
	p := writeFile(t, "users.txt", "01840000000")
	if code := run([]string{"-users", p}, &out, &errb); code != 1 {
		t.Fatalf("txt users: exit %d", code)
	}
}
