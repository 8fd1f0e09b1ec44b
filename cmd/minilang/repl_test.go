package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestSessionKeepsEnvironment(t *testing.T) {
	var out, errOut bytes.Buffer
	s := newSession(&out, &errOut, 0)
	for _, entry := range []string{"int x", "x = 4", "x * 2", "x > 3 && true"} {
		if s.eval(entry) {
			t.Fatalf("%q ended the session", entry)
		}
	}
	if errOut.Len() != 0 {
		t.Fatalf("unexpected errors: %s", errOut.String())
	}
	if out.String() != "8\ntrue\n" {
		t.Fatalf("unexpected expression output %q", out.String())
	}

	out.Reset()
	s.eval("x = 1 / 0")
	if !strings.Contains(errOut.String(), "division by zero") {
		t.Fatalf("expected division error, got %q", errOut.String())
	}
	s.eval(":env")
	if out.String() != "x: int = 4\n" {
		t.Fatalf("failed entry must not change the environment, got %q", out.String())
	}

	out.Reset()
	s.eval(":reset")
	s.eval(":env")
	if out.String() != "(no bindings)\n" {
		t.Fatalf("expected empty environment after reset, got %q", out.String())
	}
	if !s.eval(":quit") {
		t.Fatalf("expected :quit to end the session")
	}
}

func TestSessionStepLimit(t *testing.T) {
	var out, errOut bytes.Buffer
	s := newSession(&out, &errOut, 10)
	s.eval("while (true) {}")
	if !strings.Contains(errOut.String(), "step limit") {
		t.Fatalf("expected step limit error, got %q", errOut.String())
	}
}

func TestCompleteProbe(t *testing.T) {
	cases := map[string]bool{
		"while (i < 3) {":                 false,
		"while (i < 3) {\n  i = i + 1\n}": true,
		"int x; x = 1 +":                  false,
		"x":                               true,
		"x = )":                           true,
		":env":                            true,
		"":                                true,
	}
	for src, want := range cases {
		if got := complete(src); got != want {
			t.Fatalf("complete(%q) = %v, want %v", src, got, want)
		}
	}
}
