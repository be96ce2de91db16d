package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{" YES \n", true},
		{"n\n", false},
		{"\n", false},
		{"yes", true},
	}
	for _, tc := range cases {
		var errOut bytes.Buffer
		u := New(&bytes.Buffer{}, &errOut, ColorNever, true)
		u.In = strings.NewReader(tc.input)

		got, err := u.Confirm("Delete website?")
		if err != nil {
			t.Fatalf("Confirm(%q) error = %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("Confirm(%q) = %v, want %v", tc.input, got, tc.want)
		}
		if !strings.Contains(errOut.String(), "Delete website? [y/N]") {
			t.Fatalf("prompt = %q", errOut.String())
		}
	}
}

func TestConfirmWithoutInput(t *testing.T) {
	u := New(&bytes.Buffer{}, &bytes.Buffer{}, ColorNever, true)
	u.In = strings.NewReader("")

	if _, err := u.Confirm("Clear errors?"); !errors.Is(err, ErrNoInput) {
		t.Fatalf("Confirm() error = %v, want ErrNoInput", err)
	}
}

func TestNormalizeColorMode(t *testing.T) {
	if got := NormalizeColorMode(" Always "); got != ColorAlways {
		t.Fatalf("NormalizeColorMode() = %q, want always", got)
	}
	if got := NormalizeColorMode("rainbow"); got != ColorAuto {
		t.Fatalf("NormalizeColorMode() = %q, want auto", got)
	}
}
