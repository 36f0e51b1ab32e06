package prompt

import (
	"bytes"
	"os"
	"testing"
)

// pipedTerminal builds a Terminal reading from a pipe carrying the given
// input, the way scripted callers feed stdin.
func pipedTerminal(t *testing.T, input string) *Terminal {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { r.Close() })
	if _, err := w.WriteString(input); err != nil {
		t.Fatal(err)
	}
	w.Close()
	return &Terminal{In: r, Out: &bytes.Buffer{}}
}

func TestReadLine(t *testing.T) {
	term := pipedTerminal(t, "web.example.com\ndeploy\n")

	host, err := term.ReadLine("Host")
	if err != nil {
		t.Fatalf("ReadLine() error = %v", err)
	}
	if host != "web.example.com" {
		t.Errorf("host = %q", host)
	}

	// Second read must see the second piped line, not lose it to buffering.
	user, err := term.ReadLine("Username")
	if err != nil {
		t.Fatalf("ReadLine() error = %v", err)
	}
	if user != "deploy" {
		t.Errorf("user = %q", user)
	}
}

func TestReadLineCRLF(t *testing.T) {
	term := pipedTerminal(t, "value\r\n")

	got, err := term.ReadLine("x")
	if err != nil {
		t.Fatalf("ReadLine() error = %v", err)
	}
	if got != "value" {
		t.Errorf("got %q, want CRLF stripped", got)
	}
}

func TestReadPasswordPipedFallback(t *testing.T) {
	term := pipedTerminal(t, "hunter2\n")

	pw, err := term.ReadPassword("Password")
	if err != nil {
		t.Fatalf("ReadPassword() error = %v", err)
	}
	if string(pw) != "hunter2" {
		t.Errorf("password = %q", pw)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y\n", false, true},
		{"yes\n", false, true},
		{"n\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"whatever\n", true, false},
	}

	for _, tt := range tests {
		term := pipedTerminal(t, tt.input)
		got, err := term.Confirm("Proceed?", tt.def)
		if err != nil {
			t.Fatalf("Confirm(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q, def=%v) = %v, want %v", tt.input, tt.def, got, tt.want)
		}
	}
}

func TestStaticReplays(t *testing.T) {
	s := &Static{
		Passwords: []string{"one", "two"},
		Lines:     []string{"line"},
		Confirms:  []bool{true},
	}

	if pw, _ := s.ReadPassword(""); string(pw) != "one" {
		t.Errorf("first password = %q", pw)
	}
	if pw, _ := s.ReadPassword(""); string(pw) != "two" {
		t.Errorf("second password = %q", pw)
	}
	if _, err := s.ReadPassword(""); err == nil {
		t.Error("exhausted passwords should error")
	}
	if line, _ := s.ReadLine(""); line != "line" {
		t.Errorf("line = %q", line)
	}
	if ok, _ := s.Confirm("", false); !ok {
		t.Error("confirm = false, want queued true")
	}
}
