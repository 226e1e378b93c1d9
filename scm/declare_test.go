/*
Copyright (C) 2024  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package scm

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHelpTopic(t *testing.T) {
	var b bytes.Buffer
	if err := Help(&b, &Globalenv, "if"); err != nil {
		t.Fatalf("help if: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "Help for: if") || !strings.Contains(out, "3-3") || !strings.Contains(out, "condition (bool)") {
		t.Fatalf("help if:\n%s", out)
	}
}

func TestHelpIndex(t *testing.T) {
	var b bytes.Buffer
	if err := Help(&b, &Globalenv, ""); err != nil {
		t.Fatalf("help: %v", err)
	}
	out := b.String()
	for _, want := range []string{"-- Builtins --", "-- Arithmetic --", "  concat: ", "  symbol: "} {
		if !strings.Contains(out, want) {
			t.Fatalf("help index lacks %q:\n%s", want, out)
		}
	}
}

func TestHelpUnknown(t *testing.T) {
	var b bytes.Buffer
	err := Help(&b, &Globalenv, "nope")
	var ee *EvalError
	if !errors.As(err, &ee) || ee.Op != "help" {
		t.Fatalf("expected help error, got %v", err)
	}
}

func TestWriteDocumentation(t *testing.T) {
	dir := t.TempDir()
	if err := WriteDocumentation(dir); err != nil {
		t.Fatalf("write docs: %v", err)
	}
	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if !strings.Contains(string(index), "- [Builtins](builtins.md)") {
		t.Fatalf("index.md:\n%s", index)
	}
	builtins, err := os.ReadFile(filepath.Join(dir, "builtins.md"))
	if err != nil {
		t.Fatalf("builtins: %v", err)
	}
	for _, want := range []string{"## eval", "## symbol", "**Allowed number of parameters:** 0-n", "**Allowed number of parameters:** 3-3"} {
		if !strings.Contains(string(builtins), want) {
			t.Fatalf("builtins.md lacks %q", want)
		}
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Builtins":     "builtins",
		" Hello World!": "hello-world",
		"!!!":          "chapter",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Fatalf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
