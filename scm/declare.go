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

import "io"
import "os"
import "fmt"
import "strings"
import "path/filepath"

// Unlimited as MaxParameter accepts any number of trailing arguments
const Unlimited = -1

type Declaration struct {
	Name         string
	Desc         string
	MinParameter int
	MaxParameter int
	Params       []DeclarationParameter
	Returns      string // any | string | number | bool | list | symbol | nil
	Fn           func(*Env, ...Scmer) (Scmer, error)
}

type DeclarationParameter struct {
	Name string
	Type string // any | string | number | bool | list | symbol | nil
	Desc string
}

var declaration_titles []string
var declarations map[string]*Declaration = make(map[string]*Declaration)

func DeclareTitle(title string) {
	declaration_titles = append(declaration_titles, "#"+title)
}

// Declare registers an operator in env and in the documentation index
func Declare(env *Env, def *Declaration) {
	if _, ok := declarations[def.Name]; !ok {
		declaration_titles = append(declaration_titles, def.Name)
	}
	declarations[def.Name] = def
	env.Vars[Symbol(def.Name)] = def
}

// checkArity is run before every operator application; the operators
// themselves may rely on MinParameter arguments being present.
func checkArity(def *Declaration, n int) error {
	if n < def.MinParameter {
		return &EvalError{def.Name, fmt.Sprintf("expects at least %d parameters, got %d", def.MinParameter, n)}
	}
	if def.MaxParameter != Unlimited && n > def.MaxParameter {
		return &EvalError{def.Name, fmt.Sprintf("expects at most %d parameters, got %d", def.MaxParameter, n)}
	}
	return nil
}

func arityString(def *Declaration) string {
	if def.MaxParameter == Unlimited {
		return fmt.Sprintf("%d-n", def.MinParameter)
	}
	return fmt.Sprintf("%d-%d", def.MinParameter, def.MaxParameter)
}

// slugify makes a filesystem-safe, lowercase slug from a chapter title.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "chapter"
	}
	return b.String()
}

// chapter is one DeclareTitle and the operators declared after it
type chapter struct {
	title string
	slug  string
	defs  []*Declaration
}

// chapters groups the declarations in declaration order. visible filters
// operators; nil keeps all of them.
func chapters(visible func(*Declaration) bool) []*chapter {
	var result []*chapter
	slugs := map[string]bool{}
	open := func(title string) *chapter {
		slug := slugify(title)
		for i := 2; slugs[slug]; i++ {
			slug = fmt.Sprintf("%s-%d", slugify(title), i)
		}
		slugs[slug] = true
		c := &chapter{title: title, slug: slug}
		result = append(result, c)
		return c
	}
	var current *chapter
	for _, t := range declaration_titles {
		if strings.HasPrefix(t, "#") {
			current = open(strings.TrimSpace(t[1:]))
			continue
		}
		def := declarations[t]
		if def == nil || (visible != nil && !visible(def)) {
			continue
		}
		if current == nil {
			current = open("General")
		}
		current.defs = append(current.defs, def)
	}
	return result
}

func writeMarkdown(w io.Writer, def *Declaration) {
	fmt.Fprintf(w, "## %s\n\n", def.Name)
	if def.Desc != "" {
		fmt.Fprintf(w, "%s\n\n", def.Desc)
	}
	fmt.Fprintf(w, "**Allowed number of parameters:** %s\n\n", arityString(def))
	fmt.Fprint(w, "### Parameters\n\n")
	if len(def.Params) == 0 {
		fmt.Fprint(w, "_This operator has no parameters._\n\n")
	} else {
		for _, p := range def.Params {
			fmt.Fprintf(w, "- **%s** (`%s`): %s\n", p.Name, p.Type, p.Desc)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "### Returns\n\n`%s`\n\n", def.Returns)
}

// WriteDocumentation writes index.md linking one <chapter>.md per
// DeclareTitle into folder
func WriteDocumentation(folder string) error {
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("failed to create folder %q: %w", folder, err)
	}
	var index strings.Builder
	index.WriteString("# Documentation\n\n")
	for _, c := range chapters(nil) {
		if len(c.defs) == 0 {
			continue
		}
		fmt.Fprintf(&index, "- [%s](%s.md)\n", c.title, c.slug)
		var page strings.Builder
		fmt.Fprintf(&page, "# %s\n\n", c.title)
		for _, def := range c.defs {
			writeMarkdown(&page, def)
		}
		if err := os.WriteFile(filepath.Join(folder, c.slug+".md"), []byte(page.String()), 0o644); err != nil {
			return err
		}
	}
	return os.WriteFile(filepath.Join(folder, "index.md"), []byte(index.String()), 0o644)
}

// Help prints the operators visible from en, or the documentation of topic
func Help(w io.Writer, en *Env, topic string) error {
	if topic == "" {
		fmt.Fprintln(w, "Available operators:")
		visible := func(def *Declaration) bool { return en.FindRead(Symbol(def.Name)) != nil }
		for _, c := range chapters(visible) {
			if len(c.defs) == 0 {
				continue
			}
			fmt.Fprintln(w, "")
			fmt.Fprintln(w, "-- "+c.title+" --")
			for _, def := range c.defs {
				fmt.Fprintln(w, "  "+def.Name+": "+strings.Split(def.Desc, "\n")[0])
			}
		}
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "get further information by typing (help \"operatorname\")")
		return nil
	}
	def := en.FindRead(Symbol(topic))
	if def == nil {
		return &EvalError{"help", "operator not found: " + topic}
	}
	fmt.Fprintln(w, "Help for: "+def.Name)
	fmt.Fprintln(w, "===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, def.Desc)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Allowed number of parameters: "+arityString(def))
	fmt.Fprintln(w, "")
	for _, p := range def.Params {
		fmt.Fprintln(w, " - "+p.Name+" ("+p.Type+"): "+p.Desc)
	}
	fmt.Fprintln(w, "")
	return nil
}
