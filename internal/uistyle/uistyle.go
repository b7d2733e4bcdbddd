// Package uistyle enumerates the selectable UI styles: every folder under
// <root>/styles is a style, numbered from 1 in name order, and id 0 is the
// root itself.
package uistyle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultName is the token of the built-in style.
const DefaultName = "default"

const stylesDir = "styles"

// ErrUnknownStyle is returned when a style id or name is not in the list.
var ErrUnknownStyle = errors.New("unknown ui style")

// Token pairs a style name with its id.
type Token struct {
	Name string
	ID   int
}

// Styles is the token list for one UI root.
type Styles struct {
	root   string
	tokens []Token
}

// Scan lists the style folders below root. A missing styles folder yields
// only the default style.
func Scan(root string) (*Styles, error) {
	s := &Styles{root: root, tokens: []Token{{Name: DefaultName, ID: 0}}}
	entries, err := os.ReadDir(filepath.Join(root, stylesDir))
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list ui styles: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for i, n := range names {
		s.tokens = append(s.tokens, Token{Name: n, ID: i + 1})
	}
	return s, nil
}

// Tokens returns the styles, default first.
func (s *Styles) Tokens() []Token {
	out := make([]Token, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// ID looks a style up by name.
func (s *Styles) ID(name string) (int, error) {
	for _, t := range s.tokens {
		if t.Name == name {
			return t.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
}

// Path returns the UI directory for the style id.
func (s *Styles) Path(id int) (string, error) {
	if id == 0 {
		return s.root, nil
	}
	for _, t := range s.tokens {
		if t.ID == id {
			return filepath.Join(s.root, stylesDir, t.Name), nil
		}
	}
	return "", fmt.Errorf("%w: id %d", ErrUnknownStyle, id)
}

// Resolve returns the UI directory for a style name.
func (s *Styles) Resolve(name string) (string, error) {
	id, err := s.ID(name)
	if err != nil {
		return "", err
	}
	return s.Path(id)
}
