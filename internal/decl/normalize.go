package decl

import (
	"golang.org/x/text/unicode/norm"

	"schemac/internal/source"
)

// NormalizeName canonicalizes an identifier to NFC before it is interned,
// so that two differently-composed Unicode spellings of the same name
// collide in duplicate-name detection instead of silently coexisting.
func NormalizeName(s string) string {
	return norm.NFC.String(s)
}

// Intern normalizes and interns name, returning its StringID.
func (t *Tree) Intern(name string) source.StringID {
	return t.Interner.Intern(NormalizeName(name))
}
