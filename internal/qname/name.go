// Package qname represents YANG's qualified identifiers: a name paired with
// the module that owns it, the YANG analogue of a namespace+local QName.
package qname

import (
	"fmt"
	"strings"
)

// Name is a name qualified by the module that defines it. Module is the
// module's own name (not a prefix — prefixes are resolved to a module
// before a Name is constructed).
type Name struct {
	Module string
	Local  string
}

// String returns the Name in "module:local" form, or just local if Module
// is empty.
func (n Name) String() string {
	if n.Module == "" {
		return n.Local
	}
	return n.Module + ":" + n.Local
}

// IsZero reports whether n is the zero value.
func (n Name) IsZero() bool {
	return n.Module == "" && n.Local == ""
}

// Equal reports whether two Names name the same qualified identifier.
func (n Name) Equal(other Name) bool {
	return n.Module == other.Module && n.Local == other.Local
}

// Split splits a "prefix:local" identifier into its prefix and local parts
// without resolving the prefix to a module. An identifier with no colon
// returns hasPrefix == false.
func Split(identifier string) (prefix, local string, hasPrefix bool) {
	prefix, local, hasPrefix = strings.Cut(identifier, ":")
	if !hasPrefix {
		return "", identifier, false
	}
	return prefix, local, true
}

// Parse trims and validates a "prefix:local" or "local" identifier,
// returning its parts.
func Parse(identifier string) (prefix, local string, hasPrefix bool, err error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return "", "", false, fmt.Errorf("empty identifier")
	}
	prefix, local, hasPrefix = Split(trimmed)
	prefix = strings.TrimSpace(prefix)
	local = strings.TrimSpace(local)
	if local == "" {
		return "", "", false, fmt.Errorf("invalid identifier %q: missing local part", identifier)
	}
	return prefix, local, hasPrefix, nil
}

// ModuleResolver maps a prefix used in a specific module's context to the
// module name it refers to (the module's own prefix, an import's prefix,
// or the empty prefix for the local module).
type ModuleResolver interface {
	ResolveModule(prefix string) (module string, ok bool)
}

// Resolve parses identifier and resolves its prefix (or the absence of
// one) to a qualified Name via resolver.
func Resolve(identifier string, resolver ModuleResolver) (Name, error) {
	prefix, local, _, err := Parse(identifier)
	if err != nil {
		return Name{}, err
	}
	module, ok := resolver.ResolveModule(prefix)
	if !ok {
		return Name{}, fmt.Errorf("prefix %q not found in module context", prefix)
	}
	return Name{Module: module, Local: local}, nil
}
