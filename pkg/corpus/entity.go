package corpus

import (
	"fmt"
	"strings"
)

// Kind classifies an entity. It is descriptive only and never affects ranking.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindConstant
	KindVariable
	KindType
	KindProcedure
	KindProcedureGroup
	KindBuiltin
)

var kindNames = map[Kind]string{
	KindConstant:       "constant",
	KindVariable:       "variable",
	KindType:           "type",
	KindProcedure:      "procedure",
	KindProcedureGroup: "procedure group",
	KindBuiltin:        "builtin",
}

// String returns the long name of k.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Code returns the single letter code of k used by compact corpus files.
func (k Kind) Code() string {
	switch k {
	case KindConstant:
		return "c"
	case KindVariable:
		return "v"
	case KindType:
		return "t"
	case KindProcedure:
		return "p"
	case KindProcedureGroup:
		return "g"
	case KindBuiltin:
		return "b"
	}
	return ""
}

// ParseKind accepts a single letter code or a long kind name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "constant":
		return KindConstant, nil
	case "v", "variable":
		return KindVariable, nil
	case "t", "type":
		return KindType, nil
	case "p", "procedure", "proc":
		return KindProcedure, nil
	case "g", "procedure group", "procedure_group", "group":
		return KindProcedureGroup, nil
	case "b", "builtin":
		return KindBuiltin, nil
	}
	return KindUnknown, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Entity is one searchable symbol. Entities are immutable once built.
type Entity struct {
	Name      string
	Qualifier string
	// Full is Qualifier + "." + Name, or Name when Qualifier is empty.
	Full string
	Kind Kind
	// Package owns the page Link points into. It differs from Qualifier
	// for builtin entities indexed under the empty qualifier.
	Package string
	Link    string
	Builtin bool
}

// FullName joins a qualifier and a name the way Entity.Full is built.
func FullName(qualifier, name string) string {
	if qualifier == "" {
		return name
	}
	return qualifier + "." + name
}

// BuiltinPackage reports whether pkg hosts compiler-provided symbols.
func BuiltinPackage(pkg string) bool {
	switch pkg {
	case "builtin", "intrinsics", "runtime":
		return true
	}
	return false
}

// KindLabel returns the descriptive tag shown next to e.
func (e Entity) KindLabel() string {
	label := e.Kind.String()
	if e.Kind == KindBuiltin && e.Package == "intrinsics" {
		label = "intrinsics"
	}
	if e.Qualifier == "" && BuiltinPackage(e.Package) {
		label = "(built-in) " + label
	}
	return label
}
