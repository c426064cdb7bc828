// Package commands holds the catalog of built-in script operations for the
// active dialect. The catalog is built once at job start; afterwards every
// worker treats it as read-only.
package commands

import "fmt"

// ArgKind classifies the argument shapes an alternator expects.
type ArgKind uint8

const (
	ArgAny ArgKind = iota
	ArgInt
	ArgFloat
	ArgLabel
	ArgTextLabel
	ArgString
	ArgVar
	ArgModel
)

func (k ArgKind) String() string {
	switch k {
	case ArgInt:
		return "int"
	case ArgFloat:
		return "float"
	case ArgLabel:
		return "label"
	case ArgTextLabel:
		return "text_label"
	case ArgString:
		return "string"
	case ArgVar:
		return "var"
	case ArgModel:
		return "model"
	default:
		return "any"
	}
}

// ParseArgKind maps a definition-file kind name onto an ArgKind.
func ParseArgKind(name string) (ArgKind, error) {
	switch name {
	case "int":
		return ArgInt, nil
	case "float":
		return ArgFloat, nil
	case "label":
		return ArgLabel, nil
	case "text_label":
		return ArgTextLabel, nil
	case "string":
		return ArgString, nil
	case "var":
		return ArgVar, nil
	case "model":
		return ArgModel, nil
	case "any":
		return ArgAny, nil
	}
	return ArgAny, fmt.Errorf("unknown argument kind %q", name)
}

// Param is one expected argument of an alternator.
type Param struct {
	Kind     ArgKind
	Optional bool
}

// Alternator is one overload signature, selected by argument shape at a
// call site. Named alternators are also looked up directly; anonymous ones
// exist only inside a command's overload list.
type Alternator struct {
	Name      string
	Supported bool
	Params    []Param
	Vararg    bool
}

// MinArgs returns the number of mandatory arguments.
func (a *Alternator) MinArgs() int {
	n := 0
	for _, p := range a.Params {
		if !p.Optional {
			n++
		}
	}
	return n
}

// AcceptsArity reports whether a call site with n arguments can bind to
// this signature.
func (a *Alternator) AcceptsArity(n int) bool {
	if n < a.MinArgs() {
		return false
	}
	if a.Vararg {
		return true
	}
	return n <= len(a.Params)
}

// Command is one built-in operation of the scripting language. Supported
// reflects availability under the active dialect configuration.
type Command struct {
	Name        string
	Opcode      uint16
	Supported   bool
	Alternators []*Alternator
}

// Select picks the best-matching overload for the given argument kinds:
// first by arity, then by kind compatibility in order. It returns nil when
// no overload accepts the call.
func (c *Command) Select(args []ArgKind) *Alternator {
	var arityOnly *Alternator
	for _, alt := range c.Alternators {
		if !alt.AcceptsArity(len(args)) {
			continue
		}
		if altKindsMatch(alt, args) {
			return alt
		}
		if arityOnly == nil {
			arityOnly = alt
		}
	}
	return arityOnly
}

func altKindsMatch(alt *Alternator, args []ArgKind) bool {
	for i, got := range args {
		var want ArgKind
		if i < len(alt.Params) {
			want = alt.Params[i].Kind
		} else if alt.Vararg && len(alt.Params) > 0 {
			want = alt.Params[len(alt.Params)-1].Kind
		} else {
			return false
		}
		if want != ArgAny && got != ArgAny && want != got {
			return false
		}
	}
	return true
}
