// Package config holds the dialect configuration of one compilation run:
// the target VM generation, feature switches, numeric limits, and the
// user-defined preprocessor symbols. An Options value is built once at job
// start and shared read-only by every translation-unit worker.
package config

import "fmt"

// Lang selects which source syntax family the front end parses.
type Lang uint8

const (
	// LangIR2 is the textual intermediate representation.
	LangIR2 Lang = iota
	// LangGTA3Script is the scripting language proper.
	LangGTA3Script
)

func (l Lang) String() string {
	switch l {
	case LangIR2:
		return "ir2"
	case LangGTA3Script:
		return "gta3script"
	}
	return "unknown"
}

// Target selects the binary VM generation being compiled for. TargetNone
// is valid only in syntax-check-only mode.
type Target uint8

const (
	TargetNone Target = iota
	TargetGTA3
	TargetGTAVC
	TargetGTASA
)

func (t Target) String() string {
	switch t {
	case TargetGTA3:
		return "gta3"
	case TargetGTAVC:
		return "gtavc"
	case TargetGTASA:
		return "gtasa"
	default:
		return "none"
	}
}

// HeaderVersion is the concrete SCM header enumeration derived from Target
// for the output stage.
type HeaderVersion uint8

const (
	HeaderLiberty HeaderVersion = iota
	HeaderMiami
	HeaderSanAndreas
)

// Options is the dialect configuration record. It must not be mutated once
// a job batch has started.
type Options struct {
	Lang   Lang
	Target Target

	// Feature switches. Orthogonal; meaningless combinations for a given
	// target are a downstream validation concern.
	Headerless         bool
	Pedantic           bool
	Guesser            bool
	UseHalfFloat       bool
	HasTextLabelPrefix bool
	SkipSingleIfs      bool
	OptimizeZeroFloats bool
	EntityTracking     bool
	ScriptNameCheck    bool
	FSwitch            bool
	AllowBreakContinue bool
	ScopeThenLabel     bool
	FArrays            bool
	StreamedScripts    bool
	TextLabelVars      bool
	UseLocalOffsets    bool
	SkipCutscene       bool
	FSyntaxOnly        bool
	EmitIR2            bool
	LinearSweep        bool
	RelaxNot           bool
	OutputCleo         bool

	TimerIndex      int32
	LocalVarLimit   uint32
	MissionVarBegin uint32

	// nil means unbounded / not applicable, distinct from zero.
	MissionVarLimit *uint32
	SwitchCaseLimit *uint32
	ArrayElemLimit  *uint32
	Cleo            *uint8

	defines map[string]string
}

// Define registers a preprocessor symbol with the value "1", overwriting
// any previous value.
func (o *Options) Define(symbol string) {
	o.DefineValue(symbol, "1")
}

// DefineValue registers a preprocessor symbol with an explicit value.
func (o *Options) DefineValue(symbol, value string) {
	if o.defines == nil {
		o.defines = make(map[string]string)
	}
	o.defines[symbol] = value
}

// Undefine removes a symbol. It is a no-op when the symbol is absent.
func (o *Options) Undefine(symbol string) {
	delete(o.defines, symbol)
}

// IsDefined reports whether a symbol of this exact spelling is defined.
func (o *Options) IsDefined(symbol string) bool {
	_, ok := o.defines[symbol]
	return ok
}

// DefinedValue returns the value of a symbol, if defined.
func (o *Options) DefinedValue(symbol string) (string, bool) {
	v, ok := o.defines[symbol]
	return v, ok
}

// HeaderVersion maps the target onto the output stage's header
// enumeration. Callers must check the compilation mode first: requesting a
// header for TargetNone is a programming error.
func (o *Options) HeaderVersion() HeaderVersion {
	switch o.Target {
	case TargetGTA3:
		return HeaderLiberty
	case TargetGTAVC:
		return HeaderMiami
	case TargetGTASA:
		return HeaderSanAndreas
	default:
		panic(fmt.Sprintf("config: HeaderVersion requested for target %q", o.Target))
	}
}
