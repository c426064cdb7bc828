package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

func u32(v uint32) *uint32 { return &v }

// Preset returns the canonical options for a target generation. The caller
// may adjust switches afterwards, before the batch starts.
func Preset(target Target) Options {
	opt := Options{
		Lang:            LangGTA3Script,
		Target:          target,
		EntityTracking:  true,
		ScriptNameCheck: true,
	}

	switch target {
	case TargetGTA3:
		opt.TimerIndex = 16
		opt.LocalVarLimit = 16
		opt.MissionVarBegin = 8
	case TargetGTAVC:
		opt.TimerIndex = 16
		opt.LocalVarLimit = 16
		opt.MissionVarBegin = 0
	case TargetGTASA:
		opt.TimerIndex = 32
		opt.LocalVarLimit = 32
		opt.MissionVarBegin = 0
		opt.FSwitch = true
		opt.FArrays = true
		opt.SkipCutscene = true
		opt.SwitchCaseLimit = u32(75)
		opt.ArrayElemLimit = u32(255)
	case TargetNone:
		opt.FSyntaxOnly = true
	}
	return opt
}

// ParseTarget maps a user-facing name onto a Target.
func ParseTarget(name string) (Target, error) {
	switch name {
	case "gta3":
		return TargetGTA3, nil
	case "gtavc":
		return TargetGTAVC, nil
	case "gtasa":
		return TargetGTASA, nil
	case "none", "":
		return TargetNone, nil
	}
	return TargetNone, fmt.Errorf("unknown target %q (expected gta3|gtavc|gtasa|none)", name)
}

// presetFile mirrors the TOML overlay format. Pointer fields distinguish
// "absent" from a deliberate zero.
type presetFile struct {
	Switches struct {
		Headerless         *bool `toml:"headerless"`
		Pedantic           *bool `toml:"pedantic"`
		Guesser            *bool `toml:"guesser"`
		UseHalfFloat       *bool `toml:"use_half_float"`
		HasTextLabelPrefix *bool `toml:"has_text_label_prefix"`
		SkipSingleIfs      *bool `toml:"skip_single_ifs"`
		OptimizeZeroFloats *bool `toml:"optimize_zero_floats"`
		EntityTracking     *bool `toml:"entity_tracking"`
		ScriptNameCheck    *bool `toml:"script_name_check"`
		FSwitch            *bool `toml:"fswitch"`
		AllowBreakContinue *bool `toml:"allow_break_continue"`
		ScopeThenLabel     *bool `toml:"scope_then_label"`
		FArrays            *bool `toml:"farrays"`
		StreamedScripts    *bool `toml:"streamed_scripts"`
		TextLabelVars      *bool `toml:"text_label_vars"`
		UseLocalOffsets    *bool `toml:"use_local_offsets"`
		SkipCutscene       *bool `toml:"skip_cutscene"`
		RelaxNot           *bool `toml:"relax_not"`
		OutputCleo         *bool `toml:"output_cleo"`
	} `toml:"switches"`
	Limits struct {
		TimerIndex      *int32  `toml:"timer_index"`
		LocalVarLimit   *uint32 `toml:"local_var_limit"`
		MissionVarBegin *uint32 `toml:"mission_var_begin"`
		MissionVarLimit *uint32 `toml:"mission_var_limit"`
		SwitchCaseLimit *uint32 `toml:"switch_case_limit"`
		ArrayElemLimit  *uint32 `toml:"array_elem_limit"`
		Cleo            *uint8  `toml:"cleo"`
	} `toml:"limits"`
	Defines map[string]string `toml:"defines"`
}

// LoadPreset overlays a TOML preset file on base and returns the result.
// Malformed input is a configuration error.
func LoadPreset(path string, base Options) (Options, error) {
	var file presetFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return base, fmt.Errorf("%s: failed to parse preset: %w", path, err)
	}

	opt := base
	sw := file.Switches
	setBool(&opt.Headerless, sw.Headerless)
	setBool(&opt.Pedantic, sw.Pedantic)
	setBool(&opt.Guesser, sw.Guesser)
	setBool(&opt.UseHalfFloat, sw.UseHalfFloat)
	setBool(&opt.HasTextLabelPrefix, sw.HasTextLabelPrefix)
	setBool(&opt.SkipSingleIfs, sw.SkipSingleIfs)
	setBool(&opt.OptimizeZeroFloats, sw.OptimizeZeroFloats)
	setBool(&opt.EntityTracking, sw.EntityTracking)
	setBool(&opt.ScriptNameCheck, sw.ScriptNameCheck)
	setBool(&opt.FSwitch, sw.FSwitch)
	setBool(&opt.AllowBreakContinue, sw.AllowBreakContinue)
	setBool(&opt.ScopeThenLabel, sw.ScopeThenLabel)
	setBool(&opt.FArrays, sw.FArrays)
	setBool(&opt.StreamedScripts, sw.StreamedScripts)
	setBool(&opt.TextLabelVars, sw.TextLabelVars)
	setBool(&opt.UseLocalOffsets, sw.UseLocalOffsets)
	setBool(&opt.SkipCutscene, sw.SkipCutscene)
	setBool(&opt.RelaxNot, sw.RelaxNot)
	setBool(&opt.OutputCleo, sw.OutputCleo)

	lim := file.Limits
	if lim.TimerIndex != nil {
		opt.TimerIndex = *lim.TimerIndex
	}
	if lim.LocalVarLimit != nil {
		opt.LocalVarLimit = *lim.LocalVarLimit
	}
	if lim.MissionVarBegin != nil {
		opt.MissionVarBegin = *lim.MissionVarBegin
	}
	if lim.MissionVarLimit != nil {
		opt.MissionVarLimit = lim.MissionVarLimit
	}
	if lim.SwitchCaseLimit != nil {
		opt.SwitchCaseLimit = lim.SwitchCaseLimit
	}
	if lim.ArrayElemLimit != nil {
		opt.ArrayElemLimit = lim.ArrayElemLimit
	}
	if lim.Cleo != nil {
		opt.Cleo = lim.Cleo
	}

	for name, value := range file.Defines {
		opt.DefineValue(name, value)
	}
	return opt, nil
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
