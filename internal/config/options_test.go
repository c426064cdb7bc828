package config

import "testing"

func TestDefineUndefine(t *testing.T) {
	var opt Options

	opt.Define("MISSION_PACK")
	if !opt.IsDefined("MISSION_PACK") {
		t.Fatal("define did not register the symbol")
	}
	if v, _ := opt.DefinedValue("MISSION_PACK"); v != "1" {
		t.Errorf("default define value = %q, want \"1\"", v)
	}

	opt.DefineValue("MISSION_PACK", "2")
	if v, _ := opt.DefinedValue("MISSION_PACK"); v != "2" {
		t.Errorf("redefine did not overwrite, value = %q", v)
	}

	opt.Undefine("MISSION_PACK")
	if opt.IsDefined("MISSION_PACK") {
		t.Error("undefine did not remove the symbol")
	}

	// Removing an absent symbol must not panic.
	opt.Undefine("NEVER_DEFINED")
}

func TestDefinesAreCaseSensitive(t *testing.T) {
	var opt Options
	opt.Define("Debug")
	if opt.IsDefined("DEBUG") || opt.IsDefined("debug") {
		t.Error("defines must compare case-sensitively")
	}
}

func TestHeaderVersion(t *testing.T) {
	tests := []struct {
		target Target
		want   HeaderVersion
	}{
		{TargetGTA3, HeaderLiberty},
		{TargetGTAVC, HeaderMiami},
		{TargetGTASA, HeaderSanAndreas},
	}
	for _, tt := range tests {
		opt := Options{Target: tt.target}
		if got := opt.HeaderVersion(); got != tt.want {
			t.Errorf("HeaderVersion(%v) = %v, want %v", tt.target, got, tt.want)
		}
	}
}

func TestHeaderVersionPanicsOnNone(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("HeaderVersion for TargetNone must panic")
		}
	}()
	opt := Options{Target: TargetNone}
	_ = opt.HeaderVersion()
}

func TestParseTarget(t *testing.T) {
	for name, want := range map[string]Target{
		"gta3": TargetGTA3, "gtavc": TargetGTAVC, "gtasa": TargetGTASA, "none": TargetNone, "": TargetNone,
	} {
		got, err := ParseTarget(name)
		if err != nil || got != want {
			t.Errorf("ParseTarget(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseTarget("gta4"); err == nil {
		t.Error("ParseTarget accepted an unknown target")
	}
}
