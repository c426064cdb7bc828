package commands

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/AndroidModLoader/gta3sc/internal/config"
)

//go:embed defs/commands.toml
var defaultDefs []byte

// defFile mirrors the TOML definition format.
type defFile struct {
	Commands    []commandDef    `toml:"command"`
	Alternators []alternatorDef `toml:"alternator"`
}

type commandDef struct {
	Name      string        `toml:"name"`
	Opcode    uint16        `toml:"opcode"`
	Targets   []string      `toml:"targets"`
	Args      []string      `toml:"args"`
	Overloads []overloadDef `toml:"overload"`
}

type alternatorDef struct {
	Name    string   `toml:"name"`
	Targets []string `toml:"targets"`
	Args    []string `toml:"args"`
	Vararg  bool     `toml:"vararg"`
}

type overloadDef struct {
	Args   []string `toml:"args"`
	Vararg bool     `toml:"vararg"`
}

// DefaultCatalog builds the catalog shipped with the compiler, gated for
// the given target.
func DefaultCatalog(target config.Target) (*Catalog, error) {
	return Load(defaultDefs, target)
}

// LoadFile reads a TOML definition file and builds a catalog gated for the
// given target. Malformed input is a configuration error.
func LoadFile(path string, target config.Target) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cat, err := Load(data, target)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// Load parses TOML command definitions. Every listed command enters the
// catalog; Supported reflects whether the target appears in its gate list.
// TargetNone (syntax-check-only) treats every listed command as supported.
func Load(data []byte, target config.Target) (*Catalog, error) {
	var file defFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse command definitions: %w", err)
	}

	cat := NewCatalog()
	for _, def := range file.Commands {
		if def.Name == "" {
			return nil, fmt.Errorf("command definition without a name")
		}
		cmd := &Command{
			Name:      canonical(def.Name),
			Opcode:    def.Opcode,
			Supported: gateOpen(def.Targets, target),
		}
		if len(def.Args) > 0 {
			alt, err := parseOverload(overloadDef{Args: def.Args}, cmd.Supported)
			if err != nil {
				return nil, fmt.Errorf("command %s: %w", cmd.Name, err)
			}
			cmd.Alternators = append(cmd.Alternators, alt)
		}
		for _, ov := range def.Overloads {
			alt, err := parseOverload(ov, cmd.Supported)
			if err != nil {
				return nil, fmt.Errorf("command %s: %w", cmd.Name, err)
			}
			cmd.Alternators = append(cmd.Alternators, alt)
		}
		if len(cmd.Alternators) == 0 {
			// Zero-argument command.
			cmd.Alternators = append(cmd.Alternators, &Alternator{Supported: cmd.Supported})
		}
		cat.AddCommand(cmd)
	}

	for _, def := range file.Alternators {
		if def.Name == "" {
			return nil, fmt.Errorf("alternator definition without a name")
		}
		supported := gateOpen(def.Targets, target)
		alt, err := parseOverload(overloadDef{Args: def.Args, Vararg: def.Vararg}, supported)
		if err != nil {
			return nil, fmt.Errorf("alternator %s: %w", def.Name, err)
		}
		alt.Name = canonical(def.Name)
		cat.AddAlternator(alt)
	}
	return cat, nil
}

func gateOpen(targets []string, target config.Target) bool {
	if target == config.TargetNone {
		return true
	}
	for _, name := range targets {
		if name == target.String() {
			return true
		}
	}
	return false
}

// parseOverload decodes an argument list. A trailing '?' marks a parameter
// as optional.
func parseOverload(def overloadDef, supported bool) (*Alternator, error) {
	alt := &Alternator{Supported: supported, Vararg: def.Vararg}
	for _, arg := range def.Args {
		optional := strings.HasSuffix(arg, "?")
		kindName := strings.TrimSuffix(arg, "?")
		kind, err := ParseArgKind(kindName)
		if err != nil {
			return nil, err
		}
		alt.Params = append(alt.Params, Param{Kind: kind, Optional: optional})
	}
	return alt, nil
}
