package commands

import (
	"strings"

	"github.com/AndroidModLoader/gta3sc/internal/diag"
)

// Catalog is the table of built-in commands and named alternators for one
// compilation run. Lookup follows the language's identifier rules:
// GTA3script names are case-insensitive with an uppercase canonical form.
type Catalog struct {
	commands    map[string]*Command
	alternators map[string]*Alternator
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		commands:    make(map[string]*Command),
		alternators: make(map[string]*Alternator),
	}
}

// AddCommand registers a command under its canonical name.
func (c *Catalog) AddCommand(cmd *Command) {
	c.commands[canonical(cmd.Name)] = cmd
}

// AddAlternator registers a named alternator.
func (c *Catalog) AddAlternator(alt *Alternator) {
	c.alternators[canonical(alt.Name)] = alt
}

// Command looks a command up by name. The second result is false when no
// command of that name exists in the catalog.
func (c *Catalog) Command(name string) (*Command, bool) {
	cmd, ok := c.commands[canonical(name)]
	return cmd, ok
}

// Alternator looks a named alternator up by name.
func (c *Catalog) Alternator(name string) (*Alternator, bool) {
	alt, ok := c.alternators[canonical(name)]
	return alt, ok
}

// Len returns the number of registered commands.
func (c *Catalog) Len() int { return len(c.commands) }

// MustSupported guards the transition from "looked up" to "dialect-valid".
// If cmd is nil or not supported under the active dialect, it reports a
// fatal error at ctx and aborts the job; otherwise it returns cmd
// unchanged. Downstream stages may treat the result as valid by
// construction.
func (c *Catalog) MustSupported(eng *diag.Engine, ctx diag.Context, cmd *Command, name string) *Command {
	if cmd == nil || !cmd.Supported {
		eng.FatalError(ctx, "command '%s' undefined or unsupported", name)
	}
	return cmd
}

// MustSupportedAlternator is the alternator counterpart of MustSupported.
func (c *Catalog) MustSupportedAlternator(eng *diag.Engine, ctx diag.Context, alt *Alternator, name string) *Alternator {
	if alt == nil || !alt.Supported {
		eng.FatalError(ctx, "alternator '%s' undefined or unsupported", name)
	}
	return alt
}

// canonical maps an identifier onto its uppercase canonical spelling.
// Identifiers are ASCII by the language's rules.
func canonical(name string) string {
	return strings.ToUpper(name)
}
