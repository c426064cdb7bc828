package driver

import (
	"strconv"
	"strings"

	"github.com/AndroidModLoader/gta3sc/internal/ast"
	"github.com/AndroidModLoader/gta3sc/internal/commands"
	"github.com/AndroidModLoader/gta3sc/internal/diag"
	"github.com/AndroidModLoader/gta3sc/internal/source"
	"github.com/AndroidModLoader/gta3sc/internal/token"
)

// maxScriptNameLen is the longest script name the runtime stores.
const maxScriptNameLen = 7

// unitJob resolves one translation unit against the shared catalog and
// model tables. All shared state it touches is either read-only or atomic.
type unitJob struct {
	req     *Request
	file    *source.File
	streams *token.Registry
	metrics *batchMetrics
}

// run processes the unit. It executes inside diag.RunJob: a fatal
// diagnostic unwinds back to the batch driver, releasing the stream on
// the way out.
func (j *unitJob) run() {
	stream := token.NewStream(j.file)
	sid := j.streams.Register(stream)
	defer j.streams.Release(sid)

	toks := stream.Tokenize()

	line := make([]token.Token, 0, 8)
	for _, tok := range toks {
		switch tok.Kind {
		case token.Word:
			line = append(line, tok)
		case token.Newline, token.EOF:
			if len(line) > 0 {
				j.resolveLine(stream, sid, line)
				line = line[:0]
			}
		}
	}
}

// resolveLine binds one statement to a catalog command and checks its
// arguments.
func (j *unitJob) resolveLine(stream *token.Stream, sid token.StreamID, line []token.Token) {
	first := line[0]
	name := stream.Text(first)

	// A leading "label:" introduces the rest of the line.
	if strings.HasSuffix(name, ":") {
		if len(line) == 1 {
			return
		}
		line = line[1:]
		first = line[0]
		name = stream.Text(first)
	}

	if isDirective(name) {
		return
	}

	cmdNode := ast.NewNode(ast.NodeCommand, name, first, sid)
	args := line[1:]
	argText := make([]string, len(args))
	argKinds := make([]commands.ArgKind, len(args))
	for i, tok := range args {
		argText[i] = stream.Text(tok)
		argKinds[i] = classifyArg(argText[i])
		cmdNode.AddChild(ast.NewNode(ast.NodeArgument, argText[i], tok, sid))
	}

	ctx := diag.NodeContext{Node: cmdNode, Streams: j.streams}
	eng := j.req.Engine

	maybe, ok := j.req.Catalog.Command(name)
	if !ok {
		maybe = nil
	}
	cmd := j.req.Catalog.MustSupported(eng, ctx, maybe, name)

	alt := cmd.Select(argKinds)
	if alt == nil {
		eng.Error(ctx, "wrong number of arguments for command '%s'", name)
		return
	}

	for i := range args {
		argCtx := diag.TokenContext{Stream: stream, Begin: args[i].Begin, End: args[i].End}
		j.checkArg(eng, argCtx, alt, i, argText[i], argKinds[i])
	}

	if cmd.Name == "SCRIPT_NAME" && j.req.Options.ScriptNameCheck && len(args) == 1 {
		if n := len(argText[0]); n > maxScriptNameLen {
			eng.Error(ctx, "script name '%s' exceeds %d characters", argText[0], maxScriptNameLen)
		}
	}

	j.metrics.commandsResolved.Add(1)
}

// checkArg validates one argument against the selected signature. Only
// identifier arguments need resolution: a name in a model slot must be a
// known game object, a name in a variable slot must denote a variable.
func (j *unitJob) checkArg(eng *diag.Engine, ctx diag.Context, alt *commands.Alternator, i int, text string, kind commands.ArgKind) {
	if kind != commands.ArgAny {
		return
	}
	var want commands.ArgKind
	switch {
	case i < len(alt.Params):
		want = alt.Params[i].Kind
	case alt.Vararg && len(alt.Params) > 0:
		want = alt.Params[len(alt.Params)-1].Kind
	default:
		return
	}

	switch want {
	case commands.ArgModel:
		if j.req.Options.EntityTracking && !j.req.Models.IsModelFromIDE(text) {
			eng.Error(ctx, "unknown entity '%s'", text)
		}
	case commands.ArgVar:
		eng.Error(ctx, "undefined symbol '%s'", text)
	}
}

// isDirective reports statement words handled by earlier phases.
func isDirective(name string) bool {
	switch strings.ToUpper(name) {
	case "MISSION_START", "MISSION_END", "{", "}":
		return true
	}
	return false
}

// classifyArg infers an argument kind from its spelling. Identifiers stay
// ArgAny and are resolved against the expected parameter kind.
func classifyArg(text string) commands.ArgKind {
	if text == "" {
		return commands.ArgAny
	}
	if text[0] == '"' {
		return commands.ArgString
	}
	if text[0] == '$' || strings.HasSuffix(text, "@") {
		return commands.ArgVar
	}
	if _, err := strconv.ParseInt(text, 10, 64); err == nil {
		return commands.ArgInt
	}
	if strings.ContainsAny(text, ".") {
		if _, err := strconv.ParseFloat(text, 64); err == nil {
			return commands.ArgFloat
		}
	}
	return commands.ArgAny
}
