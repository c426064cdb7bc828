package diag

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/AndroidModLoader/gta3sc/internal/ast"
	"github.com/AndroidModLoader/gta3sc/internal/source"
	"github.com/AndroidModLoader/gta3sc/internal/token"
)

func testStream(t *testing.T, name, text string) *token.Stream {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(text))
	return token.NewStream(fs.Get(id))
}

func TestRenderNoContext(t *testing.T) {
	got := Render("error", NoContext{}, "something went %s", "wrong")
	want := "gta3sc: error: something went wrong"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderUnitContext(t *testing.T) {
	got := Render("error", UnitContext{Name: "mission1.sc"}, "bad unit")
	want := "mission1.sc: error: bad unit"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderKnownLineUnknownColumn(t *testing.T) {
	ctx := RawPos{Name: "main.sc", Line: 12}
	got := Render("error", ctx, "oops")
	want := "main.sc:12: error: oops"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
	if strings.Contains(got, "^") {
		t.Error("caret line must not appear when the column is unknown")
	}
}

func TestRenderExcerptAndCaret(t *testing.T) {
	stream := testStream(t, "main.sc", "NOP\nWAIT A_LONG_TIME\n")
	ctx := RawPos{Stream: stream, Name: "main.sc", Line: 2, Col: 6}
	got := Render("error", ctx, "bad argument")

	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "main.sc:2:6: error: bad argument" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != " WAIT A_LONG_TIME" {
		t.Errorf("excerpt = %q", lines[1])
	}
	caret := lines[2]
	if !strings.HasSuffix(caret, "^") {
		t.Fatalf("caret line = %q", caret)
	}
	leading := strings.TrimSuffix(caret, "^")
	if len(leading) != 6 || strings.TrimSpace(leading) != "" {
		t.Errorf("caret has %d leading characters %q, want 6 spaces", len(leading), leading)
	}
}

func TestRenderCaretColumnOne(t *testing.T) {
	stream := testStream(t, "a.sc", "BADCMD\n")
	ctx := RawPos{Stream: stream, Name: "a.sc", Line: 1, Col: 1}
	got := Render("error", ctx, "x")

	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", got)
	}
	if lines[2] != " ^" {
		t.Errorf("caret line = %q, want \" ^\"", lines[2])
	}
}

func TestRenderTokenContext(t *testing.T) {
	stream := testStream(t, "b.sc", "NOP\nWAIT 0\n")
	got := Render("warning", TokenContext{Stream: stream, Begin: 4, End: 8}, "w")
	if !strings.HasPrefix(got, "b.sc:2:1: warning: w") {
		t.Errorf("Render = %q", got)
	}

	// An empty span is positionless within the stream.
	got = Render("warning", TokenContext{Stream: stream, Begin: 4, End: 4}, "w")
	if got != "b.sc: warning: w" {
		t.Errorf("empty-span Render = %q", got)
	}
}

func TestRenderNodeContext(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("c.sc", []byte("WAIT 250\n"))
	stream := token.NewStream(fs.Get(id))
	reg := token.NewRegistry()
	sid := reg.Register(stream)

	cmd := ast.NewGroup(ast.NodeCommand, sid)
	cmd.AddChild(ast.NewNode(ast.NodeArgument, "WAIT", token.Token{Kind: token.Word, Begin: 0, End: 4}, sid))
	cmd.AddChild(ast.NewNode(ast.NodeArgument, "250", token.Token{Kind: token.Word, Begin: 5, End: 8}, sid))

	// Textless parent resolves through the first child with text.
	got := Render("error", NodeContext{Node: cmd, Streams: reg}, "e")
	if !strings.HasPrefix(got, "c.sc:1:1: error: e") {
		t.Errorf("Render = %q", got)
	}
}

func TestRenderNodeContextUnresolvable(t *testing.T) {
	reg := token.NewRegistry()
	bare := ast.NewGroup(ast.NodeBlock, token.NoStreamID)
	bare.AddChild(ast.NewGroup(ast.NodeBlock, token.NoStreamID))

	got := Render("error", NodeContext{Node: bare, Streams: reg}, "ignored")
	want := "gta3sc: internal_error: " + internalErrNoStream
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderNodeContextExpiredStream(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("d.sc", []byte("NOP\n"))
	reg := token.NewRegistry()
	sid := reg.Register(token.NewStream(fs.Get(id)))
	node := ast.NewNode(ast.NodeCommand, "NOP", token.Token{Kind: token.Word, Begin: 0, End: 3}, sid)

	reg.Release(sid)
	got := Render("error", NodeContext{Node: node, Streams: reg}, "ignored")
	if !strings.Contains(got, "internal_error") {
		t.Errorf("expired stream must hit the internal-error path, got %q", got)
	}
}

func TestCounters(t *testing.T) {
	var buf bytes.Buffer
	eng := NewEngine(&buf)

	if eng.HasError() {
		t.Fatal("fresh engine reports an error")
	}

	eng.RegisterErrors(0)
	if eng.HasError() {
		t.Error("RegisterErrors(0) must not flip HasError")
	}

	eng.Note(NoContext{}, "n")
	if eng.HasError() || eng.WarnCount() != 0 {
		t.Error("notes must not affect counters")
	}

	eng.Warning(NoContext{}, "w")
	if eng.HasError() {
		t.Error("warnings must not flip HasError")
	}
	if eng.WarnCount() != 1 {
		t.Errorf("warn count = %d, want 1", eng.WarnCount())
	}

	eng.Error(NoContext{}, "e")
	if !eng.HasError() || eng.ErrorCount() != 1 {
		t.Errorf("error count = %d, HasError = %v", eng.ErrorCount(), eng.HasError())
	}

	eng.RegisterErrors(3)
	if eng.ErrorCount() != 4 {
		t.Errorf("error count = %d, want 4", eng.ErrorCount())
	}
}

func TestFatalErrorAbortsJob(t *testing.T) {
	var buf bytes.Buffer
	eng := NewEngine(&buf)

	reached := false
	completed := RunJob(func() {
		eng.FatalError(NoContext{}, "cannot continue")
		reached = true
	})

	if completed {
		t.Error("job with a fatal error must not complete")
	}
	if reached {
		t.Error("FatalError returned to its caller")
	}
	if eng.FatalCount() != 1 {
		t.Errorf("fatal count = %d, want 1", eng.FatalCount())
	}
	if !eng.HasError() {
		t.Error("fatal errors must flip HasError")
	}
	if !strings.Contains(buf.String(), "fatal error: cannot continue") {
		t.Errorf("emitted = %q", buf.String())
	}
}

func TestRunJobCompletes(t *testing.T) {
	if !RunJob(func() {}) {
		t.Error("RunJob reported an aborted job for a clean run")
	}
}

func TestRunJobDoesNotSwallowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("RunJob must propagate non-halt panics")
		}
	}()
	RunJob(func() { panic("defect") })
}

// blockSink records every Write call as one block.
type blockSink struct {
	mu     sync.Mutex
	blocks []string
}

func (s *blockSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks = append(s.blocks, string(p))
	return len(p), nil
}

func TestConcurrentWarnings(t *testing.T) {
	const jobs = 8
	const perJob = 50

	sink := &blockSink{}
	eng := NewEngine(sink)

	var wg sync.WaitGroup
	for j := 0; j < jobs; j++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < perJob; k++ {
				eng.Warning(NoContext{}, "watch out")
			}
		}()
	}
	wg.Wait()

	if got := eng.WarnCount(); got != jobs*perJob {
		t.Errorf("warn count = %d, want %d", got, jobs*perJob)
	}
	if len(sink.blocks) != jobs*perJob {
		t.Fatalf("emitted %d blocks, want %d", len(sink.blocks), jobs*perJob)
	}
	want := "gta3sc: warning: watch out\n"
	for _, block := range sink.blocks {
		if block != want {
			t.Fatalf("interleaved block %q", block)
		}
	}
}
