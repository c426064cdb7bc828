package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AndroidModLoader/gta3sc/internal/commands"
	"github.com/AndroidModLoader/gta3sc/internal/config"
	"github.com/AndroidModLoader/gta3sc/internal/diag"
	"github.com/AndroidModLoader/gta3sc/internal/models"
)

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testRequest(t *testing.T, target config.Target, sink *bytes.Buffer, paths ...string) *Request {
	t.Helper()
	cat, err := commands.DefaultCatalog(target)
	if err != nil {
		t.Fatal(err)
	}
	opt := config.Preset(target)

	def := models.NewTable()
	def.Insert("Ped1", 400)
	def.Insert("crate", 100)
	store := models.NewStore()
	store.Setup(def, nil)

	return &Request{
		Options: &opt,
		Catalog: cat,
		Models:  store,
		Engine:  diag.NewEngine(sink),
		Paths:   paths,
		Jobs:    2,
	}
}

const goodScript = `MISSION_START
SCRIPT_NAME intro
start:
WAIT 250
CREATE_CHAR 4 PED1 10.0 20.0 3.0 $char
GOTO start
MISSION_END
`

func TestRunGoodScript(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "intro.sc", goodScript)

	var out bytes.Buffer
	req := testRequest(t, config.TargetGTA3, &out, path)
	res, err := Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if req.Engine.HasError() {
		t.Fatalf("unexpected diagnostics:\n%s", out.String())
	}
	if len(res.Units) != 1 || res.Units[0].Status != UnitCompleted {
		t.Errorf("unit result = %+v", res.Units)
	}
	if !strings.Contains(res.Timings, "resolve") {
		t.Errorf("timings = %q, want resolve phase", res.Timings)
	}
}

func TestRunUnsupportedCommandAbortsOnlyThatUnit(t *testing.T) {
	dir := t.TempDir()
	bad := writeScript(t, dir, "bad.sc", "SWITCH_START $v 2 0 case0\n")
	good := writeScript(t, dir, "good.sc", "WAIT 0\n")

	var out bytes.Buffer
	req := testRequest(t, config.TargetGTA3, &out, bad, good)
	res, err := Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Units[0].Status != UnitAborted {
		t.Errorf("bad unit status = %v, want aborted", res.Units[0].Status)
	}
	if res.Units[1].Status != UnitCompleted {
		t.Errorf("good unit status = %v, want completed", res.Units[1].Status)
	}
	if !strings.Contains(out.String(), "fatal error: command 'SWITCH_START' undefined or unsupported") {
		t.Errorf("diagnostics = %q", out.String())
	}
	if !req.Engine.HasError() {
		t.Error("fatal abort must leave HasError true")
	}
}

func TestRunUnknownEntity(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "m.sc", "CREATE_OBJECT no_such_model 0.0 0.0 0.0 $obj\n")

	var out bytes.Buffer
	req := testRequest(t, config.TargetGTA3, &out, path)
	if _, err := Run(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "unknown entity 'no_such_model'") {
		t.Errorf("diagnostics = %q", out.String())
	}
}

func TestRunEntityTrackingOff(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "m.sc", "CREATE_OBJECT no_such_model 0.0 0.0 0.0 $obj\n")

	var out bytes.Buffer
	req := testRequest(t, config.TargetGTA3, &out, path)
	opt := *req.Options
	opt.EntityTracking = false
	req.Options = &opt

	if _, err := Run(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if req.Engine.HasError() {
		t.Errorf("entity tracking off must skip the check, got %q", out.String())
	}
}

func TestRunScriptNameTooLong(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "m.sc", "SCRIPT_NAME averylongname\n")

	var out bytes.Buffer
	req := testRequest(t, config.TargetGTA3, &out, path)
	if _, err := Run(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "script name 'averylongname' exceeds 7 characters") {
		t.Errorf("diagnostics = %q", out.String())
	}
}

func TestRunWrongArity(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "m.sc", "WAIT 1 2 3\n")

	var out bytes.Buffer
	req := testRequest(t, config.TargetGTA3, &out, path)
	if _, err := Run(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "wrong number of arguments for command 'WAIT'") {
		t.Errorf("diagnostics = %q", out.String())
	}
}

func TestRunUnreadableUnitContinues(t *testing.T) {
	dir := t.TempDir()
	good := writeScript(t, dir, "good.sc", "WAIT 0\n")
	missing := filepath.Join(dir, "missing.sc")

	var out bytes.Buffer
	req := testRequest(t, config.TargetGTA3, &out, missing, good)
	res, err := Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Units[0].Status != UnitUnreadable {
		t.Errorf("missing unit status = %v", res.Units[0].Status)
	}
	if res.Units[1].Status != UnitCompleted {
		t.Errorf("good unit status = %v", res.Units[1].Status)
	}
	if !strings.Contains(out.String(), "missing.sc: error: could not read script") {
		t.Errorf("diagnostics = %q", out.String())
	}
}

func TestRunEmitsProgressEvents(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "m.sc", "WAIT 0\n")

	events := make(chan Event, 16)
	var out bytes.Buffer
	req := testRequest(t, config.TargetGTA3, &out, path)
	req.Progress = ChannelSink{Ch: events}

	if _, err := Run(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	close(events)

	seen := map[Status]bool{}
	for evt := range events {
		seen[evt.Status] = true
	}
	for _, status := range []Status{StatusQueued, StatusWorking, StatusDone} {
		if !seen[status] {
			t.Errorf("missing %s event", status)
		}
	}
}

func TestClassifyArg(t *testing.T) {
	tests := []struct {
		text string
		want commands.ArgKind
	}{
		{"250", commands.ArgInt},
		{"-3", commands.ArgInt},
		{"10.0", commands.ArgFloat},
		{"$var", commands.ArgVar},
		{"12@", commands.ArgVar},
		{`"text"`, commands.ArgString},
		{"IDENT", commands.ArgAny},
		{"", commands.ArgAny},
	}
	for _, tt := range tests {
		if got := classifyArg(tt.text); got != tt.want {
			t.Errorf("classifyArg(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
