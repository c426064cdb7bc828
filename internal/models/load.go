package models

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ConfigError reports a malformed entity-definition file. It is raised
// before any job starts and propagates to the run's top-level driver.
type ConfigError struct {
	Path string
	Line int
	Msg  string
}

func (e *ConfigError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// LoadIDE parses an IDE object-definition file into a table. Only the
// objs and tobj sections carry model definitions; other sections are
// skipped. Not thread-safe with respect to the output table.
//
// Section format:
//
//	objs
//	1754, dyn_ashtray, CJ_ASHTRAY, ...
//	end
func LoadIDE(path string, out *Table) error {
	// #nosec G304 -- path comes from the run configuration
	f, err := os.Open(path)
	if err != nil {
		return &ConfigError{Path: path, Msg: err.Error()}
	}
	defer f.Close()

	var section string
	lineNum := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if section == "" {
			section = strings.ToLower(line)
			continue
		}
		if strings.EqualFold(line, "end") {
			section = ""
			continue
		}
		if section != "objs" && section != "tobj" {
			continue
		}

		fields := splitFields(line)
		if len(fields) < 2 {
			return &ConfigError{Path: path, Line: lineNum, Msg: fmt.Sprintf("expected 'id, modelname, ...', got %q", line)}
		}
		id, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return &ConfigError{Path: path, Line: lineNum, Msg: fmt.Sprintf("bad model id %q", fields[0])}
		}
		out.Insert(fields[1], uint32(id))
	}
	if err := scanner.Err(); err != nil {
		return &ConfigError{Path: path, Msg: err.Error()}
	}
	if section != "" {
		return &ConfigError{Path: path, Line: lineNum, Msg: fmt.Sprintf("unterminated section %q", section)}
	}
	return nil
}

// LoadDAT parses a level .dat file, loading every IDE it references. Paths
// inside the file are game-root relative with backslashes; they resolve
// against rootDir. Not thread-safe.
func LoadDAT(path, rootDir string) (*Table, error) {
	// #nosec G304 -- path comes from the run configuration
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Msg: err.Error()}
	}
	defer f.Close()

	out := NewTable()
	lineNum := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// The directive separator may be a space or a tab.
		sep := strings.IndexAny(line, " \t")
		if sep < 0 {
			continue
		}
		directive, rest := line[:sep], strings.TrimSpace(line[sep+1:])
		if !strings.EqualFold(directive, "IDE") || rest == "" {
			continue
		}

		idePath := filepath.Join(rootDir, filepath.FromSlash(strings.ReplaceAll(rest, `\`, "/")))
		if err := LoadIDE(idePath, out); err != nil {
			return nil, &ConfigError{Path: path, Line: lineNum, Msg: err.Error()}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ConfigError{Path: path, Msg: err.Error()}
	}
	return out, nil
}

// splitFields splits an IDE data line on commas and whitespace.
func splitFields(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}
