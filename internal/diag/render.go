package diag

import (
	"fmt"
	"strconv"
	"strings"
)

// programTag prefixes diagnostics that have no display name.
const programTag = "gta3sc:"

// internalErrNoStream is emitted when a node context cannot be resolved to
// any live token stream.
const internalErrNoStream = "no token stream attached to node context during render"

// Render produces the complete diagnostic text for a severity tag, a
// context, and a printf-style message. The format is a stable contract:
//
//	{name}:{line}:{col}: {severity}: {message}
//	 {source line}
//	 {caret aligned to col}
//
// Every element except the message is optional; the excerpt lines appear
// only when the line number is known and the stream is available.
func Render(severity string, ctx Context, format string, args ...any) string {
	loc, ok := resolve(ctx)
	if !ok {
		return Render("internal_error", NoContext{}, internalErrNoStream)
	}

	var sb strings.Builder
	sb.Grow(255)

	if loc.name != "" {
		sb.WriteString(loc.name)
		sb.WriteByte(':')
	} else {
		sb.WriteString(programTag)
	}

	if loc.line != 0 {
		sb.WriteString(strconv.FormatUint(uint64(loc.line), 10))
		sb.WriteByte(':')
	}

	if loc.line != 0 && loc.col != 0 {
		sb.WriteString(strconv.FormatUint(uint64(loc.col), 10))
		sb.WriteByte(':')
	}

	if sb.Len() > 0 {
		sb.WriteByte(' ')
	}

	if severity != "" {
		sb.WriteString(severity)
		sb.WriteString(": ")
	}

	fmt.Fprintf(&sb, format, args...)

	if loc.stream != nil && loc.line != 0 {
		// The caret is right-aligned into a field of width col, so the
		// excerpt's leading space plus the padding put it on the visual
		// column. Tabs are not expanded.
		fmt.Fprintf(&sb, "\n %s\n %*s", loc.stream.GetLine(loc.line), int(loc.col), "^")
	}

	return sb.String()
}
