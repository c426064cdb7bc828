package token

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/AndroidModLoader/gta3sc/internal/source"
)

// Stream exposes the token-level view of one script file. It owns nothing:
// the underlying file belongs to the run's FileSet.
type Stream struct {
	file *source.File
}

// NewStream wraps a script file.
func NewStream(file *source.File) *Stream {
	return &Stream{file: file}
}

// Name returns the display name of the stream, used in diagnostics.
func (s *Stream) Name() string {
	return s.file.Path
}

// GetLine returns the text of a 1-based line, without its newline.
func (s *Stream) GetLine(line uint32) string {
	return s.file.GetLine(line)
}

// LineColFromOffset converts a byte offset into a 1-based line/column pair.
func (s *Stream) LineColFromOffset(off uint32) source.LineCol {
	return s.file.LineColFromOffset(off)
}

// Text returns the source text covered by a token span.
func (s *Stream) Text(tok Token) string {
	content := s.file.Content
	if tok.Begin >= tok.End || int(tok.End) > len(content) {
		return ""
	}
	return string(content[tok.Begin:tok.End])
}

// Tokenize splits the stream into Word and Newline tokens. Comments start
// with "//" and run to end of line. The real front end is more involved;
// this scanner covers what the resolution passes consume.
func (s *Stream) Tokenize() []Token {
	content := s.file.Content
	tokens := make([]Token, 0, len(content)/4)

	pos := func(i int) uint32 {
		off, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("stream offset overflow: %w", err))
		}
		return off
	}

	i := 0
	for i < len(content) {
		c := content[i]
		switch {
		case c == '\n':
			tokens = append(tokens, Token{Kind: Newline, Begin: pos(i), End: pos(i + 1)})
			i++
		case c == ' ' || c == '\t' || c == '\r' || c == ',':
			i++
		case c == '/' && i+1 < len(content) && content[i+1] == '/':
			for i < len(content) && content[i] != '\n' {
				i++
			}
		case c == '"':
			begin := i
			i++
			for i < len(content) && content[i] != '"' && content[i] != '\n' {
				i++
			}
			if i < len(content) && content[i] == '"' {
				i++
			}
			tokens = append(tokens, Token{Kind: Word, Begin: pos(begin), End: pos(i)})
		default:
			begin := i
			for i < len(content) && !isSeparator(content[i]) {
				i++
			}
			tokens = append(tokens, Token{Kind: Word, Begin: pos(begin), End: pos(i)})
		}
	}

	end := pos(len(content))
	tokens = append(tokens, Token{Kind: EOF, Begin: end, End: end})
	return tokens
}

func isSeparator(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == ','
}
