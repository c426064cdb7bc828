package token

// Kind classifies a token produced by the stream scanner.
type Kind uint8

const (
	// EOF marks the end of a stream.
	EOF Kind = iota
	// Newline terminates a command line.
	Newline
	// Word is any whitespace-delimited atom (command name or argument).
	Word
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "eof"
	case Newline:
		return "newline"
	case Word:
		return "word"
	}
	return "unknown"
}

// Token is a half-open byte span [Begin, End) within its stream.
// Begin == End means the token carries no position.
type Token struct {
	Kind  Kind
	Begin uint32
	End   uint32
}

// Empty reports whether the token span carries no position.
func (t Token) Empty() bool { return t.Begin == t.End }
