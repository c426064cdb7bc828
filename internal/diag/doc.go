// Package diag is the diagnostic engine of the compiler.
//
// # Purpose
//
//   - Render error/warning/note messages with a source excerpt and caret,
//     in a stable line format that external tooling may parse.
//   - Track error/warning/fatal counters that translation-unit workers
//     increment concurrently without locking.
//   - Provide the job abort protocol: a fatal diagnostic unwinds exactly
//     one translation-unit job up to its RunJob boundary.
//
// # Source contexts
//
// Every reporting operation takes a Context describing where in the source
// the diagnostic points. There are five shapes: NoContext, RawPos (explicit
// stream/name/line/column), UnitContext (a whole script file), TokenContext
// (a token span within a stream), and NodeContext (a syntax node whose
// location is recovered from its token, or from the first child carrying
// text). Contexts borrow parser-owned data and are never retained past the
// reporting call.
//
// # Abort protocol
//
// FatalError never returns: it panics with a private signal recovered only
// by RunJob. Nothing else in the compiler may recover that signal, and no
// other panic is treated as control flow.
package diag
