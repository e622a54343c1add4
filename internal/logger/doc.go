// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV/WithFields),
//   - level parsing and output selection (stdout, a file or nowhere, which
//     the terminal UI needs because it owns the screen),
//   - convenience functions (Infof, ErrorKV, etc.).
//
// Every component accepts a context and extracts the logger from it, so the
// engine, the gRPC API and the web shell log with their own names.
package logger
