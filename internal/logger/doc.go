// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a sane console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV/WithFields),
//   - level configuration and parsing utilities,
//   - convenience functions (Infof, ErrorKV, etc.).
//
// The monitor service accepts a context and extracts the logger from it,
// enabling scoped, structured logging throughout the codebase. The signal
// package itself never logs.
package logger
