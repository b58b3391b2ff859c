// Package logsys provides a two-channel logging facade built on zap,
// with a colorized console sink and a daily-rotating file sink.
//
// Features:
//   - Engine and runtime channels, each a named zap logger
//   - Console and daily file sinks shared by both channels
//   - Per-sink pattern strings (%T time, %n name, %l level, %s:%# caller, %v message)
//   - Brace-style message interpolation with a custom formatter registry
//   - Assert/Verify helpers that log then fire a configurable trap hook
//   - Compile-time channel and assertion switches via build tags
//   - Flush on every record
package logsys
