//go:build !logsys_noruntime

package logsys

// runtimeLogsEnabled gates the runtime channel; build with the
// logsys_noruntime tag to compile runtime log calls out.
const runtimeLogsEnabled = true
