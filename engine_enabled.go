//go:build !logsys_noengine

package logsys

// engineLogsEnabled gates the engine channel; build with the
// logsys_noengine tag to compile engine log calls out.
const engineLogsEnabled = true
