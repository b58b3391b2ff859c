//go:build logsys_noengine

package logsys

const engineLogsEnabled = false
