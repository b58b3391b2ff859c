//go:build logsys_noruntime

package logsys

const runtimeLogsEnabled = false
