//go:build logsys_noassert

package logsys

const assertsEnabled = false
