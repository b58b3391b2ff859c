//go:build !logsys_noassert

package logsys

// assertsEnabled gates Assert; build with the logsys_noassert tag to
// compile assertions out. Verify is never gated.
const assertsEnabled = true
