//go:build !hydrodebug

package buoyancy

// debugChecks enables internal invariant assertions. Build with the
// hydrodebug tag to turn them on.
const debugChecks = false
