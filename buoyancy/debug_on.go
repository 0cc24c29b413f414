//go:build hydrodebug

package buoyancy

const debugChecks = true
