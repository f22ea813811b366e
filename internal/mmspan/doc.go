// Package mmspan provides platform-specific acquisition of raw memory spans
// for arena backing storage.
package mmspan
