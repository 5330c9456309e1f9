// Package diagnostic provides structured warnings and errors collected while
// scoring many transcription pairs, so that one bad pair can be reported
// without aborting the rest of a batch.
//
// Key capabilities:
//   - Per-pair error reports with a stable code
//   - The offending phoneme symbol when a lookup failed
//   - A combined error for callers that want a single failure value
package diagnostic
