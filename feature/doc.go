// Package feature defines phonological feature values and the read-only
// phoneme feature table consumed by the distance algorithms.
//
// Key types:
//   - Value: tri-state feature value (Negative, Irrelevant, Positive)
//   - Vector: ordered feature values of one phoneme
//   - Table: immutable symbol to Vector lookup
package feature
