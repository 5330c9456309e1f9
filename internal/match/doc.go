// Package match provides plain and phonetically weighted edit distance,
// the phoneme feature distance that drives the weighted variant, similarity
// normalization, and candidate ranking against a lexicon.
//
// Key functions:
//   - PhonemeDistance: share of relevant features two phonemes disagree on
//   - Levenshtein: unit-cost edit distance over characters
//   - PhoneticLevenshtein: edit distance over phoneme tokens with feature-weighted substitution
//   - NormalizeSimilarity: converts a raw distance into a similarity score
//   - RankCandidates: ranks lexicon entries against a query word
//
// All functions are pure and keep no state between calls. A feature table
// may be shared by any number of goroutines.
package match
