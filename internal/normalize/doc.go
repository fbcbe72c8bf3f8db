// Package normalize canonicalizes free-form company text for fuzzy matching.
//
// Key responsibilities:
//   - Normalize lowercases input, strips diacritics, rewrites legal-entity
//     suffixes to canonical short codes, and collapses punctuation and
//     whitespace. The result is idempotent.
//   - GenerateAliases derives the alias variants under which a company name
//     should be recognized (suffix-free, common-word-free, acronym).
//   - FilenameTokens extracts candidate company tokens from a filename,
//     discarding dates, numbers, and generic filler words.
package normalize
