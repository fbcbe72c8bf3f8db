// Package match finds the company a piece of text most likely refers to.
//
// Key responsibilities:
//   - Maintain the normalized alias set per registered company, combining
//     caller-provided aliases with auto-generated variants.
//   - Score candidate text against every alias with a suite of fuzzy
//     ratios and apply per-company validity rules (required keywords,
//     excluded standalone words).
//   - Rank filename-derived evidence above directory-derived evidence via
//     a configurable bonus and penalty.
package match
