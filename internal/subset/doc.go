// Package subset derives a reduced, self-consistent site configuration from
// a full one.
//
// Given a decoded configuration document and a target section label, it
// replaces the nav with the matched section (plus the always-shown entries),
// computes which top-level content directories fall outside the kept nav,
// merges the matching exclusion patterns into the exclusion plugin's
// configuration, and disables cross-package reference resolution so the
// build tool does not chase symbols belonging to excluded sections.
//
// The package performs no I/O: directory listings arrive as plain data and
// the rewritten document goes back to the caller for encoding.
package subset
