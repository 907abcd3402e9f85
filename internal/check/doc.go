// Package check runs diagnostics over a skill library.
//
// A run executes every check, collects severity-ranked Findings, and
// applies minimum-severity filtering and ignore-list suppression. Content
// problems are always findings; only structural failures (unreadable
// files, unlistable target directories) abort a run.
//
// Checks:
//
//   - dangling cross-references to skills that do not exist
//   - skills present in sources but absent from the config
//   - frontmatter name differing from the directory name
//   - empty descriptions
//   - broken symlinks in target directories
//   - unmanaged directories occupying skill slots
//   - placeholder or very short descriptions
//   - pipeline after/before references to missing skills, and
//     asymmetric after/before declarations
//   - skills with no tags or pipeline, once the library uses either
package check
