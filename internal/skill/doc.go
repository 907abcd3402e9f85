// Package skill provides skill discovery and SKILL.md metadata parsing.
//
// A skill is a directory containing a SKILL.md file: YAML frontmatter
// between --- delimiters followed by a free-form markdown body. Discovery
// recursively walks the configured source directories, skipping hidden
// directories, and loads every directory holding a SKILL.md. A skill whose
// frontmatter fails to parse is logged and excluded rather than failing
// the whole walk.
package skill
