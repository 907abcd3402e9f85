// Package crossref detects mentions of other skills inside SKILL.md bodies.
//
// Detection is heuristic and line-oriented: four fixed matchers run over
// the body independently and their hits are concatenated, each carrying
// the 1-based source line and the heuristic that found it. There is no
// language understanding here, just the patterns skill authors actually
// use to point at each other:
//
//   - <see ref="other-skill"> markup tags
//   - backtick-quoted slugs next to "skill", "invoke", "load", or "use"
//   - table rows under "Related skills" / "Integration" headings
//   - a small set of prose forms ("invoke the X skill", "load X first", ...)
//
// Extraction never consults the set of known skills; callers filter
// dangling targets with FilterKnown when they want to.
package crossref
