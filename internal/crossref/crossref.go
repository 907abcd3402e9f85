package crossref

import (
	"regexp"
	"strings"
)

// Method identifies which heuristic detected a reference.
type Method string

const (
	// MethodXMLTag matches literal <see ref="..."> tags.
	MethodXMLTag Method = "xml-tag"

	// MethodBacktickContext matches a backtick-quoted slug adjacent to a
	// contextual word on the same line.
	MethodBacktickContext Method = "backtick-context"

	// MethodRelatedTable matches backtick-quoted slugs in table rows under
	// a "related skill" or "integration" heading.
	MethodRelatedTable Method = "related-table"

	// MethodNaturalLanguage matches a fixed set of prose patterns.
	MethodNaturalLanguage Method = "natural-language"
)

// CrossRef is one detected mention of another skill inside a skill body.
type CrossRef struct {
	// Target is the referenced skill name.
	Target string

	// Line is the 1-based line number of the match.
	Line int

	// Method is the heuristic that found the reference.
	Method Method
}

const slugPattern = `[a-z0-9]+(?:-[a-z0-9]+)*`

var (
	xmlTagRegex = regexp.MustCompile(`<see\s+ref="(` + slugPattern + `)">`)

	// Context word before or after the backtick-quoted slug.
	backtickRegex = regexp.MustCompile(
		`(?i)\b(skill|invoke|load|use)\b[^` + "`" + `\n]*` + "`" + `(` + slugPattern + `)` + "`" +
			`|` + "`" + `(` + slugPattern + `)` + "`" + `[^` + "`" + `\n]*\b(skill|invoke|load|use)\b`)

	backtickSlugRegex = regexp.MustCompile("`(" + slugPattern + ")`")

	naturalLanguageRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)invoke\s+(?:the\s+)?(` + slugPattern + `)\s+skill`),
		regexp.MustCompile(`(?i)load\s+(` + slugPattern + `)\s+(?:first|skill)`),
		regexp.MustCompile(`(?i)use\s+(?:the\s+)?(` + slugPattern + `)\s+skill`),
		regexp.MustCompile(`(?i)invoke\s+(` + slugPattern + `)\s+on`),
	}
)

// Extract scans SKILL.md body content for references to other skills.
//
// The four heuristics run independently and their results are concatenated
// in a fixed order; entries are not deduplicated across heuristics.
// Self-references (target == owner) are dropped. The function is pure and
// safe for concurrent use.
func Extract(content, owner string) []CrossRef {
	var refs []CrossRef

	refs = append(refs, extractXMLTags(content)...)
	refs = append(refs, extractBacktickContext(content)...)
	refs = append(refs, extractRelatedTables(content)...)
	refs = append(refs, extractNaturalLanguage(content)...)

	filtered := refs[:0]
	for _, r := range refs {
		if r.Target != owner {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// FilterKnown drops references whose target is not in the known set.
// Filtering dangling targets is a call-site decision; Extract never does it.
func FilterKnown(refs []CrossRef, known map[string]bool) []CrossRef {
	var kept []CrossRef
	for _, r := range refs {
		if known[r.Target] {
			kept = append(kept, r)
		}
	}
	return kept
}

// BuildMap collects per-skill reference targets as a set map.
func BuildMap(refsBySkill map[string][]CrossRef) map[string]map[string]bool {
	m := make(map[string]map[string]bool, len(refsBySkill))
	for name, refs := range refsBySkill {
		targets := make(map[string]bool, len(refs))
		for _, r := range refs {
			targets[r.Target] = true
		}
		m[name] = targets
	}
	return m
}

func extractXMLTags(content string) []CrossRef {
	var refs []CrossRef
	for lineNum, line := range splitLines(content) {
		for _, match := range xmlTagRegex.FindAllStringSubmatch(line, -1) {
			refs = append(refs, CrossRef{
				Target: match[1],
				Line:   lineNum + 1,
				Method: MethodXMLTag,
			})
		}
	}
	return refs
}

func extractBacktickContext(content string) []CrossRef {
	var refs []CrossRef
	for lineNum, line := range splitLines(content) {
		for _, match := range backtickRegex.FindAllStringSubmatch(line, -1) {
			// Group 2: context word before the slug. Group 3: after.
			target := match[2]
			if target == "" {
				target = match[3]
			}
			if target == "" {
				continue
			}
			refs = append(refs, CrossRef{
				Target: target,
				Line:   lineNum + 1,
				Method: MethodBacktickContext,
			})
		}
	}
	return refs
}

func extractRelatedTables(content string) []CrossRef {
	var refs []CrossRef
	inRelatedSection := false

	for lineNum, line := range splitLines(content) {
		lower := strings.ToLower(line)

		if strings.Contains(lower, "related skill") || strings.Contains(lower, "integration") {
			inRelatedSection = true
			continue
		}

		// Section ends at the next heading.
		if strings.HasPrefix(line, "#") && inRelatedSection {
			inRelatedSection = false
		}

		if inRelatedSection && strings.Contains(line, "|") {
			for _, match := range backtickSlugRegex.FindAllStringSubmatch(line, -1) {
				refs = append(refs, CrossRef{
					Target: match[1],
					Line:   lineNum + 1,
					Method: MethodRelatedTable,
				})
			}
		}
	}
	return refs
}

func extractNaturalLanguage(content string) []CrossRef {
	var refs []CrossRef
	lines := splitLines(content)

	for _, re := range naturalLanguageRegexes {
		for lineNum, line := range lines {
			for _, match := range re.FindAllStringSubmatch(line, -1) {
				refs = append(refs, CrossRef{
					Target: match[1],
					Line:   lineNum + 1,
					Method: MethodNaturalLanguage,
				})
			}
		}
	}
	return refs
}

func splitLines(content string) []string {
	return strings.Split(content, "\n")
}
