package check

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/loadout-dev/loadout/internal/config"
	"github.com/loadout-dev/loadout/internal/crossref"
	"github.com/loadout-dev/loadout/internal/skill"
)

// Severity ranks a finding. Higher values are worse.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// Label returns the report heading for a severity.
func (s Severity) Label() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARN"
	default:
		return "INFO"
	}
}

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// ParseSeverity parses a severity name as given on the command line.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(s) {
	case "info":
		return SeverityInfo, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	default:
		return SeverityInfo, fmt.Errorf("unknown severity %q (expected info, warning, or error)", s)
	}
}

// Finding is one diagnostic result.
type Finding struct {
	Severity Severity
	Message  string
	Fix      string

	// Path is the skill or target entry the finding is about, when one
	// applies.
	Path string

	// SuppressKey identifies the finding for the [check].ignore list.
	// Format is "kind:source" or "kind:source:detail".
	SuppressKey string
}

// Suppress key constructors. Every check kind has exactly one formatter so
// the emitted keys and the ignore-list entries can never drift apart.

func danglingKey(source, target string) string { return "dangling:" + source + ":" + target }
func orphanedKey(name string) string           { return "orphaned:" + name }
func nameMismatchKey(name string) string       { return "name-mismatch:" + name }
func emptyDescriptionKey(name string) string   { return "empty-description:" + name }
func brokenSymlinkKey(entry string) string     { return "broken-symlink:" + entry }
func unmanagedKey(entry string) string         { return "unmanaged:" + entry }
func placeholderKey(name string) string        { return "placeholder:" + name }
func shortDescriptionKey(name string) string   { return "short-description:" + name }
func noMetadataKey(name string) string         { return "no-metadata:" + name }

func pipelineMissingKey(pipeline, skillName, dep string) string {
	return "pipeline-missing:" + pipeline + ":" + skillName + ":" + dep
}

func pipelineGapKey(pipeline, skillName, dep string) string {
	return "pipeline-gap:" + pipeline + ":" + skillName + ":" + dep
}

// Options controls filtering and suppression behavior for a run.
type Options struct {
	// MinSeverity drops findings below this rank. SeverityInfo keeps
	// everything.
	MinSeverity Severity

	// Verbose keeps suppressed findings, marking them in the message.
	Verbose bool
}

// Run executes every check over the configured skill library and returns
// the surviving findings, errors first.
//
// Content-quality problems are always findings. Only structural failures
// return an error: an unreadable skill body or a target directory that
// cannot be listed.
func Run(cfg *config.Config, lister DirLister, opts Options) ([]Finding, error) {
	skills, err := skill.DiscoverAll(cfg.Sources.Skills)
	if err != nil {
		return nil, err
	}

	known := skill.KnownNames(skills)

	crossrefs := make(map[string][]crossref.CrossRef)
	for _, sk := range skills {
		body, err := sk.ReadBody()
		if err != nil {
			return nil, err
		}
		refs := crossref.Extract(body, sk.Name)
		if len(refs) > 0 {
			crossrefs[sk.Name] = refs
		}
	}

	var findings []Finding
	findings = append(findings, checkDanglingReferences(crossrefs, known)...)
	findings = append(findings, checkOrphanedSkills(cfg, skills)...)
	findings = append(findings, checkNameDirectoryMismatch(skills)...)
	findings = append(findings, checkMissingFrontmatter(skills)...)

	symlinkFindings, err := checkBrokenSymlinks(cfg, lister)
	if err != nil {
		return nil, err
	}
	findings = append(findings, symlinkFindings...)

	unmanagedFindings, err := checkUnmanagedConflicts(cfg, lister)
	if err != nil {
		return nil, err
	}
	findings = append(findings, unmanagedFindings...)

	findings = append(findings, checkPlaceholderDescriptions(skills)...)
	findings = append(findings, checkPipelineIntegrity(skills, known)...)
	findings = append(findings, checkMissingMetadata(skills)...)

	// Errors first; ties keep emission order.
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Severity > findings[j].Severity
	})

	if opts.MinSeverity > SeverityInfo {
		filtered := findings[:0]
		for _, f := range findings {
			if f.Severity >= opts.MinSeverity {
				filtered = append(filtered, f)
			}
		}
		findings = filtered
	}

	ignored := make(map[string]bool, len(cfg.Check.Ignore))
	for _, key := range cfg.Check.Ignore {
		ignored[key] = true
	}

	if opts.Verbose {
		for i := range findings {
			if ignored[findings[i].SuppressKey] {
				findings[i].Message += " (suppressed)"
			}
		}
	} else {
		kept := findings[:0]
		for _, f := range findings {
			if !ignored[f.SuppressKey] {
				kept = append(kept, f)
			}
		}
		findings = kept
	}

	return findings, nil
}

// ExitCode returns 1 when any Error-severity finding survived, else 0.
func ExitCode(findings []Finding) int {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return 1
		}
	}
	return 0
}

// ErrorCount returns the number of Error-severity findings.
func ErrorCount(findings []Finding) int {
	n := 0
	for _, f := range findings {
		if f.Severity == SeverityError {
			n++
		}
	}
	return n
}

func checkDanglingReferences(crossrefs map[string][]crossref.CrossRef, known map[string]bool) []Finding {
	var findings []Finding

	sources := make([]string, 0, len(crossrefs))
	for source := range crossrefs {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	for _, source := range sources {
		for _, ref := range crossrefs[source] {
			if known[ref.Target] {
				continue
			}
			findings = append(findings, Finding{
				Severity: SeverityError,
				Message: fmt.Sprintf("Skill '%s' references non-existent skill '%s' (line %d)",
					source, ref.Target, ref.Line),
				Fix: fmt.Sprintf("Create the skill with `loadout new %s`, or remove the reference at line %d",
					ref.Target, ref.Line),
				SuppressKey: danglingKey(source, ref.Target),
			})
		}
	}

	return findings
}

func checkOrphanedSkills(cfg *config.Config, skills []*skill.Skill) []Finding {
	mentioned := make(map[string]bool)
	for _, name := range cfg.Global.Skills {
		mentioned[name] = true
	}
	for _, project := range cfg.Projects {
		for _, name := range project.Skills {
			mentioned[name] = true
		}
	}

	var findings []Finding
	for _, sk := range skills {
		if mentioned[sk.Name] {
			continue
		}
		findings = append(findings, Finding{
			Severity:    SeverityWarning,
			Message:     fmt.Sprintf("Skill '%s' exists in sources but not in any config section", sk.Name),
			Fix:         fmt.Sprintf("Add '%s' to [global].skills in %s", sk.Name, config.ConfigFileName),
			Path:        sk.Path,
			SuppressKey: orphanedKey(sk.Name),
		})
	}

	return findings
}

func checkNameDirectoryMismatch(skills []*skill.Skill) []Finding {
	var findings []Finding
	for _, sk := range skills {
		dirName := filepath.Base(sk.Path)
		if dirName == sk.Name {
			continue
		}
		findings = append(findings, Finding{
			Severity:    SeverityError,
			Message:     fmt.Sprintf("Skill name '%s' does not match directory name '%s'", sk.Name, dirName),
			Fix:         fmt.Sprintf("Rename directory to '%s' or update frontmatter name field", sk.Name),
			Path:        sk.Path,
			SuppressKey: nameMismatchKey(sk.Name),
		})
	}
	return findings
}

func checkMissingFrontmatter(skills []*skill.Skill) []Finding {
	var findings []Finding
	for _, sk := range skills {
		if sk.Frontmatter.Description != "" {
			continue
		}
		findings = append(findings, Finding{
			Severity:    SeverityError,
			Message:     fmt.Sprintf("Skill '%s' has empty description", sk.Name),
			Fix:         "Add a description to the " + config.SkillFileName + " frontmatter",
			Path:        sk.Path,
			SuppressKey: emptyDescriptionKey(sk.Name),
		})
	}
	return findings
}

func checkBrokenSymlinks(cfg *config.Config, lister DirLister) ([]Finding, error) {
	var findings []Finding

	for _, target := range cfg.AllTargets() {
		entries, err := lister.List(target)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsSymlink || entry.Reachable {
				continue
			}
			findings = append(findings, Finding{
				Severity:    SeverityError,
				Message:     "Broken symlink: target does not exist",
				Fix:         "Run `loadout clean && loadout install` to rebuild symlinks",
				Path:        entry.Path,
				SuppressKey: brokenSymlinkKey(entry.Name),
			})
		}
	}

	return findings, nil
}

func checkUnmanagedConflicts(cfg *config.Config, lister DirLister) ([]Finding, error) {
	var findings []Finding

	for _, target := range cfg.AllTargets() {
		entries, err := lister.List(target)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsSymlink || !entry.IsDir || entry.HasMarker {
				continue
			}
			findings = append(findings, Finding{
				Severity:    SeverityWarning,
				Message:     "Unmanaged directory conflicts with skill slot",
				Fix:         "Remove the directory, or let loadout manage it with `loadout install`",
				Path:        entry.Path,
				SuppressKey: unmanagedKey(entry.Name),
			})
		}
	}

	return findings, nil
}

func checkPlaceholderDescriptions(skills []*skill.Skill) []Finding {
	placeholders := config.PlaceholderDescriptions()

	var findings []Finding
	for _, sk := range skills {
		desc := sk.Frontmatter.Description

		isPlaceholder := false
		for _, p := range placeholders {
			if strings.Contains(desc, p) {
				isPlaceholder = true
				break
			}
		}

		switch {
		case isPlaceholder:
			findings = append(findings, Finding{
				Severity:    SeverityWarning,
				Message:     fmt.Sprintf("Skill '%s' has placeholder description: '%s'", sk.Name, truncate(desc, 50)),
				Fix:         fmt.Sprintf("Edit %s/%s and write a real description", sk.Path, config.SkillFileName),
				Path:        sk.Path,
				SuppressKey: placeholderKey(sk.Name),
			})
		case len(desc) < 10:
			findings = append(findings, Finding{
				Severity:    SeverityWarning,
				Message:     fmt.Sprintf("Skill '%s' has very short description (%d chars): '%s'", sk.Name, len(desc), desc),
				Fix:         fmt.Sprintf("Edit %s/%s and expand the description", sk.Path, config.SkillFileName),
				Path:        sk.Path,
				SuppressKey: shortDescriptionKey(sk.Name),
			})
		}
	}

	return findings
}

func checkPipelineIntegrity(skills []*skill.Skill, known map[string]bool) []Finding {
	// pipeline name -> skill name -> declared stage
	pipelines := make(map[string]map[string]skill.PipelineStage)
	for _, sk := range skills {
		for pipelineName, stage := range sk.Frontmatter.Pipeline {
			if pipelines[pipelineName] == nil {
				pipelines[pipelineName] = make(map[string]skill.PipelineStage)
			}
			pipelines[pipelineName][sk.Name] = stage
		}
	}

	pipelineNames := make([]string, 0, len(pipelines))
	for name := range pipelines {
		pipelineNames = append(pipelineNames, name)
	}
	sort.Strings(pipelineNames)

	var findings []Finding
	for _, pipelineName := range pipelineNames {
		stages := pipelines[pipelineName]

		skillNames := make([]string, 0, len(stages))
		for name := range stages {
			skillNames = append(skillNames, name)
		}
		sort.Strings(skillNames)

		for _, skillName := range skillNames {
			stage := stages[skillName]

			for _, dep := range stage.After {
				if !known[dep] {
					findings = append(findings, pipelineMissingFinding(pipelineName, skillName, dep, "after"))
				}
			}
			for _, dep := range stage.Before {
				if !known[dep] {
					findings = append(findings, pipelineMissingFinding(pipelineName, skillName, dep, "before"))
				}
			}

			// after/before must be declared on both sides; only the
			// after side is checked to avoid duplicate findings.
			for _, dep := range stage.After {
				depStage, inPipeline := stages[dep]
				if !inPipeline {
					continue
				}
				reciprocal := false
				for _, b := range depStage.Before {
					if b == skillName {
						reciprocal = true
						break
					}
				}
				if reciprocal {
					continue
				}
				findings = append(findings, Finding{
					Severity: SeverityWarning,
					Message: fmt.Sprintf("Pipeline '%s': '%s' declares after: ['%s'] but '%s' doesn't declare before: ['%s']",
						pipelineName, skillName, dep, dep, skillName),
					Fix: fmt.Sprintf("Add before: ['%s'] to skill '%s' in pipeline '%s'",
						skillName, dep, pipelineName),
					SuppressKey: pipelineGapKey(pipelineName, skillName, dep),
				})
			}
		}
	}

	return findings
}

func pipelineMissingFinding(pipelineName, skillName, dep, list string) Finding {
	return Finding{
		Severity: SeverityError,
		Message: fmt.Sprintf("Pipeline '%s': skill '%s' declares %s: ['%s'] but skill doesn't exist",
			pipelineName, skillName, list, dep),
		Fix: fmt.Sprintf("Create the skill with `loadout new %s`, or remove it from the %s list",
			dep, list),
		SuppressKey: pipelineMissingKey(pipelineName, skillName, dep),
	}
}

func checkMissingMetadata(skills []*skill.Skill) []Finding {
	// Only meaningful when the library has started adopting tags or
	// pipelines; an entirely unannotated library gets no noise.
	anyAnnotated := false
	for _, sk := range skills {
		if sk.Frontmatter.HasTags() || sk.Frontmatter.HasPipeline() {
			anyAnnotated = true
			break
		}
	}
	if !anyAnnotated {
		return nil
	}

	var findings []Finding
	for _, sk := range skills {
		if sk.Frontmatter.HasTags() || sk.Frontmatter.HasPipeline() {
			continue
		}
		findings = append(findings, Finding{
			Severity:    SeverityInfo,
			Message:     fmt.Sprintf("Skill '%s' has no tags and isn't in any pipeline", sk.Name),
			Fix:         fmt.Sprintf("Add tags: [<tag>] or pipeline metadata to %s/%s", sk.Path, config.SkillFileName),
			SuppressKey: noMetadataKey(sk.Name),
		})
	}

	return findings
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
