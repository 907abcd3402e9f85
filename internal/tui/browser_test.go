package tui

import (
	"strings"
	"testing"

	"github.com/loadout-dev/loadout/internal/check"
	"github.com/loadout-dev/loadout/internal/crossref"
	"github.com/loadout-dev/loadout/internal/skill"
)

func testSkill(name, description string) *skill.Skill {
	return &skill.Skill{
		Name:      name,
		Path:      "/skills/" + name,
		SkillFile: "/skills/" + name + "/SKILL.md",
		Frontmatter: &skill.Frontmatter{
			Name:        name,
			Description: description,
		},
	}
}

func TestSkillItemDescription(t *testing.T) {
	item := skillItem{
		sk:      testSkill("deploy", "Deploys the service"),
		refsOut: 2,
		refsIn:  1,
	}

	desc := item.Description()
	if !strings.Contains(desc, "✓") {
		t.Errorf("clean skill should show check icon: %q", desc)
	}
	if !strings.Contains(desc, "2 out, 1 in, 0 findings") {
		t.Errorf("description = %q", desc)
	}

	item.findings = 3
	if !strings.Contains(item.Description(), "⚠") {
		t.Errorf("skill with findings should show warning icon: %q", item.Description())
	}
}

func TestSkillItemFilterValueIncludesTags(t *testing.T) {
	sk := testSkill("deploy", "Deploys the service")
	sk.Frontmatter.Tags = []string{"ops", "release"}

	value := skillItem{sk: sk}.FilterValue()
	for _, want := range []string{"deploy", "ops", "release"} {
		if !strings.Contains(value, want) {
			t.Errorf("filter value %q missing %q", value, want)
		}
	}
}

func TestIncomingRefs(t *testing.T) {
	refs := map[string][]crossref.CrossRef{
		"a": {{Target: "c", Line: 1}, {Target: "c", Line: 9}},
		"b": {{Target: "c", Line: 2}, {Target: "a", Line: 3}},
	}

	in := incomingRefs(refs)

	if got := in["c"]; len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("incoming for c = %v, want [a b]", got)
	}
	if got := in["a"]; len(got) != 1 || got[0] != "b" {
		t.Errorf("incoming for a = %v, want [b]", got)
	}
}

func TestFindingsForMatchesPathAndKeySegments(t *testing.T) {
	sk := testSkill("deploy", "Deploys the service")
	findings := []check.Finding{
		{Message: "by path", Path: "/skills/deploy", SuppressKey: "orphaned:deploy"},
		{Message: "by key", SuppressKey: "pipeline-gap:p:deploy:other"},
		{Message: "unrelated", Path: "/skills/other", SuppressKey: "orphaned:other"},
	}

	matched := findingsFor(findings, sk)
	if len(matched) != 2 {
		t.Fatalf("got %d findings, want 2: %+v", len(matched), matched)
	}
}

func TestDetailViewSections(t *testing.T) {
	sk := testSkill("deploy", "Deploys the service")
	sk.Frontmatter.Tags = []string{"ops"}
	sk.Frontmatter.Pipeline = map[string]skill.PipelineStage{
		"release": {Stage: "ship", Order: 2, After: []string{"build"}},
	}

	data := BrowserData{
		Skills: []*skill.Skill{sk},
		Refs: map[string][]crossref.CrossRef{
			"deploy": {{Target: "rollback", Line: 12, Method: crossref.MethodXMLTag}},
		},
		Findings: []check.Finding{
			{Severity: check.SeverityWarning, Message: "needs attention", Path: "/skills/deploy"},
		},
	}

	m := NewBrowser(data)
	view := m.detailView(sk)

	for _, want := range []string{
		"deploy",
		"Deploys the service",
		"ops",
		"release: stage ship (order 2)",
		"→ rollback (line 12, xml-tag)",
		"[WARN] needs attention",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("detail view missing %q:\n%s", want, view)
		}
	}
}
