// Package tui provides the interactive skill browser for loadout
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/loadout-dev/loadout/internal/check"
	"github.com/loadout-dev/loadout/internal/crossref"
	"github.com/loadout-dev/loadout/internal/skill"
)

// BrowserData is everything the browser needs up front. The browser itself
// never touches the filesystem.
type BrowserData struct {
	Skills   []*skill.Skill
	Refs     map[string][]crossref.CrossRef
	Findings []check.Finding
}

// skillItem implements list.Item for skill display
type skillItem struct {
	sk       *skill.Skill
	refsOut  int
	refsIn   int
	findings int
}

func (i skillItem) Title() string {
	return i.sk.Name
}

func (i skillItem) Description() string {
	icon := "✓"
	if i.findings > 0 {
		icon = "⚠"
	}

	return fmt.Sprintf("%s %s | %d out, %d in, %d findings",
		icon,
		truncateText(i.sk.Frontmatter.Description, 40),
		i.refsOut,
		i.refsIn,
		i.findings,
	)
}

func (i skillItem) FilterValue() string {
	return i.sk.Name + " " + strings.Join(i.sk.Frontmatter.Tags, " ")
}

func truncateText(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	detailDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// Model is the bubbletea model for the skill browser
type Model struct {
	list     list.Model
	data     BrowserData
	refsIn   map[string][]string
	detail   *skill.Skill
	quitting bool
	width    int
	height   int
}

// NewBrowser creates a new skill browser
func NewBrowser(data BrowserData) Model {
	refsIn := incomingRefs(data.Refs)

	items := make([]list.Item, len(data.Skills))
	for i, sk := range data.Skills {
		items[i] = skillItem{
			sk:       sk,
			refsOut:  len(data.Refs[sk.Name]),
			refsIn:   len(refsIn[sk.Name]),
			findings: len(findingsFor(data.Findings, sk)),
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "Loadout - Skill Browser"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{
		list:   l,
		data:   data,
		refsIn: refsIn,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		if m.detail != nil {
			switch msg.String() {
			case "esc", "backspace", "q":
				m.detail = nil
			case "ctrl+c":
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(skillItem); ok {
				m.detail = item.sk
			}
			return m, nil

		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.detail != nil {
		help := helpStyle.Render("[esc] Back  [ctrl+c] Quit")
		return m.detailView(m.detail) + "\n" + help
	}

	help := helpStyle.Render("[enter] Details  [/] Filter  [q] Quit")
	return m.list.View() + "\n" + help
}

func (m Model) detailView(sk *skill.Skill) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(sk.Name) + "\n")
	b.WriteString(sk.Frontmatter.Description + "\n")
	b.WriteString(detailDimStyle.Render(sk.Path) + "\n")

	if len(sk.Frontmatter.Tags) > 0 {
		b.WriteString("\n" + sectionStyle.Render("Tags") + "\n")
		b.WriteString("  " + strings.Join(sk.Frontmatter.Tags, ", ") + "\n")
	}

	if len(sk.Frontmatter.Pipeline) > 0 {
		b.WriteString("\n" + sectionStyle.Render("Pipelines") + "\n")
		names := make([]string, 0, len(sk.Frontmatter.Pipeline))
		for name := range sk.Frontmatter.Pipeline {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			stage := sk.Frontmatter.Pipeline[name]
			b.WriteString(fmt.Sprintf("  %s: stage %s (order %d)\n", name, stage.Stage, stage.Order))
		}
	}

	b.WriteString("\n" + sectionStyle.Render("References out") + "\n")
	if refs := m.data.Refs[sk.Name]; len(refs) > 0 {
		for _, ref := range refs {
			b.WriteString(fmt.Sprintf("  → %s (line %d, %s)\n", ref.Target, ref.Line, ref.Method))
		}
	} else {
		b.WriteString(detailDimStyle.Render("  (none)") + "\n")
	}

	b.WriteString("\n" + sectionStyle.Render("Referenced by") + "\n")
	if sources := m.refsIn[sk.Name]; len(sources) > 0 {
		for _, source := range sources {
			b.WriteString("  ← " + source + "\n")
		}
	} else {
		b.WriteString(detailDimStyle.Render("  (none)") + "\n")
	}

	b.WriteString("\n" + sectionStyle.Render("Findings") + "\n")
	if findings := findingsFor(m.data.Findings, sk); len(findings) > 0 {
		for _, f := range findings {
			b.WriteString(fmt.Sprintf("  [%s] %s\n", f.Severity.Label(), f.Message))
		}
	} else {
		b.WriteString(detailDimStyle.Render("  (none)") + "\n")
	}

	return b.String()
}

// incomingRefs inverts the outgoing reference map to sorted source lists.
func incomingRefs(refs map[string][]crossref.CrossRef) map[string][]string {
	in := make(map[string]map[string]bool)
	for source, outgoing := range refs {
		for _, ref := range outgoing {
			if in[ref.Target] == nil {
				in[ref.Target] = make(map[string]bool)
			}
			in[ref.Target][source] = true
		}
	}

	result := make(map[string][]string, len(in))
	for target, sources := range in {
		names := make([]string, 0, len(sources))
		for name := range sources {
			names = append(names, name)
		}
		sort.Strings(names)
		result[target] = names
	}
	return result
}

// findingsFor selects the findings belonging to one skill, by path or by
// the skill name appearing as a suppress-key segment for findings that
// carry no path.
func findingsFor(findings []check.Finding, sk *skill.Skill) []check.Finding {
	var matched []check.Finding
	for _, f := range findings {
		if f.Path == sk.Path {
			matched = append(matched, f)
			continue
		}
		if f.Path != "" {
			continue
		}
		for _, segment := range strings.Split(f.SuppressKey, ":")[1:] {
			if segment == sk.Name {
				matched = append(matched, f)
				break
			}
		}
	}
	return matched
}

// RunBrowser runs the interactive skill browser
func RunBrowser(data BrowserData) error {
	m := NewBrowser(data)
	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
