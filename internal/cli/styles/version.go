package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dragframe/internal/domain/build"
)

// VersionRenderer renders build information.
type VersionRenderer struct {
	theme *Theme
}

// NewVersionRenderer creates a version renderer with the given theme.
func NewVersionRenderer(theme *Theme) *VersionRenderer {
	return &VersionRenderer{theme: theme}
}

// Render renders the version block.
func (r *VersionRenderer) Render(info build.Info) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	label := r.theme.Subtle.Width(8)

	version := info.Version
	if version == "" {
		version = "dev"
	}

	var sb strings.Builder
	sb.WriteString("\n  ")
	sb.WriteString(r.theme.Title.Render("dragframe"))
	sb.WriteString("\n\n")
	rows := []struct{ icon, name, value string }{
		{IconVersion, "version", version},
		{IconGitBranch, "commit", info.ShortCommit()},
		{IconCalendar, "built", info.BuildDate},
		{IconGo, "go", info.GoVersion},
	}
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		fmt.Fprintf(&sb, "  %s %s %s\n", iconStyle.Render(row.icon), label.Render(row.name), r.theme.Normal.Render(row.value))
	}
	fmt.Fprintf(&sb, "\n  %s\n", r.theme.Subtle.Render(build.RepoURL()))
	return sb.String()
}
