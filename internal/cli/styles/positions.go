package styles

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bnema/dragframe/internal/application/usecase"
)

// PositionsRenderer renders stored frame positions.
type PositionsRenderer struct {
	theme *Theme
}

// NewPositionsRenderer creates a renderer with the given theme.
func NewPositionsRenderer(theme *Theme) *PositionsRenderer {
	return &PositionsRenderer{theme: theme}
}

// RenderTable renders positions as a bordered table. Malformed records show
// their decode error in place of the coordinates.
func (r *PositionsRenderer) RenderTable(infos []usecase.FramePositionInfo) string {
	if len(infos) == 0 {
		return r.theme.Subtle.Render("No stored frame positions.") + "\n"
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(r.theme.Border)).
		Headers("FRAME", "X", "Y", "SIDE", "UPDATED").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.theme.Highlight.Padding(0, 1)
			}
			return r.theme.Normal.Padding(0, 1)
		})

	for _, info := range infos {
		updated := formatUpdated(info.UpdatedAt)
		if !info.Valid() {
			t.Row(string(info.ID), r.theme.ErrorStyle.Render("invalid"), "", "", updated)
			continue
		}
		side := string(info.Record.Side)
		if side == "" {
			side = "-"
		}
		t.Row(
			string(info.ID),
			formatFraction(info.Record.X, info.Record.Percentage),
			formatFraction(info.Record.Y, info.Record.Percentage),
			side,
			updated,
		)
	}

	var sb strings.Builder
	sb.WriteString(t.Render())
	sb.WriteString("\n")
	for _, info := range infos {
		if !info.Valid() {
			sb.WriteString(r.theme.ErrorStyle.Render(fmt.Sprintf("  %s %s: %v", IconWarning, info.ID, info.Err)))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// RenderForgotten renders the result of a reset.
func (r *PositionsRenderer) RenderForgotten(ids []string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	if len(ids) == 0 {
		return fmt.Sprintf("\n  %s Nothing to reset\n", iconStyle.Render(IconCheck))
	}
	return fmt.Sprintf(
		"\n  %s Reset %s\n",
		iconStyle.Render(IconTrash),
		r.theme.Highlight.Render(strings.Join(ids, ", ")),
	)
}

// RenderUnknown renders a missing frame id with close matches.
func (r *PositionsRenderer) RenderUnknown(id string, suggestions []string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n  %s No stored position for %s\n",
		lipgloss.NewStyle().Foreground(r.theme.Warning).Render(IconWarning),
		r.theme.Highlight.Render(id),
	))
	if len(suggestions) > 0 {
		sb.WriteString(r.theme.Subtle.Render("  Did you mean: " + strings.Join(suggestions, ", ")))
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatFraction(v float64, percentage bool) string {
	if percentage {
		return fmt.Sprintf("%.1f%%", v*100)
	}
	return fmt.Sprintf("%.0f", v)
}

func formatUpdated(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
