package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/bnema/dragframe/internal/application/usecase"
	"github.com/bnema/dragframe/internal/cli/styles"
	"github.com/bnema/dragframe/internal/domain/entity"
)

const maxSuggestions = 3

var (
	positionsOutput string
	positionsAll    bool
	positionsYes    bool
)

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "Inspect and reset stored frame positions",
}

var positionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored frame positions",
	Long: `List the positions saved when frames were released.

Coordinates are stored as fractions of the viewport so they survive
terminal resizes. Records that cannot be decoded are listed with the error.

Examples:
  dragframe positions list
  dragframe positions list -o json`,
	Args: cobra.NoArgs,
	RunE: runPositionsList,
}

var positionsResetCmd = &cobra.Command{
	Use:   "reset [frame-id]",
	Short: "Forget stored frame positions",
	Long: `Forget the stored position of one frame, or of every frame with --all.
The next run places the frame at its configured initial position.

Examples:
  dragframe positions reset notes
  dragframe positions reset --all --yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPositionsReset,
}

func init() {
	rootCmd.AddCommand(positionsCmd)
	positionsCmd.AddCommand(positionsListCmd)
	positionsCmd.AddCommand(positionsResetCmd)

	positionsListCmd.Flags().StringVarP(&positionsOutput, "output", "o", "table", "output format: table, json, yaml")
	positionsResetCmd.Flags().BoolVar(&positionsAll, "all", false, "forget every stored position")
	positionsResetCmd.Flags().BoolVarP(&positionsYes, "yes", "y", false, "skip confirmation prompt")
}

// positionRow is the machine-readable form of a stored position.
type positionRow struct {
	ID         string     `json:"id" yaml:"id"`
	Key        string     `json:"key" yaml:"key"`
	X          *float64   `json:"x,omitempty" yaml:"x,omitempty"`
	Y          *float64   `json:"y,omitempty" yaml:"y,omitempty"`
	Percentage bool       `json:"percentage" yaml:"percentage"`
	Side       string     `json:"side,omitempty" yaml:"side,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	Error      string     `json:"error,omitempty" yaml:"error,omitempty"`
	Raw        string     `json:"raw,omitempty" yaml:"raw,omitempty"`
}

func toRows(infos []usecase.FramePositionInfo) []positionRow {
	rows := make([]positionRow, 0, len(infos))
	for _, info := range infos {
		row := positionRow{ID: string(info.ID), Key: info.Key}
		if !info.UpdatedAt.IsZero() {
			updated := info.UpdatedAt.UTC()
			row.UpdatedAt = &updated
		}
		if info.Valid() {
			x, y := info.Record.X, info.Record.Y
			row.X, row.Y = &x, &y
			row.Percentage = info.Record.Percentage
			row.Side = string(info.Record.Side)
		} else {
			row.Error = info.Err.Error()
			row.Raw = info.Raw
		}
		rows = append(rows, row)
	}
	return rows
}

func writePositions(w io.Writer, infos []usecase.FramePositionInfo, format string, renderer *styles.PositionsRenderer) error {
	switch format {
	case "table", "":
		_, err := fmt.Fprint(w, renderer.RenderTable(infos))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(toRows(infos))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toRows(infos)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output %q (use: table, json, yaml)", format)
	}
}

func runPositionsList(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	infos, err := app.StoredPositions().List(app.Ctx())
	if err != nil {
		return err
	}
	return writePositions(cmd.OutOrStdout(), infos, positionsOutput, styles.NewPositionsRenderer(app.Theme))
}

func runPositionsReset(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	if positionsAll == (len(args) == 1) {
		return fmt.Errorf("give a frame id or --all")
	}

	req := resetRequest{All: positionsAll}
	if len(args) == 1 {
		req.ID = entity.FrameID(args[0])
	}
	if positionsAll && !positionsYes && term.IsTerminal(int(os.Stdin.Fd())) {
		req.Confirm = confirmResetAll
	}

	return resetPositions(app.Ctx(), cmd.OutOrStdout(), app.StoredPositions(), styles.NewPositionsRenderer(app.Theme), req)
}

type resetRequest struct {
	ID  entity.FrameID
	All bool
	// Confirm is asked before forgetting everything; nil means yes.
	Confirm func(count int) (bool, error)
}

func resetPositions(
	ctx context.Context,
	w io.Writer,
	uc *usecase.FramePositionsUseCase,
	renderer *styles.PositionsRenderer,
	req resetRequest,
) error {
	infos, err := uc.List(ctx)
	if err != nil {
		return err
	}
	stored := make([]string, 0, len(infos))
	for _, info := range infos {
		stored = append(stored, string(info.ID))
	}

	var targets []string
	if req.All {
		if len(stored) > 0 && req.Confirm != nil {
			ok, err := req.Confirm(len(stored))
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
		targets = stored
	} else {
		id := string(req.ID)
		if !slices.Contains(stored, id) {
			_, err := fmt.Fprint(w, renderer.RenderUnknown(id, suggestIDs(id, stored)))
			return err
		}
		targets = []string{id}
	}

	for _, id := range targets {
		if err := uc.Forget(ctx, entity.FrameID(id)); err != nil {
			return err
		}
	}
	_, err = fmt.Fprint(w, renderer.RenderForgotten(targets))
	return err
}

func suggestIDs(id string, stored []string) []string {
	matches := fuzzy.Find(id, stored)
	suggestions := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, m.Str)
	}
	return suggestions
}

func confirmResetAll(count int) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Forget %d stored frame positions?", count)).
		Affirmative("Reset").
		Negative("Cancel").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ok, nil
}
