package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bnema/dragframe/internal/cli"
	"github.com/bnema/dragframe/internal/cli/styles"
	"github.com/bnema/dragframe/internal/infrastructure/config"
)

var (
	configYes   bool
	configForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View the effective configuration, write defaults, and migrate to add new default settings.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Long: `Print the configuration after defaults, the config file and DRAGFRAME_*
environment variables have been merged. Output is highlighted on a terminal.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file and its JSON schema",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	Long: `Print the JSON schema of the config file. Point your editor's TOML
language server at it for completion and validation.`,
	Args: cobra.NoArgs,
	RunE: runConfigSchema,
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Add missing default settings to config file",
	Long: `Compares your config file with available defaults and adds any missing settings.
Existing values are kept.`,
	Args: cobra.NoArgs,
	RunE: runConfigMigrate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSchemaCmd)
	configCmd.AddCommand(configMigrateCmd)
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")
	configMigrateCmd.Flags().BoolVarP(&configYes, "yes", "y", false, "skip confirmation prompt")
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	data, err := config.EncodeConfig(app.Config)
	if err != nil {
		return err
	}
	return writeTOML(cmd.OutOrStdout(), string(data), isTerminal(os.Stdout))
}

func writeTOML(w io.Writer, source string, highlight bool) error {
	if highlight {
		if err := quick.Highlight(w, source, "toml", "terminal256", "monokai"); err == nil {
			return nil
		}
	}
	_, err := io.WriteString(w, source)
	return err
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), app.Manager.GetConfigFile())
	return err
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	renderer := styles.NewConfigRenderer(styles.NewTheme())

	path, err := cli.ConfigPath(configFile)
	if err != nil {
		return err
	}
	if err := initConfigFile(path, configForce); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderError(err))
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderWritten("Config", path))
	return nil
}

var errConfigExists = errors.New("config file already exists (use --force to overwrite)")

func initConfigFile(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s: %w", path, errConfigExists)
	}
	if err := config.WriteConfigOrdered(config.DefaultConfig(), path); err != nil {
		return err
	}
	return config.WriteSchemaFile(filepath.Join(filepath.Dir(path), "config.schema.json"))
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	data, err := config.GenerateSchema()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

// runConfigMigrate runs the migration with optional confirmation.
func runConfigMigrate(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	confirm := confirmMigration
	if configYes || !isTerminal(os.Stdin) {
		confirm = nil
	}
	return migrateConfig(cmd.OutOrStdout(), app.Manager.GetConfigFile(), styles.NewConfigRenderer(app.Theme), confirm)
}

func migrateConfig(w io.Writer, path string, renderer *styles.ConfigRenderer, confirm func() (bool, error)) error {
	migrator := config.NewMigrator(path)

	missing, err := migrator.MissingKeys()
	if err != nil {
		fmt.Fprintln(w, renderer.RenderError(err))
		return nil
	}
	if len(missing) == 0 {
		fmt.Fprint(w, renderer.RenderUpToDate(path))
		return nil
	}

	fmt.Fprint(w, renderer.RenderConfigInfo(path, len(missing)))
	fmt.Fprint(w, renderer.RenderMissingKeys(migrator.FormatMissing(missing)))

	if confirm != nil {
		ok, err := confirm()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprint(w, renderer.RenderMigrateHint())
			return nil
		}
	}

	added, err := migrator.Migrate()
	if err != nil {
		fmt.Fprintln(w, renderer.RenderError(err))
		return nil
	}
	fmt.Fprint(w, renderer.RenderMigrationSuccess(len(added), path))
	return nil
}

func confirmMigration() (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title("Add these settings with default values?").
		Affirmative("Migrate").
		Negative("Cancel").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}
