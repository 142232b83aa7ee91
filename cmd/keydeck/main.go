package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/studiowebux/keydeck/internal/cli"
	"github.com/studiowebux/keydeck/internal/config"
	"github.com/studiowebux/keydeck/internal/history"
	"github.com/studiowebux/keydeck/internal/logging"
	"github.com/studiowebux/keydeck/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "keydeck",
	Short: "Keydeck - key binding profile manager",
	Long: `Keydeck manages profiles of key bindings. Each profile holds lines of
an action name, a key and an input type (Click or Hold); a key is used by
at most one line per profile.

Run without arguments to start the TUI.

Examples:
  keydeck                              # Start interactive TUI
  keydeck -f ./game.yaml               # Use a specific profiles file
  keydeck profiles                     # Print the resolved profiles
  keydeck check profiles.yaml          # Report latent duplicate keys
  keydeck export --format json         # Write the profiles as JSON
  keydeck switch "Profile #1"          # Change the active profile
  keydeck history --limit 20           # Show the journal`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(flagFile)
	},
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Print the profiles the profiles file resolves to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, path, err := setup()
		if err != nil {
			return err
		}
		return cli.Profiles(cli.ProfilesOptions{
			File:   path,
			Format: flagFormat,
			Out:    cmd.OutOrStdout(),
			Log:    log,
		})
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a profiles file",
	Long: `Validate a profiles file without changing it.

Reports profiles that would be skipped and bindings whose key is already
used by an earlier binding of the same profile. Exits with status 1 when
anything is reported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Check(args[0], cmd.OutOrStdout())
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the resolved profiles as YAML or JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, path, err := setup()
		if err != nil {
			return err
		}
		return cli.Export(cli.ExportOptions{
			File:    path,
			Format:  flagFormat,
			OutPath: flagOut,
			Out:     cmd.OutOrStdout(),
			Log:     log,
		})
	},
}

var switchCmd = &cobra.Command{
	Use:   "switch [profile]",
	Short: "Change the active profile of the profiles file",
	Long: `Change the active profile of the profiles file.

Without an argument an interactive list of the profiles is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, path, err := setup()
		if err != nil {
			return err
		}

		opts := cli.SwitchOptions{File: path, Out: cmd.OutOrStdout(), Log: log}
		if len(args) > 0 {
			opts.Profile = args[0]
		}

		settings, err := config.LoadSettings(config.ConfigDir)
		if err != nil {
			return err
		}
		if settings.HistoryEnabled {
			journal, err := history.NewManager(config.DatabasePath)
			if err != nil {
				log.WithError(err).Warn("journal disabled")
			} else {
				defer journal.Close()
				opts.Journal = journal
			}
		}

		return cli.Switch(opts)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear the journal of profile changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		journal, err := history.NewManager(config.DatabasePath)
		if err != nil {
			return err
		}
		defer journal.Close()

		return cli.History(cli.HistoryOptions{
			Journal: journal,
			Profile: flagHistoryProfile,
			Limit:   flagHistoryLimit,
			Clear:   flagHistoryClear,
			JSON:    flagHistoryJSON,
			Out:     cmd.OutOrStdout(),
		})
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Create or validate the keybinds file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		if flagKeybindsInit {
			return cli.InitKeybinds(config.KeybindsFile, flagKeybindsForce, cmd.OutOrStdout())
		}
		return cli.CheckKeybinds(config.KeybindsFile, cmd.OutOrStdout())
	},
}

// Flags for root and the file commands
var (
	flagFile     string
	flagFormat   string
	flagOut      string
	flagLogLevel string
)

// Flags for history
var (
	flagHistoryProfile string
	flagHistoryLimit   int
	flagHistoryClear   bool
	flagHistoryJSON    bool
)

// Flags for keybinds
var (
	flagKeybindsInit  bool
	flagKeybindsForce bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Profiles file (default: ./keydeck.yaml or ~/.keydeck/profiles.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level for commands (default from config.toml)")

	profilesCmd.Flags().StringVarP(&flagFormat, "format", "o", "text", "Output format (text/yaml/json)")

	exportCmd.Flags().StringVar(&flagFormat, "format", "", "Output format (yaml/json, default from --out or yaml)")
	exportCmd.Flags().StringVar(&flagOut, "out", "", "Write to this file instead of stdout")

	historyCmd.Flags().StringVarP(&flagHistoryProfile, "profile", "p", "", "Only entries of this profile")
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 50, "Number of entries (0 for all)")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the entries instead of printing them")
	historyCmd.Flags().BoolVar(&flagHistoryJSON, "json", false, "Print as JSON")

	keybindsCmd.Flags().BoolVar(&flagKeybindsInit, "init", false, "Write the default keybinds file")
	keybindsCmd.Flags().BoolVar(&flagKeybindsForce, "force", false, "Overwrite an existing keybinds file")

	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(switchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(keybindsCmd)
}

// setup initializes the config directory and returns a stderr logger and
// the resolved profiles file
func setup() (*logrus.Logger, string, error) {
	if err := config.Initialize(); err != nil {
		return nil, "", fmt.Errorf("failed to initialize config: %w", err)
	}

	settings, err := config.LoadSettings(config.ConfigDir)
	if err != nil {
		return nil, "", err
	}

	level := settings.LogLevel
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	log, err := logging.New(os.Stderr, level)
	if err != nil {
		return nil, "", err
	}

	path := flagFile
	if path == "" {
		path = settings.ProfilesFile
	}
	return log, config.GetProfilesFilePath(path), nil
}
