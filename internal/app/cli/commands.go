package cli

import (
	"github.com/spf13/cobra"

	"hatchlog/internal/config"
)

// CommandType represents the type of CLI command
type CommandType int

// Command type values
const (
	CommandTail CommandType = iota
	CommandHealth
	CommandInit
	CommandVersion
	CommandHelp
)

// Options contains the parsed command-line arguments
type Options struct {
	Type    CommandType
	NoUI    bool
	Levels  []string
	Search  string
	Pattern string
	Force   bool
	DryRun  bool
}

// rootFlags holds flag values for the root command
type rootFlags struct {
	version bool
}

// Parse parses command-line args and returns a Options struct
func Parse(args []string) (*Options, error) {
	result := &Options{Type: CommandTail}

	var flags rootFlags

	root := buildRootCommand(result, &flags)
	root.AddCommand(
		buildTailCommand(result),
		buildHealthCommand(result),
		buildInitCommand(result),
		buildVersionCommand(result),
	)

	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		return nil, err
	}

	if flags.version {
		result.Type = CommandVersion
	}

	return result, nil
}

// buildRootCommand creates the root cobra command
func buildRootCommand(result *Options, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Live log tail and health view for the hatch developer proxy",
		Long: `Hatchlog follows the hatch daemon's live log stream, keeps a bounded
tail of recent entries and annotates it with per-route health.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandTail
		},
	}

	cmd.PersistentFlags().BoolVar(&result.NoUI, "no-ui", false, "Print entries as plain lines instead of the TUI")
	cmd.Flags().BoolVarP(&flags.version, "version", "v", false, "Show version information")

	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		result.Type = CommandHelp
	})

	return cmd
}

// buildTailCommand creates the tail subcommand
func buildTailCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tail",
		Aliases: []string{"t"},
		Short:   "Follow the live log stream",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandTail
		},
	}

	cmd.Flags().StringSliceVarP(&result.Levels, "level", "l", nil, "Show only these levels (debug, info, warn, error)")
	cmd.Flags().StringVarP(&result.Search, "search", "s", "", "Show only entries containing this text")

	return cmd
}

// buildHealthCommand creates the health subcommand
func buildHealthCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health [pattern]",
		Short: "Print the current health snapshot, optionally filtered by a glob",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandHealth
			if len(args) > 0 {
				result.Pattern = args[0]
			}
		},
	}

	return cmd
}

// buildInitCommand creates the init subcommand
func buildInitCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "init",
		Aliases: []string{"i"},
		Short:   "Generate " + config.FileName + " template",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandInit
		},
	}

	cmd.Flags().BoolVarP(&result.Force, "force", "f", false, "Overwrite an existing file")
	cmd.Flags().BoolVar(&result.DryRun, "dry-run", false, "Print the template instead of writing it")

	return cmd
}

// buildVersionCommand creates the version subcommand
func buildVersionCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandVersion
		},
	}

	return cmd
}
