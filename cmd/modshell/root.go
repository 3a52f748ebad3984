package modshell

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/modshell/internal/version"
	"github.com/arthur-debert/modshell/pkg/config"
	"github.com/arthur-debert/modshell/pkg/errors"
	"github.com/arthur-debert/modshell/pkg/logging"
	"github.com/arthur-debert/modshell/pkg/output"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions are shared by every command. cfg is loaded before any
// command runs.
type globalOptions struct {
	verbosity  int
	configFile string
	format     string
	sets       []string

	cfg *config.Config
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "modshell",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Console logging until the configuration says otherwise
			logging.SetupWriter(cmd.ErrOrStderr(), opts.verbosity)

			if err := opts.load(cmd); err != nil {
				return err
			}

			verbosity := opts.verbosity
			if opts.cfg.Logging.Verbosity > verbosity {
				verbosity = opts.cfg.Logging.Verbosity
			}
			if opts.cfg.Output.Format == config.FormatJSON {
				logging.SetupWriter(cmd.ErrOrStderr(), verbosity)
			} else {
				logging.SetupLogger(verbosity)
			}

			log.Debug().
				Str("command", cmd.Name()).
				Str("config", opts.cfg.Source).
				Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, "no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&opts.format, "format", "f", config.FormatAuto, MsgFlagFormat)
	rootCmd.PersistentFlags().StringArrayVar(&opts.sets, "set", nil, MsgFlagSet)

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{config.FormatAuto, config.FormatTerm, config.FormatText, config.FormatJSON}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.MarkPersistentFlagFilename("config", "toml", "yaml", "yml")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newRoutesCmd(opts))
	rootCmd.AddCommand(newNavCmd(opts))
	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	manager, err := loadTopics()
	if err != nil {
		log.Warn().Err(err).Msg("Help topics are unavailable")
		return rootCmd
	}
	rootCmd.AddCommand(newTopicsCmd(manager))
	manager.Install(rootCmd)

	return rootCmd
}

// load reads the configuration, with --format and --set applied on top
func (o *globalOptions) load(cmd *cobra.Command) error {
	overrides, err := parseSets(o.sets)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		overrides["output.format"] = o.format
	}

	cfg, err := config.Load(config.LoadOptions{
		File:      o.configFile,
		Overrides: overrides,
	})
	if err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

// parseSets turns key=value pairs into configuration overrides
func parseSets(sets []string) (map[string]interface{}, error) {
	overrides := make(map[string]interface{}, len(sets))
	for _, set := range sets {
		key, value, ok := strings.Cut(set, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrInvalidSet, set).
				WithDetail("set", set)
		}
		overrides[key] = value
	}
	return overrides, nil
}

// renderer writes to stdout in the configured format
func (o *globalOptions) renderer(cmd *cobra.Command) (*output.Renderer, error) {
	format, err := output.ParseFormat(o.cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return output.NewRenderer(format, cmd.OutOrStdout()), nil
}

// errRenderer writes to stderr in the configured format
func (o *globalOptions) errRenderer(cmd *cobra.Command) (*output.Renderer, error) {
	format, err := output.ParseFormat(o.cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return output.NewRenderer(format, cmd.ErrOrStderr()), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return GenCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}
