package packwise

import (
	stderrors "errors"
	"fmt"

	"github.com/arthur-debert/packwise/internal/version"
	"github.com/arthur-debert/packwise/pkg/config"
	"github.com/arthur-debert/packwise/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	errNoCommand = stderrors.New(MsgErrNoCommand)
	errNoHelp    = stderrors.New(MsgErrHelpNotFound)
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity  int
		root       string
		configFile string
	)

	rootCmd := &cobra.Command{
		Use:     "packwise",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errNoCommand
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&root, "root", "C", "", MsgFlagRoot)
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", MsgFlagConfig)

	rootCmd.AddGroup(&cobra.Group{ID: "build", Title: "BUILD:"})
	rootCmd.AddGroup(&cobra.Group{ID: "inspect", Title: "INSPECT:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	loader := func() (config.Settings, error) {
		settings, err := config.Load(config.LoadOptions{Root: root, ConfigFile: configFile})
		if err != nil {
			return config.Settings{}, fmt.Errorf(MsgErrLoadSettings, err)
		}
		return settings, nil
	}

	rootCmd.AddCommand(newBuildCmd(loader))
	rootCmd.AddCommand(newServeCmd(loader))
	rootCmd.AddCommand(newPrintCmd(loader))
	rootCmd.AddCommand(newRulesCmd(loader))
	rootCmd.AddCommand(newClassifyCmd())
	rootCmd.AddCommand(newResolveCmd(loader))
	rootCmd.AddCommand(newInitCmd(func() string { return root }))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	installTopics(rootCmd)

	return rootCmd
}

// settingsLoader loads the layered settings using the root flags
type settingsLoader func() (config.Settings, error)
