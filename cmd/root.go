package cmd

import (
	"os"

	"github.com/prithwish249/create-vite-tailwind/core"
	"github.com/prithwish249/create-vite-tailwind/internal/logger"

	"github.com/spf13/cobra"
)

func newRootCmd(runner core.Runner) *cobra.Command {
	var opts createOptions

	cmd := &cobra.Command{
		Use:           "create-vite-tailwind [projectName]",
		Short:         "Scaffold a Vite + React + Tailwind CSS project",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(opts.debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd.Context(), cmd.OutOrStdout(), runner, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML file overriding the package manager, runner, generator or template")
	return cmd
}

func Execute() {
	if err := newRootCmd(&core.ExecRunner{}).Execute(); err != nil {
		logger.Error("Error: %v\n", err)
		os.Exit(1)
	}
}
