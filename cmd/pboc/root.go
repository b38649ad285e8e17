package main

import (
	"fmt"
	"os"
	"path/filepath"

	pboc "github.com/RPGroup-PBoC/cshl-pboc"
	"github.com/RPGroup-PBoC/cshl-pboc/plots"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootOptions holds the global flags and what they resolve to.
type rootOptions struct {
	Verbose bool
	Output  string
	logger  kitlog.Logger
}

// path returns the output file with the given name.
func (o *rootOptions) path(name string) string {
	return filepath.Join(o.Output, name)
}

// figure returns the output file for a static figure in the configured format.
func (o *rootOptions) figure(name string) string {
	return o.path(name + "." + pboc.PlotFormat())
}

func (o *rootOptions) size() plots.Size {
	return plots.SizeInches(pboc.PlotSize())
}

func (o *rootOptions) wrote(subsys, file string) {
	level.Info(o.logger).Log("subsys", subsys, "file", file)
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "pboc",
		Short: "Physical Biology of the Cell tutorials",
		Long: `Numerical tutorials of the Physical Biology of the Cell course: master
equations for diffusion and mRNA copy numbers, constitutive expression,
ion channel gating and colony growth from microscopy.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(cmd.ErrOrStderr()))
			if opts.Verbose {
				logger = level.NewFilter(logger, level.AllowDebug())
			} else {
				logger = level.NewFilter(logger, level.AllowInfo())
			}
			opts.logger = kitlog.With(logger, "cmd", cmd.Name())
			if opts.Output == "" {
				opts.Output = pboc.OutputDir()
			}
			if err := os.MkdirAll(opts.Output, 0755); err != nil {
				return fmt.Errorf("output directory: %w", err)
			}
			level.Debug(opts.logger).Log("subsys", "conf", "output", opts.Output, "format", pboc.PlotFormat())
			return nil
		},
	}
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", "", "output directory (default from $PBOC_CONFIG/conf.toml, else .)")

	cmd.AddCommand(newDiffusionCommand(opts))
	cmd.AddCommand(newBirthDeathCommand(opts))
	cmd.AddCommand(newPromoterCommand(opts))
	cmd.AddCommand(newChannelCommand(opts))
	cmd.AddCommand(newGrowthCommand(opts))
	cmd.AddCommand(newMRNACommand(opts))
	cmd.AddCommand(newSegmentCommand(opts))
	return cmd
}

// loadScenario reads the scenario TOML file, if any, over the defaults of
// the given section.
func loadScenario(path, section string, defaults map[string]interface{}) (*viper.Viper, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(section+"."+key, val)
	}
	if path == "" {
		return v, nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// scenarioCommand returns a subcommand taking a --scenario flag.
func scenarioCommand(use, short string, run func(scenario string) error) *cobra.Command {
	var scenario string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(scenario)
		},
	}
	cmd.Flags().StringVar(&scenario, "scenario", "", "scenario TOML file")
	return cmd
}
