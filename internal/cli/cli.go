// Package cli implements the tabae command line.
package cli

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/born-ml/tabae/internal/config"
	"github.com/born-ml/tabae/internal/dataset"
	"github.com/born-ml/tabae/internal/tensor"
)

// Version is the tabae release, overridden at link time.
var Version = "v0.0.1-dev"

// defaultRows is the size of the synthetic dataset when no CSV is given.
const defaultRows = 512

func appendEnvDocs(cmd *cobra.Command, envs []config.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// NewCLI returns the root command.
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "tabae",
		Short:         "Autoencoders for tabular data",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			if version, _ := cmd.Flags().GetBool("version"); version {
				versionHandler(cmd, args)
				return
			}

			cmd.Print(cmd.UsageString())
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")
	rootCmd.PersistentFlags().Bool("verbose", false, "Show debug logging")
	rootCmd.PersistentFlags().StringP("config", "c", "", "YAML config file")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run:   versionHandler,
	}

	trainCmd := newTrainCmd()
	tuneCmd := newTuneCmd()

	envs := config.Config()
	for _, cmd := range []*cobra.Command{trainCmd, tuneCmd} {
		appendEnvDocs(cmd, envs)
	}

	rootCmd.AddCommand(trainCmd, tuneCmd, versionCmd)

	return rootCmd
}

func versionHandler(cmd *cobra.Command, _ []string) {
	cmd.Printf("tabae version %s\n", Version)
}

// newLogger writes text logs to the command's stderr. Debug records are
// shown with --verbose or TABAE_DEBUG.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose || config.Debug() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// loadFile returns the --config file, or the defaults when none is given.
func loadFile(cmd *cobra.Command) (config.File, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// resolveSeed prefers --seed, then the config file, then TABAE_SEED, then
// the clock.
func resolveSeed(cmd *cobra.Command, f config.File) int64 {
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetInt64("seed")
		return seed
	}
	if f.Seed != nil {
		return *f.Seed
	}
	if seed, ok := config.Seed(); ok {
		return seed
	}
	return time.Now().UnixNano()
}

// loadData reads --data, or generates a synthetic dataset of the given
// width, then splits off the validation rows.
func loadData(cmd *cobra.Command, path string, width, latent int, valFraction float64, rng *rand.Rand) (trainX, valX *tensor.Tensor, err error) {
	var x *tensor.Tensor
	if path != "" {
		x, err = dataset.LoadCSV(path)
	} else {
		rows, _ := cmd.Flags().GetInt("rows")
		x, err = dataset.Synthetic(rows, width, latent, rng)
	}
	if err != nil {
		return nil, nil, err
	}
	return dataset.Split(x, valFraction, rng)
}

func addDataFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("data", "d", "", "CSV file with values in [0, 1] (default: synthetic data)")
	cmd.Flags().Int("rows", defaultRows, "Rows of synthetic data")
	cmd.Flags().Float64("val-fraction", 0.2, "Fraction of rows held out for validation")
	cmd.Flags().Int64("seed", 0, "Random seed")
}
