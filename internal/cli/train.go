package cli

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/born-ml/tabae/internal/config"
	"github.com/born-ml/tabae/internal/train"
	"github.com/born-ml/tabae/internal/vae"
)

func newTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train an autoencoder preset",
		Long: `Train one of the preset autoencoders on a CSV file or synthetic data.

Variants: simple, single, multi, simple-vae, single-vae, multi-vae.
With --restarts greater than one, independent models train concurrently
and the one with the lowest final validation loss is reported.`,
		Args: cobra.NoArgs,
		RunE: TrainHandler,
	}

	def := config.Default()
	cmd.Flags().String("variant", def.Variant, "Autoencoder preset")
	cmd.Flags().Int("latent", def.LatentDim, "Latent dimensionality")
	cmd.Flags().Float64("beta", def.Beta, "KL weight of variational presets")
	cmd.Flags().Int("epochs", def.Epochs, "Training epochs")
	cmd.Flags().Int("batch-size", def.BatchSize, "Mini-batch size")
	cmd.Flags().Int("restarts", def.Restarts, "Independent training runs")
	cmd.Flags().Int("width", vae.TuneInputWidth, "Columns of synthetic data")
	cmd.Flags().Bool("summary", false, "Print the model summary before training")
	addDataFlags(cmd)

	return cmd
}

// trainFile merges the command line over the config file.
func trainFile(cmd *cobra.Command) (config.File, error) {
	f, err := loadFile(cmd)
	if err != nil {
		return config.File{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("variant") {
		f.Variant, _ = flags.GetString("variant")
	}
	if flags.Changed("latent") {
		f.LatentDim, _ = flags.GetInt("latent")
	}
	if flags.Changed("beta") {
		f.Beta, _ = flags.GetFloat64("beta")
	}
	if flags.Changed("epochs") {
		f.Epochs, _ = flags.GetInt("epochs")
	}
	if flags.Changed("batch-size") {
		f.BatchSize, _ = flags.GetInt("batch-size")
	}
	if flags.Changed("restarts") {
		f.Restarts, _ = flags.GetInt("restarts")
	}
	if flags.Changed("val-fraction") {
		f.ValidationFraction, _ = flags.GetFloat64("val-fraction")
	}
	if flags.Changed("data") {
		f.Data, _ = flags.GetString("data")
	}
	return f, f.Validate()
}

// TrainHandler trains the configured preset and prints its history.
func TrainHandler(cmd *cobra.Command, _ []string) error {
	f, err := trainFile(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cmd)
	seed := resolveSeed(cmd, f)
	rng := rand.New(rand.NewSource(seed))

	width, _ := cmd.Flags().GetInt("width")
	trainX, valX, err := loadData(cmd, f.Data, width, f.LatentDim, f.ValidationFraction, rng)
	if err != nil {
		return err
	}

	variant := vae.Variant(f.Variant)
	beta := f.Beta
	if !variant.Variational() {
		beta = 0
	}
	logger.Info("training", "variant", variant, "rows", trainX.Rows(), "width", trainX.Cols(),
		"restarts", f.Restarts, "seed", seed)

	if show, _ := cmd.Flags().GetBool("summary"); show {
		ae, _, _, err := vae.Build(variant, f.LatentDim, trainX.Cols(), beta, vae.WithSeed(seed))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ae.Summary())
	}

	run := func(ctx context.Context, restart int) (*vae.Autoencoder, *train.History, error) {
		ae, _, _, err := vae.Build(variant, f.LatentDim, trainX.Cols(), beta,
			vae.WithSeed(seed+int64(restart)), vae.WithLogger(logger.With("restart", restart)))
		if err != nil {
			return nil, nil, err
		}

		cfg := train.Config{
			Epochs:    f.Epochs,
			BatchSize: f.BatchSize,
			Shuffle:   true,
			OnEpochEnd: func(int, *train.History) error {
				return ctx.Err()
			},
		}
		if valX != nil {
			cfg.Validation = &train.Validation{X: valX, Y: valX}
		}
		history, err := ae.Fit(trainX, trainX, cfg)
		if err != nil {
			return nil, nil, err
		}
		return ae, history, nil
	}

	ae, history, err := train.BestOf(cmd.Context(), f.Restarts, run)
	if err != nil {
		return err
	}

	printHistory(cmd.OutOrStdout(), history)
	logger.Debug("best model", "id", ae.ID(), "params", ae.CountParameters())
	return nil
}
