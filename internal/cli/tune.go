package cli

import (
	"errors"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/born-ml/tabae/internal/vae"
)

var errNoValidation = errors.New("tune needs validation rows, use a positive --val-fraction")

func newTuneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tune",
		Short: "Train one tuning trial of the single-layer variational autoencoder",
		Long: `Train the single-layer variational autoencoder with the given hidden
widths, activation and epochs. The trial uses latent dim 2, 13 input
columns, beta 0.001 and batches of 8, and reports the validation loss
a hyperparameter search would minimise.

Settings come from the "tune" block of --config, overridden by flags.`,
		Args: cobra.NoArgs,
		RunE: TuneHandler,
	}

	cmd.Flags().Int("encoder-units", 64, "Width of the encoder hidden layer")
	cmd.Flags().Int("decoder-units", 64, "Width of the decoder hidden layer")
	cmd.Flags().String("activation", vae.DefaultActivation, "Hidden layer activation")
	cmd.Flags().Int("epochs", 20, "Training epochs")
	addDataFlags(cmd)

	return cmd
}

// tuneConfig merges the command line over the config file's tune block.
func tuneConfig(cmd *cobra.Command, tc *vae.TuneConfig) (vae.TuneConfig, error) {
	flags := cmd.Flags()
	var cfg vae.TuneConfig
	if tc != nil {
		cfg = *tc
	} else {
		cfg.EncoderUnits, _ = flags.GetInt("encoder-units")
		cfg.DecoderUnits, _ = flags.GetInt("decoder-units")
		cfg.Activation, _ = flags.GetString("activation")
		cfg.Epochs, _ = flags.GetInt("epochs")
	}

	if flags.Changed("encoder-units") {
		cfg.EncoderUnits, _ = flags.GetInt("encoder-units")
	}
	if flags.Changed("decoder-units") {
		cfg.DecoderUnits, _ = flags.GetInt("decoder-units")
	}
	if flags.Changed("activation") {
		cfg.Activation, _ = flags.GetString("activation")
	}
	if flags.Changed("epochs") {
		cfg.Epochs, _ = flags.GetInt("epochs")
	}
	return cfg, cfg.Validate()
}

// TuneHandler runs a single tuning trial and prints its history.
func TuneHandler(cmd *cobra.Command, _ []string) error {
	f, err := loadFile(cmd)
	if err != nil {
		return err
	}
	cfg, err := tuneConfig(cmd, f.Tune)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		f.Data, _ = flags.GetString("data")
	}
	if flags.Changed("val-fraction") {
		f.ValidationFraction, _ = flags.GetFloat64("val-fraction")
	}

	logger := newLogger(cmd)
	seed := resolveSeed(cmd, f)
	rng := rand.New(rand.NewSource(seed))

	trainX, valX, err := loadData(cmd, f.Data, vae.TuneInputWidth, vae.TuneLatentDim, f.ValidationFraction, rng)
	if err != nil {
		return err
	}
	if valX == nil {
		return errNoValidation
	}

	logger.Info("tuning", "encoder_units", cfg.EncoderUnits, "decoder_units", cfg.DecoderUnits,
		"activation", cfg.Activation, "epochs", cfg.Epochs, "seed", seed)

	history, _, err := vae.TuneSingleLayerVariational(trainX, trainX, valX, valX, cfg,
		vae.WithSeed(seed), vae.WithLogger(logger))
	if err != nil {
		return err
	}

	printHistory(cmd.OutOrStdout(), history)
	return nil
}
