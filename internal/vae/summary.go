package vae

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/born-ml/tabae/internal/nn"
)

// Summary renders the layer table of the autoencoder: one row per Dense
// layer (and the sampler for variational models) with output shape and
// parameter count.
func (a *Autoencoder) Summary() string {
	var rows [][]string
	addDense := func(prefix string, d *nn.Dense) {
		rows = append(rows, []string{
			fmt.Sprintf("%s/%s (Dense, %s)", prefix, d.Name(), d.Activation()),
			fmt.Sprintf("(None, %d)", d.OutFeatures()),
			strconv.Itoa(nn.CountParameters(d.Parameters())),
		})
	}

	for _, d := range a.encoder.Layers() {
		addDense("encoder", d)
	}
	if a.Variational() {
		rows = append(rows, []string{
			"encoder/z (Sampling)",
			fmt.Sprintf("(None, %d)", a.encoder.LatentDim()),
			"0",
		})
	}
	for _, d := range a.decoder.Layers() {
		addDense("decoder", d)
	}

	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetHeader([]string{"Layer (type)", "Output Shape", "Param #"})
	table.SetFooter([]string{"", "Total params", strconv.Itoa(a.CountParameters())})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
	return sb.String()
}
