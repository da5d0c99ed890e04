// Command tabae trains autoencoders on tabular data.
package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/born-ml/tabae/internal/cli"
)

func main() {
	cobra.CheckErr(cli.NewCLI().ExecuteContext(context.Background()))
}
