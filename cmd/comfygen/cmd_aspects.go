package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"comfygen/internal/domain"
)

func newAspectsCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "aspects",
		Short: "List supported aspect ratios and their resolutions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RATIO\tNAME\tRESOLUTION") //nolint:errcheck // tabwriter buffers
			for _, aspect := range domain.AspectRatios() {
				res, err := aspect.Resolution()
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%dx%d\n", aspect, aspect.Name(), res.Width, res.Height) //nolint:errcheck // tabwriter buffers
			}
			return tw.Flush()
		},
	}
}
