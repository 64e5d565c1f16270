package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"comfygen/internal/bootstrap"
)

func newPingCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the ComfyUI server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadCLIConfig(cmd, stderr)
			if err != nil {
				return err
			}
			client, err := bootstrap.NewComfyClient(cfg, &logger)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			if err := client.Ping(ctx); err != nil {
				fmt.Fprintf(stderr, "comfygen: %s unreachable: %v\n", client.BaseURL(), err) //nolint:errcheck // best-effort stderr
				return errExit
			}
			fmt.Fprintf(stdout, "%s ok\n", client.BaseURL()) //nolint:errcheck // best-effort stdout
			return nil
		},
	}
}
