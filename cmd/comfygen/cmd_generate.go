package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"comfygen/internal/bootstrap"
	"comfygen/internal/comfy"
	"comfygen/internal/domain/jsoncfg"
	"comfygen/internal/infra"
)

func newGenerateCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		prompt   string
		aspect   string
		frames   int
		outDir   string
		workflow string
		mapping  string
		timeout  time.Duration
		poll     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Queue the animation workflow and download its first output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := jsoncfg.GenerateJSON{Prompt: prompt, AspectRatio: aspect, Frames: frames}
			req.Normalize()
			aspectRatio, err := req.Validate()
			if err != nil {
				return err
			}

			cfg, logger, err := loadCLIConfig(cmd, stderr)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("workflow") {
				cfg.WorkflowPath = workflow
			}
			if cmd.Flags().Changed("mapping") {
				cfg.FieldMapPath = mapping
			}
			if cmd.Flags().Changed("timeout") {
				cfg.JobTimeout = timeout
			}
			if cmd.Flags().Changed("poll") {
				cfg.PollInterval = poll
			}

			client, err := bootstrap.NewComfyClient(cfg, &logger)
			if err != nil {
				return err
			}
			res, err := client.Generate(cmd.Context(), comfy.GenerateRequest{
				Prompt:      req.Prompt,
				AspectRatio: aspectRatio,
				Frames:      req.Frames,
				OutputDir:   outDir,
			})
			if err != nil {
				fmt.Fprintf(stderr, "comfygen: generate failed (%s): %v\n", comfy.KindOf(err), err) //nolint:errcheck // best-effort stderr
				return errExit
			}
			if res.Path != "" {
				fmt.Fprintln(stdout, res.Path) //nolint:errcheck // best-effort stdout
				return nil
			}
			fmt.Fprintf(stdout, "%s\t%s\n", res.PromptID, res.Artifact.Filename) //nolint:errcheck // best-effort stdout
			return nil
		},
	}
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Text prompt injected into the workflow")
	cmd.Flags().StringVarP(&aspect, "aspect", "a", jsoncfg.DefaultAspectRatio, "Aspect ratio: 16:9, 9:16, 1:1 (or landscape, portrait, square)")
	cmd.Flags().IntVarP(&frames, "frames", "n", jsoncfg.DefaultFrames, "Number of frames to generate")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory to save the artifact into; empty skips the download")
	cmd.Flags().StringVar(&workflow, "workflow", "", "Workflow template path (overrides COMFYUI_WORKFLOW_PATH)")
	cmd.Flags().StringVar(&mapping, "mapping", "", "Field mapping JSON path (overrides COMFYUI_FIELD_MAP_PATH)")
	cmd.Flags().DurationVar(&timeout, "timeout", comfy.DefaultTimeout, "Maximum time to wait for the job")
	cmd.Flags().DurationVar(&poll, "poll", comfy.DefaultPollInterval, "Delay between history polls")
	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}

// loadCLIConfig reads the environment configuration and applies the
// persistent flags shared by every subcommand.
func loadCLIConfig(cmd *cobra.Command, stderr io.Writer) (*infra.Config, infra.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := infra.NewCLILogger(stderr, verbose)
	cfg, err := infra.LoadConfig()
	if err != nil {
		return nil, logger, err
	}
	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.ComfyHost = host
	}
	return cfg, logger, nil
}
