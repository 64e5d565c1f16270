// comfygen drives a ComfyUI server from the command line.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// errExit signals a non-zero exit after the command already reported to stderr.
var errExit = errors.New("exit")

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errExit) {
			fmt.Fprintf(stderr, "comfygen: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "comfygen",
		Short:         "Submit workflows to a ComfyUI server and fetch the results",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().String("host", "", "ComfyUI base url (overrides COMFYUI_HOST)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log polling and request details to stderr")
	root.AddCommand(
		newGenerateCmd(stdout, stderr),
		newPingCmd(stdout, stderr),
		newAspectsCmd(stdout),
	)
	return root
}
