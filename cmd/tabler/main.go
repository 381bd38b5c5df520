package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bjaus/tabler/internal/config"
)

// Version is set via ldflags during build.
var Version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer cancel()

	root := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "tabler",
		Short:         "Render HTML tables from data files and SQL queries",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	render := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a table",
		Long: `Render a table from a CSV, TSV, JSON or YAML file, standard input, or an SQL
query. Settings can also come from TABLER_* environment variables and --config.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRender,
	}
	config.RegisterFlags(render.Flags())

	columns := &cobra.Command{
		Use:   "columns <file>",
		Short: "Validate a column spec file",
		Long:  `Load a YAML column spec file and print the key and type of every column.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runColumns,
	}

	root.AddCommand(render, columns)
	return root
}
