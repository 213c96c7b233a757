// Package main provides the CLI entry point for runebench, a repeatable
// micro-benchmark harness for embedded language runtimes.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"runebench"
	"runebench/internal/core"
	"runebench/internal/recstore"
	"runebench/internal/telemetry"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		logger.Error("run failed", "err", err)
		if core.IsFatal(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "runebench",
		Short: "Micro-benchmark harness for embedded language runtimes",
		Long: `Runebench runs small self-verifying workloads through embedded language
runtimes (QuickJS or V8, Lua, Starlark, WebAssembly, an eBPF register VM)
and an ahead-of-time-compiled native baseline, timing engine startup,
program load, and execution separately for each iteration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(logger))
	root.AddCommand(newListCmd())

	return root
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var (
		runtime      string
		workload     string
		workloadFile string
		iterations   int
		memLimitMB   int
		memStats     bool
		recordDB     string
		telemetryURL string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a workload through one runtime",
		Long: `Run drives the selected workload through the selected runtime for a
fixed number of iterations, printing one semicolon-delimited record per
iteration. The process exits 0 when the final iteration verified its
result, 1 when it did not, and 2 when the runtime could not be
initialized.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := runebench.Options{
				Runtime:       runtime,
				Workload:      workload,
				WorkloadFile:  workloadFile,
				Iterations:    iterations,
				MemoryLimitMB: memLimitMB,
				MemStats:      memStats,
			}

			if recordDB != "" {
				store, err := recstore.Open(recordDB, runtime, workloadLabel(workload, workloadFile))
				if err != nil {
					return err
				}
				defer store.Close()
				opts.Sinks = append(opts.Sinks, store)
			}

			if telemetryURL != "" {
				client, err := telemetry.Dial(cmd.Context(), telemetryURL, runtime, workloadLabel(workload, workloadFile))
				if err != nil {
					return err
				}
				defer client.Close()
				opts.Sinks = append(opts.Sinks, client)
			}

			correct, err := runebench.Run(opts)
			if err != nil {
				return err
			}
			if !correct {
				// Distinguishable from infrastructure errors: the run
				// completed but the final iteration failed verification.
				return errIncorrect
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&runtime, "runtime", "native",
		fmt.Sprintf("Runtime to benchmark: %s", strings.Join(runebench.Runtimes(), ", ")))
	flags.StringVar(&workload, "workload", "sum",
		"Built-in workload name (sum, crc32, md5, libud, tarfind)")
	flags.StringVar(&workloadFile, "workload-file", "",
		"Load workload bytes from a file instead (.br files are decompressed)")
	flags.IntVar(&iterations, "iterations", runebench.DefaultIterations,
		"Number of benchmark iterations")
	flags.IntVar(&memLimitMB, "memory-limit", 0,
		"Engine heap limit in MiB for runtimes that support one (0 = unlimited)")
	flags.BoolVar(&memStats, "mem-stats", false,
		"Print per-iteration memory statistics for runtimes with a probe")
	flags.StringVar(&recordDB, "record-db", "",
		"SQLite file to persist records to")
	flags.StringVar(&telemetryURL, "telemetry-url", "",
		"WebSocket endpoint to stream records to")

	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List runtimes and the embedded JS backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "runtimes: %s\n", strings.Join(runebench.Runtimes(), ", "))
			fmt.Fprintf(cmd.OutOrStdout(), "js backend: %s\n", runebench.JSBackend)
			return nil
		},
	}
}

// errIncorrect signals a completed run whose final iteration failed
// verification. It maps to exit status 1 without an extra error log line
// carrying new information.
var errIncorrect = fmt.Errorf("final iteration failed verification")

func workloadLabel(workload, workloadFile string) string {
	if workloadFile != "" {
		return workloadFile
	}
	return workload
}
