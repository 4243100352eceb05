package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/chtz/miniscript/pkg/script"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	runEvalExpr      string
	runDataFile      string
	runSetFlags      []string
	runMaxCallDepth  int
	runMaxSteps      int
	runTrace         bool
	runDumpFinalData bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a miniscript program",
	Long: `Parse and evaluate a miniscript program from a file or inline source.

Examples:
  miniscript run program.ms
  miniscript run -e 'console_put("hi");'
  miniscript run --data store.json --set count=3 program.ms`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runEvalExpr, "eval", "e", "", "evaluate inline source instead of reading from file")
	runCmd.Flags().StringVar(&runDataFile, "data", "", "JSON or YAML file seeding the data store")
	runCmd.Flags().StringArrayVar(&runSetFlags, "set", nil, "key=value override applied on top of --data (repeatable)")
	runCmd.Flags().IntVar(&runMaxCallDepth, "max-call-depth", 0, "abort with a diagnostic past this many nested calls (0 = unlimited)")
	runCmd.Flags().IntVar(&runMaxSteps, "max-steps", 0, "abort with a diagnostic past this many evaluated statements/expressions (0 = unlimited)")
	runCmd.Flags().BoolVar(&runTrace, "trace", false, "log each evaluation phase to stderr")
	runCmd.Flags().BoolVar(&runDumpFinalData, "dump-data", false, "print the data store as JSON after execution")
}

func runScript(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(runEvalExpr, args)
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if runTrace {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	data, err := loadDataFile(runDataFile, runSetFlags)
	if err != nil {
		return err
	}

	opts := []script.Option{
		script.WithMaxCallDepth(runMaxCallDepth),
		script.WithMaxSteps(runMaxSteps),
	}
	if runTrace {
		opts = append(opts, script.WithTrace(func(phase string, line, column int) {
			logger.Debug("step", "phase", phase, "line", line, "column", column)
		}))
	}
	ip, err := script.New(opts...)
	if err != nil {
		return err
	}

	if runTrace {
		logger.Info("parsing", "file", filename)
	}
	if ok, diags := ip.Parse(source); !ok {
		fmt.Fprintln(os.Stderr, ip.FormatDiagnostics(diags, true))
		return fmt.Errorf("parsing failed with %d diagnostic(s)", len(diags))
	}

	if runTrace {
		logger.Info("evaluating", "file", filename)
	}
	var output []string
	ok, result, diags := ip.Evaluate(data, &output)

	for _, line := range output {
		fmt.Println(line)
	}

	if !ok {
		fmt.Fprintln(os.Stderr, ip.FormatDiagnostics(diags, true))
		return fmt.Errorf("evaluation failed")
	}

	if runTrace {
		logger.Info("done", "result", result.TypeName())
	}

	if runDumpFinalData {
		dumped, err := dumpDataStore(data)
		if err != nil {
			return err
		}
		color.New(color.FgCyan).Fprintln(os.Stderr, "data store:")
		fmt.Println(dumped)
	}

	return nil
}

func readSource(inline string, args []string) (source, filename string, err error) {
	if inline != "" {
		return inline, "<eval>", nil
	}
	if len(args) == 1 {
		content, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("reading %s: %w", args[0], readErr)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("provide a file path or use -e for inline source")
}
