package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/chtz/miniscript/pkg/script"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	replDataFile string
	replTrace    bool
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-eval-print loop",
	Long: `Start an interactive session: each line is parsed and evaluated as a
separate top-level program against a data store that persists for the
life of the session. Variables and functions do not carry over from one
line to the next; each line starts with a fresh environment and prints
its own output.

Type .exit or press Ctrl+D to quit.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVar(&replDataFile, "data", "", "JSON or YAML file seeding the session's data store")
	replCmd.Flags().BoolVar(&replTrace, "trace", false, "log each evaluated line to stderr, tagged with the session id")
}

func runRepl(_ *cobra.Command, _ []string) error {
	data, err := loadDataFile(replDataFile, nil)
	if err != nil {
		return err
	}

	sessionID := uuid.New().String()
	logLevel := slog.LevelInfo
	if replTrace {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})).With("session", sessionID)

	rl, err := readline.New("miniscript> ")
	if err != nil {
		return fmt.Errorf("starting readline: %w", err)
	}
	defer rl.Close()

	greenColor := color.New(color.FgGreen)
	redColor := color.New(color.FgRed)
	cyanColor := color.New(color.FgCyan)

	cyanColor.Printf("miniscript repl (session %s) — type .exit to quit\n", sessionID)

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Println("bye")
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			fmt.Println("bye")
			return nil
		}
		rl.SaveHistory(line)

		if replTrace {
			logger.Info("evaluating", "line", line)
		}

		var replOpts []script.Option
		if replTrace {
			replOpts = append(replOpts, script.WithTrace(func(phase string, tline, tcolumn int) {
				logger.Debug("step", "phase", phase, "line", tline, "column", tcolumn)
			}))
		}
		ip, err := script.New(replOpts...)
		if err != nil {
			redColor.Println(err)
			continue
		}
		if ok, diags := ip.Parse(line); !ok {
			redColor.Println(ip.FormatDiagnostics(diags, true))
			continue
		}

		var output []string
		ok, result, diags := ip.Evaluate(data, &output)
		for _, out := range output {
			fmt.Println(out)
		}
		if !ok {
			redColor.Println(ip.FormatDiagnostics(diags, true))
			continue
		}
		greenColor.Println(script.Stringify(result))
	}
}
