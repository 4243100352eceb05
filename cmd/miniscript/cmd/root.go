package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "miniscript",
	Short: "A small embeddable scripting language interpreter",
	Long: `miniscript parses and runs programs written in a small dynamically
typed scripting language: numbers, strings, bools, null, arrays, records,
functions and closures, plus three host built-ins (console_put, io_get,
io_put) bound to a caller-supplied data store and output sink.`,
	Version: Version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
`, GitCommit))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
