package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool
var strictImports bool

var rootCmd = &cobra.Command{
	Use:   "jacc",
	Short: "Jac compiler",
	Long: `jacc compiles Jac, a data-spatial programming language, down to Python.

jacc runs Jac source through its analysis pipeline — import resolution,
symbol table construction, declaration/definition matching, name
resolution, and finally code generation — and either runs the result or
writes it to disk under __jac_gen__.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&strictImports, "strict-imports", false,
		"treat import failures (missing module, ambiguous resolution, non-public import) as fatal")
}
