package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/jaclang-dev/jacc/internal/compiler"
	"github.com/spf13/cobra"
)

var runMain bool

var runCmd = &cobra.Command{
	Use:   "run <file.jac>",
	Short: "Compile and execute a Jac file",
	Long: `Compile a Jac source file through the full schedule and
execute the generated Python as a subprocess.

Examples:
  jacc run script.jac
  jacc run --main=false lib.jac`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runMain, "main", true, "the executing module sees itself as the program entry point")
}

func runScript(_ *cobra.Command, args []string) error {
	file := args[0]
	c := compiler.New([]string{filepath.Dir(file)})
	c.StrictImport = strictImports

	out, res, err := c.WriteGenPy(file)
	if diagOutput := compiler.Rendered(res, true); diagOutput != "" {
		fmt.Fprintln(os.Stderr, diagOutput)
	}
	if err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}
	if res.Context.HasErrors() {
		return fmt.Errorf("compilation reported %d error(s)", len(res.Context.Errors))
	}

	env := os.Environ()
	if runMain {
		env = append(env, "JAC_MAIN=1")
	}

	proc := exec.Command("python3", out)
	if !runMain {
		// runpy gives the module a __name__ other than "__main__".
		name := filepath.Base(out[:len(out)-len(filepath.Ext(out))])
		proc = exec.Command("python3", "-c",
			fmt.Sprintf("import runpy; runpy.run_path(%q, run_name=%q)", out, name))
	}
	proc.Env = env
	proc.Stdout = os.Stdout
	proc.Stderr = os.Stderr
	proc.Stdin = os.Stdin
	return proc.Run()
}
