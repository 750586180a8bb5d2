package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/jaclang-dev/jacc/internal/compiler"
	"github.com/spf13/cobra"
)

var enterCmd = &cobra.Command{
	Use:   "enter <file.jac> <entrypoint> [args...]",
	Short: "Compile a Jac file and invoke one top-level callable",
	Long: `Compile file.jac, then invoke the named top-level function with the
supplied arguments, rather than running the module as a whole
program the way 'run' does.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runEnter,
}

func init() {
	rootCmd.AddCommand(enterCmd)
}

func runEnter(_ *cobra.Command, args []string) error {
	file, entrypoint, callArgs := args[0], args[1], args[2:]
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

	quoted := make([]string, len(callArgs))
	for i, a := range callArgs {
		quoted[i] = fmt.Sprintf("%q", a)
	}
	dir, base := filepath.Split(out)
	mod := strings.TrimSuffix(base, filepath.Ext(base))
	script := fmt.Sprintf("import sys; sys.path.insert(0, %q); import %s; %s.%s(%s)",
		dir, mod, mod, entrypoint, strings.Join(quoted, ", "))

	proc := exec.Command("python3", "-c", script)
	proc.Stdout = os.Stdout
	proc.Stderr = os.Stderr
	proc.Stdin = os.Stdin
	return proc.Run()
}
