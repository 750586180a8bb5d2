package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/jaclang-dev/jacc/internal/ast"
	"github.com/jaclang-dev/jacc/internal/compiler"
	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test <file.jac>",
	Short: "Compile a Jac file and run its registered test suite",
	Long: `Compile file.jac and execute every 'test <name> { ... }' block registered
in the module, each lowered to a test_<name> function by the
code generator.`,
	Args: cobra.ExactArgs(1),
	RunE: runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(_ *cobra.Command, args []string) error {
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

	names := testNames(res.Module)
	if len(names) == 0 {
		fmt.Println("no tests registered")
		return nil
	}

	dir, base := filepath.Split(out)
	mod := strings.TrimSuffix(base, filepath.Ext(base))
	var calls strings.Builder
	for _, n := range names {
		fmt.Fprintf(&calls, "%s.test_%s(); print(%q, 'ok')\n", mod, n, n)
	}
	script := fmt.Sprintf("import sys; sys.path.insert(0, %q); import %s\n%s", dir, mod, calls.String())

	proc := exec.Command("python3", "-c", script)
	proc.Stdout = os.Stdout
	proc.Stderr = os.Stderr
	return proc.Run()
}

func testNames(m *ast.Module) []string {
	if m.Elems == nil {
		return nil
	}
	var out []string
	for _, item := range m.Elems.Items {
		if t, ok := item.(*ast.Test); ok {
			out = append(out, t.Name)
		}
	}
	return out
}
