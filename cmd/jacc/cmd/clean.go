package cmd

import (
	"fmt"

	"github.com/jaclang-dev/jacc/internal/pyout"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove generated-artifact directories recursively",
	Long: `Removes every __jac_gen__ directory and target-language bytecode-cache
directory (__pycache__) found recursively under the working directory.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(_ *cobra.Command, _ []string) error {
	if err := pyout.Clean("."); err != nil {
		return fmt.Errorf("clean failed: %w", err)
	}
	fmt.Println("removed generated-artifact directories")
	return nil
}
