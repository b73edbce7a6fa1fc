// Command equivalence demonstrates the commitment equivalence protocol on
// the command line: it sets up both backends, commits to a random
// polynomial, proves the two commitments agree and verifies the proof.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "equivalence",
	Short: "prove that a KZG and an IPA commitment open to the same polynomial",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
