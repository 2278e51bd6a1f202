// Command did-cli drives the biometric fuzzy-extractor enrollment and
// verification pipeline from the command line: one subcommand per core
// operation, each a thin adapter over the identity, aggregator or didmeta
// package.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logger = logrus.New()

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "did-cli",
		Short: "Biometric fuzzy-extractor / DID anchoring CLI",
	}

	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			return err
		}
		logger.SetLevel(parsed)
		return nil
	}

	root.AddCommand(
		newEnrollCmd(),
		newVerifyCmd(),
		newRotateCmd(),
		newRevokeCmd(),
		newMetadataCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
