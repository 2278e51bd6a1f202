package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fractionestate/decentralized-did/aggregator"
)

func newRevokeCmd() *cobra.Command {
	var remainingHex []string

	cmd := &cobra.Command{
		Use:   "revoke",
		Short: "Recompute the master key after permanently removing a finger",
		RunE: func(cmd *cobra.Command, args []string) error {
			remaining := make([]aggregator.FingerKey, 0, len(remainingHex))
			for i, s := range remainingHex {
				key, err := decodeKey(s)
				if err != nil {
					return fmt.Errorf("remaining-key[%d]: %w", i, err)
				}
				remaining = append(remaining, aggregator.FingerKey{FingerID: fmt.Sprintf("remaining-%d", i), Key: key})
			}

			master, err := aggregator.Revoke(remaining)
			if err != nil {
				return err
			}
			fmt.Println(hex.EncodeToString(master[:]))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&remainingHex, "remaining-key", nil, "hex-encoded key of a finger that remains after revocation (repeatable)")
	cmd.MarkFlagRequired("remaining-key")

	return cmd
}
