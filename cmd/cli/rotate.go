package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fractionestate/decentralized-did/aggregator"
)

func newRotateCmd() *cobra.Command {
	var oldMasterHex, oldKeyHex, newKeyHex string

	cmd := &cobra.Command{
		Use:   "rotate",
		Short: "Derive a new master key after replacing one finger's key",
		RunE: func(cmd *cobra.Command, args []string) error {
			oldMaster, err := decodeKey(oldMasterHex)
			if err != nil {
				return fmt.Errorf("old-master: %w", err)
			}
			oldKey, err := decodeKey(oldKeyHex)
			if err != nil {
				return fmt.Errorf("old-finger-key: %w", err)
			}
			newKey, err := decodeKey(newKeyHex)
			if err != nil {
				return fmt.Errorf("new-finger-key: %w", err)
			}

			rotated := aggregator.Rotate(oldMaster, oldKey, newKey)
			fmt.Println(hex.EncodeToString(rotated[:]))
			return nil
		},
	}

	cmd.Flags().StringVar(&oldMasterHex, "old-master", "", "hex-encoded current master key (32 bytes)")
	cmd.Flags().StringVar(&oldKeyHex, "old-finger-key", "", "hex-encoded key of the finger being replaced")
	cmd.Flags().StringVar(&newKeyHex, "new-finger-key", "", "hex-encoded key of the replacement finger")
	cmd.MarkFlagRequired("old-master")
	cmd.MarkFlagRequired("old-finger-key")
	cmd.MarkFlagRequired("new-finger-key")

	return cmd
}

func decodeKey(s string) ([aggregator.KeySize]byte, error) {
	var out [aggregator.KeySize]byte
	raw, err := hex.DecodeString(s)
	if err != nil {
		return out, err
	}
	if len(raw) != aggregator.KeySize {
		return out, fmt.Errorf("expected %d bytes, got %d", aggregator.KeySize, len(raw))
	}
	copy(out[:], raw)
	return out, nil
}
