package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fractionestate/decentralized-did/identity"
)

func newEnrollCmd() *cobra.Command {
	var (
		fingerID  string
		biometric string
		userTag   string
		quality   int
		helperOut string
	)

	cmd := &cobra.Command{
		Use:   "enroll",
		Short: "Enroll a single finger capture and print its key and helper blob",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readBiometric(biometric)
			if err != nil {
				return err
			}

			svc := identity.NewService(identity.WithLogger(logger))
			ef, err := svc.EnrollFinger(identity.FingerCapture{
				FingerID:  fingerID,
				Biometric: b,
				UserTag:   []byte(userTag),
			}, quality)
			if err != nil {
				return err
			}

			if helperOut != "" {
				if err := writeHelperBlob(helperOut, ef.Helper); err != nil {
					return err
				}
			}

			fmt.Printf("finger_id=%s key=%s\n", ef.FingerID, hex.EncodeToString(ef.Key.Key[:]))
			return nil
		},
	}

	cmd.Flags().StringVar(&fingerID, "finger-id", "", "identifier for this finger")
	cmd.Flags().StringVar(&biometric, "biometric", "", "path to a hex-encoded 127-bit biometric vector")
	cmd.Flags().StringVar(&userTag, "user-tag", "", "opaque user tag bound into the derived key")
	cmd.Flags().IntVar(&quality, "quality", 100, "capture quality score 0-100")
	cmd.Flags().StringVar(&helperOut, "helper-out", "", "path to write the resulting helper blob")
	cmd.MarkFlagRequired("finger-id")
	cmd.MarkFlagRequired("biometric")

	return cmd
}
