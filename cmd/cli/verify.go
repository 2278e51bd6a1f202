package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fractionestate/decentralized-did/identity"
)

func newVerifyCmd() *cobra.Command {
	var (
		fingerID  string
		biometric string
		helperIn  string
		quality   int
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Reproduce a finger's key from a fresh capture and its stored helper blob",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readBiometric(biometric)
			if err != nil {
				return err
			}
			helper, err := readHelperBlob(helperIn)
			if err != nil {
				return err
			}

			svc := identity.NewService(identity.WithLogger(logger))
			vf, err := svc.VerifyFinger(identity.FingerCapture{
				FingerID:  fingerID,
				Biometric: b,
			}, helper, quality)
			if err != nil {
				return err
			}

			fmt.Printf("finger_id=%s key=%s\n", vf.FingerID, hex.EncodeToString(vf.Key.Key[:]))
			return nil
		},
	}

	cmd.Flags().StringVar(&fingerID, "finger-id", "", "identifier for this finger")
	cmd.Flags().StringVar(&biometric, "biometric", "", "path to a hex-encoded 127-bit biometric vector")
	cmd.Flags().StringVar(&helperIn, "helper", "", "path to the hex-encoded helper blob produced by enroll")
	cmd.Flags().IntVar(&quality, "quality", 100, "capture quality score 0-100")
	cmd.MarkFlagRequired("finger-id")
	cmd.MarkFlagRequired("biometric")
	cmd.MarkFlagRequired("helper")

	return cmd
}
