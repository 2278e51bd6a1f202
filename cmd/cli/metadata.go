package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fractionestate/decentralized-did/didmeta"
)

func newMetadataCmd() *cobra.Command {
	build := &cobra.Command{
		Use:   "build",
		Short: "Build a DID and metadata payload from an aggregated master key",
		RunE:  runMetadataBuild,
	}

	build.Flags().Int("label", didmeta.DefaultLabel, "ledger transaction-metadata integer label")
	build.Flags().String("network", didmeta.NetworkMainnet, "network (mainnet, preprod, preview)")
	build.Flags().String("wallet-address", "", "bech32 wallet address")
	build.Flags().String("master-key", "", "hex-encoded 32-byte aggregated master key")
	build.Flags().StringSlice("helper", nil, "path to a hex-encoded helper blob to embed inline (repeatable)")
	build.Flags().String("helper-uri", "", "external helper storage URI (mutually exclusive with --helper)")
	build.Flags().String("helper-hash", "", "content hash of the external helper object")
	build.Flags().Int("finger-count", 0, "number of fingers contributing to the master key")
	build.Flags().String("aggregation-mode", "N/N", "aggregation mode string: N/N, 3/4, or 2/4")
	build.Flags().String("out", "", "path to write the wallet-API JSON form; prints to stdout if empty")
	build.MarkFlagRequired("wallet-address")
	build.MarkFlagRequired("master-key")
	build.MarkFlagRequired("finger-count")
	build.MarkFlagsMutuallyExclusive("helper", "helper-uri")

	root := &cobra.Command{Use: "metadata", Short: "Build and inspect DID metadata payloads"}
	root.AddCommand(build)
	return root
}

func runMetadataBuild(cmd *cobra.Command, args []string) error {
	label, _ := cmd.Flags().GetInt("label")
	network, _ := cmd.Flags().GetString("network")
	walletAddr, _ := cmd.Flags().GetString("wallet-address")
	masterKeyHex, _ := cmd.Flags().GetString("master-key")
	helperPaths, _ := cmd.Flags().GetStringSlice("helper")
	helperUri, _ := cmd.Flags().GetString("helper-uri")
	helperHash, _ := cmd.Flags().GetString("helper-hash")
	fingerCount, _ := cmd.Flags().GetInt("finger-count")
	aggMode, _ := cmd.Flags().GetString("aggregation-mode")
	out, _ := cmd.Flags().GetString("out")

	masterKey, err := hex.DecodeString(masterKeyHex)
	if err != nil {
		return fmt.Errorf("decoding master key: %w", err)
	}

	did, err := didmeta.DeriveDid(network, walletAddr, masterKey)
	if err != nil {
		return err
	}

	builder := didmeta.NewBuilder(label, walletAddr, didmeta.IdHash(masterKey))
	if helperUri != "" {
		builder.WithExternalHelper(helperUri, helperHash)
	} else {
		entries := make([]didmeta.HelperEntry, 0, len(helperPaths))
		for i, path := range helperPaths {
			h, err := readHelperBlob(path)
			if err != nil {
				return err
			}
			entries = append(entries, didmeta.NewHelperEntry(
				fmt.Sprintf("finger-%d", i),
				h.Version,
				h.Salt[:],
				h.Personalization[:],
				h.Codeword.Bytes(),
				h.Tag[:],
			))
		}
		builder.WithInlineHelpers(entries)
	}
	builder.WithAggregation(fingerCount, aggMode)

	result, err := builder.Build(did.String())
	if err != nil {
		return err
	}
	if result.SoftWarning {
		fmt.Fprintf(os.Stderr, "warning: metadata payload is %d bytes, above the %d byte soft limit; consider external storage\n", result.SizeBytes, didmeta.SoftSizeLimit)
	}

	data, err := didmeta.EncodeApiForm(result.ApiForm)
	if err != nil {
		return err
	}
	if out == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(out, data, 0o600)
}
