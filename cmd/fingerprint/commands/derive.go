package commands

import (
	"fmt"
	"os"

	"provenance/contexts/product-integrity/authenticity-service/adapters/labels"
	"provenance/contexts/product-integrity/authenticity-service/domain/entities"

	"github.com/spf13/cobra"
)

func DeriveCommand() *cobra.Command {
	var (
		batchID   uint64
		serials   []string
		labelPath string
	)

	deriveCmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive fingerprints for serial numbers of a batch",
		Long:  `Derive prints one fingerprint per serial, computed as keccak256(uint256(batch id) || serial). With --label the first fingerprint is also written as a QR code PNG.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if batchID == 0 {
				return fmt.Errorf("--batch-id must be greater than zero")
			}
			serials = append(serials, args...)
			if len(serials) == 0 {
				return fmt.Errorf("at least one serial is required")
			}

			out := cmd.OutOrStdout()
			fingerprints := make([]entities.Fingerprint, 0, len(serials))
			for _, serial := range serials {
				fingerprint := entities.DeriveFingerprint(batchID, serial)
				fingerprints = append(fingerprints, fingerprint)
				fmt.Fprintf(out, "%s\t%s\n", serial, fingerprint.Hex())
			}

			if labelPath == "" {
				return nil
			}
			png, err := labels.NewQRRenderer().Render(fingerprints[0], batchID)
			if err != nil {
				return err
			}
			if err := os.WriteFile(labelPath, png, 0o644); err != nil {
				return fmt.Errorf("write label: %w", err)
			}
			fmt.Fprintf(out, "label written to %s\n", labelPath)
			return nil
		},
	}

	deriveCmd.Flags().Uint64Var(&batchID, "batch-id", 0, "batch id the serials belong to")
	deriveCmd.Flags().StringSliceVar(&serials, "serial", nil, "serial number (repeatable)")
	deriveCmd.Flags().StringVar(&labelPath, "label", "", "write a QR label PNG for the first serial to this path")
	return deriveCmd
}
