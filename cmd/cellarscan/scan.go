package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmaresco/cellarscan/internal/pipeline"
)

var scanOwner string

var scanCmd = &cobra.Command{
	Use:   "scan <image-uri>",
	Short: "Run one label extraction and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		// The operator acts as the owner; the ownership check still runs.
		result, err := e.Pipeline.Extract(cmd.Context(), pipeline.Request{
			ImageURI:    args[0],
			OwnerID:     scanOwner,
			RequesterID: scanOwner,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanOwner, "owner", "", "owner user id (uuid)")
	_ = scanCmd.MarkFlagRequired("owner")
	rootCmd.AddCommand(scanCmd)
}
