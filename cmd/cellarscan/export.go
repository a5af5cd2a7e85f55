package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dmaresco/cellarscan/internal/export"
)

var (
	exportOwner string
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export an owner's cellar to an XLSX workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		ownerID, err := uuid.Parse(exportOwner)
		if err != nil {
			return fmt.Errorf("parse owner id: %w", err)
		}

		e, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		svc := export.NewService(e.Wines, slog.Default())
		data, err := svc.ExportCellarXLSX(cmd.Context(), ownerID)
		if err != nil {
			return err
		}

		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", exportOut, err)
		}
		fmt.Printf("wrote %s (%d bytes)\n", exportOut, len(data))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOwner, "owner", "", "owner user id (uuid)")
	exportCmd.Flags().StringVar(&exportOut, "out", "cellar.xlsx", "output file path")
	_ = exportCmd.MarkFlagRequired("owner")
	rootCmd.AddCommand(exportCmd)
}
