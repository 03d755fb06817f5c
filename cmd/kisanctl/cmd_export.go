package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
	"github.com/i-m-samarth-cs/kisan-connect/internal/seed"
	"github.com/i-m-samarth-cs/kisan-connect/internal/usecase"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export-xlsx <farmer-id>",
	Short: "Export a farmer's listings as an .xlsx workbook",
	Long:  `Reads the farmer's products from the backend (or the demo catalogue when no backend is configured) and writes them to a spreadsheet.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "listings.xlsx", "output file")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	farmerID := args[0]

	var products []model.Product
	if cfg.IsBackendConfigured() {
		gw, closeFn, err := openBackend(ctx)
		if err != nil {
			return err
		}
		defer closeFn()
		products, err = gw.ListFarmerProducts(ctx, farmerID)
		if err != nil {
			return err
		}
	} else {
		data, err := seed.Load()
		if err != nil {
			return err
		}
		for _, p := range data.Products {
			if p.FarmerID == farmerID {
				products = append(products, p)
			}
		}
	}

	f, err := os.Create(exportOut)
	if err != nil {
		return err
	}
	if err := usecase.WriteListingsXLSX(f, products); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d listings -> %s\n", len(products), exportOut)
	return nil
}
