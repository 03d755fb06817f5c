package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	repo "github.com/i-m-samarth-cs/kisan-connect/internal/repository"
	"github.com/i-m-samarth-cs/kisan-connect/internal/seed"
)

// =============================================================================
// MIGRATE / SEED
// =============================================================================

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the backend tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 接続時に AutoMigrate される
		_, closeFn, err := openBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()
		fmt.Fprintln(cmd.OutOrStdout(), "migrated: profiles, products, orders, market_trends")
		return nil
	},
}

var seedProducts bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo market trends (and optionally products) into the backend",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedProducts, "products", false, "also insert demo products when the catalogue is empty")
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	data, err := seed.Load()
	if err != nil {
		return err
	}

	gw, closeFn, err := openBackend(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := gw.SaveMarketTrends(ctx, data.MarketTrends); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "market trends: %d\n", len(data.MarketTrends))

	if !seedProducts {
		return nil
	}

	// 再実行で重複しないよう、空のときだけ入れる
	existing, err := gw.ListProducts(ctx, repo.ProductListQuery{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "products: skipped (%d already listed)\n", len(existing))
		return nil
	}

	added := 0
	for _, p := range data.Products {
		if _, err := gw.AddProduct(ctx, p); err != nil {
			logger.Warn("seed product failed", zap.String("name", p.Name), zap.Error(err))
			continue
		}
		added++
	}
	fmt.Fprintf(cmd.OutOrStdout(), "products: %d\n", added)
	return nil
}
