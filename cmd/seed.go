package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"domainkit/internal/catalog"
	"domainkit/internal/config"
	"domainkit/pkg/logger"
)

type seedProduct struct {
	name     string
	price    float64
	tags     []string
	active   bool
	featured bool
}

// seedCommand constructs the 'seed' subcommand that fills the catalog with
// sample products.
func seedCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Inserts sample products into the catalog",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			store, closeStore := getPostgres(ctx, cfg)
			defer closeStore()

			repo := getProductRepository(ctx, store)

			samples := []seedProduct{
				{name: "Espresso Grinder", price: 249.90, tags: []string{"kitchen", "coffee"}, active: true, featured: true},
				{name: "Pour-Over Kettle", price: 59.00, tags: []string{"kitchen", "coffee"}, active: true},
				{name: "Standing Desk", price: 540.00, tags: []string{"office", "furniture"}, active: true},
				{name: "Desk Lamp", price: 35.50, tags: []string{"office", "lighting"}, active: true, featured: true},
				{name: "Prototype Chair", price: 120.00, tags: []string{"office", "furniture"}},
			}

			for _, sample := range samples {
				product, err := catalog.NewProduct(sample.name, sample.price, sample.tags...)
				if err != nil {
					logger.Fatal(ctx, "could not create product", zap.String("name", sample.name), zap.Error(err))
				}
				if sample.active {
					if err := product.Activate(); err != nil {
						logger.Fatal(ctx, "could not activate product", zap.String("name", sample.name), zap.Error(err))
					}
				}
				if sample.featured {
					if err := product.Feature(); err != nil {
						logger.Fatal(ctx, "could not feature product", zap.String("name", sample.name), zap.Error(err))
					}
				}

				if err := repo.Save(ctx, product); err != nil {
					logger.Fatal(ctx, "could not save product", zap.String("name", sample.name), zap.Error(err))
				}

				for _, event := range product.PullEvents() {
					logger.Debug(ctx, "domain event recorded",
						zap.String("event", event.EventName()),
						zap.Time("occurredAt", event.OccurredAt()))
				}
			}

			logger.Info(ctx, "catalog seeded", zap.Int("products", len(samples)))
		},
	}

	return cmd
}
