package main

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"domainkit/internal/catalog"
	"domainkit/internal/config"
	"domainkit/pkg/logger"
	"domainkit/pkg/specification"
)

// findCommand constructs the 'find' subcommand that composes a specification
// from flags and runs it against the catalog.
func findCommand(cfg *config.Config) *cobra.Command {
	var (
		status      string
		tag         string
		namePattern string
		minPrice    float64
		maxPrice    float64
		featured    bool
	)

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Finds products matching the composed specification",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			spec := specification.Always[catalog.Product]()
			if status != "" {
				spec = spec.And(catalog.WithStatus(catalog.ProductStatus(strings.ToUpper(status))))
			}
			if tag != "" {
				spec = spec.And(catalog.Tagged(tag))
			}
			if namePattern != "" {
				pattern, err := regexp.Compile(namePattern)
				if err != nil {
					return fmt.Errorf("could not compile name pattern: %w", err)
				}
				spec = spec.And(catalog.NameMatches(pattern))
			}
			if cmd.Flags().Changed("min-price") || cmd.Flags().Changed("max-price") {
				spec = spec.And(catalog.PriceBetween(minPrice, maxPrice))
			}
			if featured {
				spec = spec.And(catalog.Promoted())
			}

			store, closeStore := getPostgres(ctx, cfg)
			defer closeStore()

			repo := getProductRepository(ctx, store)

			products, err := repo.FindMatching(ctx, spec)
			if err != nil {
				return fmt.Errorf("could not find products: %w", err)
			}

			logger.Info(ctx, "specification evaluated",
				zap.String("specification", spec.Name()),
				zap.Int("matches", len(products)))

			for _, product := range products {
				fmt.Printf("%s\t%s\t%.2f\t%s\t%v\n",
					product.ID, product.Name, product.Price, product.Status, product.Tags)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by lifecycle status (draft, active, discontinued)")
	cmd.Flags().StringVar(&tag, "tag", "", "Filter by tag")
	cmd.Flags().StringVar(&namePattern, "name-pattern", "", "Filter by name regular expression")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "Lower price bound (inclusive)")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 1_000_000, "Upper price bound (inclusive)")
	cmd.Flags().BoolVar(&featured, "featured", false, "Only featured products")

	return cmd
}
