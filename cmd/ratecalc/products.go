package main

import (
	"github.com/guttosm/freight-rate-service/internal/domain/dto"
	"github.com/spf13/cobra"
)

// catalogSummary is the output of the products command.
type catalogSummary struct {
	Origins  []string             `json:"origins"`
	Products []dto.ProductSummary `json:"products"`
}

func newProductsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the products and origins of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}
			products, err := opts.quoteService(catalog).ListProducts(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), catalogSummary{
				Origins:  catalog.Origins(),
				Products: products,
			})
		},
	}
}
