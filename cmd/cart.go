package cmd

import (
	"fmt"

	"github.com/chrisdamba/foodstory/internal/cart"
	"github.com/chrisdamba/foodstory/internal/models"
	"github.com/chrisdamba/foodstory/internal/storage"
	"github.com/spf13/cobra"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Print the persisted cart",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, storageFlags)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		store, closeStore, err := storage.Open(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		c := cart.NewStore(store)
		w := cmd.OutOrStdout()
		for _, item := range c.Items() {
			fmt.Fprintf(w, "%s  %-28s %-24s %7.2f\n", item.CartItemID, item.DishName, item.RestaurantName, item.FinalPrice)
			for _, rec := range item.Customizations {
				fmt.Fprintf(w, "    %s\n", describeCustomization(rec))
			}
		}
		fmt.Fprintf(w, "%d items, total %.2f\n", c.Count(), c.Total())

		if clearCart, _ := cmd.Flags().GetBool("clear"); clearCart {
			c.Clear()
			fmt.Fprintln(w, "Cart cleared")
		}
		return nil
	},
}

func init() {
	cartCmd.Flags().Bool("clear", false, "Empty the cart after printing it")
}

func describeCustomization(rec models.CustomizationRecord) string {
	switch {
	case rec.Removed:
		return fmt.Sprintf("no %s", rec.IngredientName)
	case rec.Substitution != nil:
		return fmt.Sprintf("%s -> %s (%+.2f)", rec.IngredientName, rec.Substitution.Name, rec.PriceChange)
	case rec.Quantity != nil:
		return fmt.Sprintf("%s x%d (%+.2f)", rec.IngredientName, *rec.Quantity, rec.PriceChange)
	}
	return rec.IngredientName
}
