package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/ports/primary"
	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/wire"
)

// SaleCmd returns the sale command
func SaleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sale",
		Short: "Record and review sales",
	}

	cmd.AddCommand(saleAddCmd())
	cmd.AddCommand(saleListCmd())
	cmd.AddCommand(saleUpdateCmd())
	cmd.AddCommand(saleDeleteCmd())
	cmd.AddCommand(saleStatsCmd())

	return cmd
}

func saleAddCmd() *cobra.Command {
	var (
		quantity float64
		price    float64
		buyer    string
		date     string
	)
	cmd := &cobra.Command{
		Use:   "add [item]",
		Short: "Record a sale",
		Long: `Record a sale of farm produce.

Examples:
  agrimetrics sale add eggs --quantity 60 --price 0.5 --buyer "market stall"
  agrimetrics sale add milk --quantity 20 --price 1.2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			probeRemote(ctx)

			sale, err := wire.SalesService().AddSale(ctx, primary.AddSaleRequest{
				Item:      args[0],
				Quantity:  quantity,
				UnitPrice: price,
				Buyer:     buyer,
				Date:      date,
			})
			if err != nil {
				return fmt.Errorf("failed to add sale: %w", err)
			}

			fmt.Printf("✓ Recorded sale of %v %s for %.2f (%s, %s)\n",
				sale.Quantity, sale.Item, sale.Total, sale.ID,
				syncMark(sale.Synced, sale.Source))
			return nil
		},
	}
	cmd.Flags().Float64VarP(&quantity, "quantity", "q", 0, "quantity sold (required)")
	cmd.Flags().Float64VarP(&price, "price", "p", 0, "unit price")
	cmd.Flags().StringVarP(&buyer, "buyer", "b", "", "buyer name")
	cmd.Flags().StringVarP(&date, "date", "d", "", "date (YYYY-MM-DD, default today)")
	cmd.MarkFlagRequired("quantity")
	return cmd
}

func saleListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sales",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			probeRemote(ctx)

			sales, err := wire.SalesService().ListSales(ctx)
			if err != nil {
				return fmt.Errorf("failed to list sales: %w", err)
			}
			if len(sales) == 0 {
				fmt.Println("No sales found.")
				return nil
			}

			w := newTable()
			fmt.Fprintln(w, "ID\tDATE\tITEM\tQTY\tPRICE\tTOTAL\tBUYER\tSYNC")
			for _, s := range sales {
				fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%.2f\t%.2f\t%s\t%s\n",
					s.ID, s.Date, s.Item, s.Quantity, s.UnitPrice, s.Total, s.Buyer,
					syncMark(s.Synced, s.Source))
			}
			return w.Flush()
		},
	}
}

func saleUpdateCmd() *cobra.Command {
	var (
		quantity float64
		price    float64
		buyer    string
	)
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a sale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			probeRemote(ctx)

			req := primary.UpdateSaleRequest{
				ID:        args[0],
				Quantity:  quantity,
				UnitPrice: -1,
				Buyer:     buyer,
			}
			if cmd.Flags().Changed("price") {
				req.UnitPrice = price
			}

			sale, err := wire.SalesService().UpdateSale(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to update sale: %w", err)
			}
			fmt.Printf("✓ Updated %s: %v %s for %.2f\n", sale.ID, sale.Quantity, sale.Item, sale.Total)
			return nil
		},
	}
	cmd.Flags().Float64VarP(&quantity, "quantity", "q", 0, "new quantity")
	cmd.Flags().Float64VarP(&price, "price", "p", 0, "new unit price")
	cmd.Flags().StringVarP(&buyer, "buyer", "b", "", "new buyer")
	return cmd
}

func saleDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a sale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			probeRemote(ctx)

			if err := wire.SalesService().DeleteSale(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete sale: %w", err)
			}
			fmt.Printf("✓ Deleted sale %s\n", args[0])
			return nil
		},
	}
}

func saleStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show revenue and units-sold totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			probeRemote(ctx)

			stats, err := wire.SalesService().Stats(ctx)
			if err != nil {
				return fmt.Errorf("failed to compute sales stats: %w", err)
			}

			fmt.Printf("Sales: %d, units sold: %v, revenue: %.2f\n",
				stats.Count, stats.Units, stats.Revenue)
			w := newTable()
			fmt.Fprintln(w, "ITEM\tREVENUE")
			for item, revenue := range stats.ByItem {
				fmt.Fprintf(w, "%s\t%.2f\n", item, revenue)
			}
			return w.Flush()
		},
	}
}
