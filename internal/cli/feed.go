package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/ports/primary"
	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/wire"
)

// FeedCmd returns the feed command
func FeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Track feed inventory",
		Long:  `Record feed purchases and usage; stock is purchases minus usage per feed type.`,
	}

	cmd.AddCommand(feedAddCmd())
	cmd.AddCommand(feedListCmd())
	cmd.AddCommand(feedDeleteCmd())
	cmd.AddCommand(feedStockCmd())

	return cmd
}

func feedAddCmd() *cobra.Command {
	var (
		quantity  float64
		operation string
		date      string
	)
	cmd := &cobra.Command{
		Use:   "add [feed-type]",
		Short: "Record a feed purchase or usage",
		Long: `Record a feed inventory movement.

Examples:
  agrimetrics feed add "layer mash" --quantity 50 --operation purchase
  agrimetrics feed add "layer mash" --quantity 5 --operation use`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			probeRemote(ctx)

			mv, err := wire.FeedService().AddMovement(ctx, primary.AddFeedRequest{
				FeedType:   args[0],
				QuantityKg: quantity,
				Operation:  operation,
				Date:       date,
			})
			if err != nil {
				return fmt.Errorf("failed to add feed movement: %w", err)
			}

			fmt.Printf("✓ Recorded %s of %vkg %s (%s, %s)\n",
				mv.Operation, mv.QuantityKg, mv.FeedType, mv.ID,
				syncMark(mv.Synced, mv.Source))
			return nil
		},
	}
	cmd.Flags().Float64VarP(&quantity, "quantity", "q", 0, "quantity in kg (required)")
	cmd.Flags().StringVarP(&operation, "operation", "o", "purchase", "purchase or use")
	cmd.Flags().StringVarP(&date, "date", "d", "", "date (YYYY-MM-DD, default today)")
	cmd.MarkFlagRequired("quantity")
	return cmd
}

func feedListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List feed movements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			probeRemote(ctx)

			movements, err := wire.FeedService().ListMovements(ctx)
			if err != nil {
				return fmt.Errorf("failed to list feed movements: %w", err)
			}
			if len(movements) == 0 {
				fmt.Println("No feed movements found.")
				return nil
			}

			w := newTable()
			fmt.Fprintln(w, "ID\tDATE\tFEED\tKG\tOPERATION\tSYNC")
			for _, m := range movements {
				fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%s\t%s\n",
					m.ID, m.Date, m.FeedType, m.QuantityKg, m.Operation,
					syncMark(m.Synced, m.Source))
			}
			return w.Flush()
		},
	}
}

func feedDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a feed movement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			probeRemote(ctx)

			if err := wire.FeedService().DeleteMovement(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete feed movement: %w", err)
			}
			fmt.Printf("✓ Deleted feed movement %s\n", args[0])
			return nil
		},
	}
}

func feedStockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stock",
		Short: "Show current stock per feed type",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			probeRemote(ctx)

			stock, err := wire.FeedService().Stock(ctx)
			if err != nil {
				return fmt.Errorf("failed to compute feed stock: %w", err)
			}
			if len(stock.ByType) == 0 {
				fmt.Println("No feed stock recorded.")
				return nil
			}

			low := make(map[string]bool, len(stock.LowStock))
			for _, t := range stock.LowStock {
				low[t] = true
			}

			w := newTable()
			fmt.Fprintln(w, "FEED\tKG ON HAND\t")
			for feedType, kg := range stock.ByType {
				marker := ""
				if low[feedType] {
					marker = color.RedString("LOW")
				}
				fmt.Fprintf(w, "%s\t%v\t%s\n", feedType, kg, marker)
			}
			return w.Flush()
		},
	}
}
