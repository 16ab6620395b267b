package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/ports/primary"
	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/wire"
)

// ProductionCmd returns the production command
func ProductionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "production",
		Short: "Record and review farm production",
		Long:  `Track production entries (eggs collected, milk yielded, ...) with per-product totals.`,
	}

	cmd.AddCommand(productionAddCmd())
	cmd.AddCommand(productionListCmd())
	cmd.AddCommand(productionUpdateCmd())
	cmd.AddCommand(productionDeleteCmd())
	cmd.AddCommand(productionStatsCmd())

	return cmd
}

func productionAddCmd() *cobra.Command {
	var (
		quantity float64
		unit     string
		date     string
		note     string
	)
	cmd := &cobra.Command{
		Use:   "add [product]",
		Short: "Record a production entry",
		Long: `Record a production entry for a product.

Examples:
  agrimetrics production add eggs --quantity 24
  agrimetrics production add milk --quantity 12.5 --unit liters --date 2026-08-20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			probeRemote(ctx)

			entry, err := wire.ProductionService().AddEntry(ctx, primary.AddProductionRequest{
				Product:    args[0],
				Quantity:   quantity,
				Unit:       unit,
				RecordedOn: date,
				Note:       note,
			})
			if err != nil {
				return fmt.Errorf("failed to add production entry: %w", err)
			}

			fmt.Printf("✓ Recorded %v %s of %s (%s, %s)\n",
				entry.Quantity, entry.Unit, entry.Product, entry.ID,
				syncMark(entry.Synced, entry.Source))
			return nil
		},
	}
	cmd.Flags().Float64VarP(&quantity, "quantity", "q", 0, "quantity produced (required)")
	cmd.Flags().StringVarP(&unit, "unit", "u", "", "unit of measure (default pieces)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "date produced (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&note, "note", "n", "", "free-form note")
	cmd.MarkFlagRequired("quantity")
	return cmd
}

func productionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List production entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			probeRemote(ctx)

			entries, err := wire.ProductionService().ListEntries(ctx)
			if err != nil {
				return fmt.Errorf("failed to list production entries: %w", err)
			}
			if len(entries) == 0 {
				fmt.Println("No production entries found.")
				return nil
			}

			w := newTable()
			fmt.Fprintln(w, "ID\tDATE\tPRODUCT\tQUANTITY\tUNIT\tSYNC")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%s\t%s\n",
					e.ID, e.RecordedOn, e.Product, e.Quantity, e.Unit,
					syncMark(e.Synced, e.Source))
			}
			return w.Flush()
		},
	}
}

func productionUpdateCmd() *cobra.Command {
	var (
		quantity float64
		unit     string
		note     string
	)
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a production entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			probeRemote(ctx)

			entry, err := wire.ProductionService().UpdateEntry(ctx, primary.UpdateProductionRequest{
				ID:       args[0],
				Quantity: quantity,
				Unit:     unit,
				Note:     note,
			})
			if err != nil {
				return fmt.Errorf("failed to update production entry: %w", err)
			}
			fmt.Printf("✓ Updated %s: %v %s of %s\n", entry.ID, entry.Quantity, entry.Unit, entry.Product)
			return nil
		},
	}
	cmd.Flags().Float64VarP(&quantity, "quantity", "q", 0, "new quantity")
	cmd.Flags().StringVarP(&unit, "unit", "u", "", "new unit")
	cmd.Flags().StringVarP(&note, "note", "n", "", "new note")
	return cmd
}

func productionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a production entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			probeRemote(ctx)

			if err := wire.ProductionService().DeleteEntry(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete production entry: %w", err)
			}
			fmt.Printf("✓ Deleted production entry %s\n", args[0])
			return nil
		},
	}
}

func productionStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show per-product production totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			probeRemote(ctx)

			stats, err := wire.ProductionService().Stats(ctx)
			if err != nil {
				return fmt.Errorf("failed to compute production stats: %w", err)
			}

			fmt.Printf("Entries: %d\n", stats.Entries)
			w := newTable()
			fmt.Fprintln(w, "PRODUCT\tTOTAL")
			for product, total := range stats.ByProduct {
				fmt.Fprintf(w, "%s\t%v\n", product, total)
			}
			return w.Flush()
		},
	}
}
