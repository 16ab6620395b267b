package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/ports/primary"
	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/wire"
)

// TransactionCmd returns the transaction command
func TransactionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transaction",
		Short: "Record and review income and expenses",
	}

	cmd.AddCommand(transactionAddCmd())
	cmd.AddCommand(transactionListCmd())
	cmd.AddCommand(transactionUpdateCmd())
	cmd.AddCommand(transactionDeleteCmd())
	cmd.AddCommand(transactionStatsCmd())

	return cmd
}

func transactionAddCmd() *cobra.Command {
	var (
		amount   float64
		category string
		note     string
		date     string
	)
	cmd := &cobra.Command{
		Use:   "add [income|expense]",
		Short: "Record an income or expense transaction",
		Long: `Record an income or expense transaction.

Examples:
  agrimetrics transaction add income --amount 120 --category sales --note "2 trays of eggs"
  agrimetrics transaction add expense --amount 45 --category feed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			probeRemote(ctx)

			tx, err := wire.TransactionService().AddTransaction(ctx, primary.AddTransactionRequest{
				Type:     args[0],
				Amount:   amount,
				Category: category,
				Note:     note,
				Date:     date,
			})
			if err != nil {
				return fmt.Errorf("failed to add transaction: %w", err)
			}

			fmt.Printf("✓ Recorded %s of %.2f (%s, %s)\n",
				tx.Type, tx.Amount, tx.ID, syncMark(tx.Synced, tx.Source))
			return nil
		},
	}
	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "amount (required)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category (feed, veterinary, sales, ...)")
	cmd.Flags().StringVarP(&note, "note", "n", "", "free-form note")
	cmd.Flags().StringVarP(&date, "date", "d", "", "date (YYYY-MM-DD, default today)")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func transactionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			probeRemote(ctx)

			txs, err := wire.TransactionService().ListTransactions(ctx)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}
			if len(txs) == 0 {
				fmt.Println("No transactions found.")
				return nil
			}

			w := newTable()
			fmt.Fprintln(w, "ID\tDATE\tTYPE\tAMOUNT\tCATEGORY\tNOTE\tSYNC")
			for _, t := range txs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\t%s\t%s\n",
					t.ID, t.Date, t.Type, t.Amount, t.Category, t.Note,
					syncMark(t.Synced, t.Source))
			}
			return w.Flush()
		},
	}
}

func transactionUpdateCmd() *cobra.Command {
	var (
		amount   float64
		category string
		note     string
	)
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			probeRemote(ctx)

			tx, err := wire.TransactionService().UpdateTransaction(ctx, primary.UpdateTransactionRequest{
				ID:       args[0],
				Amount:   amount,
				Category: category,
				Note:     note,
			})
			if err != nil {
				return fmt.Errorf("failed to update transaction: %w", err)
			}
			fmt.Printf("✓ Updated %s: %s of %.2f\n", tx.ID, tx.Type, tx.Amount)
			return nil
		},
	}
	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "new amount")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	cmd.Flags().StringVarP(&note, "note", "n", "", "new note")
	return cmd
}

func transactionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			probeRemote(ctx)

			if err := wire.TransactionService().DeleteTransaction(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}
			fmt.Printf("✓ Deleted transaction %s\n", args[0])
			return nil
		},
	}
}

func transactionStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show income, expense, and balance totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			probeRemote(ctx)

			stats, err := wire.TransactionService().Stats(ctx)
			if err != nil {
				return fmt.Errorf("failed to compute transaction stats: %w", err)
			}

			fmt.Printf("Transactions: %d\n", stats.Count)
			fmt.Printf("Income:  %s\n", color.GreenString("%.2f", stats.Income))
			fmt.Printf("Expense: %s\n", color.RedString("%.2f", stats.Expense))
			balance := color.GreenString("%.2f", stats.Balance)
			if stats.Balance < 0 {
				balance = color.RedString("%.2f", stats.Balance)
			}
			fmt.Printf("Balance: %s\n", balance)
			return nil
		},
	}
}
