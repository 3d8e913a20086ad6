package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/math-arcade/internal/economy"
)

var (
	flagCardType     string
	flagCardCategory string
	flagCardAmount   float64
	flagCardDesc     string
)

var economyCmd = &cobra.Command{
	Use:   "economy",
	Short: "Economy simulator",
	Long: `Design simulation cards, run them to record transactions and
review income, expense and balance per category.

Examples:
  arcade economy card add --type income --category learning --amount 50
  arcade economy card list
  arcade economy run 3f2a
  arcade economy report
  arcade economy export sim.json
  arcade economy import sim.json`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withProfile(func(p *economy.Profile) error {
			return p.Sim(func(s *economy.Sim) error {
				printReport(cmd.OutOrStdout(), s)
				return nil
			})
		})
	},
}

var economyCardCmd = &cobra.Command{
	Use:   "card",
	Short: "Manage simulation cards",
}

var cardAddCmd = &cobra.Command{
	Use:          "add",
	Short:        "Create a simulation card",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tt, err := economy.ParseTxType(flagCardType)
		if err != nil {
			return err
		}
		cat, err := economy.ParseCategory(flagCardCategory)
		if err != nil {
			return err
		}
		return withProfile(func(p *economy.Profile) error {
			return p.Sim(func(s *economy.Sim) error {
				c, addErr := s.AddCard(economy.Card{
					Type:        tt,
					Category:    cat,
					Amount:      flagCardAmount,
					Description: flagCardDesc,
				})
				if addErr != nil {
					return addErr
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created card %s\n", shortID(c.ID))
				return nil
			})
		})
	},
}

var cardListCmd = &cobra.Command{
	Use:          "list",
	Short:        "List simulation cards",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withProfile(func(p *economy.Profile) error {
			return p.Sim(func(s *economy.Sim) error {
				printCards(cmd.OutOrStdout(), s.Cards)
				return nil
			})
		})
	},
}

var cardRemoveCmd = &cobra.Command{
	Use:          "rm <id>",
	Aliases:      []string{"delete"},
	Short:        "Remove a simulation card",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProfile(func(p *economy.Profile) error {
			return p.Sim(func(s *economy.Sim) error {
				c, err := s.Card(args[0])
				if err != nil {
					return err
				}
				s.RemoveCard(c.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "Removed card %s\n", shortID(c.ID))
				return nil
			})
		})
	},
}

var economyRunCmd = &cobra.Command{
	Use:          "run <card>",
	Short:        "Run a card, recording a transaction",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProfile(func(p *economy.Profile) error {
			return p.Sim(func(s *economy.Sim) error {
				tx, err := s.Execute(args[0])
				if err != nil {
					return err
				}
				sign := "+"
				if tx.Type == economy.Expense {
					sign = "-"
				}
				_, _, balance := s.Totals()
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s%s). Balance: %s\n",
					tx.Description, sign, economy.FormatNumber(tx.Amount), economy.FormatNumber(balance))
				return nil
			})
		})
	},
}

var economyReportCmd = &cobra.Command{
	Use:          "report",
	Short:        "Show totals and per-category breakdown",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         economyCmd.RunE,
}

var economyExportCmd = &cobra.Command{
	Use:          "export [file]",
	Short:        "Export the ledger as JSON (stdout without a file)",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProfile(func(p *economy.Profile) error {
			return p.Sim(func(s *economy.Sim) error {
				data, err := s.Export()
				if err != nil {
					return err
				}
				if len(args) == 0 {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
					return err
				}
				if err := os.WriteFile(args[0], data, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transactions and %d cards to %s\n",
					len(s.Transactions), len(s.Cards), args[0])
				return nil
			})
		})
	},
}

var economyImportCmd = &cobra.Command{
	Use:          "import <file>",
	Short:        "Replace the ledger from an exported JSON file",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		return withProfile(func(p *economy.Profile) error {
			return p.Sim(func(s *economy.Sim) error {
				legacy, err := s.Import(data)
				if err != nil {
					return err
				}
				if legacy {
					fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions (legacy format, cards kept)\n", len(s.Transactions))
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions and %d cards\n", len(s.Transactions), len(s.Cards))
				return nil
			})
		})
	},
}

var economyClearCmd = &cobra.Command{
	Use:          "clear",
	Short:        "Delete all transactions and cards",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withProfile(func(p *economy.Profile) error {
			return p.Sim(func(s *economy.Sim) error {
				s.Clear()
				fmt.Fprintln(cmd.OutOrStdout(), "Simulator cleared")
				return nil
			})
		})
	},
}

func init() {
	cardAddCmd.Flags().StringVar(&flagCardType, "type", "income", "Transaction type: income, expense")
	cardAddCmd.Flags().StringVar(&flagCardCategory, "category", "learning",
		"Category: learning, minigame, mission, avatar, unlock-game")
	cardAddCmd.Flags().Float64Var(&flagCardAmount, "amount", 0, "Amount per run (must be positive)")
	cardAddCmd.Flags().StringVar(&flagCardDesc, "desc", "", "Card description")
	economyCardCmd.AddCommand(cardAddCmd, cardListCmd, cardRemoveCmd)

	economyCmd.AddCommand(
		economyCardCmd,
		economyRunCmd,
		economyReportCmd,
		economyExportCmd,
		economyImportCmd,
		economyClearCmd,
	)
}

// shortID is the leading segment of a uuid, enough to address a card.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printCards(w io.Writer, cards []economy.Card) {
	if len(cards) == 0 {
		fmt.Fprintln(w, "No cards. Create one with 'arcade economy card add'.")
		return
	}
	fmt.Fprintf(w, "  %-8s  %-7s  %-11s  %10s  %s\n", "ID", "Type", "Category", "Amount", "Description")
	for _, c := range cards {
		fmt.Fprintf(w, "  %-8s  %-7s  %-11s  %10s  %s\n",
			shortID(c.ID), c.Type, c.Category, economy.FormatNumber(c.Amount), c.Description)
	}
}

func printReport(w io.Writer, s *economy.Sim) {
	income, expense, balance := s.Totals()
	fmt.Fprintf(w, "Income:  %s\n", economy.FormatNumber(income))
	fmt.Fprintf(w, "Expense: %s\n", economy.FormatNumber(expense))
	fmt.Fprintf(w, "Balance: %s\n", economy.FormatNumber(balance))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "By category:")
	for _, c := range economy.IncomeCategories {
		fmt.Fprintf(w, "  + %-11s  %s\n", c, economy.FormatNumber(s.CategoryTotal(c)))
	}
	for _, c := range economy.ExpenseCategories {
		fmt.Fprintf(w, "  - %-11s  %s\n", c, economy.FormatNumber(s.CategoryTotal(c)))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Recent transactions (%d total):\n", len(s.Transactions))
	if len(s.Transactions) == 0 {
		fmt.Fprintln(w, "  none")
		return
	}
	for i, t := range s.Transactions {
		if i == 10 {
			break
		}
		sign := "+"
		if t.Type == economy.Expense {
			sign = "-"
		}
		fmt.Fprintf(w, "  %s  %s%-10s  %-11s  %s\n", t.Timestamp, sign, economy.FormatNumber(t.Amount), t.Category, t.Description)
	}
}
