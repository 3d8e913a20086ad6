package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/math-arcade/internal/economy"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Show or change the coin balance",
	Long: `Show the coin balance of the current profile, or credit and spend coins.

Examples:
  arcade wallet
  arcade wallet add 100
  arcade wallet spend 40 --profile alice`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withProfile(func(p *economy.Profile) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s coins\n", p.Name, economy.FormatNumber(float64(p.Wallet.Balance())))
			return nil
		})
	},
}

var walletAddCmd = &cobra.Command{
	Use:          "add <coins>",
	Short:        "Credit coins",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseCoins(args[0])
		if err != nil {
			return err
		}
		return withProfile(func(p *economy.Profile) error {
			p.AddCoins(n)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d coins. Balance: %s\n", n, economy.FormatNumber(float64(p.Wallet.Balance())))
			return nil
		})
	},
}

var walletSpendCmd = &cobra.Command{
	Use:          "spend <coins>",
	Short:        "Spend coins",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseCoins(args[0])
		if err != nil {
			return err
		}
		return withProfile(func(p *economy.Profile) error {
			if err := p.Wallet.Spend(n); err != nil {
				if errors.Is(err, economy.ErrInsufficientFunds) {
					return fmt.Errorf("cannot spend %d coins, balance is %d", n, p.Wallet.Balance())
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Spent %d coins. Balance: %s\n", n, economy.FormatNumber(float64(p.Wallet.Balance())))
			return nil
		})
	},
}

func init() {
	walletCmd.AddCommand(walletAddCmd)
	walletCmd.AddCommand(walletSpendCmd)
}

// parseCoins parses a positive whole number of coins.
func parseCoins(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid coin amount %q: %w", s, economy.ErrInvalidAmount)
	}
	return n, nil
}
