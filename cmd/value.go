package cmd

import (
	"lending/core"
	"lending/pkg/number"

	"github.com/spf13/cobra"
)

var valueCmd = &cobra.Command{
	Use:   "value <symbol> <amount>",
	Short: "value an amount in smallest units with the latest quote",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		e := provideEngine()

		symbol := core.NormalizeSymbol(args[0])
		amount, err := number.Integer(args[1])
		if err != nil {
			cmd.PrintErrln("invalid amount:", err)
			return
		}

		to, _ := cmd.Flags().GetString("to")
		to = core.NormalizeSymbol(to)

		symbols := []string{symbol}
		if to != "" {
			symbols = append(symbols, to)
		}

		snapshot, err := e.oracle.Snapshot(ctx, symbols...)
		if err != nil {
			cmd.PrintErrln("pull quotes:", err)
			return
		}

		value, err := e.valuation.ValueWith(snapshot, symbol, amount)
		if err != nil {
			cmd.PrintErrln("value:", err)
			return
		}

		cmd.Println("value:", number.Human(value, cfg.Risk.CommonPrecision))
		cmd.Println("max loan value:", number.Human(e.risk.MaxLoanValue(value), cfg.Risk.CommonPrecision))

		if to == "" {
			return
		}

		converted, err := e.valuation.Convert(snapshot, symbol, amount, to)
		if err != nil {
			cmd.PrintErrln("convert:", err)
			return
		}

		token, _ := e.tokens.Find(to)
		cmd.Println("in "+to+":", number.Human(converted, token.Decimals))
	},
}

func init() {
	rootCmd.AddCommand(valueCmd)
	valueCmd.Flags().String("to", "", "also express the amount in this token")
}
