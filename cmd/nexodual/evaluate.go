package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fdp7/nexo-dual-investment/internal/deal"
	"github.com/fdp7/nexo-dual-investment/internal/logger"
)

var evalFlags struct {
	amount float64
	rate   float64
	days   int
	price  float64
	symbol string
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a single deal from the command line",
	RunE:  runEvaluate,
}

func init() {
	evaluateCmd.Flags().Float64Var(&evalFlags.amount, "amount", 0, "investment amount")
	evaluateCmd.Flags().Float64Var(&evalFlags.rate, "rate", 0, "annual percentage yield")
	evaluateCmd.Flags().IntVar(&evalFlags.days, "days", 0, "deal term in days")
	evaluateCmd.Flags().Float64Var(&evalFlags.price, "price", 0, "negotiated deal price")
	evaluateCmd.Flags().StringVar(&evalFlags.symbol, "symbol", "", "asset symbol, e.g. ETH-USD")
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	application := newApp(cfg, nil, log)

	params := deal.Params{
		Amount:     evalFlags.amount,
		AnnualRate: evalFlags.rate,
		TermDays:   evalFlags.days,
		DealPrice:  evalFlags.price,
		Symbol:     evalFlags.symbol,
	}

	evaluation, err := application.EvaluateDeal(context.Background(), params, nil)
	if err != nil {
		return err
	}

	d := evaluation.Decision
	g := evaluation.Gain
	fmt.Printf("Symbol: %s\n", params.Symbol)
	fmt.Printf("Interest: %.2f\n", g.Interest)
	fmt.Printf("Breakeven price: %.2f\n", g.BreakevenPrice)
	fmt.Printf("Predicted price: %.2f\n", g.PredictedPrice)
	fmt.Printf("Purchase loss: %.2f\n", g.PurchaseLoss)
	fmt.Printf("Net gain: %.2f\n", g.NetGain)
	fmt.Printf("Score: %.2f/%.2f (%s)\n", d.Score, d.MaxScore, d.SuggestedAction)
	for _, w := range d.Warnings {
		fmt.Printf("  ! %s\n", w)
	}
	fmt.Println(d.Feedback)
	return nil
}
