package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fdp7/nexo-dual-investment/internal/app"
)

// Parse errors shared by the handler tests.
var (
	errMissingToken    = errors.New("telegram bot token not set")
	errWrongParamCount = errors.New("wrong number of parameters")
	errBadAmount       = errors.New("amount is not a number")
	errBadRate         = errors.New("APY is not a number")
	errBadTerm         = errors.New("term days is not a whole number")
	errBadPrice        = errors.New("deal price is not a number")
)

// FormatEvaluation renders one evaluation as a Markdown Telegram message.
func FormatEvaluation(e app.Evaluation) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📊 *Calculation result*\n\n")
	fmt.Fprintf(&sb, "💰 Investment amount: %.2f\n", e.Params.Amount)
	fmt.Fprintf(&sb, "📈 APY: %.2f%%\n", e.Params.AnnualRate)
	fmt.Fprintf(&sb, "⌛ Term: %d days\n", e.Params.TermDays)
	fmt.Fprintf(&sb, "🏷️ Deal price for %s: %.2f\n", e.Params.Symbol, e.Params.DealPrice)
	sb.WriteString("---------------------------------------------------\n")
	fmt.Fprintf(&sb, "💸 Earned interest: %.2f\n", e.Gain.Interest)
	fmt.Fprintf(&sb, "🥂 Breakeven price: %.2f\n", e.Gain.BreakevenPrice)
	fmt.Fprintf(&sb, "🔍 Predicted price: %.2f\n", e.Gain.PredictedPrice)
	fmt.Fprintf(&sb, "❌ Purchase loss: %.2f\n", e.Gain.PurchaseLoss)
	sb.WriteString("---------------------------------------------------\n")
	fmt.Fprintf(&sb, "💸 *Net gain: %.2f*\n", e.Gain.NetGain)
	sb.WriteString("---------------------------------------------------\n\n")

	fmt.Fprintf(&sb, "📊 *Technical analysis feedback:*\n")
	fmt.Fprintf(&sb, "🎯 Score: %.2f/%.2f\n", e.Decision.Score, e.Decision.MaxScore)
	for _, w := range e.Decision.Warnings {
		fmt.Fprintf(&sb, "⚠️ %s\n", w)
	}
	fmt.Fprintf(&sb, "🧠 Feedback: %s\n", e.Decision.Feedback)
	fmt.Fprintf(&sb, "✨ Suggested action: %s\n", e.Decision.SuggestedAction)

	return sb.String()
}
