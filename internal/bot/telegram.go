// Package bot is the Telegram front-end. It parses commands, keeps the
// per-chat conversation state and renders evaluations; all analysis and
// scoring lives behind the Evaluator interface.
package bot

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/fdp7/nexo-dual-investment/internal/app"
	"github.com/fdp7/nexo-dual-investment/internal/core"
	"github.com/fdp7/nexo-dual-investment/internal/deal"
)

// Evaluator runs one full deal evaluation.
type Evaluator interface {
	EvaluateDeal(ctx context.Context, p deal.Params, currentPrice *float64) (app.Evaluation, error)
}

const evaluateTimeout = 2 * time.Minute

// Bot wraps the telebot instance and the per-chat conversation state.
type Bot struct {
	bot       *tele.Bot
	evaluator Evaluator
	logger    *zap.Logger

	mu      sync.Mutex
	waiting map[int64]struct{} // chats that were prompted for parameters
}

// New creates the bot with long polling.
func New(token string, evaluator Evaluator, logger *zap.Logger) (*Bot, error) {
	if token == "" {
		return nil, core.WrapError(core.ErrConfigMissing, errMissingToken)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	b, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, core.WrapError(core.ErrBotFailed, err)
	}

	bot := &Bot{
		bot:       b,
		evaluator: evaluator,
		logger:    logger,
		waiting:   make(map[int64]struct{}),
	}
	bot.registerHandlers()
	return bot, nil
}

func (b *Bot) registerHandlers() {
	b.bot.Handle("/start", func(c tele.Context) error {
		return c.Send("Hi " + c.Sender().FirstName + "! I help you judge Nexo Dual Investment deals.\n\n" +
			"Use /help to invest responsibly.")
	})

	b.bot.Handle("/help", func(c tele.Context) error {
		return c.Send("I compute the net gain of a Dual Investment deal, weighing earned " +
			"interest against the likely purchase loss.\n\n" +
			"Commands:\n" +
			"/start - start the bot\n" +
			"/help - show this message\n" +
			"/calculate - net gain as earned interest minus purchase loss: G = I - P\n" +
			"/cancel - abort the current calculation")
	})

	b.bot.Handle("/calculate", func(c tele.Context) error {
		b.setWaiting(c.Chat().ID, true)
		return c.Send("Send the parameters as:\n" +
			"amount,APY,term days,deal price,symbol\n" +
			"Example: 1000,57,3,1800,ETH-USD\n\n" +
			"You can abort with /cancel")
	})

	b.bot.Handle("/cancel", func(c tele.Context) error {
		b.setWaiting(c.Chat().ID, false)
		return c.Send("Operation cancelled.")
	})

	b.bot.Handle(tele.OnText, b.handleParameters)
}

// handleParameters consumes the reply to /calculate. Invalid input keeps
// the conversation open and re-prompts; unexpected failures close it.
func (b *Bot) handleParameters(c tele.Context) error {
	chatID := c.Chat().ID
	if !b.isWaiting(chatID) {
		return nil
	}

	params, err := parseParams(c.Text())
	if err == nil {
		err = params.Validate()
	}
	if err != nil {
		return c.Send("Error: " + err.Error() + "\n" +
			"Please send the parameters as: amount,APY,days,price,symbol\n" +
			"Example: 1000,5,30,500,SOL-USD")
	}

	ctx, cancel := context.WithTimeout(context.Background(), evaluateTimeout)
	defer cancel()

	evaluation, err := b.evaluator.EvaluateDeal(ctx, params, nil)
	if err != nil {
		b.logger.Error("evaluation failed",
			zap.String("symbol", params.Symbol),
			zap.Error(err),
		)
		b.setWaiting(chatID, false)
		return c.Send("Something went wrong during the evaluation. Try again with /calculate")
	}

	b.setWaiting(chatID, false)
	if err := c.Send(FormatEvaluation(evaluation), tele.ModeMarkdown); err != nil {
		return err
	}
	return c.Send("You can run another calculation with /calculate")
}

// parseParams parses "amount,apy,days,price,symbol".
func parseParams(text string) (deal.Params, error) {
	fields := strings.Split(text, ",")
	if len(fields) != 5 {
		return deal.Params{}, errWrongParamCount
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	amount, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return deal.Params{}, errBadAmount
	}
	apy, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return deal.Params{}, errBadRate
	}
	days, err := strconv.Atoi(fields[2])
	if err != nil {
		return deal.Params{}, errBadTerm
	}
	price, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return deal.Params{}, errBadPrice
	}

	return deal.Params{
		Amount:     amount,
		AnnualRate: apy,
		TermDays:   days,
		DealPrice:  price,
		Symbol:     fields[4],
	}, nil
}

func (b *Bot) setWaiting(chatID int64, waiting bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if waiting {
		b.waiting[chatID] = struct{}{}
	} else {
		delete(b.waiting, chatID)
	}
}

func (b *Bot) isWaiting(chatID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.waiting[chatID]
	return ok
}

// Start begins long polling and blocks until Stop is called.
func (b *Bot) Start() {
	b.logger.Info("telegram bot started")
	b.bot.Start()
}

// Stop stops long polling.
func (b *Bot) Stop() {
	b.bot.Stop()
	b.logger.Info("telegram bot stopped")
}
