package reports

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/logger"
)

type messageSender interface {
	SendMessage(text string, chatID int64) error
}

// Acceptor lives in the bot process: it forwards consumed report
// results to the chat that asked for them.
type Acceptor struct {
	sender messageSender
}

func NewAcceptor(sender messageSender) *Acceptor {
	return &Acceptor{sender: sender}
}

func (a *Acceptor) AcceptResult(_ context.Context, payload []byte) {
	var res Result
	if err := json.Unmarshal(payload, &res); err != nil {
		logger.Error("cannot unmarshal report result", zap.Error(err))
		return
	}
	logger.Info("AcceptReport", zap.Int64("chatID", res.ChatID))

	if err := a.sender.SendMessage(res.Text, res.ChatID); err != nil {
		logger.Error("failed to deliver report", zap.Error(err))
	}
}
