package reports

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/logger"
)

const (
	noExpensesMessage   = "You have no expenses yet"
	reportFailedMessage = "Can't build your report atm. Try later"
)

type resultProducer interface {
	ProduceMessage(message []byte) error
}

// Sender lives in the reporter process: it turns a consumed report
// request into a rendered result on the results topic.
type Sender struct {
	generator *Generator
	producer  resultProducer
}

func NewSender(generator *Generator, producer resultProducer) *Sender {
	return &Sender{generator: generator, producer: producer}
}

// HandleRequest is wired as the kafka consumer callback for the
// requests topic. Failures turn into an apologetic result rather than
// a lost message.
func (s *Sender) HandleRequest(ctx context.Context, payload []byte) {
	var req Request
	if err := json.Unmarshal(payload, &req); err != nil {
		logger.Error("cannot unmarshal report request", zap.Error(err))
		return
	}
	logger.Info(
		"received report request",
		zap.String("owner", req.Owner),
		zap.String("period", req.Period),
	)

	text, err := s.generator.Generate(ctx, req.Owner, req.Period)
	if err != nil {
		logger.Error("failed to generate report", zap.Error(err))
		text = reportFailedMessage
	} else if text == "" {
		text = noExpensesMessage
	}

	raw, err := json.Marshal(Result{ChatID: req.ChatID, Text: text})
	if err != nil {
		logger.Error("cannot marshal report result", zap.Error(err))
		return
	}
	if err := s.producer.ProduceMessage(raw); err != nil {
		logger.Error("failed to send report", zap.Error(err))
	}
}
