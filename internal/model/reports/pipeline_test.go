package reports

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"max.ks1230/expense-tracker/internal/entity/expense"
)

type producerStub struct {
	messages [][]byte
}

func (p *producerStub) ProduceMessage(message []byte) error {
	p.messages = append(p.messages, message)
	return nil
}

type chatStub struct {
	texts   []string
	chatIDs []int64
}

func (c *chatStub) SendMessage(text string, chatID int64) error {
	c.texts = append(c.texts, text)
	c.chatIDs = append(c.chatIDs, chatID)
	return nil
}

func Test_OnHandleRequest_ShouldProduceRenderedResult(t *testing.T) {
	stub := &expensesStub{recs: []expense.Record{
		testRecord("2024-05-01 10:00:00", "10", "Food", "pizza"),
	}}
	producer := &producerStub{}
	sender := NewSender(NewGenerator(stub), producer)

	raw, err := json.Marshal(Request{ChatID: 42, Owner: "bob", Period: ""})
	require.NoError(t, err)
	sender.HandleRequest(context.Background(), raw)

	require.Len(t, producer.messages, 1)
	var res Result
	require.NoError(t, json.Unmarshal(producer.messages[0], &res))
	assert.Equal(t, int64(42), res.ChatID)
	assert.Equal(t, "Food: ₹10.00\n\nTotal: ₹10.00", res.Text)
}

func Test_OnHandleRequest_ShouldAnswerWhenNoExpenses(t *testing.T) {
	producer := &producerStub{}
	sender := NewSender(NewGenerator(&expensesStub{}), producer)

	raw, err := json.Marshal(Request{ChatID: 7, Owner: "bob"})
	require.NoError(t, err)
	sender.HandleRequest(context.Background(), raw)

	require.Len(t, producer.messages, 1)
	var res Result
	require.NoError(t, json.Unmarshal(producer.messages[0], &res))
	assert.Equal(t, noExpensesMessage, res.Text)
}

func Test_OnHandleRequest_ShouldDropMalformedPayload(t *testing.T) {
	producer := &producerStub{}
	sender := NewSender(NewGenerator(&expensesStub{}), producer)

	sender.HandleRequest(context.Background(), []byte("{not json"))

	assert.Empty(t, producer.messages)
}

func Test_OnAcceptResult_ShouldForwardTextToChat(t *testing.T) {
	chat := &chatStub{}
	acceptor := NewAcceptor(chat)

	raw, err := json.Marshal(Result{ChatID: 42, Text: "your report"})
	require.NoError(t, err)
	acceptor.AcceptResult(context.Background(), raw)

	assert.Equal(t, []string{"your report"}, chat.texts)
	assert.Equal(t, []int64{42}, chat.chatIDs)
}
