package reports

// Request asks the reporter to build one report. ChatID travels along
// so the result can be routed back to the right conversation.
type Request struct {
	ChatID int64  `json:"chat_id"`
	Owner  string `json:"owner"`
	Period string `json:"period"`
}

// Result is the rendered report text for one chat.
type Result struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}
