package schema

// Input is the default chat input schema
type Input struct {
	// ChatMessage the chat message from the user
	ChatMessage string `json:"chat_message" jsonschema:"title=chat_message,description=The chat message sent by the user to the assistant." validate:"required"`
}

func NewInput(msg string) *Input {
	return &Input{ChatMessage: msg}
}

func (s Input) String() string {
	return s.ChatMessage
}

// Output is the default chat output schema
type Output struct {
	// ChatMessage the chat message from the assistant
	ChatMessage string `json:"chat_message" jsonschema:"title=chat_message,description=The chat message exchanged between the user and the chat agent."`
}

func NewOutput(msg string) *Output {
	return &Output{ChatMessage: msg}
}

func (s Output) String() string {
	return s.ChatMessage
}
