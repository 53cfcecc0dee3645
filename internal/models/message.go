package models

// Message is one inbound user turn as delivered by the host.
type Message struct {
	Text           string `json:"text"`
	UserID         string `json:"user_id"`
	ConversationID string `json:"conversation_id"`
	Source         string `json:"source"`
}

// Reply is the agent's answer to a single message. Action identifies which
// registered action produced the reply; Source echoes the inbound tag.
type Reply struct {
	Text   string `json:"text"`
	Action string `json:"action"`
	Source string `json:"source"`
}
