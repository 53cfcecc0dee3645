package models

// TelegramUpdate is one entry from the Bot API getUpdates response.
type TelegramUpdate struct {
	UpdateID int64            `json:"update_id"`
	Message  *TelegramMessage `json:"message"`
}

// TelegramMessage is the inbound chat message inside an update. Updates
// without a message (edits, channel posts) carry a nil Message.
type TelegramMessage struct {
	MessageID int64        `json:"message_id"`
	Text      string       `json:"text"`
	Chat      TelegramChat `json:"chat"`
}

// TelegramChat identifies the chat a message belongs to. The chat id
// doubles as the user and conversation id for Telegram turns.
type TelegramChat struct {
	ID int64 `json:"id"`
}
