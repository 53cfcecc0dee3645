package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/degenpilot404/realyieldagent/internal/format"
	"github.com/degenpilot404/realyieldagent/internal/models"
)

const defaultAPIBase = "https://api.telegram.org"

// MessageHandler processes one inbound turn and invokes done with the
// reply before returning. The hosting runtime satisfies this.
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg models.Message, done func(models.Reply)) (models.Reply, error)
}

// Service is the Telegram channel: it long-polls the Bot API for inbound
// messages, routes them through a MessageHandler, and sends replies and
// saved-search alerts back to their chats.
type Service struct {
	logger      *logrus.Logger
	client      *http.Client
	baseURL     string
	token       string
	pollTimeout int
}

// NewService creates the Telegram channel. pollTimeout is the long-poll
// window in seconds; the HTTP client timeout is padded past it.
func NewService(token string, pollTimeout int, logger *logrus.Logger) *Service {
	if pollTimeout <= 0 {
		pollTimeout = 30
	}
	return &Service{
		logger: logger,
		client: &http.Client{
			Timeout: time.Duration(pollTimeout+10) * time.Second,
		},
		baseURL:     defaultAPIBase,
		token:       token,
		pollTimeout: pollTimeout,
	}
}

// Run polls getUpdates until the context is cancelled. Each text message
// becomes one inbound turn; the reply goes back to the same chat.
func (s *Service) Run(ctx context.Context, handler MessageHandler) {
	var offset int64
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		updates, err := s.getUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.WithError(err).Warn("Failed to poll Telegram updates")
			select {
			case <-time.After(3 * time.Second):
			case <-ctx.Done():
				return
			}
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			s.handleUpdate(ctx, handler, update)
		}
	}
}

func (s *Service) getUpdates(ctx context.Context, offset int64) ([]models.TelegramUpdate, error) {
	url := fmt.Sprintf("%s/bot%s/getUpdates?offset=%d&timeout=%d", s.baseURL, s.token, offset, s.pollTimeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to poll Telegram updates: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Telegram API error (status %d): %s", resp.StatusCode, string(body))
	}

	var envelope struct {
		OK     bool                    `json:"ok"`
		Result []models.TelegramUpdate `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode Telegram updates: %v", err)
	}
	if !envelope.OK {
		return nil, errors.New("Telegram API returned ok=false")
	}
	return envelope.Result, nil
}

func (s *Service) handleUpdate(ctx context.Context, handler MessageHandler, update models.TelegramUpdate) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	chatID := update.Message.Chat.ID
	msg := models.Message{
		Text:           update.Message.Text,
		UserID:         strconv.FormatInt(chatID, 10),
		ConversationID: strconv.FormatInt(chatID, 10),
		Source:         "telegram",
	}

	_, err := handler.HandleMessage(ctx, msg, func(reply models.Reply) {
		if err := s.SendMessage(chatID, reply.Text); err != nil {
			s.logger.WithError(err).WithField("chat_id", chatID).Error("Failed to send Telegram reply")
		}
	})
	if err != nil {
		s.logger.WithError(err).WithField("chat_id", chatID).Error("Failed to handle Telegram message")
	}
}

// SendMessage sends a plain-text message to the given chat.
func (s *Service) SendMessage(chatID int64, text string) error {
	if s.token == "" {
		return errors.New("Telegram bot token is not configured")
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.token)
	payload := map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message payload: %v", err)
	}

	resp, err := s.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send message to Telegram API: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return errors.New("invalid bot token - please check your token from @BotFather")
		case http.StatusBadRequest:
			return fmt.Errorf("invalid chat ID or message format: %s", string(body))
		case http.StatusForbidden:
			return errors.New("bot was blocked by the user or chat")
		case http.StatusNotFound:
			return errors.New("bot not found - please check your token from @BotFather")
		default:
			return fmt.Errorf("Telegram API error (status %d): %s", resp.StatusCode, string(body))
		}
	}

	return nil
}

// NotifySavedSearch pushes fresh listings for a user's saved search.
// Nothing is sent when the sweep found no listings.
func (s *Service) NotifySavedSearch(chatID int64, criteria models.SearchCriteria, listings []models.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	header := fmt.Sprintf("New listings for your saved search (%s):", format.FormatCriteria(criteria))
	return s.SendMessage(chatID, header+"\n\n"+format.FormatListings(listings))
}
