package runtime

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/degenpilot404/realyieldagent/internal/dialogue"
	"github.com/degenpilot404/realyieldagent/internal/models"
)

// Action names carried on replies so callers can tell which capability
// answered.
const (
	ActionGreet   = "GREET_USER"
	ActionSearch  = "SEARCH_PROPERTIES"
	ActionAnalyze = "ANALYZE_LISTING"
)

// Action is one conversational capability. Matches decides whether the
// action should take the turn given the current dialogue state; Handle
// produces the next state and the reply text.
type Action interface {
	Name() string
	Matches(text string, state dialogue.State) bool
	Handle(ctx context.Context, msg models.Message, state dialogue.State) (dialogue.State, string)
}

// Runtime owns per-conversation dialogue state and serializes turns
// within a conversation. Turns for distinct conversations proceed in
// parallel.
type Runtime struct {
	actions []Action
	logger  *logrus.Logger

	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	mu    sync.Mutex
	state dialogue.State
}

// New builds a runtime dispatching to the given actions in order. The
// first action whose Matches returns true takes the turn, so a
// catch-all belongs last.
func New(logger *logrus.Logger, actions ...Action) *Runtime {
	return &Runtime{
		actions: actions,
		logger:  logger,
		slots:   make(map[string]*slot),
	}
}

func (r *Runtime) slotFor(conversationID string) *slot {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.slots[conversationID]
	if !ok {
		s = &slot{}
		r.slots[conversationID] = s
	}
	return s
}

// HandleMessage processes one inbound message to completion: it picks
// an action, runs it against the conversation's current state, stores
// the next state, and invokes done with the reply before returning it.
// A second message for the same conversation waits until this one is
// finished.
func (r *Runtime) HandleMessage(ctx context.Context, msg models.Message, done func(models.Reply)) (models.Reply, error) {
	if msg.ConversationID == "" {
		msg.ConversationID = msg.UserID
	}

	s := r.slotFor(msg.ConversationID)
	s.mu.Lock()
	defer s.mu.Unlock()

	action := r.selectAction(msg.Text, s.state)
	if action == nil {
		return models.Reply{}, fmt.Errorf("no action matched message for conversation %s", msg.ConversationID)
	}

	r.logger.WithFields(logrus.Fields{
		"conversation_id": msg.ConversationID,
		"user_id":         msg.UserID,
		"action":          action.Name(),
	}).Info("Dispatching message")

	nextState, text := action.Handle(ctx, msg, s.state)
	s.state = nextState

	reply := models.Reply{
		Text:   text,
		Action: action.Name(),
		Source: msg.Source,
	}
	if done != nil {
		done(reply)
	}
	return reply, nil
}

func (r *Runtime) selectAction(text string, state dialogue.State) Action {
	for _, action := range r.actions {
		if action.Matches(text, state) {
			return action
		}
	}
	return nil
}
