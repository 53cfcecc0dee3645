package runtime

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/degenpilot404/realyieldagent/internal/dialogue"
	"github.com/degenpilot404/realyieldagent/internal/models"
)

type fakeAction struct {
	name    string
	matches func(text string, state dialogue.State) bool
	handle  func(ctx context.Context, msg models.Message, state dialogue.State) (dialogue.State, string)
}

func (a *fakeAction) Name() string { return a.name }

func (a *fakeAction) Matches(text string, state dialogue.State) bool {
	if a.matches == nil {
		return true
	}
	return a.matches(text, state)
}

func (a *fakeAction) Handle(ctx context.Context, msg models.Message, state dialogue.State) (dialogue.State, string) {
	if a.handle == nil {
		return state, "ok"
	}
	return a.handle(ctx, msg, state)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return logger
}

func TestHandleMessagePicksFirstMatchingAction(t *testing.T) {
	special := &fakeAction{
		name: "SPECIAL",
		matches: func(text string, state dialogue.State) bool {
			return strings.Contains(text, "special")
		},
	}
	fallback := &fakeAction{name: "FALLBACK"}
	rt := New(testLogger(), special, fallback)

	reply, err := rt.HandleMessage(context.Background(), models.Message{Text: "something special", UserID: "u1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "SPECIAL", reply.Action)

	reply, err = rt.HandleMessage(context.Background(), models.Message{Text: "anything else", UserID: "u1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "FALLBACK", reply.Action)
}

func TestHandleMessageInvokesCallback(t *testing.T) {
	action := &fakeAction{
		name: "ECHO",
		handle: func(ctx context.Context, msg models.Message, state dialogue.State) (dialogue.State, string) {
			return state, "echo: " + msg.Text
		},
	}
	rt := New(testLogger(), action)

	var callbackReply models.Reply
	reply, err := rt.HandleMessage(context.Background(),
		models.Message{Text: "ping", UserID: "u1", Source: "api"},
		func(r models.Reply) { callbackReply = r })

	require.NoError(t, err)
	assert.Equal(t, "echo: ping", reply.Text)
	assert.Equal(t, "ECHO", reply.Action)
	assert.Equal(t, "api", reply.Source)
	assert.Equal(t, reply, callbackReply, "callback sees the same reply")
}

func TestStatePersistsPerConversation(t *testing.T) {
	var seenPhases []dialogue.Phase
	action := &fakeAction{
		name: "STEP",
		handle: func(ctx context.Context, msg models.Message, state dialogue.State) (dialogue.State, string) {
			seenPhases = append(seenPhases, state.Phase)
			state.Phase = dialogue.PhaseAwaitingCriteria
			return state, "ok"
		},
	}
	rt := New(testLogger(), action)

	ctx := context.Background()
	_, err := rt.HandleMessage(ctx, models.Message{Text: "a", UserID: "u1", ConversationID: "c1"}, nil)
	require.NoError(t, err)
	_, err = rt.HandleMessage(ctx, models.Message{Text: "b", UserID: "u1", ConversationID: "c1"}, nil)
	require.NoError(t, err)
	_, err = rt.HandleMessage(ctx, models.Message{Text: "c", UserID: "u2", ConversationID: "c2"}, nil)
	require.NoError(t, err)

	require.Len(t, seenPhases, 3)
	assert.Equal(t, dialogue.PhaseIdle, seenPhases[0], "fresh conversation starts idle")
	assert.Equal(t, dialogue.PhaseAwaitingCriteria, seenPhases[1], "state carried into the next turn")
	assert.Equal(t, dialogue.PhaseIdle, seenPhases[2], "other conversations are isolated")
}

func TestConversationIDFallsBackToUserID(t *testing.T) {
	var phases []dialogue.Phase
	action := &fakeAction{
		name: "STEP",
		handle: func(ctx context.Context, msg models.Message, state dialogue.State) (dialogue.State, string) {
			phases = append(phases, state.Phase)
			state.Phase = dialogue.PhaseShowingResults
			return state, "ok"
		},
	}
	rt := New(testLogger(), action)

	ctx := context.Background()
	_, err := rt.HandleMessage(ctx, models.Message{Text: "a", UserID: "u1"}, nil)
	require.NoError(t, err)
	_, err = rt.HandleMessage(ctx, models.Message{Text: "b", UserID: "u1"}, nil)
	require.NoError(t, err)

	require.Len(t, phases, 2)
	assert.Equal(t, dialogue.PhaseShowingResults, phases[1])
}

func TestTurnsWithinConversationAreSerialized(t *testing.T) {
	var inFlight int32
	var overlapped int32

	action := &fakeAction{
		name: "SLOW",
		handle: func(ctx context.Context, msg models.Message, state dialogue.State) (dialogue.State, string) {
			if !atomic.CompareAndSwapInt32(&inFlight, 0, 1) {
				atomic.StoreInt32(&overlapped, 1)
			}
			time.Sleep(10 * time.Millisecond)
			atomic.StoreInt32(&inFlight, 0)
			return state, "ok"
		},
	}
	rt := New(testLogger(), action)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := rt.HandleMessage(context.Background(),
				models.Message{Text: "go", UserID: "u1", ConversationID: "c1"}, nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(0), atomic.LoadInt32(&overlapped), "turns for one conversation must not overlap")
}

func TestNoActionMatched(t *testing.T) {
	never := &fakeAction{
		name:    "NEVER",
		matches: func(string, dialogue.State) bool { return false },
	}
	rt := New(testLogger(), never)

	_, err := rt.HandleMessage(context.Background(), models.Message{Text: "hi", UserID: "u1"}, nil)
	assert.Error(t, err)
}
