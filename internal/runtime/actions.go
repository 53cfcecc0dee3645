package runtime

import (
	"context"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/degenpilot404/realyieldagent/internal/dialogue"
	"github.com/degenpilot404/realyieldagent/internal/format"
	"github.com/degenpilot404/realyieldagent/internal/models"
)

const greetingReply = "Hi! I'm RealYield, your Dubai property assistant. " +
	"Tell me what you're looking for, for example: \"2 bedroom apartment in Dubai Marina under 1.5M\"."

var (
	greetingPattern = regexp.MustCompile(`(?i)^\s*(?:hi|hello|hey|salam|good\s+(?:morning|afternoon|evening))[\s!.,]*$`)
	linkPattern     = regexp.MustCompile(`https?://\S+`)
)

// GreetingAction answers plain greetings, but only while the
// conversation is still idle; once a search flow has started, greetings
// fall through to the dialogue engine like any other text.
type GreetingAction struct{}

func (GreetingAction) Name() string { return ActionGreet }

func (GreetingAction) Matches(text string, state dialogue.State) bool {
	return state.Phase == dialogue.PhaseIdle && greetingPattern.MatchString(text)
}

func (GreetingAction) Handle(ctx context.Context, msg models.Message, state dialogue.State) (dialogue.State, string) {
	return state, greetingReply
}

// DetailFetcher is the slice of the gateway the analyze action needs.
type DetailFetcher interface {
	FetchDetail(ctx context.Context, link string) *models.PropertyDetail
}

// AnalyzeListingAction renders a detail card for any message carrying a
// listing URL. Browsing state is left untouched so the user can keep
// paging afterwards.
type AnalyzeListingAction struct {
	fetcher DetailFetcher
	logger  *logrus.Logger
}

func NewAnalyzeListingAction(fetcher DetailFetcher, logger *logrus.Logger) *AnalyzeListingAction {
	return &AnalyzeListingAction{fetcher: fetcher, logger: logger}
}

func (*AnalyzeListingAction) Name() string { return ActionAnalyze }

func (*AnalyzeListingAction) Matches(text string, state dialogue.State) bool {
	return linkPattern.MatchString(text)
}

func (a *AnalyzeListingAction) Handle(ctx context.Context, msg models.Message, state dialogue.State) (dialogue.State, string) {
	link := strings.TrimRight(linkPattern.FindString(msg.Text), ".,!?)]")

	a.logger.WithField("link", link).Info("Analyzing listing")
	detail := a.fetcher.FetchDetail(ctx, link)
	return state, format.FormatDetail(detail)
}

// SearchAction is the catch-all bridging the runtime to the dialogue
// engine. It must be registered last.
type SearchAction struct {
	engine *dialogue.Engine
}

func NewSearchAction(engine *dialogue.Engine) *SearchAction {
	return &SearchAction{engine: engine}
}

func (*SearchAction) Name() string { return ActionSearch }

func (*SearchAction) Matches(string, dialogue.State) bool { return true }

func (a *SearchAction) Handle(ctx context.Context, msg models.Message, state dialogue.State) (dialogue.State, string) {
	return a.engine.HandleTurn(ctx, state, msg.UserID, msg.Text)
}
