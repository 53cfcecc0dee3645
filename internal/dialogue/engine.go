package dialogue

import (
	"context"
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/degenpilot404/realyieldagent/internal/extractor"
	"github.com/degenpilot404/realyieldagent/internal/format"
	"github.com/degenpilot404/realyieldagent/internal/models"
)

// Phase names the dialogue states. Exactly one phase is active per
// conversation; a fresh conversation starts Idle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingCriteria
	PhaseShowingResults
)

// State is the per-conversation dialogue state. The host stores it
// between turns; the engine receives the current value and returns the
// next one, so a turn is a pure transition apart from the collaborator
// calls it makes.
type State struct {
	Phase        Phase
	LastCriteria models.SearchCriteria
}

// ListingProvider is the slice of the gateway the engine consumes.
type ListingProvider interface {
	Search(ctx context.Context, criteria models.SearchCriteria) ([]models.Listing, error)
}

// PreferenceStore persists criteria and the per-search audit trail.
type PreferenceStore interface {
	SavePreference(userID string, criteria models.SearchCriteria) error
	GetPreference(userID string) (*models.StoredPreference, error)
	UpdateSearchListingCount(userID string, count int) error
}

// AreaSuggester proposes nearby districts after an empty result. A nil
// suggester disables suggestions.
type AreaSuggester interface {
	Nearest(name string, limit int) []string
}

const (
	fetchFailedMessage    = "Sorry, I ran into a problem reaching the listings service. Please try again in a moment."
	noMoreResultsMessage  = "Sorry, I couldn't find any more listings for this search right now."
	narrowPromptMessage   = "Sure. What would you like to adjust: the area, property type, number of bedrooms, or budget?"
	noSavedSearchMessage  = "You don't have a saved search yet. Tell me what you're looking for: area, property type, bedrooms and budget."
	criteriaPromptMessage = "I can search Dubai listings for you. Tell me the area, property type, bedrooms and budget, for example: \"2 bedroom apartment in Dubai Marina under 1.5M\"."
)

var (
	showMorePattern = regexp.MustCompile(`(?i)\b(?:show|see|load|give)\s*(?:me\s+)?more\b|\bmore\s+(?:listings|results|options|properties|homes)\b`)
	narrowPattern   = regexp.MustCompile(`(?i)\bnarrow\b|\brefine\b|\badjust\b|\bfilter\b|\bchange\s+(?:the\s+)?(?:search|criteria|area|budget|filters?)\b`)
	savePattern     = regexp.MustCompile(`(?i)\bsave\b|\bremember\b|\bbookmark\b|\bkeep\s+(?:these|this|them)\b`)
	savedPattern    = regexp.MustCompile(`(?i)\b(?:saved|previous|last)\s+(?:search(?:es)?|criteria|preferences?)\b|\b(?:new|latest)\s+listings\b|\bmy\s+saved\b`)
)

// Engine is the conversational state machine turning inbound text plus
// prior state into a reply and the next state.
type Engine struct {
	provider  ListingProvider
	store     PreferenceStore
	suggester AreaSuggester
	logger    *logrus.Logger
}

func NewEngine(provider ListingProvider, store PreferenceStore, suggester AreaSuggester, logger *logrus.Logger) *Engine {
	return &Engine{
		provider:  provider,
		store:     store,
		suggester: suggester,
		logger:    logger,
	}
}

// HandleTurn processes one inbound message. Branches are evaluated in
// priority order; the first that applies wins.
func (e *Engine) HandleTurn(ctx context.Context, state State, userID, text string) (State, string) {
	switch {
	case state.Phase == PhaseShowingResults && showMorePattern.MatchString(text):
		return e.showMore(ctx, state, userID)

	case state.Phase == PhaseShowingResults && narrowPattern.MatchString(text):
		state.Phase = PhaseAwaitingCriteria
		return state, narrowPromptMessage

	case state.Phase == PhaseShowingResults && savePattern.MatchString(text):
		return e.saveCurrent(state, userID)

	case state.Phase == PhaseAwaitingCriteria:
		return e.runSearch(ctx, state, userID, extractor.Extract(text))

	case savedPattern.MatchString(text):
		return e.replaySavedSearch(ctx, state, userID)

	default:
		criteria := extractor.Extract(text)
		if hasEnoughDetail(criteria) {
			return e.runSearch(ctx, state, userID, criteria)
		}
		state.Phase = PhaseAwaitingCriteria
		return state, criteriaPromptMessage
	}
}

// showMore re-fetches with the criteria already on file rather than
// re-extracting from the inbound text. The phase never changes here.
func (e *Engine) showMore(ctx context.Context, state State, userID string) (State, string) {
	listings, err := e.provider.Search(ctx, state.LastCriteria)
	if err != nil {
		e.logger.WithError(err).WithField("user_id", userID).Error("Re-fetch for show-more failed")
		return state, fetchFailedMessage
	}
	if len(listings) == 0 {
		return state, noMoreResultsMessage
	}
	return state, format.FormatListings(listings)
}

// saveCurrent persists the criteria behind the results on screen.
// Browsing continues, so the phase stays ShowingResults, and a failed
// save is logged without changing the confirmation.
func (e *Engine) saveCurrent(state State, userID string) (State, string) {
	e.persist(userID, state.LastCriteria)
	return state, "Saved your search: " + format.FormatCriteria(state.LastCriteria) + ". Ask for your saved search anytime to run it again."
}

// runSearch is the shared fetch path for a fresh extraction. The phase
// flips to ShowingResults only after a successful fetch; persistence
// and the audit count update afterwards are best-effort and never
// change the reply.
func (e *Engine) runSearch(ctx context.Context, state State, userID string, criteria models.SearchCriteria) (State, string) {
	listings, err := e.provider.Search(ctx, criteria)
	if err != nil {
		e.logger.WithError(err).WithField("user_id", userID).Error("Listing search failed")
		return state, fetchFailedMessage
	}

	state.Phase = PhaseShowingResults
	state.LastCriteria = criteria

	e.persist(userID, criteria)
	if err := e.store.UpdateSearchListingCount(userID, len(listings)); err != nil {
		e.logger.WithError(err).WithField("user_id", userID).Warn("Failed to update search log count")
	}

	return state, e.formatResults(criteria, listings)
}

func (e *Engine) replaySavedSearch(ctx context.Context, state State, userID string) (State, string) {
	stored, err := e.store.GetPreference(userID)
	if err != nil {
		e.logger.WithError(err).WithField("user_id", userID).Error("Failed to load saved search")
	}
	if stored == nil {
		state.Phase = PhaseAwaitingCriteria
		return state, noSavedSearchMessage
	}

	criteria := stored.Criteria()
	listings, err := e.provider.Search(ctx, criteria)
	if err != nil {
		e.logger.WithError(err).WithField("user_id", userID).Error("Saved search fetch failed")
		return state, fetchFailedMessage
	}

	state.Phase = PhaseShowingResults
	state.LastCriteria = criteria
	return state, e.formatResults(criteria, listings)
}

func (e *Engine) persist(userID string, criteria models.SearchCriteria) {
	if err := e.store.SavePreference(userID, criteria); err != nil {
		e.logger.WithError(err).WithField("user_id", userID).Error("Failed to save preferences")
	}
}

func (e *Engine) formatResults(criteria models.SearchCriteria, listings []models.Listing) string {
	if len(listings) > 0 {
		return format.FormatListings(listings)
	}

	text := format.NoMatchesMessage
	if e.suggester != nil && criteria.Area != "" {
		if nearby := e.suggester.Nearest(criteria.Area, 3); len(nearby) > 0 {
			text += "\n\n" + format.FormatNearbySuggestion(nearby)
		}
	}
	return text
}

// hasEnoughDetail gates the fallback search: at least one identifying
// field, anchored by a price bound or an area.
func hasEnoughDetail(criteria models.SearchCriteria) bool {
	identifying := criteria.Area != "" || criteria.PropertyType != "" || criteria.Bedrooms != ""
	anchored := criteria.MaxPrice != nil || criteria.MinPrice != nil || criteria.Area != ""
	return identifying && anchored
}
