package scheduler

import (
	"context"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/degenpilot404/realyieldagent/internal/models"
)

// SearchProvider runs criteria against the listing provider.
type SearchProvider interface {
	Search(ctx context.Context, criteria models.SearchCriteria) ([]models.Listing, error)
}

// PreferenceLister loads every saved preference for a sweep.
type PreferenceLister interface {
	GetAllPreferences() ([]models.StoredPreference, error)
}

// Notifier pushes fresh saved-search results to a chat.
type Notifier interface {
	NotifySavedSearch(chatID int64, criteria models.SearchCriteria, listings []models.Listing) error
}

// Scheduler re-runs every saved search on an interval and notifies users
// whose criteria currently match listings. Only users reachable over the
// push channel (numeric Telegram chat ids) are swept.
type Scheduler struct {
	provider SearchProvider
	store    PreferenceLister
	notifier Notifier
	logger   *logrus.Logger
	interval time.Duration
	stopChan chan struct{}
	wg       sync.WaitGroup
	jobMutex sync.Mutex // Ensures sequential sweep execution
}

// NewScheduler creates a new scheduler.
func NewScheduler(provider SearchProvider, store PreferenceLister, notifier Notifier, interval time.Duration, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}
	if interval <= 0 {
		interval = time.Hour
	}

	return &Scheduler{
		provider: provider,
		store:    store,
		notifier: notifier,
		logger:   logger,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the scheduled sweeps.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.Sweep(context.Background())
		}
	}
}

// Sweep re-runs every saved search once. Fetch and notification failures
// are logged per user and never abort the rest of the sweep.
func (s *Scheduler) Sweep(ctx context.Context) {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()

	prefs, err := s.store.GetAllPreferences()
	if err != nil {
		s.logger.WithError(err).Error("Failed to load saved preferences for sweep")
		return
	}

	s.logger.WithField("count", len(prefs)).Info("Starting saved-search sweep")

	for _, pref := range prefs {
		chatID, err := strconv.ParseInt(pref.UserID, 10, 64)
		if err != nil {
			// Webhook users have non-numeric ids and no push channel.
			continue
		}

		criteria := pref.Criteria()
		listings, err := s.provider.Search(ctx, criteria)
		if err != nil {
			s.logger.WithError(err).WithField("user_id", pref.UserID).Warn("Saved-search fetch failed")
			continue
		}
		if len(listings) == 0 {
			continue
		}

		if err := s.notifier.NotifySavedSearch(chatID, criteria, listings); err != nil {
			s.logger.WithError(err).WithField("user_id", pref.UserID).Error("Failed to deliver saved-search alert")
		}
	}
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}
