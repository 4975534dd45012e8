// Package dashboard computes the aggregate mood view: the arithmetic mean
// of all of a user's scores and the chronological (date, score) series the
// client charts. No smoothing, windowing, or outlier handling -- the chart
// shows the data as stored.
package dashboard

import (
	"context"
	"fmt"

	"github.com/pville/moodlog/internal/journal"
)

// Summary is the dashboard payload: the running average and the trend series.
type Summary struct {
	AverageMood float64              `json:"averageMood"`
	Trend       []journal.ScorePoint `json:"trend"`
}

// DashboardService defines the business logic contract for the dashboard.
type DashboardService interface {
	// Summarize loads the user's score history and aggregates it.
	Summarize(ctx context.Context, userID string) (Summary, error)
}

// dashboardService implements DashboardService over the entry repository.
type dashboardService struct {
	repo journal.EntryRepository
}

// NewDashboardService creates a new DashboardService backed by the given repository.
func NewDashboardService(repo journal.EntryRepository) DashboardService {
	return &dashboardService{repo: repo}
}

// Summarize returns the aggregate over all of the user's entries, oldest
// first so the trend reads left to right.
func (s *dashboardService) Summarize(ctx context.Context, userID string) (Summary, error) {
	points, err := s.repo.ListScorePoints(ctx, userID)
	if err != nil {
		return Summary{}, fmt.Errorf("loading score points: %w", err)
	}
	return Aggregate(points), nil
}

// Aggregate computes the average score and maps the points to the trend
// series in the order supplied. An empty input yields a zero average rather
// than dividing by zero, and an empty (not nil) trend so the JSON encodes
// as [] instead of null.
func Aggregate(points []journal.ScorePoint) Summary {
	trend := make([]journal.ScorePoint, len(points))
	copy(trend, points)

	if len(points) == 0 {
		return Summary{AverageMood: 0, Trend: trend}
	}

	sum := 0
	for _, p := range points {
		sum += p.MoodScore
	}

	return Summary{
		AverageMood: float64(sum) / float64(len(points)),
		Trend:       trend,
	}
}
