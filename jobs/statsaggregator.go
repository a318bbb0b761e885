package jobs

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/grocerly/grocerly/connections"
	"github.com/grocerly/grocerly/models/stats"
)

// StatsAggregator recomputes the aggregate usage snapshot from PostgreSQL
// and stores it in Redis for the public stats endpoint
type StatsAggregator struct{}

// NewStatsAggregator creates a new StatsAggregator
func NewStatsAggregator() *StatsAggregator {
	return &StatsAggregator{}
}

// Run executes the aggregation job
func (sa StatsAggregator) Run() {
	log.Info("Stats Aggregator Started")

	ctx := context.Background()
	pool := connections.Postgres()

	snap := &stats.Snapshot{
		ByCategory:  map[string]int{},
		GeneratedAt: time.Now(),
	}

	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&snap.Users); err != nil {
		log.WithError(err).Warn("Stats Aggregator: Failed to count users")
		return
	}

	rows, err := pool.Query(ctx, `
		SELECT status, COUNT(*)
		FROM items
		GROUP BY status
	`)
	if err != nil {
		log.WithError(err).Warn("Stats Aggregator: Failed to count items by status")
		return
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			rows.Close()
			log.WithError(err).Warn("Stats Aggregator: Failed to scan status count")
			return
		}
		switch status {
		case "active":
			snap.ActiveItems = count
		case "completed":
			snap.CompletedItems = count
		}
		snap.Items += count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		log.WithError(err).Warn("Stats Aggregator: Failed to read status counts")
		return
	}

	rows, err = pool.Query(ctx, `
		SELECT category, COUNT(*)
		FROM items
		GROUP BY category
	`)
	if err != nil {
		log.WithError(err).Warn("Stats Aggregator: Failed to count items by category")
		return
	}
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			rows.Close()
			log.WithError(err).Warn("Stats Aggregator: Failed to scan category count")
			return
		}
		snap.ByCategory[category] = count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		log.WithError(err).Warn("Stats Aggregator: Failed to read category counts")
		return
	}

	if err := stats.Save(snap); err != nil {
		log.WithError(err).Warn("Stats Aggregator: Failed to save snapshot")
		return
	}

	log.WithFields(log.Fields{
		"users": snap.Users,
		"items": snap.Items,
	}).Info("Stats Aggregator Completed")
}
