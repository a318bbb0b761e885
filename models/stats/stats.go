package stats

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/grocerly/grocerly/connections"
)

const snapshotKey = "stats:snapshot"

var ErrNoSnapshot = errors.New("no stats snapshot")

// Snapshot represents aggregate usage statistics
type Snapshot struct {
	Users          int            `json:"users"`
	Items          int            `json:"items"`
	ActiveItems    int            `json:"active_items"`
	CompletedItems int            `json:"completed_items"`
	ByCategory     map[string]int `json:"by_category"`
	GeneratedAt    time.Time      `json:"generated_at"`
}

// Get loads the latest snapshot from Redis
func Get() (*Snapshot, error) {
	conn := connections.Redis()
	defer conn.Close()

	data, err := redis.Bytes(conn.Do("GET", snapshotKey))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return nil, ErrNoSnapshot
		}
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}

	return &snap, nil
}

// Save stores a snapshot in Redis
func Save(snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	conn := connections.Redis()
	defer conn.Close()

	_, err = conn.Do("SET", snapshotKey, data)
	return err
}
