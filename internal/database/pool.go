package database

import (
	"context"
	"log/slog"
	"time"
)

type PoolStats struct {
	MaxOpenConns int   `json:"max_open_connections"`
	OpenConns    int   `json:"open_connections"`
	InUse        int   `json:"in_use"`
	Idle         int   `json:"idle"`
	WaitCount    int64 `json:"wait_count"`
}

type HealthCheck struct {
	Status       string        `json:"status"`
	ResponseTime time.Duration `json:"response_time"`
	Error        string        `json:"error,omitempty"`
	Stats        PoolStats     `json:"stats"`
	Timestamp    time.Time     `json:"timestamp"`
}

func (db *DB) GetPoolStats() PoolStats {
	stats := db.Stats()
	return PoolStats{
		MaxOpenConns: stats.MaxOpenConnections,
		OpenConns:    stats.OpenConnections,
		InUse:        stats.InUse,
		Idle:         stats.Idle,
		WaitCount:    stats.WaitCount,
	}
}

// HealthCheck pings the journal database with a bounded timeout.
func (db *DB) HealthCheck(ctx context.Context) HealthCheck {
	start := time.Now()
	healthCheck := HealthCheck{
		Timestamp: start,
		Stats:     db.GetPoolStats(),
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := db.PingContext(pingCtx)
	healthCheck.ResponseTime = time.Since(start)

	if err != nil {
		healthCheck.Status = "unhealthy"
		healthCheck.Error = err.Error()
		slog.Error("Database health check failed", "error", err)
	} else {
		healthCheck.Status = "healthy"
	}

	return healthCheck
}
