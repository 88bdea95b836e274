package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

const healthProbeInterval = 60 * time.Second

// HealthStatus is the latest dependency snapshot served on /health. Redis
// entries are keyed by role (cache, auth).
type HealthStatus struct {
	Mongo     bool            `json:"mongo"`
	Redis     map[string]bool `json:"redis"`
	CheckedAt time.Time       `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor probes the named redis clients and the Mongo client on
// an interval, keeping the snapshot fresh. The first probe runs immediately
// so /health never serves the zero value.
func StartHealthMonitor(redisClients map[string]*redis.Client, mongoClient *mongo.Client) {
	go func() {
		probeHealth(redisClients, mongoClient)

		ticker := time.NewTicker(healthProbeInterval)
		defer ticker.Stop()
		for range ticker.C {
			probeHealth(redisClients, mongoClient)
		}
	}()
}

func probeHealth(redisClients map[string]*redis.Client, mongoClient *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisHealth := make(map[string]bool, len(redisClients))
	for role, client := range redisClients {
		redisHealth[role] = client.Ping(ctx).Err() == nil
	}
	mongoHealthy := mongoClient != nil && mongoClient.Ping(ctx, nil) == nil

	healthMu.Lock()
	currentHealth = HealthStatus{
		Mongo:     mongoHealthy,
		Redis:     redisHealth,
		CheckedAt: time.Now(),
	}
	healthMu.Unlock()
}
