package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chainraise/crowdfund-server/internal/store"
)

func TestNormalizeConnectionPoolSettings_Defaults(t *testing.T) {
	maxOpen, maxIdle, maxLifetime, maxIdleTime := store.NormalizeConnectionPoolSettings(0, 0, 0, 0)

	assert.Equal(t, 20, maxOpen)
	assert.Equal(t, 5, maxIdle)
	assert.Equal(t, 5*time.Minute, maxLifetime)
	assert.Equal(t, 10*time.Minute, maxIdleTime)
}

func TestNormalizeConnectionPoolSettings_ClampsIdleToOpen(t *testing.T) {
	maxOpen, maxIdle, _, _ := store.NormalizeConnectionPoolSettings(4, 10, time.Minute, time.Minute)

	assert.Equal(t, 4, maxOpen)
	assert.Equal(t, 4, maxIdle)
}

func TestNormalizeConnectionPoolSettings_KeepsExplicitValues(t *testing.T) {
	maxOpen, maxIdle, maxLifetime, maxIdleTime := store.NormalizeConnectionPoolSettings(50, 10, time.Hour, 30*time.Minute)

	assert.Equal(t, 50, maxOpen)
	assert.Equal(t, 10, maxIdle)
	assert.Equal(t, time.Hour, maxLifetime)
	assert.Equal(t, 30*time.Minute, maxIdleTime)
}
