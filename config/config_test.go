package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKafkaBrokerList(t *testing.T) {
	cfg := Config{KafkaBrokers: " kafka-1:9092, ,kafka-2:9092 "}
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokerList())
	assert.Empty(t, Config{}.KafkaBrokerList())
}

func TestLocation(t *testing.T) {
	assert.Equal(t, time.UTC, Config{}.Location())
	assert.Equal(t, time.UTC, Config{Timezone: "Not/AZone"}.Location())
	assert.Equal(t, "Asia/Kolkata", Config{Timezone: "Asia/Kolkata"}.Location().String())
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("AVAILABILITY_TIMEOUT", "15s")
	LoadConfig()

	assert.Equal(t, 15*time.Second, AppConfig.AvailabilityTimeout)
	assert.Equal(t, 12*time.Second, AppConfig.SubmissionTimeout)
	assert.Equal(t, 30*time.Minute, AppConfig.SessionTTL)
	assert.Equal(t, "INR", AppConfig.Currency)
	assert.False(t, IsProduction())
}
