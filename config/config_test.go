package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetConfigForTest() {
	config = nil
	once = sync.Once{}
}

func TestLoadConfigDefaultsAndConnectDatabase(t *testing.T) {
	resetConfigForTest()
	t.Cleanup(resetConfigForTest)
	t.Setenv("APPENV", "test")
	t.Setenv("APPPORT", "")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg := LoadConfig()
	require.NotNil(t, cfg)
	assert.True(t, cfg.IsTest())
	assert.Equal(t, uint16(8080), cfg.AppPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, time.Hour, cfg.TokenTTL())

	db, err := ConnectDatabase()
	require.NoError(t, err)
	require.NotNil(t, db)
	assert.Equal(t, "sqlite", db.Dialector.Name())
}

func TestConnectDatabaseGivesIsolatedTestDatabases(t *testing.T) {
	resetConfigForTest()
	t.Cleanup(resetConfigForTest)
	t.Setenv("APPENV", "test")

	type probe struct{ ID uint }
	a, err := ConnectDatabase()
	require.NoError(t, err)
	b, err := ConnectDatabase()
	require.NoError(t, err)

	require.NoError(t, a.AutoMigrate(&probe{}))
	assert.False(t, b.Migrator().HasTable(&probe{}))
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := &Config{Timezone: "Nowhere/Atlantis"}
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.Timezone = "Asia/Jakarta"
	assert.Equal(t, "Asia/Jakarta", cfg.Location().String())
}

func TestLoadRulesDefaults(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, 5, rules.ConsistencyThreshold)
	assert.Equal(t, 10, rules.ConsistencyBonusPoints)
	assert.True(t, rules.HasTimeSlot("06:00"))
	assert.True(t, rules.HasTimeSlot("21:00"))
	assert.False(t, rules.HasTimeSlot("22:00"))
	assert.True(t, rules.HasCheckInType("qr_code"))
}

func TestLoadRulesOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := "consistency_bonus_points: 25\ntime_slots: [\"07:30\", \"18:00\"]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, 5, rules.ConsistencyThreshold)
	assert.Equal(t, 25, rules.ConsistencyBonusPoints)
	assert.Equal(t, []string{"07:30", "18:00"}, rules.TimeSlots)
}

func TestLoadRulesRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("consistency_threshold: 9\n"), 0o600))
	_, err := LoadRules(bad)
	assert.Error(t, err)

	slot := filepath.Join(dir, "slot.yaml")
	require.NoError(t, os.WriteFile(slot, []byte("time_slots: [\"25:00\"]\n"), 0o600))
	_, err = LoadRules(slot)
	assert.Error(t, err)

	_, err = LoadRules(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
