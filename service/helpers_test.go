package service

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ariebrainware/gym-portal/config"
	"github.com/ariebrainware/gym-portal/events"
	"github.com/ariebrainware/gym-portal/model"
	"github.com/ariebrainware/gym-portal/monitoring"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq uint64

// newTestDB opens a private, fully migrated in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%d_%d?mode=memory&cache=shared", time.Now().UnixNano(), atomic.AddUint64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, model.Migrate(db))
	return db
}

// testDeps pins the clock at now and records published events.
func testDeps(now time.Time) (Deps, *events.MemoryPublisher) {
	pub := events.NewMemoryPublisher()
	return Deps{
		Rules:     config.DefaultRules(),
		Location:  time.UTC,
		Publisher: pub,
		Metrics:   monitoring.Reset(),
		Clock:     func() time.Time { return now },
	}, pub
}

func createMember(t *testing.T, db *gorm.DB, name, email string) model.User {
	t.Helper()
	u := createUser(t, db, name, email, model.RoleMember)
	require.NoError(t, db.Create(&model.MemberProfile{UserID: u.ID}).Error)
	return u
}

func createUser(t *testing.T, db *gorm.DB, name, email string, role uint32) model.User {
	t.Helper()
	u := model.User{Name: name, Email: email, Password: "x", RoleID: role, IsActive: true}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func profileOf(t *testing.T, db *gorm.DB, userID uint) model.MemberProfile {
	t.Helper()
	var p model.MemberProfile
	require.NoError(t, db.Where("user_id = ?", userID).First(&p).Error)
	return p
}

func at(date string, hour int) time.Time {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		panic(err)
	}
	return d.Add(time.Duration(hour) * time.Hour)
}
