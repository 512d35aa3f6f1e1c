package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ariebrainware/gym-portal/config"
	"github.com/ariebrainware/gym-portal/model"
	"github.com/ariebrainware/gym-portal/util"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq uint64

// newInMemoryDB creates a private in-memory sqlite DB with the auth tables.
func newInMemoryDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:mw_%d_%d?mode=memory&cache=shared", time.Now().UnixNano(), atomic.AddUint64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Session{}); err != nil {
		t.Fatalf("failed to auto-migrate: %v", err)
	}
	return db
}

type testSessionParams struct {
	roleID    uint32
	expiresAt time.Time
}

// createTestUserAndSession signs a token for a fresh user and stores its session.
func createTestUserAndSession(t *testing.T, db *gorm.DB, params testSessionParams) (model.User, string) {
	util.SetJWTSecret("middleware-test-secret")
	user := model.User{
		Name:     "Test User",
		Email:    fmt.Sprintf("user%d@example.com", time.Now().UnixNano()),
		Password: "hashedpassword",
		RoleID:   params.roleID,
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	token, _, err := util.CreateToken(user.ID, user.RoleID, model.RoleName(user.RoleID), user.Email, time.Hour)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	if params.expiresAt.IsZero() {
		params.expiresAt = time.Now().Add(time.Hour)
	}
	session := model.Session{
		SessionToken: token,
		UserID:       user.ID,
		ExpiresAt:    params.expiresAt,
		ClientIP:     "127.0.0.1",
		Browser:      "test-browser",
	}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("failed to create test session: %v", err)
	}
	return user, token
}

type tokenHeader int

const (
	viaBearer tokenHeader = iota
	viaLegacyHeader
)

func runValidateLoginTokenRequest(db *gorm.DB, token string, via tokenHeader, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	if db != nil {
		r.Use(DatabaseMiddleware(db))
	}
	r.GET("/test", ValidateLoginToken(), handler)
	req := httptest.NewRequest("GET", "/test", nil)
	if token != "" {
		if via == viaBearer {
			req.Header.Set("Authorization", "Bearer "+token)
		} else {
			req.Header.Set("session-token", token)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

func setupRedisMock(t *testing.T) redismock.ClientMock {
	rdb, mock := redismock.NewClientMock()
	config.SetRedisClientForTest(rdb)
	t.Cleanup(func() {
		config.ResetRedisClientForTest()
	})
	return mock
}

func assertIdentity(t *testing.T, c *gin.Context, userID uint, roleID uint32) {
	uid, ok := GetUserID(c)
	if !ok || uid != userID {
		t.Errorf("expected user_id %d in context, got %d", userID, uid)
	}
	rid, ok := GetRoleID(c)
	if !ok || rid != roleID {
		t.Errorf("expected role_id %d in context, got %d", roleID, rid)
	}
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func TestSetCorsHeadersDefaults(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	setCorsHeaders(c)

	if got := c.Writer.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Fatalf("expected Access-Control-Allow-Origin header to be set")
	}
	if got := c.Writer.Header().Get("Access-Control-Allow-Headers"); got == "" {
		t.Fatalf("expected Access-Control-Allow-Headers header to be set")
	}
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware())
	called := false
	r.OPTIONS("/x", func(c *gin.Context) { called = true })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/x", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", w.Code)
	}
	if called {
		t.Fatalf("preflight must not reach the handler")
	}
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/x", func(c *gin.Context) { seen = GetRequestID(c) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))
	if seen == "" || w.Header().Get("X-Request-ID") != seen {
		t.Fatalf("expected generated request id to be echoed, got %q / %q", seen, w.Header().Get("X-Request-ID"))
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	if seen != "abc-123" {
		t.Fatalf("expected client request id to be kept, got %q", seen)
	}
}

func TestDatabaseMiddlewareAndGetDB(t *testing.T) {
	r := gin.New()
	db := newInMemoryDB(t)
	r.Use(DatabaseMiddleware(db))
	r.GET("/testdb", func(c *gin.Context) {
		got := GetDB(c)
		if got == nil {
			c.AbortWithStatus(500)
			return
		}
		c.Status(200)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/testdb", nil))
	if w.Code != 200 {
		t.Fatalf("expected 200 from handler with DB set, got %d", w.Code)
	}
}

func TestValidateLoginToken_MissingToken(t *testing.T) {
	w := runValidateLoginTokenRequest(&gorm.DB{}, "", viaBearer, func(c *gin.Context) {
		c.Status(200)
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when token missing, got %d", w.Code)
	}
}

func TestValidateLoginToken_MissingDatabase(t *testing.T) {
	w := runValidateLoginTokenRequest(nil, "whatever", viaBearer, func(c *gin.Context) {
		c.Status(200)
	})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when database missing, got %d", w.Code)
	}
}

func TestValidateLoginToken_BadSignature(t *testing.T) {
	config.ResetRedisClientForTest()
	db := newInMemoryDB(t)
	_, token := createTestUserAndSession(t, db, testSessionParams{roleID: model.RoleMember})
	util.SetJWTSecret("a-different-secret")
	defer util.SetJWTSecret("middleware-test-secret")

	w := runValidateLoginTokenRequest(db, token, viaBearer, func(c *gin.Context) {
		c.Status(200)
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a token signed with another key, got %d", w.Code)
	}
}

func TestValidateLoginToken_RedisHit(t *testing.T) {
	mock := setupRedisMock(t)
	db := newInMemoryDB(t)
	user, token := createTestUserAndSession(t, db, testSessionParams{roleID: model.RoleTrainer})

	mock.ExpectGet(util.SessionKey(token)).SetVal(fmt.Sprintf("%d:%d", user.ID, model.RoleTrainer))

	w := runValidateLoginTokenRequest(db, token, viaBearer, func(c *gin.Context) {
		assertIdentity(t, c, user.ID, model.RoleTrainer)
		c.Status(200)
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 when Redis holds the session, got %d", w.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Redis expectations were not met: %v", err)
	}
}

func TestValidateLoginToken_RedisMalformedFallsBackToDB(t *testing.T) {
	cases := map[string]string{
		"non numeric": "abc:1",
		"no colon":    "123",
		"zero uid":    "0:1",
		"bad role":    "456:xyz",
	}
	for name, cached := range cases {
		t.Run(name, func(t *testing.T) {
			mock := setupRedisMock(t)
			db := newInMemoryDB(t)
			user, token := createTestUserAndSession(t, db, testSessionParams{roleID: model.RoleMember})
			mock.ExpectGet(util.SessionKey(token)).SetVal(cached)

			w := runValidateLoginTokenRequest(db, token, viaLegacyHeader, func(c *gin.Context) {
				assertIdentity(t, c, user.ID, model.RoleMember)
				c.Status(200)
			})
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 after DB fallback, got %d", w.Code)
			}
		})
	}
}

func TestValidateLoginToken_RedisKeyNotFound_DBFallback(t *testing.T) {
	mock := setupRedisMock(t)
	db := newInMemoryDB(t)
	user, token := createTestUserAndSession(t, db, testSessionParams{roleID: model.RoleAdmin})
	mock.ExpectGet(util.SessionKey(token)).RedisNil()

	w := runValidateLoginTokenRequest(db, token, viaBearer, func(c *gin.Context) {
		assertIdentity(t, c, user.ID, model.RoleAdmin)
		c.Status(200)
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 when DB fallback succeeds, got %d", w.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Redis expectations were not met: %v", err)
	}
}

func TestValidateLoginToken_NoRedis(t *testing.T) {
	config.ResetRedisClientForTest()
	defer config.ResetRedisClientForTest()

	db := newInMemoryDB(t)
	user, token := createTestUserAndSession(t, db, testSessionParams{roleID: model.RoleFrontDesk})

	w := runValidateLoginTokenRequest(db, token, viaBearer, func(c *gin.Context) {
		assertIdentity(t, c, user.ID, model.RoleFrontDesk)
		c.Status(200)
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 when DB lookup succeeds, got %d", w.Code)
	}
}

func TestValidateLoginToken_ExpiredOrRevokedSession(t *testing.T) {
	config.ResetRedisClientForTest()
	defer config.ResetRedisClientForTest()

	db := newInMemoryDB(t)
	_, expired := createTestUserAndSession(t, db, testSessionParams{roleID: model.RoleMember, expiresAt: time.Now().Add(-time.Minute)})
	w := runValidateLoginTokenRequest(db, expired, viaBearer, func(c *gin.Context) { c.Status(200) })
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for an expired session, got %d", w.Code)
	}

	_, revoked := createTestUserAndSession(t, db, testSessionParams{roleID: model.RoleMember})
	if err := db.Where("session_token = ?", revoked).Delete(&model.Session{}).Error; err != nil {
		t.Fatalf("delete session: %v", err)
	}
	w = runValidateLoginTokenRequest(db, revoked, viaBearer, func(c *gin.Context) { c.Status(200) })
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a revoked session, got %d", w.Code)
	}
}

func TestValidateLoginToken_DisabledUser(t *testing.T) {
	config.ResetRedisClientForTest()
	db := newInMemoryDB(t)
	user, token := createTestUserAndSession(t, db, testSessionParams{roleID: model.RoleMember})
	if err := db.Model(&user).Update("is_active", false).Error; err != nil {
		t.Fatalf("disable user: %v", err)
	}

	w := runValidateLoginTokenRequest(db, token, viaBearer, func(c *gin.Context) { c.Status(200) })
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a disabled user, got %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	build := func(roleID uint32) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if roleID != 0 {
				setIdentity(c, 7, roleID)
			}
			c.Next()
		})
		r.GET("/admin", RequireRole(model.RoleAdmin, model.RoleFrontDesk), func(c *gin.Context) { c.Status(200) })
		return r
	}

	cases := []struct {
		role uint32
		want int
	}{
		{model.RoleAdmin, http.StatusOK},
		{model.RoleFrontDesk, http.StatusOK},
		{model.RoleMember, http.StatusForbidden},
		{0, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		build(tc.role).ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))
		if w.Code != tc.want {
			t.Errorf("role %d: expected %d, got %d", tc.role, tc.want, w.Code)
		}
	}
}
