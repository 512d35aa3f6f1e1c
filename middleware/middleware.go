package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ariebrainware/gym-portal/model"
	"github.com/ariebrainware/gym-portal/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	dbKey        = "db"
	UserIDKey    = "user_id"
	RoleIDKey    = "role_id"
	RequestIDKey = "request_id"

	requestIDHeader = "X-Request-ID"
	legacyTokenHdr  = "session-token"
)

// CORSMiddleware configures CORS headers for incoming requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		setCorsHeaders(c)

		// For preflight requests, respond with 204 and abort further processing.
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func setCorsHeaders(c *gin.Context) {
	h := c.Writer.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
	h.Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Authorization, session-token, X-Request-ID")
	h.Set("Access-Control-Expose-Headers", "X-Request-ID")
	h.Set("Access-Control-Max-Age", "86400")
	h.Set("Content-Type", "application/json")
}

// RequestID tags every request with an id, reusing a client supplied one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the id set by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// DatabaseMiddleware makes db available to handlers via GetDB.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbKey, db)
		c.Next()
	}
}

// GetDB returns the request's *gorm.DB bound to the request context, or nil.
func GetDB(c *gin.Context) *gorm.DB {
	v, ok := c.Get(dbKey)
	if !ok {
		return nil
	}
	db, ok := v.(*gorm.DB)
	if !ok || db == nil {
		return nil
	}
	if db.Statement == nil {
		return db
	}
	return db.WithContext(c.Request.Context())
}

// GetUserID returns the authenticated user id.
func GetUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// GetRoleID returns the authenticated user's role id.
func GetRoleID(c *gin.Context) (uint32, bool) {
	v, ok := c.Get(RoleIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint32)
	return id, ok && id != 0
}

// bearerToken extracts the login token from "Authorization: Bearer" or the
// legacy session-token header.
func bearerToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		if scheme, token, ok := strings.Cut(auth, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(c.GetHeader(legacyTokenHdr))
}

// BearerToken is exported for handlers that need the raw token, like logout.
func BearerToken(c *gin.Context) string {
	return bearerToken(c)
}

var errSessionNotFound = errors.New("session not found")

// ValidateLoginToken authenticates the caller. The token must carry a valid
// signature and map to a live session, looked up in Redis first and then in
// the sessions table.
func ValidateLoginToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			rejectUnauthorized(c, "", "missing token")
			return
		}
		db := GetDB(c)
		if db == nil {
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Database connection not available",
				Err: fmt.Errorf("db is nil"),
			})
			c.Abort()
			return
		}

		claims, err := util.ParseToken(token)
		if err != nil {
			rejectUnauthorized(c, "", "invalid token")
			return
		}

		ctx := c.Request.Context()
		uid, rid, err := util.LookupCachedSession(ctx, token)
		if err == nil && uid == claims.UserID {
			setIdentity(c, uid, rid)
			c.Next()
			return
		}
		if err != nil && !errors.Is(err, util.ErrSessionNotCached) {
			log.Warn().Err(err).Msg("session cache lookup failed")
		}

		uid, rid, expires, err := lookupSession(db, token)
		if err != nil || uid != claims.UserID {
			rejectUnauthorized(c, fmt.Sprintf("%d", claims.UserID), "session expired or revoked")
			return
		}
		if ttl := time.Until(expires); ttl > 0 {
			if err := util.CacheSession(ctx, token, uid, rid, ttl); err != nil {
				log.Warn().Err(err).Msg("cache session")
			}
		}
		setIdentity(c, uid, rid)
		c.Next()
	}
}

func lookupSession(db *gorm.DB, token string) (uint, uint32, time.Time, error) {
	var row struct {
		UserID    uint
		RoleID    uint32
		ExpiresAt time.Time
	}
	err := db.Table("sessions").
		Select("sessions.user_id, users.role_id, sessions.expires_at").
		Joins("JOIN users ON users.id = sessions.user_id AND users.deleted_at IS NULL").
		Where("sessions.session_token = ? AND sessions.deleted_at IS NULL", token).
		Where("sessions.expires_at > ? AND users.is_active = ?", time.Now(), true).
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return 0, 0, time.Time{}, err
	}
	if row.UserID == 0 {
		return 0, 0, time.Time{}, errSessionNotFound
	}
	return row.UserID, row.RoleID, row.ExpiresAt, nil
}

func setIdentity(c *gin.Context, userID uint, roleID uint32) {
	c.Set(UserIDKey, userID)
	c.Set(RoleIDKey, roleID)
}

func rejectUnauthorized(c *gin.Context, userID, reason string) {
	util.LogUnauthorizedAccess(userID, "", c.ClientIP(), c.Request.URL.Path, reason)
	util.CallUserNotAuthorized(c, util.APIErrorParams{
		Msg: "Unauthorized",
		Err: errors.New(reason),
	})
	c.Abort()
}

// RequireRole lets the request through only for the listed roles. It must
// run after ValidateLoginToken.
func RequireRole(roles ...uint32) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleID, ok := GetRoleID(c)
		if !ok {
			rejectUnauthorized(c, "", "no authenticated role")
			return
		}
		for _, r := range roles {
			if r == roleID {
				c.Next()
				return
			}
		}
		uid, _ := GetUserID(c)
		util.LogForbiddenAccess(uid, model.RoleName(roleID), c.ClientIP(), c.Request.URL.Path)
		util.CallForbidden(c, util.APIErrorParams{
			Msg: "Forbidden",
			Err: fmt.Errorf("role %s is not allowed", model.RoleName(roleID)),
		})
		c.Abort()
	}
}
