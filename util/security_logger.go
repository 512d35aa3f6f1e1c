package util

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/ariebrainware/gym-portal/model"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SecurityEventType represents different types of security events
type SecurityEventType string

const (
	EventLoginSuccess       SecurityEventType = "LOGIN_SUCCESS"
	EventLoginFailure       SecurityEventType = "LOGIN_FAILURE"
	EventSignupSuccess      SecurityEventType = "SIGNUP_SUCCESS"
	EventLogout             SecurityEventType = "LOGOUT"
	EventAccountLocked      SecurityEventType = "ACCOUNT_LOCKED"
	EventAccountDisabled    SecurityEventType = "ACCOUNT_DISABLED"
	EventPasswordChanged    SecurityEventType = "PASSWORD_CHANGED"
	EventUnauthorizedAccess SecurityEventType = "UNAUTHORIZED_ACCESS"
	EventForbiddenAccess    SecurityEventType = "FORBIDDEN_ACCESS"
	EventRateLimitExceeded  SecurityEventType = "RATE_LIMIT_EXCEEDED"
	EventSuspiciousActivity SecurityEventType = "SUSPICIOUS_ACTIVITY"
	EventEndpointCall       SecurityEventType = "ENDPOINT_CALL"
)

// SecurityEvent represents a security event to be logged
type SecurityEvent struct {
	EventType SecurityEventType
	UserID    string
	Email     string
	IP        string
	UserAgent string
	RequestID string
	Message   string
	Details   map[string]interface{}
}

var (
	securityMu     sync.RWMutex
	securityLogger = log.Logger.With().Str("channel", "security").Logger()
	securityDB     *gorm.DB
)

// SetSecurityLoggerDB enables persistence of events into security_logs.
// Pass nil to disable it.
func SetSecurityLoggerDB(db *gorm.DB) {
	securityMu.Lock()
	defer securityMu.Unlock()
	securityDB = db
}

func setSecurityLogger(base zerolog.Logger) {
	securityMu.Lock()
	defer securityMu.Unlock()
	securityLogger = base.With().Str("channel", "security").Logger()
}

// sanitizeLogValue flattens control characters and caps the length.
func sanitizeLogValue(value string) string {
	value = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(value)
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

func isWarning(t SecurityEventType) bool {
	switch t {
	case EventLoginFailure, EventAccountLocked, EventAccountDisabled, EventUnauthorizedAccess,
		EventForbiddenAccess, EventRateLimitExceeded, EventSuspiciousActivity:
		return true
	}
	return false
}

// LogSecurityEvent writes the event to the security log and, when a DB was
// registered, persists it. Persistence is best-effort.
func LogSecurityEvent(event SecurityEvent) {
	securityMu.RLock()
	logger := securityLogger
	db := securityDB
	securityMu.RUnlock()

	entry := logger.Info()
	if isWarning(event.EventType) {
		entry = logger.Warn()
	}
	entry.
		Str("event", string(event.EventType)).
		Str("user_id", sanitizeLogValue(event.UserID)).
		Str("email", sanitizeLogValue(event.Email)).
		Str("ip", sanitizeLogValue(event.IP)).
		Str("user_agent", sanitizeLogValue(event.UserAgent)).
		Str("request_id", sanitizeLogValue(event.RequestID)).
		Int("details", len(event.Details)).
		Msg(sanitizeLogValue(event.Message))

	if db == nil {
		return
	}

	var details datatypes.JSON
	if event.Details != nil {
		if b, err := json.Marshal(event.Details); err == nil {
			details = datatypes.JSON(b)
		}
	}

	row := model.SecurityLog{
		EventType: string(event.EventType),
		UserID:    sanitizeLogValue(event.UserID),
		Email:     sanitizeLogValue(event.Email),
		IP:        sanitizeLogValue(event.IP),
		Location:  sanitizeLogValue(formatLocation(GetIPLocation(event.IP))),
		UserAgent: sanitizeLogValue(event.UserAgent),
		RequestID: sanitizeLogValue(event.RequestID),
		Message:   sanitizeLogValue(event.Message),
		Details:   details,
	}
	if err := db.Create(&row).Error; err != nil {
		logger.Error().Err(err).Msg("failed to persist security event")
	}
}

func formatLocation(city, country string) string {
	switch {
	case city != "" && country != "":
		return city + "/" + country
	case country != "":
		return country
	default:
		return city
	}
}

// LogLoginSuccess logs a successful login event
func LogLoginSuccess(userID uint, email, ip, userAgent string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventLoginSuccess,
		UserID:    fmt.Sprintf("%d", userID),
		Email:     email,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "User logged in successfully",
	})
}

// LogLoginFailure logs a failed login attempt
func LogLoginFailure(email, ip, userAgent, reason string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventLoginFailure,
		Email:     email,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "Login failed: " + reason,
	})
}

// LogLogout logs a logout event
func LogLogout(userID uint, email, ip, userAgent string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventLogout,
		UserID:    fmt.Sprintf("%d", userID),
		Email:     email,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "User logged out",
	})
}

// LogAccountLocked logs when an account is locked
func LogAccountLocked(userID uint, email, ip, reason string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventAccountLocked,
		UserID:    fmt.Sprintf("%d", userID),
		Email:     email,
		IP:        ip,
		Message:   "Account locked: " + reason,
	})
}

// LogUnauthorizedAccess logs unauthorized access attempts
func LogUnauthorizedAccess(userID, email, ip, resource, reason string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventUnauthorizedAccess,
		UserID:    userID,
		Email:     email,
		IP:        ip,
		Message:   fmt.Sprintf("Unauthorized access to %s: %s", resource, reason),
	})
}

// LogForbiddenAccess logs an authenticated caller hitting a route its role may not use.
func LogForbiddenAccess(userID uint, role, ip, resource string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventForbiddenAccess,
		UserID:    fmt.Sprintf("%d", userID),
		IP:        ip,
		Message:   fmt.Sprintf("Role %s may not access %s", role, resource),
	})
}

// LogRateLimitExceeded logs when rate limit is exceeded
func LogRateLimitExceeded(email, ip, endpoint string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventRateLimitExceeded,
		Email:     email,
		IP:        ip,
		Message:   "Rate limit exceeded for endpoint: " + endpoint,
	})
}
