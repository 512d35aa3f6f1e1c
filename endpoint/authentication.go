package endpoint

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ariebrainware/gym-portal/config"
	"github.com/ariebrainware/gym-portal/events"
	"github.com/ariebrainware/gym-portal/middleware"
	"github.com/ariebrainware/gym-portal/model"
	"github.com/ariebrainware/gym-portal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	maxFailedAttempts = 5
	lockoutDuration   = 15 * time.Minute
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"member@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type LoginResponse struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Role      string    `json:"role" example:"member"`
	UserID    uint      `json:"user_id" example:"1"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login godoc
// @Summary      User login
// @Description  Authenticate with email and password and receive a bearer token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} util.APIResponse{data=LoginResponse} "Login successful"
// @Failure      400 {object} util.APIResponse "Invalid request payload or credentials"
// @Failure      403 {object} util.APIResponse "Account disabled"
// @Failure      429 {object} util.APIResponse "Too many login attempts"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /users/login [post]
func Login(c *gin.Context) {
	var req LoginRequest

	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	ci := clientInfo{IP: c.ClientIP(), Agent: c.Request.UserAgent()}
	ctx := loginContext{C: c, DB: db, Email: util.NormalizeEmail(req.Email), CI: ci}

	user, ok := loadUserForLogin(ctx)
	if !ok {
		return
	}

	if !ensureAccountNotLocked(ctx, &user) {
		return
	}

	if !verifyPasswordOrRespond(ctx, &user, req.Password) {
		return
	}

	if !ensureAccountActive(ctx, &user) {
		return
	}

	finalizeLogin(ctx, &user, req.Password)
}

type clientInfo struct {
	IP    string
	Agent string
}

type loginContext struct {
	C     *gin.Context
	DB    *gorm.DB
	Email string
	CI    clientInfo
}

func loadUserForLogin(ctx loginContext) (model.User, bool) {
	user, err := loadUserByEmail(ctx.DB, ctx.Email)
	if err == gorm.ErrRecordNotFound {
		util.LogLoginFailure(ctx.Email, ctx.CI.IP, ctx.CI.Agent, "user not found")
		util.CallUserError(ctx.C, util.APIErrorParams{Msg: "Invalid email or password", Err: fmt.Errorf("user not found")})
		return model.User{}, false
	}
	if err != nil {
		util.LogLoginFailure(ctx.Email, ctx.CI.IP, ctx.CI.Agent, "database error")
		util.CallServerError(ctx.C, util.APIErrorParams{Msg: "Database error", Err: err})
		return model.User{}, false
	}
	return user, true
}

func ensureAccountNotLocked(ctx loginContext, user *model.User) bool {
	if locked, expiry := isAccountLocked(user); locked {
		util.LogLoginFailure(ctx.Email, ctx.CI.IP, ctx.CI.Agent, "account locked")
		util.CallUserError(ctx.C, util.APIErrorParams{Msg: fmt.Sprintf("Account is locked until %s due to multiple failed login attempts", expiry.Format(time.RFC3339)), Err: fmt.Errorf("account locked")})
		return false
	}
	return true
}

// ensureAccountActive runs after the password check so a disabled account
// is not revealed to someone guessing passwords.
func ensureAccountActive(ctx loginContext, user *model.User) bool {
	if user.IsActive {
		return true
	}
	util.LogLoginFailure(ctx.Email, ctx.CI.IP, ctx.CI.Agent, "account disabled")
	util.CallForbidden(ctx.C, util.APIErrorParams{Msg: "Account is disabled", Err: fmt.Errorf("account disabled")})
	return false
}

func verifyPasswordOrRespond(ctx loginContext, user *model.User, plain string) bool {
	match, err := util.VerifyPassword(plain, user.Password, user.PasswordSalt)
	if err != nil {
		util.LogLoginFailure(ctx.Email, ctx.CI.IP, ctx.CI.Agent, "password verification error")
		util.CallServerError(ctx.C, util.APIErrorParams{Msg: "Password verification failed", Err: err})
		return false
	}
	if !match {
		incrementFailedAttempts(ctx.DB, user, ctx.CI)
		util.LogLoginFailure(ctx.Email, ctx.CI.IP, ctx.CI.Agent, "invalid password")
		util.CallUserError(ctx.C, util.APIErrorParams{Msg: "Invalid email or password", Err: fmt.Errorf("invalid password")})
		return false
	}
	return true
}

// issueSession signs a token, stores the session row and caches it. It is
// shared by login and signup.
func issueSession(ctx context.Context, db *gorm.DB, user model.User, ci clientInfo) (LoginResponse, error) {
	role := model.RoleName(user.RoleID)
	token, expires, err := util.CreateToken(user.ID, user.RoleID, role, user.Email, config.LoadConfig().TokenTTL())
	if err != nil {
		return LoginResponse{}, fmt.Errorf("could not generate token: %w", err)
	}

	session, err := recordSession(db, SessionInfo{UserID: user.ID, Token: token, Client: ci, Expires: expires})
	if err != nil {
		return LoginResponse{}, fmt.Errorf("failed to record session: %w", err)
	}

	// Redis is an accelerator; the session row stays authoritative.
	if err := util.CacheSession(ctx, token, session.UserID, user.RoleID, time.Until(session.ExpiresAt)); err != nil {
		util.Logger().Warn().Err(err).Uint("user_id", user.ID).Msg("failed to cache session")
	}

	return LoginResponse{Token: token, Role: role, UserID: user.ID, ExpiresAt: expires}, nil
}

func finalizeLogin(ctx loginContext, user *model.User, plain string) bool {
	if err := resetFailedAttempts(ctx.DB, user); err != nil {
		util.LogSecurityEvent(util.SecurityEvent{EventType: util.EventSuspiciousActivity, UserID: fmt.Sprintf("%d", user.ID), Email: user.Email, IP: ctx.CI.IP, Message: fmt.Sprintf("Failed to reset failed attempts: %v", err)})
	}

	_ = upgradeLegacyPasswordIfNeeded(ctx.DB, user, plain, ctx.CI)

	resp, err := issueSession(ctx.C.Request.Context(), ctx.DB, *user, ctx.CI)
	if err != nil {
		util.LogLoginFailure(ctx.Email, ctx.CI.IP, ctx.CI.Agent, "session creation failed")
		util.CallServerError(ctx.C, util.APIErrorParams{Msg: "Failed to create session", Err: err})
		return false
	}

	util.LogLoginSuccess(user.ID, user.Email, ctx.CI.IP, ctx.CI.Agent)
	if config.GetRedisClient() != nil {
		if err := middleware.ResetRateLimit(ctx.C.Request.Context(), ctx.CI.IP, ctx.C.Request.URL.Path); err != nil {
			util.Logger().Warn().Err(err).Str("ip", ctx.CI.IP).Msg("failed to reset login rate limit")
		}
	}
	util.CallSuccessOK(ctx.C, util.APISuccessParams{Msg: "Login successful", Data: resp})
	return true
}

func ensureEmailAvailable(c *gin.Context, db *gorm.DB, email string) bool {
	var existingUser model.User
	err := db.Unscoped().First(&existingUser, "email = ?", email).Error
	if err != gorm.ErrRecordNotFound {
		if err == nil {
			util.CallConflict(c, util.APIErrorParams{Msg: "Email already exists", Err: fmt.Errorf("email already exists")})
			return false
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return false
	}
	return true
}

func hashPasswordForSignup(c *gin.Context, plain string) (string, string, bool) {
	salt, err := util.GenerateSalt()
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to generate password salt", Err: err})
		return "", "", false
	}
	hashedPassword, err := util.HashPasswordArgon2(plain, salt)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to hash password", Err: err})
		return "", "", false
	}
	return hashedPassword, salt, true
}

// createUserWithProfile inserts the user and, for members, the profile that
// carries visit counters and loyalty points.
func createUserWithProfile(db *gorm.DB, user *model.User) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if user.RoleID != model.RoleMember {
			return nil
		}
		return tx.Create(&model.MemberProfile{UserID: user.ID}).Error
	})
}

func loadUserByEmail(db *gorm.DB, email string) (model.User, error) {
	var user model.User
	err := db.Model(&user).Where("email = ?", email).First(&user).Error
	return user, err
}

func isAccountLocked(user *model.User) (bool, time.Time) {
	if user.LockedUntil != nil && *user.LockedUntil > time.Now().Unix() {
		return true, time.Unix(*user.LockedUntil, 0)
	}
	return false, time.Time{}
}

func incrementFailedAttempts(db *gorm.DB, user *model.User, ci clientInfo) {
	user.FailedAttempts++
	if user.FailedAttempts >= maxFailedAttempts {
		lockUntil := time.Now().Add(lockoutDuration).Unix()
		user.LockedUntil = &lockUntil
		util.LogAccountLocked(user.ID, user.Email, ci.IP, "too many failed login attempts")
	}
	if err := db.Model(user).Select("failed_attempts", "locked_until").Updates(user).Error; err != nil {
		util.LogLoginFailure(user.Email, ci.IP, ci.Agent, "failed to update failed attempts")
	}
}

func resetFailedAttempts(db *gorm.DB, user *model.User) error {
	if user.FailedAttempts > 0 || user.LockedUntil != nil {
		user.FailedAttempts = 0
		user.LockedUntil = nil
		return db.Model(user).Select("failed_attempts", "locked_until").Updates(user).Error
	}
	return nil
}

func upgradeLegacyPasswordIfNeeded(db *gorm.DB, user *model.User, plain string, ci clientInfo) error {
	if strings.HasPrefix(user.Password, "argon2id$") {
		return nil
	}
	salt, err := util.GenerateSalt()
	if err != nil {
		return err
	}
	hashed, herr := util.HashPasswordArgon2(plain, salt)
	if herr != nil {
		return herr
	}
	user.Password = hashed
	user.PasswordSalt = salt
	if err := db.Model(user).Select("password", "password_salt").Updates(user).Error; err != nil {
		util.LogSecurityEvent(util.SecurityEvent{EventType: util.EventSuspiciousActivity, UserID: fmt.Sprintf("%d", user.ID), Email: user.Email, IP: ci.IP, Message: fmt.Sprintf("Failed to upgrade password hash: %v", err)})
		return err
	}
	util.LogSecurityEvent(util.SecurityEvent{EventType: util.EventPasswordChanged, UserID: fmt.Sprintf("%d", user.ID), Email: user.Email, IP: ci.IP, Message: "Upgraded password hash to Argon2"})
	return nil
}

// SessionInfo groups parameters for creating a session to avoid long argument lists.
type SessionInfo struct {
	UserID  uint
	Token   string
	Client  clientInfo
	Expires time.Time
}

func recordSession(db *gorm.DB, info SessionInfo) (model.Session, error) {
	session := model.Session{UserID: info.UserID, SessionToken: info.Token, ExpiresAt: info.Expires, ClientIP: info.Client.IP, Browser: info.Client.Agent}
	err := db.Create(&session).Error
	return session, err
}

// Logout godoc
// @Summary      User logout
// @Description  Invalidate the current bearer token
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse "Logout successful"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      400 {object} util.APIResponse "Session not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /users/logout [delete]
func Logout(c *gin.Context) {
	sessionToken := middleware.BearerToken(c)
	if sessionToken == "" {
		util.CallUserNotAuthorized(c, util.APIErrorParams{
			Msg: "Session token not provided",
			Err: fmt.Errorf("session token not provided"),
		})
		c.Abort()
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var session model.Session
	if err := db.Where("session_token = ?", sessionToken).First(&session).Error; err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Session not found",
			Err: err,
		})
		return
	}

	var user model.User
	if err := db.First(&user, session.UserID).Error; err == nil {
		util.LogLogout(user.ID, user.Email, c.ClientIP(), c.Request.UserAgent())
	}

	if err := db.Where("session_token = ?", sessionToken).Delete(&session).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to delete session",
			Err: err,
		})
		return
	}

	if err := util.DropCachedSession(c.Request.Context(), session.UserID, sessionToken); err != nil {
		util.Logger().Warn().Err(err).Uint("user_id", session.UserID).Msg("failed to drop cached session")
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Logout successful",
	})
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required" example:"Jane Doe"`
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Phone    string `json:"phone" example:"+6281234567890"`
	Password string `json:"password" binding:"required,min=8" example:"password123"`
}

// Signup godoc
// @Summary      Member signup
// @Description  Register a member account and log it in
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body SignupRequest true "Signup details"
// @Success      200 {object} util.APIResponse{data=LoginResponse} "Signup successful"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      409 {object} util.APIResponse "Email already exists"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /users/signup [post]
func Signup(c *gin.Context) {
	var req SignupRequest

	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	email := util.NormalizeEmail(req.Email)
	if !ensureEmailAvailable(c, db, email) {
		return
	}

	hashedPassword, salt, ok := hashPasswordForSignup(c, req.Password)
	if !ok {
		return
	}

	newUser := model.User{
		Name:         util.NormalizeName(req.Name),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		Password:     hashedPassword,
		PasswordSalt: salt,
		RoleID:       model.RoleMember,
		IsActive:     true,
	}

	if err := createUserWithProfile(db, &newUser); err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create new user", Err: err})
		return
	}

	ci := clientInfo{IP: c.ClientIP(), Agent: c.Request.UserAgent()}
	util.LogSecurityEvent(util.SecurityEvent{
		EventType: util.EventSignupSuccess,
		UserID:    fmt.Sprintf("%d", newUser.ID),
		Email:     newUser.Email,
		IP:        ci.IP,
		UserAgent: ci.Agent,
		RequestID: middleware.GetRequestID(c),
		Message:   "Member signed up successfully",
	})
	publish(c, events.MemberRegistered, newUser.ID, map[string]interface{}{"email": newUser.Email, "name": newUser.Name})

	resp, err := issueSession(c.Request.Context(), db, newUser, ci)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Could not generate token", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Signup successful",
		Data: resp,
	})
}

// VerifyPasswordRequest represents the request body for password verification
type VerifyPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// VerifyPassword godoc
// @Summary      Verify current user's password
// @Description  Validate the provided current password for the authenticated user
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body VerifyPasswordRequest true "Password to verify"
// @Success      200 {object} util.APIResponse "Password verified"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      401 {object} util.APIResponse "Invalid password or unauthorized"
// @Failure      404 {object} util.APIResponse "User not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /users/verify-password [post]
func VerifyPassword(c *gin.Context) {
	var req VerifyPasswordRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	userID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}

	user, ok := fetchUserByID(c, db, userID)
	if !ok {
		return
	}

	passwordMatch, err := util.VerifyPassword(req.Password, user.Password, user.PasswordSalt)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Password verification failed",
			Err: err,
		})
		return
	}

	if passwordMatch {
		util.CallSuccessOK(c, util.APISuccessParams{
			Msg:  "Password verified",
			Data: map[string]bool{"verified": true},
		})
		return
	}

	util.CallUserNotAuthorized(c, util.APIErrorParams{
		Msg: "Invalid password",
		Err: fmt.Errorf("provided password does not match"),
	})
}
