package endpoint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariebrainware/gym-portal/middleware"
	"github.com/ariebrainware/gym-portal/model"
	"github.com/ariebrainware/gym-portal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Sentinel errors for user update operations
var (
	ErrUserEmailAlreadyExists = errors.New("email already exists")
)

type UpdateUserRequest struct {
	Name     string `json:"name" example:"Jane Doe"`
	Email    string `json:"email" example:"jane@example.com"`
	Phone    string `json:"phone" example:"+6281234567890"`
	Password string `json:"password" example:"newpassword123"`
}

// validateUpdateRequest checks whether at least one field is provided for update.
func validateUpdateRequest(req *UpdateUserRequest) bool {
	return req.Name != "" || req.Email != "" || req.Phone != "" || req.Password != ""
}

// validateAndUpdateEmail checks email uniqueness and updates the user model if valid.
func validateAndUpdateEmail(db *gorm.DB, user *model.User, newEmail string) error {
	newEmail = util.NormalizeEmail(newEmail)
	if newEmail == "" || newEmail == user.Email {
		return nil
	}
	exists, err := emailExists(db, newEmail, user.ID)
	if err != nil {
		return fmt.Errorf("failed to validate email uniqueness: %w", err)
	}
	if exists {
		return ErrUserEmailAlreadyExists
	}
	user.Email = newEmail
	return nil
}

// hashUserPassword generates a salt and hashes the provided password, updating the user model.
func hashUserPassword(user *model.User, plainPassword string) error {
	if len(plainPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	salt, err := util.GenerateSalt()
	if err != nil {
		return fmt.Errorf("failed to generate password salt: %w", err)
	}

	hashedPassword, err := util.HashPasswordArgon2(plainPassword, salt)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = hashedPassword
	user.PasswordSalt = salt
	return nil
}

// updateUserFields applies the changes from an UpdateUserRequest to a user model
// and reports whether the password changed.
func updateUserFields(db *gorm.DB, user *model.User, req *UpdateUserRequest) (passwordChanged bool, err error) {
	if err := validateAndUpdateEmail(db, user, req.Email); err != nil {
		return false, err
	}

	if req.Name != "" {
		user.Name = util.NormalizeName(req.Name)
	}
	if req.Phone != "" {
		user.Phone = strings.TrimSpace(req.Phone)
	}

	if req.Password != "" {
		if err := hashUserPassword(user, req.Password); err != nil {
			return false, err
		}
		passwordChanged = true
	}

	return passwordChanged, nil
}

// invalidateUserSessions removes session records from both DB and Redis for a given user.
func invalidateUserSessions(c *gin.Context, db *gorm.DB, userID uint) {
	if err := db.Where("user_id = ?", userID).Delete(&model.Session{}).Error; err != nil {
		util.Logger().Error().Err(err).Uint("user_id", userID).Msg("failed to delete sessions")
	}
	if err := util.InvalidateUserSessions(c.Request.Context(), userID); err != nil {
		util.Logger().Warn().Err(err).Uint("user_id", userID).Msg("failed to drop cached sessions")
	}
}

// performUserUpdate updates a user and returns success, handling all error cases and session invalidation.
func performUserUpdate(c *gin.Context, db *gorm.DB, user *model.User, req *UpdateUserRequest) bool {
	passwordChanged, err := updateUserFields(db, user, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserEmailAlreadyExists):
			util.CallConflict(c, util.APIErrorParams{Msg: "Email already exists", Err: err})
		case req.Password != "" && len(req.Password) < 8:
			util.CallUserError(c, util.APIErrorParams{Msg: "Invalid password", Err: err})
		default:
			util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update user fields", Err: err})
		}
		return false
	}

	if err := db.Model(user).Select("name", "email", "phone", "password", "password_salt").Updates(user).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update user", Err: err})
		return false
	}

	if passwordChanged {
		invalidateUserSessions(c, db, user.ID)
		util.LogSecurityEvent(util.SecurityEvent{
			EventType: util.EventPasswordChanged,
			UserID:    fmt.Sprintf("%d", user.ID),
			Email:     user.Email,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			RequestID: middleware.GetRequestID(c),
			Message:   "Password changed, sessions revoked",
		})
	}

	util.CallSuccessOK(c, util.APISuccessParams{Msg: "User updated successfully", Data: user})
	return true
}

// MeResponse is the caller's account plus the member profile when present.
type MeResponse struct {
	User    model.User           `json:"user"`
	Role    string               `json:"role"`
	Profile *model.MemberProfile `json:"profile,omitempty"`
}

// GetMe godoc
// @Summary      Current user
// @Description  Return the authenticated user's account and member profile
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=MeResponse} "User retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      404 {object} util.APIResponse "User not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /users/me [get]
func GetMe(c *gin.Context) {
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

	resp := MeResponse{User: *user, Role: model.RoleName(user.RoleID)}
	var profile model.MemberProfile
	err := db.Where("user_id = ?", user.ID).Take(&profile).Error
	switch {
	case err == nil:
		resp.Profile = &profile
	case !errors.Is(err, gorm.ErrRecordNotFound):
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve profile", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{Msg: "User retrieved", Data: resp})
}

// UpdateUser godoc
// @Summary      Update current user profile
// @Description  Update authenticated user's name, email, phone and/or password
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateUserRequest true "Update details"
// @Success      200 {object} util.APIResponse "Update successful"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      409 {object} util.APIResponse "Email already exists"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /users/me [patch]
func UpdateUser(c *gin.Context) {
	req, ok := bindUpdateUserRequest(c)
	if !ok {
		return
	}
	if !requireUpdateFields(c, req) {
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

	performUserUpdate(c, db, user, &req)
}

// ListUsers godoc
// @Summary      List users (admin only)
// @Description  Get a paginated list of users using cursor-based pagination.
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Limit number of results (default 10, max 100)"
// @Param        cursor query int false "Cursor for pagination (User ID)"
// @Param        keyword query string false "Search keyword for name or email"
// @Param        role query string false "Role name filter, e.g. member or trainer"
// @Success      200 {object} util.APIResponse{data=object} "Users retrieved with cursor pagination"
// @Failure      400 {object} util.APIResponse "Unknown role"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /admin/users [get]
func ListUsers(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	limit, cursor, offset := parsePaginationParams(c)

	query := db.Model(&model.User{})
	filterClause, filterArgs := buildKeywordFilter(c.Query("keyword"))
	if filterClause != "" {
		query = query.Where(filterClause, filterArgs...)
	}
	if roleName := c.Query("role"); roleName != "" {
		roleID, known := model.RoleIDByName(roleName)
		if !known {
			util.CallUserError(c, util.APIErrorParams{Msg: "Unknown role", Err: fmt.Errorf("unknown role %q", roleName)})
			return
		}
		query = query.Where("role_id = ?", roleID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to count users", Err: err})
		return
	}

	// One extra row tells whether another page exists.
	query = applyPaginationQuery(query, cursor, offset)
	var users []model.User
	if err := query.Order("id ASC").Limit(limit + 1).Find(&users).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve users", Err: err})
		return
	}

	hasMore := len(users) > limit
	if hasMore {
		users = users[:limit]
	}

	var nextCursor *uint
	if hasMore {
		lastID := users[len(users)-1].ID
		nextCursor = &lastID
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Users retrieved",
		Data: map[string]interface{}{
			"users":         users,
			"total":         total,
			"total_fetched": len(users),
			"has_more":      hasMore,
			"next_cursor":   nextCursor,
		},
	})
}

// AdminUpdateUser godoc
// @Summary      Update another user's profile (admin only)
// @Description  Admins can update another user's name, email, phone and password
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Param        request body UpdateUserRequest true "Update details"
// @Success      200 {object} util.APIResponse "Update successful"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      404 {object} util.APIResponse "User not found"
// @Failure      409 {object} util.APIResponse "Email already exists"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /admin/users/{id} [patch]
func AdminUpdateUser(c *gin.Context) {
	uid, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}
	req, ok := bindUpdateUserRequest(c)
	if !ok {
		return
	}
	if !requireUpdateFields(c, req) {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	user, ok := fetchUserByID(c, db, uid)
	if !ok {
		return
	}

	performUserUpdate(c, db, user, &req)
}

// emailExists checks whether an email already exists in users table excluding a given user ID.
func emailExists(db *gorm.DB, email string, excludeID uint) (bool, error) {
	var count int64
	if err := db.Unscoped().Model(&model.User{}).Where("email = ? AND id != ?", email, excludeID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// parsePaginationParams extracts and validates limit, cursor, and offset query parameters.
func parsePaginationParams(c *gin.Context) (limit int, cursor uint, offset int) {
	limit = parsePositiveInt(c.Query("limit"), 10, 100)
	cursor = parseUintQuery(c, "cursor")
	offset = parsePositiveInt(c.Query("offset"), 0, 0)
	return limit, cursor, offset
}

// fetchUserByID retrieves a user by ID, returning appropriate error responses for not found or DB errors.
func fetchUserByID(c *gin.Context, db *gorm.DB, userID uint) (*model.User, bool) {
	var user model.User
	if err := db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "User not found", Err: err})
			return nil, false
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve user", Err: err})
		return nil, false
	}
	return &user, true
}

// applyPaginationQuery applies cursor or offset-based pagination to a query.
func applyPaginationQuery(query *gorm.DB, cursor uint, offset int) *gorm.DB {
	if cursor > 0 {
		return query.Where("id > ?", cursor)
	}
	if offset > 0 {
		return query.Offset(offset)
	}
	return query
}

// buildKeywordFilter returns the keyword filter string for search queries.
func buildKeywordFilter(keyword string) (string, []interface{}) {
	if keyword != "" {
		kw := "%" + strings.ToLower(keyword) + "%"
		return "(LOWER(name) LIKE ? OR LOWER(email) LIKE ?)", []interface{}{kw, kw}
	}
	return "", nil
}

// GetUserInfo godoc
// @Summary      Get user info (admin only)
// @Description  Retrieve a user's information by ID.
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      200 {object} util.APIResponse "User retrieved"
// @Failure      400 {object} util.APIResponse "Invalid user id"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      404 {object} util.APIResponse "User not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /admin/users/{id} [get]
func GetUserInfo(c *gin.Context) {
	uid, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	user, ok := fetchUserByID(c, db, uid)
	if !ok {
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{Msg: "User retrieved", Data: user})
}

// CreateStaffRequest is an admin-created account of any role.
type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required" example:"Tom Trainer"`
	Email    string `json:"email" binding:"required,email" example:"tom@gym.example.com"`
	Phone    string `json:"phone" example:"+6281200000000"`
	Password string `json:"password" binding:"required,min=8" example:"password123"`
	Role     string `json:"role" binding:"required" example:"trainer"`
}

// CreateStaff godoc
// @Summary      Create account (admin only)
// @Description  Create a trainer, nutritionist, front desk, admin or member account
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateStaffRequest true "Account details"
// @Success      201 {object} util.APIResponse{data=model.User} "User created"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      409 {object} util.APIResponse "Email already exists"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /admin/users [post]
func CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	roleID, known := model.RoleIDByName(req.Role)
	if !known {
		util.CallUserError(c, util.APIErrorParams{Msg: "Unknown role", Err: fmt.Errorf("unknown role %q", req.Role)})
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
	hashed, salt, ok := hashPasswordForSignup(c, req.Password)
	if !ok {
		return
	}

	user := model.User{
		Name:         util.NormalizeName(req.Name),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		Password:     hashed,
		PasswordSalt: salt,
		RoleID:       roleID,
		IsActive:     true,
	}
	if err := createUserWithProfile(db, &user); err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create user", Err: err})
		return
	}

	util.CallCreated(c, util.APISuccessParams{Msg: "User created", Data: user})
}

// SetUserActiveRequest toggles an account.
type SetUserActiveRequest struct {
	Active *bool `json:"active" binding:"required" example:"false"`
}

// SetUserActive godoc
// @Summary      Enable or disable a user (admin only)
// @Description  Disabling revokes every session of the user
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Param        request body SetUserActiveRequest true "Desired state"
// @Success      200 {object} util.APIResponse{data=model.User} "User updated"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "User not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /admin/users/{id}/active [patch]
func SetUserActive(c *gin.Context) {
	uid, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}
	var req SetUserActiveRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	adminID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	if uid == adminID && !*req.Active {
		util.CallUserError(c, util.APIErrorParams{Msg: "Admins cannot disable their own account", Err: fmt.Errorf("self disable")})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	user, ok := fetchUserByID(c, db, uid)
	if !ok {
		return
	}

	if err := db.Model(user).Update("is_active", *req.Active).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update user", Err: err})
		return
	}
	user.IsActive = *req.Active

	if !user.IsActive {
		invalidateUserSessions(c, db, user.ID)
		util.LogSecurityEvent(util.SecurityEvent{
			EventType: util.EventAccountDisabled,
			UserID:    fmt.Sprintf("%d", user.ID),
			Email:     user.Email,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			RequestID: middleware.GetRequestID(c),
			Message:   fmt.Sprintf("Account disabled by admin %d", adminID),
		})
	}

	util.CallSuccessOK(c, util.APISuccessParams{Msg: "User updated", Data: user})
}

// deleteUserWithSessions deletes a user and all their sessions atomically.
func deleteUserWithSessions(db *gorm.DB, userID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		user := &model.User{}
		if err := tx.First(user, userID).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.Session{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}

// DeleteUser godoc
// @Summary      Delete user (admin only)
// @Description  Soft-delete a user by ID.
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      200 {object} util.APIResponse "User deleted"
// @Failure      400 {object} util.APIResponse "Invalid user id"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      404 {object} util.APIResponse "User not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /admin/users/{id} [delete]
func DeleteUser(c *gin.Context) {
	uid, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	if err := deleteUserWithSessions(db, uid); err != nil {
		if err == gorm.ErrRecordNotFound {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "User not found", Err: err})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to delete user", Err: err})
		return
	}

	if err := util.InvalidateUserSessions(c.Request.Context(), uid); err != nil {
		util.Logger().Warn().Err(err).Uint("user_id", uid).Msg("failed to drop cached sessions")
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "User deleted"})
}

func bindUpdateUserRequest(c *gin.Context) (UpdateUserRequest, bool) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid request payload", Err: err})
		return UpdateUserRequest{}, false
	}
	return req, true
}

func requireUpdateFields(c *gin.Context, req UpdateUserRequest) bool {
	if validateUpdateRequest(&req) {
		return true
	}
	util.CallUserError(c, util.APIErrorParams{
		Msg: "At least one field (name, email, phone, or password) must be provided",
		Err: fmt.Errorf("no fields to update"),
	})
	return false
}
