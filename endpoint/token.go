package endpoint

import (
	"fmt"
	"time"

	"github.com/ariebrainware/gym-portal/middleware"
	"github.com/ariebrainware/gym-portal/model"
	"github.com/ariebrainware/gym-portal/util"
	"github.com/gin-gonic/gin"
)

// TokenInfo describes a live session.
type TokenInfo struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	RoleID    uint32    `json:"role_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ValidateToken godoc
// @Summary      Validate session token
// @Description  Check that the bearer token is signed, not expired and backed by a live session
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=TokenInfo} "Valid session token"
// @Failure      401 {object} util.APIResponse "Invalid or expired session token"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /users/token/validate [get]
func ValidateToken(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Invalid session token", Err: fmt.Errorf("token not provided")})
		c.Abort()
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		c.Abort()
		return
	}

	if _, err := util.ParseToken(token); err != nil {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Invalid session token", Err: err})
		c.Abort()
		return
	}

	var info TokenInfo
	err := db.Table("sessions").
		Select("users.id AS user_id, users.email, users.name, users.role_id, sessions.expires_at").
		Joins("JOIN users ON sessions.user_id = users.id").
		Where("sessions.session_token = ? AND sessions.expires_at > ? AND sessions.deleted_at IS NULL", token, time.Now()).
		Where("users.deleted_at IS NULL AND users.is_active = ?", true).
		Take(&info).Error
	if err != nil {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Session not found", Err: err})
		c.Abort()
		return
	}
	info.Role = model.RoleName(info.RoleID)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Valid session token",
		Data: info,
	})
}
