package endpoint

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/ariebrainware/gym-portal/events"
	"github.com/ariebrainware/gym-portal/middleware"
	"github.com/ariebrainware/gym-portal/service"
	"github.com/ariebrainware/gym-portal/util"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	depsMu      sync.RWMutex
	serviceDeps = service.Deps{PlanCache: service.NewPlanCache()}
)

// SetServiceDeps installs the collaborators every handler builds its
// services with. The plan catalog cache is shared across requests.
func SetServiceDeps(d service.Deps) {
	if d.PlanCache == nil {
		d.PlanCache = service.NewPlanCache()
	}
	depsMu.Lock()
	serviceDeps = d
	depsMu.Unlock()
}

func currentDeps() service.Deps {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return serviceDeps
}

// respondServiceError maps service error classes onto the response envelope.
func respondServiceError(c *gin.Context, msg string, err error) {
	params := util.APIErrorParams{Msg: msg, Err: err}
	switch {
	case errors.Is(err, service.ErrValidation):
		util.CallUserError(c, params)
	case errors.Is(err, service.ErrNotFound):
		util.CallErrorNotFound(c, params)
	case errors.Is(err, service.ErrConflict):
		util.CallConflict(c, params)
	case errors.Is(err, service.ErrForbidden):
		util.CallForbidden(c, params)
	default:
		log.Error().Err(err).
			Str("path", c.FullPath()).
			Str("request_id", middleware.GetRequestID(c)).
			Msg(msg)
		util.CallServerError(c, util.APIErrorParams{Msg: msg, Err: errors.New("internal error")})
	}
}

func bindJSONOrRespond(c *gin.Context, dst interface{}, msg string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: msg, Err: err})
		return false
	}
	return true
}

func getDBOrRespond(c *gin.Context) (*gorm.DB, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database connection not available", Err: fmt.Errorf("db is nil")})
		return nil, false
	}
	return db, true
}

func currentUserOrRespond(c *gin.Context) (uint, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "User not authenticated", Err: fmt.Errorf("user id not found in context")})
		return 0, false
	}
	return userID, true
}

func actorOrRespond(c *gin.Context) (service.Actor, bool) {
	userID, ok := currentUserOrRespond(c)
	if !ok {
		return service.Actor{}, false
	}
	roleID, _ := middleware.GetRoleID(c)
	return service.Actor{UserID: userID, RoleID: roleID}, true
}

// parseIDParam parses a positive numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer", name)
	}
	if id == 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return uint(id), nil
}

func idParamOrRespond(c *gin.Context, name string) (uint, bool) {
	id, err := parseIDParam(c, name)
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: err.Error(), Err: err})
		return 0, false
	}
	return id, true
}

// parsePositiveInt parses a positive integer from a query value returning a default
// when the value is missing or invalid. If max > 0 it caps the returned value.
func parsePositiveInt(q string, defaultVal, max int) int {
	if q == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(q)
	if err != nil || v <= 0 {
		return defaultVal
	}
	if max > 0 && v > max {
		return max
	}
	return v
}

// parseUintQuery parses an unsigned integer query parameter and returns 0 on error.
func parseUintQuery(c *gin.Context, name string) uint {
	s := c.Query(name)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil || v == 0 {
		return 0
	}
	return uint(v)
}

func boolQuery(c *gin.Context, name string, def bool) bool {
	v, err := strconv.ParseBool(c.Query(name))
	if err != nil {
		return def
	}
	return v
}

// publish forwards an event raised by a handler that works outside the
// service layer, such as signup.
func publish(c *gin.Context, eventType string, userID uint, payload interface{}) {
	p := currentDeps().Publisher
	if p == nil {
		return
	}
	p.Publish(c.Request.Context(), events.New(eventType, userID, payload))
}
