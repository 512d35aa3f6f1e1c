package util

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Msg     string      `json:"msg"`
	Data    interface{} `json:"data"`
}

type APIErrorParams struct {
	Msg string
	Err error
}

type APISuccessParams struct {
	Msg  string
	Data interface{}
}

// Contains function is to check item whether is exist or not in a list and will return bool
func Contains(d string, dl []string) bool {
	for _, v := range dl {
		if v == d {
			return true
		}
	}
	return false
}

func errorResponse(c *gin.Context, status int, params APIErrorParams) {
	errText := ""
	if params.Err != nil {
		errText = params.Err.Error()
	}
	c.JSON(status, APIResponse{
		Success: false,
		Error:   errText,
		Msg:     params.Msg,
		Data:    map[string]interface{}{},
	})
}

// CallErrorNotFound is for return API response not found
func CallErrorNotFound(c *gin.Context, params APIErrorParams) {
	errorResponse(c, http.StatusNotFound, params)
}

// CallUserError is for return error from user side
func CallUserError(c *gin.Context, params APIErrorParams) {
	errorResponse(c, http.StatusBadRequest, params)
}

// CallConflict reports a request that lost against the current state of a
// resource, such as a slot that is already booked.
func CallConflict(c *gin.Context, params APIErrorParams) {
	errorResponse(c, http.StatusConflict, params)
}

// CallServerError is for return API response server error
func CallServerError(c *gin.Context, params APIErrorParams) {
	errorResponse(c, http.StatusInternalServerError, params)
}

// CallUserNotAuthorized answers 401 for missing or invalid credentials.
func CallUserNotAuthorized(c *gin.Context, params APIErrorParams) {
	errorResponse(c, http.StatusUnauthorized, params)
}

// CallForbidden answers 403 for an authenticated caller without the right role.
func CallForbidden(c *gin.Context, params APIErrorParams) {
	errorResponse(c, http.StatusForbidden, params)
}

// CallTooManyRequests answers 429 when a rate limit is exhausted.
func CallTooManyRequests(c *gin.Context, params APIErrorParams) {
	errorResponse(c, http.StatusTooManyRequests, params)
}

// CallSuccessOK is for return API response with status code 200, you need to specify msg, and data as function parameter
func CallSuccessOK(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Msg:     params.Msg,
		Data:    params.Data,
	})
}

// CallCreated is CallSuccessOK with status 201.
func CallCreated(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Msg:     params.Msg,
		Data:    params.Data,
	})
}

// NormalizeName trims a name and collapses internal runs of whitespace.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
