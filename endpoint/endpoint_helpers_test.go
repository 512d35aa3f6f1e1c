package endpoint

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ariebrainware/gym-portal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondServiceErrorMapsClasses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: bad date", service.ErrValidation), http.StatusBadRequest},
		{service.ErrMemberNotFound, http.StatusNotFound},
		{service.ErrSlotUnavailable, http.StatusConflict},
		{fmt.Errorf("%w: not yours", service.ErrForbidden), http.StatusForbidden},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		respondServiceError(c, "failed", tc.err)
		assert.Equal(t, tc.want, w.Code, tc.err.Error())
	}
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondServiceError(c, "failed", errors.New("pq: password authentication failed"))
	assert.NotContains(t, w.Body.String(), "password authentication")
	assert.Contains(t, w.Body.String(), "internal error")
}

func TestParsePositiveInt(t *testing.T) {
	assert.Equal(t, 10, parsePositiveInt("", 10, 100))
	assert.Equal(t, 10, parsePositiveInt("-3", 10, 100))
	assert.Equal(t, 10, parsePositiveInt("abc", 10, 100))
	assert.Equal(t, 25, parsePositiveInt("25", 10, 100))
	assert.Equal(t, 100, parsePositiveInt("500", 10, 100))
	assert.Equal(t, 500, parsePositiveInt("500", 10, 0))
}

func TestIDParamOrRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var got uint
	r.GET("/things/:id", func(c *gin.Context) {
		id, ok := idParamOrRespond(c, "id")
		if !ok {
			return
		}
		got = id
		c.Status(http.StatusNoContent)
	})

	for path, want := range map[string]int{
		"/things/7":   http.StatusNoContent,
		"/things/0":   http.StatusBadRequest,
		"/things/abc": http.StatusBadRequest,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, w.Code, path)
	}
	assert.EqualValues(t, 7, got)
}

func TestSetServiceDepsKeepsPlanCache(t *testing.T) {
	before := currentDeps()
	t.Cleanup(func() { SetServiceDeps(before) })

	SetServiceDeps(service.Deps{})
	assert.NotNil(t, currentDeps().PlanCache)
}
