package endpoint_test

import (
	"io"
	"os"
	"testing"

	"github.com/ariebrainware/gym-portal/config"
	"github.com/ariebrainware/gym-portal/util"
	"github.com/gin-gonic/gin"
)

// TestMain pins the environment before the config singleton is built so
// every test gets SQLite and the same JWT secret.
func TestMain(m *testing.M) {
	os.Setenv("APPENV", "test")
	os.Setenv("JWTSECRET", "test-secret-123")
	os.Setenv("GINMODE", "release")

	util.SetJWTSecret("test-secret-123")
	util.SetLogOutput(io.Discard, "error")

	cfg := config.LoadConfig()
	gin.SetMode(cfg.GinMode)

	os.Exit(m.Run())
}
