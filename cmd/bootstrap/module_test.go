//go:build unit

package bootstrap_test

import (
	"testing"

	"field-rental/cmd/bootstrap"
	"field-rental/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

// The graph is validated without running constructors, so no database or broker is needed.
func TestNewModule_GraphIsComplete(t *testing.T) {
	for _, driver := range []string{config.StoreDriverMemory, config.StoreDriverPostgres} {
		t.Run(driver, func(t *testing.T) {
			cfg := config.NewTestConfig()
			cfg.Store.Driver = driver

			err := fx.ValidateApp(
				bootstrap.NewModule(cfg),
				fx.Provide(func() *gin.Engine { return gin.New() }),
				fx.NopLogger,
			)
			require.NoError(t, err)
		})
	}
}
