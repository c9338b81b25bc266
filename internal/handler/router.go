package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"field-rental/internal/handler/api"
	reqdto "field-rental/internal/handler/dto/request"
	"field-rental/internal/handler/middleware"
	"field-rental/internal/pkg/config"
	"field-rental/internal/pkg/metrics"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type RouterParams struct {
	fx.In

	Engine             *gin.Engine
	Config             config.Config
	Logger             *middleware.Logger
	Metrics            *metrics.Metrics
	AuthMiddleware     *middleware.AuthMiddleware
	ResourceHandler    *api.ResourceHandler
	ReservationHandler *api.ReservationHandler
	AdminHandler       *api.AdminReservationHandler
	WalletHandler      *api.WalletHandler
}

func NewRouter(p RouterParams) error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := reqdto.RegisterValidators(v); err != nil {
			return err
		}
	}

	setupMiddleware(p)
	setupRoutes(p)
	return nil
}

func setupMiddleware(p RouterParams) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	p.Engine.Use(middleware.CustomRecovery())
	p.Engine.Use(middleware.NewCORSMiddleware(p.Config.CORS))
	p.Engine.Use(p.Logger.LoggingMiddleware())
	p.Engine.Use(p.Metrics.GinMiddleware())
	p.Engine.Use(middleware.ErrorHandler())
}

func setupRoutes(p RouterParams) {
	engine := p.Engine
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(p.Metrics.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	auth := p.AuthMiddleware
	apiGroup := engine.Group("/api")
	{
		resources := apiGroup.Group("/resources")
		addRoutes(resources, []route{
			{Method: http.MethodGet, Path: "", Handler: p.ResourceHandler.List},
			{Method: http.MethodGet, Path: "/:id", Handler: p.ResourceHandler.Get},
			{Method: http.MethodGet, Path: "/:id/availability", Handler: p.ResourceHandler.Availability},
		})

		reservations := apiGroup.Group("/reservations")
		reservations.Use(auth.RequireAuth())
		addRoutes(reservations, []route{
			{Method: http.MethodPost, Path: "", Handler: p.ReservationHandler.Create},
			{Method: http.MethodGet, Path: "", Handler: p.ReservationHandler.ListMine},
			{Method: http.MethodGet, Path: "/:id", Handler: p.ReservationHandler.Get},
		})

		wallet := apiGroup.Group("/wallet")
		wallet.Use(auth.RequireAuth())
		addRoutes(wallet, []route{
			{Method: http.MethodGet, Path: "", Handler: p.WalletHandler.GetMine},
			{Method: http.MethodPost, Path: "/deposits", Handler: p.WalletHandler.RequestDeposit},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(auth.RequireAuth(), auth.RequireOperator())
		addRoutes(admin, []route{
			{Method: http.MethodPost, Path: "/resources", Handler: p.ResourceHandler.Create},
			{Method: http.MethodPatch, Path: "/resources/:id", Handler: p.ResourceHandler.Update},
			{Method: http.MethodDelete, Path: "/resources/:id", Handler: p.ResourceHandler.Delete},
			{Method: http.MethodGet, Path: "/reservations", Handler: p.AdminHandler.List},
			{Method: http.MethodPost, Path: "/reservations/:id/accept", Handler: p.AdminHandler.Accept},
			{Method: http.MethodPost, Path: "/reservations/:id/reject", Handler: p.AdminHandler.Reject},
			{Method: http.MethodDelete, Path: "/reservations/:id", Handler: p.AdminHandler.Delete},
			{Method: http.MethodGet, Path: "/deposits", Handler: p.WalletHandler.ListPendingDeposits},
			{Method: http.MethodPost, Path: "/deposits/:id/confirm", Handler: p.WalletHandler.ConfirmDeposit},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
