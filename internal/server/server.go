package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fleetgrid/ownerconsole/internal/authn"
	"github.com/fleetgrid/ownerconsole/internal/billing"
	billingdomain "github.com/fleetgrid/ownerconsole/internal/billing/domain"
	"github.com/fleetgrid/ownerconsole/internal/config"
	"github.com/fleetgrid/ownerconsole/internal/feature"
	"github.com/fleetgrid/ownerconsole/internal/identity"
	"github.com/fleetgrid/ownerconsole/internal/organization"
	organizationdomain "github.com/fleetgrid/ownerconsole/internal/organization/domain"
	"github.com/fleetgrid/ownerconsole/internal/plan"
	plandomain "github.com/fleetgrid/ownerconsole/internal/plan/domain"
	"github.com/fleetgrid/ownerconsole/internal/webhook"
	webhookdomain "github.com/fleetgrid/ownerconsole/internal/webhook/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	authn.Module,
	identity.Module,
	organization.Module,
	plan.Module,
	feature.Module,
	billing.Module,
	webhook.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogging(logger))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(logger *zap.Logger) *gin.Engine {
	return NewEngine(logger)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	verifier        *authn.Verifier
	organizationSvc organizationdomain.Service
	planSvc         plandomain.Service
	billingSvc      billingdomain.Service
	webhookSvc      webhookdomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	Verifier        *authn.Verifier
	OrganizationSvc organizationdomain.Service
	PlanSvc         plandomain.Service
	BillingSvc      billingdomain.Service
	WebhookSvc      webhookdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		verifier:        p.Verifier,
		organizationSvc: p.OrganizationSvc,
		planSvc:         p.PlanSvc,
		billingSvc:      p.BillingSvc,
		webhookSvc:      p.WebhookSvc,
	}

	svc.registerRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes() {
	// Signature-verified, no session.
	s.engine.POST("/webhooks/identity-provider", s.HandleIdentityWebhook)

	s.engine.GET("/whoami", s.AuthRequired(), s.Whoami)

	owner := s.engine.Group("/", s.AuthRequired(), s.OwnerRequired())
	{
		owner.GET("/organizations", s.ListOrganizations)
		owner.POST("/organizations", s.CreateOrganization)
		owner.GET("/organizations/:id", s.GetOrganization)
		owner.PATCH("/organizations/:id", s.UpdateOrganization)
		owner.GET("/organizations/:id/users", s.ListOrganizationUsers)

		owner.GET("/plans", s.ListPlans)
		owner.POST("/plans", s.CreatePlan)
		owner.PATCH("/plans/:id", s.RenamePlan)
		owner.DELETE("/plans/:id", s.DeletePlan)
		owner.PUT("/plans/:id/features", s.ReplacePlanFeatures)

		owner.GET("/billing/readiness", s.GetBillingReadiness)
	}
}
