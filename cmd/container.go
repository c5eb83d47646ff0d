package main

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/Abraxas-365/shiftboard/internal/database"
	"github.com/Abraxas-365/shiftboard/internal/metrics"
	"github.com/Abraxas-365/shiftboard/internal/seed"
	"github.com/Abraxas-365/shiftboard/pkg/asyncx"
	"github.com/Abraxas-365/shiftboard/pkg/exportx"
	"github.com/Abraxas-365/shiftboard/pkg/fsx"
	"github.com/Abraxas-365/shiftboard/pkg/fsx/fsxmem"
	"github.com/Abraxas-365/shiftboard/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/shiftboard/pkg/iam/auth"
	"github.com/Abraxas-365/shiftboard/pkg/logx"
	"github.com/Abraxas-365/shiftboard/recruitment/account"
	"github.com/Abraxas-365/shiftboard/recruitment/account/accountapi"
	"github.com/Abraxas-365/shiftboard/recruitment/account/accountinfra"
	"github.com/Abraxas-365/shiftboard/recruitment/account/accountsrv"
	"github.com/Abraxas-365/shiftboard/recruitment/application"
	"github.com/Abraxas-365/shiftboard/recruitment/application/applicationapi"
	"github.com/Abraxas-365/shiftboard/recruitment/application/applicationinfra"
	"github.com/Abraxas-365/shiftboard/recruitment/application/applicationsrv"
	"github.com/Abraxas-365/shiftboard/recruitment/dashboard/dashboardapi"
	"github.com/Abraxas-365/shiftboard/recruitment/dashboard/dashboardsrv"
	"github.com/Abraxas-365/shiftboard/recruitment/job"
	"github.com/Abraxas-365/shiftboard/recruitment/job/jobapi"
	"github.com/Abraxas-365/shiftboard/recruitment/job/jobinfra"
	"github.com/Abraxas-365/shiftboard/recruitment/job/jobsrv"
	"github.com/Abraxas-365/shiftboard/recruitment/session"
	"github.com/Abraxas-365/shiftboard/recruitment/session/sessionapi"
	"github.com/Abraxas-365/shiftboard/recruitment/session/sessioninfra"
	"github.com/Abraxas-365/shiftboard/recruitment/session/sessionsrv"
)

// Container holds all application dependencies
type Container struct {
	// Config
	Config *Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	Metrics    *metrics.Recorder
	Simulator  *asyncx.Simulator

	// Repositories
	JobRepo         job.Repository
	AccountRepo     account.Repository
	ApplicationRepo application.Repository
	SessionStore    session.Store

	// Services
	TokenService       auth.TokenService
	JobService         *jobsrv.JobService
	AccountService     *accountsrv.AccountService
	ApplicationService *applicationsrv.ApplicationService
	SessionService     *sessionsrv.SessionService
	DashboardService   *dashboardsrv.DashboardService

	// API Handlers
	JobHandlers         *jobapi.Handlers
	AccountHandlers     *accountapi.Handlers
	ApplicationHandlers *applicationapi.Handlers
	SessionHandlers     *sessionapi.Handlers
	DashboardHandlers   *dashboardapi.Handlers

	// Middleware
	AuthMiddleware *auth.TokenMiddleware
}

// NewContainer initializes the dependency injection container
func NewContainer(ctx context.Context, cfg *Config) (*Container, error) {
	c := &Container{Config: cfg}
	if err := c.initInfrastructure(ctx); err != nil {
		return nil, err
	}
	c.initRepositories()
	c.initServices()
	if cfg.Seed {
		if err := c.loadSeed(ctx); err != nil {
			c.Close()
			return nil, err
		}
	}
	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.Config

	// 1. Database Connection
	if cfg.DBDriver != DriverMemory {
		db, err := database.Open(ctx, cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		c.DB = db
	}

	// 2. Redis Connection
	if cfg.RedisAddr != "" {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := c.Redis.Ping(pingCtx).Err(); err != nil {
			logx.Warnf("Failed to connect to Redis: %v", err)
		}
	}

	// 3. Export file system
	if cfg.UseS3() {
		opts := []func(*config.LoadOptions) error{}
		if cfg.AWSRegion != "" {
			opts = append(opts, config.WithRegion(cfg.AWSRegion))
		}
		awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return fmt.Errorf("load aws config: %w", err)
		}
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.AWSEndpoint != "" {
				o.BaseEndpoint = aws.String(cfg.AWSEndpoint)
				o.UsePathStyle = true
			}
		})
		c.FileSystem = fsxs3.NewS3FileSystem(client, cfg.AWSBucket, "shiftboard")
	} else {
		c.FileSystem = fsxmem.New()
	}

	// 4. Metrics and the action simulator
	c.Metrics = metrics.New()
	c.Simulator = asyncx.NewSimulator(cfg.ActionLatency, cfg.ActionFail)
	c.Simulator.OnDone = c.Metrics.Action
	return nil
}

func (c *Container) initRepositories() {
	if c.DB != nil {
		c.JobRepo = jobinfra.NewSQLJobRepository(c.DB)
		c.AccountRepo = accountinfra.NewSQLAccountRepository(c.DB)
		c.ApplicationRepo = applicationinfra.NewSQLApplicationRepository(c.DB)
	} else {
		c.JobRepo = jobinfra.NewMemoryJobRepository()
		c.AccountRepo = accountinfra.NewMemoryAccountRepository()
		c.ApplicationRepo = applicationinfra.NewMemoryApplicationRepository()
	}

	if c.Redis != nil {
		c.SessionStore = sessioninfra.NewRedisStore(c.Redis, "shiftboard:session:", c.Config.SessionTTL)
	} else {
		c.SessionStore = sessioninfra.NewMemoryStore(c.Config.SessionTTL)
	}
}

func (c *Container) initServices() {
	cfg := c.Config
	archive := exportx.NewArchive(c.FileSystem, "exports")

	// Token Service
	c.TokenService = auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL, "shiftboard")

	// --- Domain Services ---
	c.JobService = jobsrv.NewJobService(
		c.JobRepo,
		job.NewMachine(cfg.StatusMode),
		c.Simulator,
		archive,
		c.Metrics,
	)
	c.AccountService = accountsrv.NewAccountService(c.AccountRepo, c.TokenService)
	c.ApplicationService = applicationsrv.NewApplicationService(
		c.ApplicationRepo,
		c.JobRepo,
		c.AccountRepo,
		application.NewMachine(cfg.StatusMode),
		c.Simulator,
		archive,
		c.Metrics,
	)
	c.SessionService = sessionsrv.NewSessionService(c.SessionStore)
	c.DashboardService = dashboardsrv.NewDashboardService(c.JobRepo, c.ApplicationRepo, c.AccountRepo)

	// --- Handlers ---
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
	c.AccountHandlers = accountapi.NewHandlers(c.AccountService)
	c.ApplicationHandlers = applicationapi.NewHandlers(c.ApplicationService)
	c.SessionHandlers = sessionapi.NewHandlers(c.SessionService)
	c.DashboardHandlers = dashboardapi.NewHandlers(c.DashboardService)

	// --- Middleware ---
	c.AuthMiddleware = auth.NewTokenMiddleware(c.TokenService)
}

func (c *Container) loadSeed(ctx context.Context) error {
	fixtures, err := seed.Build(time.Now(), seed.Passwords{
		Admin:   c.Config.AdminPassword,
		Student: c.Config.StudentPassword,
	})
	if err != nil {
		return fmt.Errorf("build seed data: %w", err)
	}
	return seed.Load(ctx, fixtures, seed.Repositories{
		Jobs:         c.JobRepo,
		Accounts:     c.AccountRepo,
		Applications: c.ApplicationRepo,
	})
}

// Close releases the connections the container opened
func (c *Container) Close() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Warnf("Failed to close database: %v", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Warnf("Failed to close Redis: %v", err)
		}
	}
}
