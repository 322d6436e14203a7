package health

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/marketbase/catalog-api/internal/config"
	sendgridClient "github.com/marketbase/catalog-api/pkg/sendgrid"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/redis/go-redis/v9"
)

type Endpoints struct {
	DB          *sql.DB
	RedisClient *redis.Client
	Mailer      *sendgridClient.Client
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		},
		{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(
				healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				},
			),
		},
	}

	// only meaningful when low-stock alert mail is turned on
	if cfg.Alerts.Enabled {
		checks = append(checks, health.Config{
			Name:      "alerting",
			Timeout:   time.Second,
			SkipOnErr: true,
			Check: func(ctx context.Context) error {
				if endpoints.Mailer == nil {
					return fmt.Errorf("alert mailer is not initialized")
				}
				if cfg.Alerts.Recipient == "" {
					return fmt.Errorf("alert recipient is not configured")
				}
				return nil
			},
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "catalog-api",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
