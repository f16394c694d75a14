// Package server initializes and runs the to-do backend.
// It wires the configured item-store backend, the presigned-link service
// and the HTTP endpoint, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/todovault/internal/logging"
	"github.com/dmitrijs2005/todovault/internal/server/config"
	"github.com/dmitrijs2005/todovault/internal/server/httpapi"
	"github.com/dmitrijs2005/todovault/internal/server/migrations"
	"github.com/dmitrijs2005/todovault/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todovault/internal/server/services"
	"github.com/dmitrijs2005/todovault/internal/server/storage"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	todoService *services.TodoService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	repo, err := newRepository(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("repository init error: %w", err)
	}

	links := storage.NewS3LinkService(c)
	ts := services.NewTodoService(repo, links, logger)

	return &App{config: c, logger: logger, todoService: ts}, nil
}

// newRepository selects the item-store backend from the config.
func newRepository(ctx context.Context, c *config.Config) (todos.Repository, error) {
	switch c.RepositoryBackend {
	case "dynamo":
		opts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(c.AWSRegion),
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("aws config error: %w", err)
		}

		client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			if c.DynamoEndpoint != "" {
				o.BaseEndpoint = &c.DynamoEndpoint
			}
		})

		return todos.NewDynamoRepository(client, c.DynamoTable, c.DynamoByUserIndex), nil

	case "postgres":
		db, err := sql.Open("pgx", c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}

		if err := db.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("db ping error: %w", err)
		}

		if err := migrations.Run(ctx, db); err != nil {
			return nil, fmt.Errorf("db migration error: %w", err)
		}

		return todos.NewPostgresRepository(db), nil

	case "memory":
		return todos.NewMemoryRepository(), nil

	default:
		return nil, fmt.Errorf("unknown repository backend: %s", c.RepositoryBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.todoService, app.config.SecretKey)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

}
