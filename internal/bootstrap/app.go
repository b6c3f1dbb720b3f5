package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/milvus-io/milvus/client/v2/milvusclient"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"docqa/internal/ai"
	"docqa/internal/app"
	"docqa/internal/config"
	"docqa/internal/jobs"
	"docqa/internal/model"
	milvusPlatform "docqa/internal/platform/milvus"
	mysqlClient "docqa/internal/platform/mysql"
	rabbitmqClient "docqa/internal/platform/rabbitmq"
	redisClient "docqa/internal/platform/redis"
	"docqa/internal/pkg/pdfextract"
	"docqa/internal/repository"
	"docqa/internal/vectorstore/milvus"
	"docqa/internal/worker"
)

// App holds the shared resources of one binary. Each constructor initializes
// only what that binary needs; Close releases whatever was opened.
type App struct {
	Config *config.Config
	MySQL  *gorm.DB
	Redis  *redis.Client
	MQConn *amqp.Connection
	Milvus *milvusclient.Client

	IngestWorker *worker.IngestWorker

	StartedAt time.Time
}

// NewGateway wires the public API binary: MySQL (document registry), Redis
// (job status), RabbitMQ (job publishing).
func NewGateway(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN(), cfg.MySQL.MaxOpenConns, cfg.MySQL.MaxIdleConns)
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(&model.Document{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:    cfg,
		MySQL:     mysqlDB,
		Redis:     redisCli,
		MQConn:    mqConn,
		StartedAt: time.Now(),
	}, nil
}

// NewRAGServer wires the AI service binary: Milvus plus the LLM API client
// (constructed by the router from Config).
func NewRAGServer(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	milvusCli, err := milvusPlatform.New(ctx, cfg.Milvus.Address, cfg.Milvus.Username, cfg.Milvus.Password, cfg.Milvus.Database)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:    cfg,
		Milvus:    milvusCli,
		StartedAt: time.Now(),
	}, nil
}

// NewWorker wires the document processor binary and starts its queue consumer.
func NewWorker(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN(), cfg.MySQL.MaxOpenConns, cfg.MySQL.MaxIdleConns)
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(&model.Document{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	milvusCli, err := milvusPlatform.New(ctx, cfg.Milvus.Address, cfg.Milvus.Username, cfg.Milvus.Password, cfg.Milvus.Database)
	if err != nil {
		return nil, err
	}

	llmClient := NewLLMClient(cfg)
	ingestService := app.NewIngestService(
		milvus.NewStore(milvusCli),
		llmClient,
		pdfextract.ExtractTextFromBytes,
		cfg.Ingest.EmbeddingDimension,
	)
	tracker := jobs.NewTracker(redisCli, time.Duration(cfg.Gateway.JobStatusTTLSeconds)*time.Second)
	docRepo := repository.NewDocumentRepository(mysqlDB)

	ingestWorker := worker.NewIngestWorker(mqConn, ingestService, tracker, docRepo, cfg.RabbitMQ.IngestQueue)
	if err := ingestWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start ingest worker failed: %w", err)
	}

	return &App{
		Config:       cfg,
		MySQL:        mysqlDB,
		Redis:        redisCli,
		MQConn:       mqConn,
		Milvus:       milvusCli,
		IngestWorker: ingestWorker,
		StartedAt:    time.Now(),
	}, nil
}

// NewLLMClient builds the OpenAI-compatible client from config.
func NewLLMClient(cfg *config.Config) *ai.Client {
	return ai.NewClient(
		ai.ChatConfig{
			BaseURL: cfg.LLM.BaseURL,
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
		},
		ai.EmbeddingConfig{
			BaseURL: cfg.LLM.BaseURL,
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.EmbeddingModel,
		},
	)
}

func (a *App) Close() error {
	var closeErr error
	if a.IngestWorker != nil {
		a.IngestWorker.Close()
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Milvus != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := a.Milvus.Close(ctx); err != nil {
			closeErr = err
		}
		cancel()
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
