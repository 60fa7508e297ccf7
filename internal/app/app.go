// Package app wires configuration, backends and HTTP routes together.
//
// 초기화 순서:
//  1. live 백엔드 클라이언트 생성 (LLM_PROVIDER)
//  2. Invoker 생성 (보정 호출로 live / stand-in 선택)
//  3. 과거 장애 이력 소스 (Postgres + embedding, 없으면 내장 fixture)
//  4. Pipeline / Service / Router
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kube-rca/incident-commander/internal/client"
	"github.com/kube-rca/incident-commander/internal/config"
	"github.com/kube-rca/incident-commander/internal/db"
	"github.com/kube-rca/incident-commander/internal/extract"
	"github.com/kube-rca/incident-commander/internal/handler"
	"github.com/kube-rca/incident-commander/internal/invoker"
	"github.com/kube-rca/incident-commander/internal/pipeline"
	"github.com/kube-rca/incident-commander/internal/service"
)

type App struct {
	cfg       config.Config
	invoker   *invoker.Invoker
	pipeline  *pipeline.Pipeline
	incidents *service.IncidentService
	pool      *pgxpool.Pool
}

// App 객체 생성 (live 백엔드 보정 호출 때문에 최대 LLM_TIMEOUT 동안 블록될 수 있음)
func New(ctx context.Context, cfg config.Config) (*App, error) {
	live, err := newLiveBackend(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}

	inv := invoker.New(ctx, live, nil, invoker.Options{
		Model:       cfg.LLM.Model,
		Endpoint:    cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	})

	a := &App{cfg: cfg, invoker: inv}
	history := a.newHistory(ctx)

	p, err := pipeline.New(inv, extract.New(nil), pipeline.WithHistory(history, cfg.History.Limit))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create pipeline: %w", err)
	}
	a.pipeline = p
	a.incidents = service.NewIncidentService(p, inv)
	return a, nil
}

func (a *App) Incidents() *service.IncidentService {
	return a.incidents
}

func (a *App) Invoker() *invoker.Invoker {
	return a.invoker
}

// Router - HTTP 라우터 구성
func (a *App) Router() *gin.Engine {
	router := gin.Default()
	router.Use(handler.RequestIDMiddleware())
	router.Use(handler.CORSMiddleware(a.cfg.Server.AllowedOrigins, false))

	incidentHandler := handler.NewIncidentHandler(a.incidents)
	healthHandler := handler.NewHealthHandler(a.incidents)

	// 건강 체크 및 API 정보
	router.GET("/", handler.Root)
	router.GET("/ping", handler.Ping)
	router.GET("/health", healthHandler.Health)
	router.GET("/openapi.json", handler.OpenAPIDoc)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 분석
	router.POST("/analyze-incident", incidentHandler.AnalyzeIncident)
	router.GET("/sample-incident", incidentHandler.SampleIncident)
	router.POST("/analyze-sample", incidentHandler.AnalyzeSample)

	return router
}

func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
}

// newLiveBackend - provider별 live 클라이언트. standin이면 nil (보정 호출 없이 stand-in 선택)
//
// 클라이언트 생성 실패(API key 누락 등)는 치명적이지 않다. stand-in으로 진행한다.
func newLiveBackend(ctx context.Context, cfg config.LLMConfig) (invoker.Backend, error) {
	switch cfg.Provider {
	case config.ProviderStandIn:
		return nil, nil
	case config.ProviderOllama:
		c, err := client.NewOllamaClient(cfg)
		if err != nil {
			log.Printf("Failed to create ollama client, using stand-in responder: %v", err)
			return nil, nil
		}
		return c, nil
	case config.ProviderGemini:
		c, err := client.NewGeminiClient(ctx, cfg)
		if err != nil {
			log.Printf("Failed to create gemini client, using stand-in responder: %v", err)
			return nil, nil
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.Provider)
	}
}

// newHistory - Postgres가 설정되어 있으면 DB 기반, 아니면 내장 fixture 기반 이력 소스
func (a *App) newHistory(ctx context.Context) *service.HistoryService {
	var embedder service.EmbeddingClient
	if a.cfg.Embedding.APIKey != "" {
		c, err := client.NewEmbeddingClient(ctx, a.cfg.Embedding)
		if err != nil {
			log.Printf("Failed to create embedding client: %v", err)
		} else {
			embedder = c
		}
	}

	if !a.cfg.Postgres.IsConfigured() {
		return service.NewHistoryService(nil, nil)
	}

	pool, err := db.NewPostgresPool(ctx, a.cfg.Postgres)
	if err != nil {
		log.Printf("Postgres unavailable, using embedded past incidents: %v", err)
		return service.NewHistoryService(nil, nil)
	}
	repo := &db.Postgres{Pool: pool}
	if err := repo.EnsureHistorySchema(ctx); err != nil {
		log.Printf("Failed to ensure history schema, using embedded past incidents: %v", err)
		pool.Close()
		return service.NewHistoryService(nil, nil)
	}
	a.pool = pool

	history := service.NewHistoryService(repo, embedder)
	if _, err := history.SeedPastIncidents(ctx); err != nil {
		log.Printf("Failed to seed past incidents: %v", err)
	}
	return history
}
