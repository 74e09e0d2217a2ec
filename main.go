package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"doccompare/api"
	"doccompare/assistant"
	"doccompare/cache"
	"doccompare/common"
	"doccompare/comparison"
	"doccompare/config"
	"doccompare/extraction"
	"doccompare/orchestrator"
	"doccompare/session"
	"doccompare/shared/kafka"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()
	settings := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	comparator := newComparator(settings)
	registry := newRegistry(settings)

	llm := assistant.NewDefaultLLM(assistant.Config{
		CohereAPIKey: settings.CohereAPIKey,
		CohereModel:  settings.CohereModel,
		OpenAIAPIKey: settings.OpenAIAPIKey,
		OpenAIModel:  settings.OpenAIModel,
	})
	var explainer *assistant.Explainer
	var chatbot *assistant.Chatbot
	if llm != nil {
		explainer = assistant.NewExplainer(llm, settings.ResponseLanguage)
		chatbot = assistant.NewChatbot(llm, settings.ResponseLanguage)
		log.Printf("AI assistant enabled (model: %s)", llm.ModelName())
	} else {
		log.Println("Warning: no COHERE_API_KEY or OPENAI_API_KEY set; explanations and chat are disabled")
	}

	store := session.NewStore()
	cfg := orchestrator.Config{
		Comparator:  comparator,
		Fingerprint: settings.Fingerprint(),
		Store:       store,
		Extractor:   registry,
		Explainer:   explainer,
		Chat:        chatbot,
	}

	if c := initializeCache(settings); c != nil {
		defer c.Close()
		cfg.Cache = c
	}

	var archive *common.Archive
	if archive = initializeArchive(ctx, settings); archive != nil {
		cfg.Archive = archive
	}

	orch, err := orchestrator.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create orchestrator: %v", err)
	}

	if consumer := initializeConsumer(settings, orch); consumer != nil {
		defer consumer.Close()
		go func() {
			if err := consumer.Start(ctx); err != nil {
				log.Printf("Warning: kafka consumer stopped: %v", err)
			}
		}()
	}

	deps := &api.Deps{
		Orchestrator:   orch,
		Store:          store,
		Explainer:      explainer,
		Chatbot:        chatbot,
		MaxUploadBytes: settings.MaxUploadBytes,
	}
	if archive != nil {
		deps.Archive = archive
	}

	addr := ":" + settings.Port
	srv := &http.Server{Addr: addr, Handler: api.NewRouter(deps)}

	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  POST /api/compare")
	log.Println("  GET  /api/comparison/latest")
	log.Println("  GET  /api/comparison/latest/hunks/:index/explanation")
	log.Println("  GET  /api/comparisons/:id")
	log.Println("  POST /api/chat")
	log.Println("  POST /api/chat/clear")
	log.Println("  GET  /api/health")
	log.Println("  GET  /metrics")

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
	log.Println("Server stopped")
}

func newComparator(s config.Settings) *comparison.Comparator {
	opts := comparison.Options{
		FoldCase:     s.IgnoreCase,
		ContextLines: s.ContextLines,
	}
	if s.PairingStrategy == config.PairingSimilarity {
		opts.Pairer = comparison.SimilarityPairer{Threshold: s.PairingThreshold}
	}
	log.Printf("Comparator: pairing=%s ignore_case=%v context_lines=%d", s.PairingStrategy, s.IgnoreCase, s.ContextLines)
	return comparison.New(opts)
}

func newRegistry(s config.Settings) *extraction.Registry {
	pdf := extraction.NewPDFAt(s.PDFToTextPath)
	if err := pdf.CheckAvailable(); err != nil {
		log.Printf("Warning: %s not found; PDF uploads will fail until poppler-utils is installed", s.PDFToTextPath)
	}
	return extraction.NewRegistry(extraction.NewPlainText(), extraction.NewHTML(), pdf)
}

// initializeCache connects to Redis when REDIS_ADDR is set
func initializeCache(s config.Settings) *cache.RedisCache {
	if s.RedisAddr == "" {
		return nil
	}
	c, err := cache.NewRedisCache(cache.Config{
		Addr:     s.RedisAddr,
		Password: s.RedisPass,
		DB:       s.RedisDB,
		TTL:      s.CacheTTL,
	})
	if err != nil {
		log.Printf("Warning: result cache disabled: %v", err)
		return nil
	}
	log.Printf("Result cache enabled (redis %s, ttl %s)", s.RedisAddr, s.CacheTTL)
	return c
}

// initializeArchive creates the S3 archive when S3_BUCKET is set
func initializeArchive(ctx context.Context, s config.Settings) *common.Archive {
	if s.S3Bucket == "" {
		return nil
	}
	client, err := common.NewS3(ctx, common.S3Config{
		Region:       s.S3Region,
		Profile:      s.S3Profile,
		UsePathStyle: s.S3UsePathStyle,
	})
	if err != nil {
		log.Printf("Warning: S3 archive disabled: %v", err)
		return nil
	}
	log.Printf("Archiving results to s3://%s/%s", s.S3Bucket, s.S3Prefix)
	return common.NewArchive(client, s.S3Bucket, s.S3Prefix)
}

// initializeConsumer subscribes to comparison requests when Kafka is configured
func initializeConsumer(s config.Settings, o *orchestrator.Orchestrator) *kafka.Consumer {
	if len(s.KafkaBrokers) == 0 {
		return nil
	}
	consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: s.KafkaBrokers,
		Topic:   s.ComparisonTopic,
		GroupID: s.KafkaGroupID,
		Handler: orchestrator.NewRequestHandler(o),
	})
	if err != nil {
		log.Printf("Warning: kafka consumer disabled: %v", err)
		return nil
	}
	log.Printf("Consuming comparison requests from %s (group %s)", s.ComparisonTopic, s.KafkaGroupID)
	return consumer
}
