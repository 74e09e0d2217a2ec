package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Settings is the service configuration read from the environment
type Settings struct {
	Port           string
	MaxUploadBytes int64

	PairingStrategy  string
	PairingThreshold float64
	IgnoreCase       bool
	ContextLines     int

	CohereAPIKey     string
	CohereModel      string
	OpenAIAPIKey     string
	OpenAIModel      string
	ResponseLanguage string

	// Cache is enabled only when REDIS_ADDR is set
	RedisAddr string
	RedisPass string
	RedisDB   int
	CacheTTL  time.Duration

	// Archive is enabled only when S3_BUCKET is set
	S3Bucket       string
	S3Region       string
	S3Profile      string
	S3Prefix       string
	S3UsePathStyle bool

	// Kafka is enabled only when KAFKA_BOOTSTRAP_SERVERS is set
	KafkaBrokers    []string
	ComparisonTopic string
	KafkaGroupID    string

	PDFToTextPath string
}

// FromEnv reads Settings from environment variables, applying defaults.
// Malformed values are logged and replaced by their default.
func FromEnv() Settings {
	s := Settings{
		Port:           env("PORT", DefaultPort),
		MaxUploadBytes: int64(envInt("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes)),

		PairingStrategy:  strings.ToLower(env("PAIRING_STRATEGY", PairingPositional)),
		PairingThreshold: envFloat("PAIRING_THRESHOLD", DefaultPairingThreshold),
		IgnoreCase:       envBool("IGNORE_CASE", false),
		ContextLines:     envInt("CONTEXT_LINES", DefaultContextLines),

		CohereAPIKey:     env("COHERE_API_KEY", ""),
		CohereModel:      env("COHERE_MODEL", ""),
		OpenAIAPIKey:     env("OPENAI_API_KEY", ""),
		OpenAIModel:      env("OPENAI_MODEL", ""),
		ResponseLanguage: env("RESPONSE_LANGUAGE", DefaultResponseLanguage),

		RedisAddr: env("REDIS_ADDR", ""),
		RedisPass: env("REDIS_PASS", ""),
		RedisDB:   envInt("REDIS_DB", 0),
		CacheTTL:  time.Duration(envInt("CACHE_TTL_SECONDS", int(DefaultCacheTTL/time.Second))) * time.Second,

		S3Bucket:       env("S3_BUCKET", ""),
		S3Region:       env("S3_REGION", ""),
		S3Profile:      env("S3_PROFILE", ""),
		S3Prefix:       env("S3_PREFIX", DefaultS3Prefix),
		S3UsePathStyle: envBool("S3_USE_PATH_STYLE", false),

		ComparisonTopic: env("COMPARISON_TOPIC", DefaultComparisonTopic),
		KafkaGroupID:    env("KAFKA_GROUP_ID", DefaultGroupID),

		PDFToTextPath: env("PDFTOTEXT_PATH", "pdftotext"),
	}

	if brokers := env("KAFKA_BOOTSTRAP_SERVERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				s.KafkaBrokers = append(s.KafkaBrokers, b)
			}
		}
	}

	switch s.PairingStrategy {
	case PairingPositional, PairingSimilarity:
	default:
		log.Printf("Warning: unknown PAIRING_STRATEGY %q, using %s", s.PairingStrategy, PairingPositional)
		s.PairingStrategy = PairingPositional
	}
	return s
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := env(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	v := env(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || f > 1 {
		log.Printf("Warning: invalid %s=%q, using %.2f", key, v, def)
		return def
	}
	return f
}

func envBool(key string, def bool) bool {
	v := env(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %v", key, v, def)
		return def
	}
	return b
}

// Fingerprint identifies the engine options that affect a result, for use
// in cache keys.
func (s Settings) Fingerprint() string {
	return fmt.Sprintf("v1|%s|%.3f|%t|%d", s.PairingStrategy, s.PairingThreshold, s.IgnoreCase, s.ContextLines)
}
