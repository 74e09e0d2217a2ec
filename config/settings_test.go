package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "PAIRING_STRATEGY", "CONTEXT_LINES", "CACHE_TTL_SECONDS", "KAFKA_BOOTSTRAP_SERVERS", "S3_PREFIX", "REDIS_ADDR", "S3_BUCKET"} {
		t.Setenv(k, "")
	}

	s := FromEnv()
	if s.Port != DefaultPort {
		t.Fatalf("Port = %q; want %q", s.Port, DefaultPort)
	}
	if s.PairingStrategy != PairingPositional {
		t.Fatalf("PairingStrategy = %q", s.PairingStrategy)
	}
	if s.ContextLines != DefaultContextLines {
		t.Fatalf("ContextLines = %d", s.ContextLines)
	}
	if s.CacheTTL != DefaultCacheTTL {
		t.Fatalf("CacheTTL = %v; want %v", s.CacheTTL, DefaultCacheTTL)
	}
	if s.S3Prefix != DefaultS3Prefix {
		t.Fatalf("S3Prefix = %q", s.S3Prefix)
	}
	if len(s.KafkaBrokers) != 0 {
		t.Fatalf("KafkaBrokers = %v; want none", s.KafkaBrokers)
	}
	// optional collaborators stay off unless configured
	if s.RedisAddr != "" || s.S3Bucket != "" {
		t.Fatalf("RedisAddr = %q, S3Bucket = %q; want both empty", s.RedisAddr, s.S3Bucket)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PAIRING_STRATEGY", "Similarity")
	t.Setenv("PAIRING_THRESHOLD", "0.7")
	t.Setenv("IGNORE_CASE", "true")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "k1:9092, k2:9092,")

	s := FromEnv()
	if s.Port != "9090" || s.PairingStrategy != PairingSimilarity || s.PairingThreshold != 0.7 || !s.IgnoreCase {
		t.Fatalf("unexpected settings: %+v", s)
	}
	if s.CacheTTL != time.Minute {
		t.Fatalf("CacheTTL = %v; want 1m", s.CacheTTL)
	}
	if len(s.KafkaBrokers) != 2 || s.KafkaBrokers[1] != "k2:9092" {
		t.Fatalf("KafkaBrokers = %v", s.KafkaBrokers)
	}
}

func TestFromEnvInvalidValuesFallBack(t *testing.T) {
	cases := []struct {
		key, value string
		check      func(Settings) bool
	}{
		{"PAIRING_STRATEGY", "magic", func(s Settings) bool { return s.PairingStrategy == PairingPositional }},
		{"PAIRING_THRESHOLD", "1.5", func(s Settings) bool { return s.PairingThreshold == DefaultPairingThreshold }},
		{"CONTEXT_LINES", "three", func(s Settings) bool { return s.ContextLines == DefaultContextLines }},
		{"IGNORE_CASE", "maybe", func(s Settings) bool { return !s.IgnoreCase }},
	}
	for _, c := range cases {
		t.Run(c.key, func(t *testing.T) {
			t.Setenv(c.key, c.value)
			if s := FromEnv(); !c.check(s) {
				t.Fatalf("%s=%q did not fall back to default: %+v", c.key, c.value, s)
			}
		})
	}
}
