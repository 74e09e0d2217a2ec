package config

import "time"

// Server Constants
const (
	// DefaultPort is used when PORT is not set
	DefaultPort = "8080"

	// DefaultMaxUploadBytes caps each uploaded document (20 MiB)
	DefaultMaxUploadBytes = 20 << 20

	// CompareTimeout bounds one comparison request, extraction included
	CompareTimeout = 2 * time.Minute
)

// Comparison Constants
const (
	// PairingPositional pairs replace blocks element-wise
	PairingPositional = "positional"

	// PairingSimilarity pairs replace blocks by line similarity
	PairingSimilarity = "similarity"

	// DefaultPairingThreshold is the minimum similarity for PairingSimilarity
	DefaultPairingThreshold = 0.5

	// DefaultContextLines is the number of lines kept around each difference
	DefaultContextLines = 3
)

// Assistant Constants
const (
	// DefaultResponseLanguage is the language explanations are written in
	DefaultResponseLanguage = "English"
)

// Cache and Archive Constants
const (
	// DefaultCacheTTL is how long cached results live
	DefaultCacheTTL = 24 * time.Hour

	// DefaultS3Prefix is the key prefix for archived results
	DefaultS3Prefix = "comparisons"

	// ArchiveTimeout bounds one archive upload
	ArchiveTimeout = 30 * time.Second
)

// Kafka Constants
const (
	// DefaultComparisonTopic carries comparison requests
	DefaultComparisonTopic = "comparison-requests"

	// DefaultGroupID is the consumer group of the comparison service
	DefaultGroupID = "doccompare"
)
