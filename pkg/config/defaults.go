package config

import "time"

const (
	BackendFile  = "file"
	BackendMongo = "mongo"
)

const (
	DefaultStorageBackend = BackendFile
	DefaultDataDir        = "./databases"

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "cinebook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultMovieServiceURL    = "http://localhost:3200"
	DefaultScheduleServiceURL = "http://localhost:3202"
	DefaultUserServiceURL     = "http://localhost:3203"

	DefaultClientTimeout = 10 * time.Second

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultLogLevel = "info"

	DefaultKafkaBookingEventsTopic = "booking-events"
)

// DefaultServicePorts mirrors the historical port layout of the
// constellation; each service falls back to its own port when PORT is unset.
var DefaultServicePorts = map[string]string{
	"movies":    "3200",
	"bookings":  "3201",
	"schedules": "3202",
	"users":     "3203",
}
