package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	Store             string // session store backend: bolt, postgres or memory
	BoltFile          string // path of the bolt database file
	DB                string // connection string for the database
	WaitForServices   string // duration to wait for other services to be ready
	TrackFile         string // additional YAML track catalog
	LogLevel          string // sets the log level (zap log level values)
	SQLLogLevel       string // sets the log level for sql subsystem
	LogFormat         string // text vs json
	LogFilter         string // zapfilter rules, e.g. "*:telemetry.*"
	EnableTelemetry   bool   // enable telemetry
	TelemetryEndpoint string // endpoint for telemetry (otlp grpc), "stdout" for local output
	NatsURL           string // URL of the NATS server used for telemetry replays
	NatsSubject       string // subject prefix for published telemetry
)

const (
	StoreBolt     = "bolt"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)
