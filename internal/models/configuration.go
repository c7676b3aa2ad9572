package models

type Configuration struct {
	App      AppConfiguration      `mapstructure:"app"      validate:"required"`
	Database DatabaseConfiguration `mapstructure:"database" validate:"required"`
	Cache    CacheConfiguration    `mapstructure:"cache"    validate:"required"`
	Risk     RiskConfiguration     `mapstructure:"risk"     validate:"required"`
	Notifier NotifierConfiguration `mapstructure:"notifier" validate:"required"`
}

type AppConfiguration struct {
	JWTSecret           string   `mapstructure:"jwt_secret"            validate:"required"`
	SecretEncryptionKey string   `mapstructure:"secret_encryption_key" validate:"len=32"`
	TOTPIssuer          string   `mapstructure:"totp_issuer"           validate:"required"`
	TokenExpiryMinutes  int      `mapstructure:"token_expiry_minutes"  validate:"gte=1,lte=1440"`
	AllowedOrigins      []string `mapstructure:"allowed_origins"       validate:"required"`
	LogLevel            string   `mapstructure:"log_level"             validate:"oneof=debug info warn error fatal panic"`
	Port                int      `mapstructure:"port"                  validate:"gte=80,lte=65535"`
}

type DatabaseConfiguration struct {
	Driver   string `mapstructure:"driver"   validate:"required,oneof=postgres sqlite"`
	Host     string `mapstructure:"host"     validate:"required_if=Driver postgres"`
	Port     int32  `mapstructure:"port"     validate:"omitempty,gte=80,lte=65535"`
	User     string `mapstructure:"user"     validate:"required_if=Driver postgres"`
	Password string `mapstructure:"password" validate:"required_if=Driver postgres"`
	Name     string `mapstructure:"name"     validate:"required_if=Driver postgres"`
	SSLMode  string `mapstructure:"sslmode"`
	// Path is the database file location for the sqlite driver.
	Path string `mapstructure:"path" validate:"required_if=Driver sqlite"`
}

type CacheConfiguration struct {
	Type  string                   `mapstructure:"type"  validate:"required,oneof=redis valkey memory"`
	Redis *RedisCacheConfiguration `mapstructure:"redis" validate:"required_if=Type redis"`
}

type RedisCacheConfiguration struct {
	Hosts         []string `mapstructure:"hosts"`
	Password      string   `mapstructure:"password"`
	TLSEnabled    bool     `mapstructure:"tls_enabled"`
	TLSServerName string   `mapstructure:"tls_server_name"`
}

type NotifierConfiguration struct {
	Type       string                           `mapstructure:"type"       validate:"required,oneof=smtp filesystem"`
	SMTP       *MailerConfiguration             `mapstructure:"smtp"       validate:"required_if=Type smtp"`
	Filesystem *FilesystemNotifierConfiguration `mapstructure:"filesystem" validate:"required_if=Type filesystem"`
}

type MailerConfiguration struct {
	Host          string `mapstructure:"host"            validate:"required"`
	Port          int    `mapstructure:"port"            validate:"required"`
	Username      string `mapstructure:"username"`
	Password      string `mapstructure:"password"`
	Sender        string `mapstructure:"sender"          validate:"required"`
	EnableTLS     bool   `mapstructure:"enable_tls"`
	SkipVerifyTLS bool   `mapstructure:"skip_verify_tls"`
}

type FilesystemNotifierConfiguration struct {
	Directory string `mapstructure:"directory" validate:"required"`
}

// RiskConfiguration points at the external risk-scoring service. The service
// is an HTTP collaborator; its model internals are opaque to this application.
type RiskConfiguration struct {
	PredictURL     string  `mapstructure:"predict_url"     validate:"required,http_url"`
	LearnURL       string  `mapstructure:"learn_url"       validate:"required,http_url"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"gte=1,lte=60"`
	AnomalyScore   float64 `mapstructure:"anomaly_score"   validate:"gt=0,lt=1"`
}
