package configs

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Email     EmailConfig
	Admin     AdminConfig
	RateFeed  RateFeedConfig
	Scheduler SchedulerConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port int
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
	TTL    int // in hours
}

// EmailConfig holds email configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SenderEmail  string
}

// AdminConfig holds back-office administrator bootstrap configuration
type AdminConfig struct {
	Email string
}

// RateFeedConfig holds the central bank reference rate feed configuration
type RateFeedConfig struct {
	APIURL      string
	DefaultRate float64 // annual %, used when the feed is unreachable
	Spread      float64 // added on top of the reference rate for new products
}

// SchedulerConfig holds the overdue-marking scheduler configuration
type SchedulerConfig struct {
	IntervalHours int
}

// LoadConfig loads configuration from a .env file (if present) and
// environment variables
func LoadConfig() (*Config, error) {
	// Missing .env is fine; environment variables take over.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, err
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, err
	}

	jwtTTL, err := strconv.Atoi(getEnv("JWT_TTL", "24"))
	if err != nil {
		return nil, err
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, err
	}

	defaultRate, err := strconv.ParseFloat(getEnv("RATE_FEED_DEFAULT", "7.0"), 64)
	if err != nil {
		return nil, err
	}

	rateSpread, err := strconv.ParseFloat(getEnv("RATE_FEED_SPREAD", "5.0"), 64)
	if err != nil {
		return nil, err
	}

	schedulerInterval, err := strconv.Atoi(getEnv("SCHEDULER_INTERVAL_HOURS", "24"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Port: port,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "lending_office"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "super_secret_key"),
			TTL:    jwtTTL,
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", "smtp.example.com"),
			SMTPPort:     smtpPort,
			SMTPUser:     getEnv("SMTP_USER", "user"),
			SMTPPassword: getEnv("SMTP_PASSWORD", "password"),
			SenderEmail:  getEnv("SENDER_EMAIL", "no-reply@lending-office.com"),
		},
		Admin: AdminConfig{
			Email: getEnv("ADMIN_EMAIL", "admin@lending-office.com"),
		},
		RateFeed: RateFeedConfig{
			APIURL:      getEnv("RATE_FEED_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"),
			DefaultRate: defaultRate,
			Spread:      rateSpread,
		},
		Scheduler: SchedulerConfig{
			IntervalHours: schedulerInterval,
		},
	}, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
