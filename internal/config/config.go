package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type PaymentConfig struct {
	Env          string `yaml:"env"`
	HTTPServer   `yaml:"http_server"`
	PaymentDB    `yaml:"payment_db"`
	LogConfig    `yaml:"log_config"`
	KafkaService `yaml:"kafka-service"`
	PushService  `yaml:"push-service"`
	Esewa        EsewaGateway   `yaml:"esewa"`
	Fonepay      FonepayGateway `yaml:"fonepay"`
	Webhook      WebhookConfig  `yaml:"webhook"`
	Redirect     RedirectPages  `yaml:"redirect"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type PaymentDB struct {
	Dsn            string `yaml:"dsn" env:"PAYMENT_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"order-events"`
}

type PushService struct {
	Endpoint      string `yaml:"endpoint"`
	TokenEndpoint string `yaml:"token_endpoint"`
	APIKey        string `yaml:"api_key" env:"PUSH_API_KEY"`
}

// Gateway secrets are injected here once at startup and passed into the
// signature adapters by value. Nothing else reads them.
type EsewaGateway struct {
	ProductCode string `yaml:"product_code"`
	SecretKey   string `yaml:"secret_key" env:"ESEWA_SECRET_KEY"`
}

type FonepayGateway struct {
	MerchantCode string `yaml:"merchant_code"`
	SecretKey    string `yaml:"secret_key" env:"FONEPAY_SECRET_KEY"`
	ReturnURL    string `yaml:"return_url"`
}

type WebhookConfig struct {
	Secret string `yaml:"secret" env:"ORDER_WEBHOOK_SECRET"`
}

type RedirectPages struct {
	SuccessURL string `yaml:"success_url"`
	FailureURL string `yaml:"failure_url"`
}

func MustLoad() *PaymentConfig {
	configPath := os.Getenv("PAYMENT_CONFIG_PATH")
	if configPath == "" {
		log.Fatalf("PAYMENT_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	var cfg PaymentConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
