package configs

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type ENV struct {
	Port   string
	AppEnv string
	AppURL string

	TrustProxyHeaders bool

	DBDriver     string
	DBHost       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBPort       string
	DBSqlitePath string
	DBMaxRetries int

	LogLevel string
	LogFile  string

	MediaDriver   string
	MediaRoot     string
	MediaURL      string
	COSBucketURL  string
	COSPublicURL  string
	COSSecretID   string
	COSSecretKey  string
	TemplatesDir  string
	CORSOrigins   []string
	SentryDSN     string
	AdminUsername string
	AdminPassHash string
	AppAuthKey    string
	AppEncKey     string

	MailDriver               string
	EmailHost                string
	EmailPort                int
	EmailUsername            string
	EmailPassword            string
	EmailFrom                string
	ContactNotificationEmail string
	MailgunDomain            string
	MailgunAPIKey            string
}

func (e ENV) IsProduction() bool {
	return e.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	emailUsername := os.Getenv("EMAIL_USERNAME")

	return ENV{
		Port:   getEnv("APP_PORT", ":8000"),
		AppEnv: getEnv("APP_ENV", "development"),
		AppURL: strings.TrimSuffix(os.Getenv("APP_URL"), "/"),

		TrustProxyHeaders: cast.ToBool(os.Getenv("TRUST_PROXY_HEADERS")),

		DBDriver:     getEnv("DB_DRIVER", "mysql"),
		DBHost:       getEnv("DB_HOST", "127.0.0.1"),
		DBUser:       os.Getenv("DB_USER"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBName:       os.Getenv("DB_NAME"),
		DBPort:       os.Getenv("DB_PORT"),
		DBSqlitePath: getEnv("DB_SQLITE_PATH", "rainy.db"),
		DBMaxRetries: cast.ToInt(getEnv("DB_MAX_RETRIES", "10")),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),

		MediaDriver:   getEnv("MEDIA_DRIVER", "local"),
		MediaRoot:     getEnv("MEDIA_ROOT", "media"),
		MediaURL:      getEnv("MEDIA_URL", "/media/"),
		COSBucketURL:  os.Getenv("COS_BUCKET_URL"),
		COSPublicURL:  os.Getenv("COS_PUBLIC_URL"),
		COSSecretID:   os.Getenv("COS_SECRET_ID"),
		COSSecretKey:  os.Getenv("COS_SECRET_KEY"),
		TemplatesDir:  getEnv("TEMPLATES_DIR", "templates"),
		CORSOrigins:   splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		SentryDSN:     os.Getenv("SENTRY_DSN"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AppAuthKey:    os.Getenv("APP_AUTH_KEY"),
		AppEncKey:     os.Getenv("APP_ENC_KEY"),

		MailDriver:               getEnv("MAIL_DRIVER", "log"),
		EmailHost:                os.Getenv("EMAIL_HOST"),
		EmailPort:                cast.ToInt(getEnv("EMAIL_PORT", "587")),
		EmailUsername:            emailUsername,
		EmailPassword:            os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:                getEnv("EMAIL_FROM", emailUsername),
		ContactNotificationEmail: os.Getenv("CONTACT_NOTIFICATION_EMAIL"),
		MailgunDomain:            os.Getenv("MAILGUN_DOMAIN"),
		MailgunAPIKey:            os.Getenv("MAILGUN_API_KEY"),
	}

}
