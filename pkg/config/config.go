package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	DB     DBConfig
	JWT    JWTConfig
	HTTP   HTTPConfig
	Auth   AuthConfig
	Import ImportConfig
	Queue  QueueConfig
	Seed   SeedConfig
	Log    LogConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
// Sin DatabaseURL ni Host la aplicación trabaja solo en memoria.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// Enabled informa si hay una base de datos configurada.
func (c DBConfig) Enabled() bool {
	return c.DatabaseURL != "" || c.Host != ""
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string // lista separada por comas; "*" por defecto
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthConfig credenciales del operador. Es un marcador de posición, no un sistema de credenciales.
type AuthConfig struct {
	Username string
	Password string
}

// ImportConfig parámetros de la importación simulada.
type ImportConfig struct {
	Delay           time.Duration
	FlipProbability float64
}

// QueueConfig broker opcional para los trabajos de importación.
type QueueConfig struct {
	AMQPURL string // vacío = despacho en proceso
}

// SeedConfig cartera de demostración.
type SeedConfig struct {
	Clients    int
	RandomSeed int64
}

// LogConfig nivel del logger.
type LogConfig struct {
	Level string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, JWT_SECRET, AUTH_USERNAME, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	flip := getFloat(v, "IMPORT_FLIP_PROBABILITY", 0.2)
	if flip < 0 || flip > 1 {
		return nil, fmt.Errorf("config: IMPORT_FLIP_PROBABILITY fuera de [0,1]: %v", flip)
	}
	delayMS := getInt(v, "IMPORT_DELAY_MS", 2000)
	if delayMS < 0 {
		return nil, fmt.Errorf("config: IMPORT_DELAY_MS negativo: %d", delayMS)
	}

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "financebi-api"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", ""),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "financebi"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "financebi-api"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			CORSOrigins: getString(v, "HTTP_CORS_ORIGINS", "*"),
		},
		Auth: AuthConfig{
			Username: getString(v, "AUTH_USERNAME", "admin"),
			Password: getString(v, "AUTH_PASSWORD", "1234"),
		},
		Import: ImportConfig{
			Delay:           time.Duration(delayMS) * time.Millisecond,
			FlipProbability: flip,
		},
		Queue: QueueConfig{
			AMQPURL: getString(v, "AMQP_URL", ""),
		},
		Seed: SeedConfig{
			Clients:    getInt(v, "SEED_CLIENTS", 55),
			RandomSeed: int64(getInt(v, "SEED_RANDOM", 42)),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		if s, ok := v.Get(key).(string); ok {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return def
			}
			return f
		}
		return v.GetFloat64(key)
	}
	return def
}
