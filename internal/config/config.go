package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string
	Port string
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisCache struct {
	Host     string
	Port     string
	Password string
}

type Yelp struct {
	APIKey  string
	APIHost string
	BaseURL string
	UseMock bool
}

type Cache struct {
	// "postgres" or "redis"
	Backend    string
	TTLMinutes int
}

type CORS struct {
	AllowedOrigins []string
}

type Config struct {
	HTTP     HTTPServer
	Postgres Postgres
	Redis    RedisCache
	Yelp     Yelp
	Cache    Cache
	CORS     CORS
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := &Config{
		HTTP:     *newHTTP(),
		Postgres: *newPostgres(),
		Redis:    *newRedis(),
		Yelp:     *newYelp(),
		Cache:    *newCache(),
		CORS:     *newCORS(),
	}

	return cfg
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port: getenv("HTTP_PORT", "8080"),
		Host: getenv("HTTP_HOST", "localhost"),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "grubble"),
		Password: getenv("DB_PASSWORD", "grubble"),
		DBName:   getenv("DB_NAME", "grubble"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", "localhost"),
		Password: getenv("REDIS_PASSWORD", ""),
	}
}

func newYelp() *Yelp {
	return &Yelp{
		APIKey:  getenv("RAPIDAPI_KEY", ""),
		APIHost: getenv("RAPIDAPI_HOST", ""),
		BaseURL: getenv("YELP_BASE_URL", "https://yelp-business-api.p.rapidapi.com"),
		UseMock: getenvBool("USE_MOCK_YELP", false),
	}
}

func newCache() *Cache {
	return &Cache{
		Backend:    getenv("CACHE_BACKEND", "postgres"),
		TTLMinutes: getenvInt("YELP_CACHE_TTL_MINUTES", 1440),
	}
}

func newCORS() *CORS {
	raw := getenv("ALLOWED_ORIGINS", "http://localhost:5173")
	origins := strings.Split(raw, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return &CORS{AllowedOrigins: origins}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	return val
}

func getenvInt(key string, defaultValue int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("%s %s is not an integer, using default %d", logtag, key, defaultValue)
		return defaultValue
	}
	return n
}

func getenvBool(key string, defaultValue bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		log.Printf("%s %s is not a boolean, using default %v", logtag, key, defaultValue)
		return defaultValue
	}
	return b
}
