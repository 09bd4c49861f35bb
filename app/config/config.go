package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB         *sql.DB
	DataDir    string
	ListenAddr string
	SecretKey  string
	// bcrypt hash of the login password; empty disables the login gate
	AuthPasswordHash string
}

var AppConfig *Config

// Init loads .env (when present), connects to Postgres and resolves the
// media data directory.
func Init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost port=5432 user=postgres dbname=sav sslmode=disable"
		log.Println("DATABASE_URL not set, using local PostgreSQL database")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err = db.Ping(); err != nil {
		log.Fatal("Cannot establish database connection: ", err)
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal("Cannot create data directory: ", err)
	}

	ip := os.Getenv("LISTEN_IP")
	if ip == "" {
		ip = "127.0.0.1"
	}
	port := os.Getenv("LISTEN_PORT")
	if port == "" {
		port = "8000"
	}

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		secret = "sav-development-secret-key" // Default for development
		log.Println("SECRET_KEY not set, using development default")
	}

	AppConfig = &Config{
		DB:               db,
		DataDir:          dataDir,
		ListenAddr:       fmt.Sprintf("%s:%s", ip, port),
		SecretKey:        secret,
		AuthPasswordHash: os.Getenv("AUTH_PASSWORD_HASH"),
	}
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}
