package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/cart"
	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/catalog"
	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/checkout"
	h "github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/http"
	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/rates"
	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/session"
)

type Config struct {
	HTTPPort        string
	MongoURI        string
	MongoDBName     string
	RedisAddr       string
	RedisPassword   string
	RatesFeedURL    string
	KafkaBrokers    []string
	Postgres        checkout.Credentials
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:   getEnv("MONGO_DB_NAME", "vuzlyk"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RatesFeedURL:  getEnv("RATES_FEED_URL", "https://api.privatbank.ua/p24api/pubinfo?json&exchange&coursid=5"),
		KafkaBrokers:  strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		Postgres: checkout.Credentials{
			Host:              getEnv("POSTGRES_HOST", "localhost"),
			Port:              getEnvInt("POSTGRES_PORT", 5432),
			User:              getEnv("POSTGRES_USER", "postgres"),
			Password:          getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:            getEnv("POSTGRES_DB", "vuzlyk_orders"),
			MigrationsDirPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Product store
	mongoDB, err := catalog.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Client().Disconnect(context.Background())
	productRepo := catalog.NewMongoRepository(mongoDB)
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	// Session store
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	sessionStore := session.NewRedisStore(redisClient)
	log.Printf("Connected to Redis at %s", cfg.RedisAddr)

	// Order store
	orderRepo, err := checkout.NewRepository(&cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer orderRepo.Close()
	if err := orderRepo.RunMigrations(&cfg.Postgres); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Printf("Connected to Postgres at %s:%d", cfg.Postgres.Host, cfg.Postgres.Port)

	// Rate cache: refreshed on start, then every RefreshInterval.
	rateCache := rates.NewCache(rates.NewClient(cfg.RatesFeedURL, 10*time.Second))
	go rateCache.Run(ctx)

	// Order events
	publisher := checkout.NewKafkaPublisher(cfg.KafkaBrokers...)
	defer publisher.Close()

	catalogService := catalog.NewService(productRepo, rateCache)
	cartService := cart.NewService(sessionStore, catalogService)
	checkoutService := checkout.NewService(sessionStore, orderRepo, publisher)

	catalogHandler := h.NewCatalogHandler(catalogService, cfg.RequestTimeout)
	cartHandler := h.NewCartHandler(cartService, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(checkoutService, cfg.RequestTimeout)
	ratesHandler := h.NewRatesHandler(rateCache)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SessionMiddleware)
	r.Use(h.MockAuthMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/featured", catalogHandler.FeaturedProducts)
		r.Get("/products/{id}", catalogHandler.GetProduct)
		r.Get("/rates", ratesHandler.CurrentRates)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", cartHandler.GetCart)
		r.Post("/add", cartHandler.AddItem)
		r.Post("/update", cartHandler.UpdateQuantity)
		r.Post("/remove", cartHandler.RemoveItem)
	})

	r.Post("/checkout", checkoutHandler.PlaceOrder)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
