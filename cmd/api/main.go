package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/Juadebfm/payment/internal/gateway"
	"github.com/Juadebfm/payment/internal/infra/http/handler"
	internalMiddleware "github.com/Juadebfm/payment/internal/infra/http/middleware"
	"github.com/Juadebfm/payment/internal/infra/mongodb"
	"github.com/Juadebfm/payment/internal/infra/rabbitmq"
	redisInfra "github.com/Juadebfm/payment/internal/infra/redis"
	"github.com/Juadebfm/payment/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// In production (Docker/K8s) there is no .env file, only real env vars.
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using system environment variables")
	}
	ctx := context.Background()

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	mongoDB := os.Getenv("MONGO_DB")
	if mongoDB == "" {
		mongoDB = "payment"
	}

	mongoClient, err := mongo.Connect(options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("could not create MongoDB client")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("MongoDB is not responding")
	}
	cancel()
	log.Info().Msg("connected to MongoDB")

	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		redisHost = "localhost"
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr: redisHost + ":6379",
	})
	redisAvailable := true
	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisAvailable = false
		log.Warn().Err(err).Msg("could not connect to Redis (idempotency disabled)")
	} else {
		log.Info().Msg("connected to Redis")
	}

	rabbitUser := os.Getenv("RABBITMQ_USER")
	rabbitPass := os.Getenv("RABBITMQ_PASS")
	rabbitHost := os.Getenv("RABBITMQ_HOST")
	if rabbitHost == "" {
		rabbitHost = "localhost"
	}

	rabbitURL := "amqp://" + rabbitUser + ":" + rabbitPass + "@" + rabbitHost + ":5672/"
	rabbitConn, err := amqp.DialConfig(rabbitURL, amqp.Config{
		Properties: amqp.Table{
			"connection_name": "WalletAPI_Publisher",
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("could not connect to RabbitMQ (events will not be sent)")
	} else {
		defer rabbitConn.Close()
		log.Info().Msg("connected to RabbitMQ")
	}

	var eventPublisher gateway.EventPublisher
	if rabbitConn != nil {
		ch, err := rabbitConn.Channel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open RabbitMQ channel")
		}
		defer ch.Close()

		err = ch.ExchangeDeclare(
			"wallet_events", // name
			"topic",         // type
			true,            // durable
			false,           // auto-deleted
			false,           // internal
			false,           // no-wait
			nil,             // arguments
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to declare exchange")
		}

		eventPublisher = rabbitmq.NewPublisher(ch)
	}

	// Infrastructure layer (repositories)
	idempotencyRepo := redisInfra.NewIdempotencyRepository(redisClient)
	accountRepository := mongodb.NewAccountRepository(mongoClient, mongoDB)
	transactionRepository := mongodb.NewTransactionRepository(mongoClient, mongoDB)

	// UseCase layer (business rules)
	recordTransactionUseCase := usecase.NewRecordTransaction(accountRepository, transactionRepository, eventPublisher)
	listTransactionsUseCase := usecase.NewListTransactions(transactionRepository)
	getTransactionUseCase := usecase.NewGetTransaction(transactionRepository)
	createAccountUseCase := usecase.NewCreateAccount(accountRepository)
	getAccountUseCase := usecase.NewGetAccount(accountRepository, transactionRepository)

	// Handlers
	transactionHandler := handler.NewTransactionHandler(recordTransactionUseCase, listTransactionsUseCase, getTransactionUseCase)
	accountHandler := handler.NewAccountHandler(createAccountUseCase, getAccountUseCase)

	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("failed to write health check response")
		}
	})

	// Everything below requires an authenticated identity from the upstream
	// gateway (X-User-ID).
	router.Group(func(r chi.Router) {
		r.Use(internalMiddleware.Identity)

		r.Post("/accounts", accountHandler.Create)
		r.Get("/accounts/me", accountHandler.Me)

		r.Get("/transactions", transactionHandler.List)
		r.Get("/transactions/{id}", transactionHandler.Get)

		r.Group(func(r chi.Router) {
			// Without Redis the middleware would only fail open on every
			// keyed POST; leave it unwired so "disabled" means disabled.
			if redisAvailable {
				r.Use(internalMiddleware.Idempotency(idempotencyRepo))
			}
			r.Post("/transactions", transactionHandler.Create)
		})
	})

	port := ":8080"
	log.Info().Msgf("server listening on %s", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatal().Err(err).Msg("failed to start HTTP server")
	}
}
