package main

import (
	"cmp"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/knights-analytics/hugot"
	goredis "github.com/redis/go-redis/v9"
	goopenai "github.com/sashabaranov/go-openai"
	"github.com/spf13/viper"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"go.uber.org/zap"
	"google.golang.org/genai"

	godprompt "github.com/moby123/the-god-prompt"
	googlegenai "github.com/moby123/the-god-prompt/adapter/google-genai"
	hugotAdapter "github.com/moby123/the-god-prompt/adapter/hugot"
	openaiAdapter "github.com/moby123/the-god-prompt/adapter/openai"
	qdrantAdapter "github.com/moby123/the-god-prompt/adapter/qdrant"
	redisAdapter "github.com/moby123/the-god-prompt/adapter/redis"
	"github.com/moby123/the-god-prompt/adapter/rest"
	weaviateAdapter "github.com/moby123/the-god-prompt/adapter/weaviate"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("logger: ", err)
	}
	defer logger.Sync()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		logger.Fatal("fatal error config file", zap.Error(err))
	}

	var sources godprompt.ScriptureSources
	if err := viper.UnmarshalKey("sources", &sources); err != nil {
		logger.Fatal("unmarshal sources", zap.Error(err))
	}
	if err := sources.Validate(); err != nil {
		logger.Fatal("invalid sources", zap.Error(err))
	}

	var (
		genaiClient  *genai.Client
		openaiClient *goopenai.Client
	)

	// The client gets the API key from the environment variable `GEMINI_API_KEY`.
	newGenaiClient := func() *genai.Client {
		if genaiClient != nil {
			return genaiClient
		}
		if os.Getenv("GEMINI_API_KEY") == "" {
			logger.Fatal("GEMINI_API_KEY is required for the google-genai adapter")
		}
		genaiClient, err = genai.NewClient(ctx, nil)
		if err != nil {
			logger.Fatal("genai client", zap.Error(err))
		}
		return genaiClient
	}

	newOpenAIClient := func() *goopenai.Client {
		if openaiClient != nil {
			return openaiClient
		}
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			logger.Fatal("OPENAI_API_KEY is required for the openai adapter")
		}
		openaiClient = goopenai.NewClient(apiKey)
		return openaiClient
	}

	// Embedder
	var embedder godprompt.Embedder
	switch name := viper.GetString("adapter.embed.name"); name {
	case "google-genai":
		embedder = googlegenai.New(
			newGenaiClient(),
			googlegenai.WithEmbeddingModel(viper.GetString("adapter.embed.model")),
			googlegenai.WithLogger(logger),
		)
	case "openai":
		embedder = openaiAdapter.New(
			newOpenAIClient(),
			openaiAdapter.WithEmbeddingModel(viper.GetString("adapter.embed.model")),
			openaiAdapter.WithDimensions(viper.GetInt("adapter.embed.dimensions")),
			openaiAdapter.WithLogger(logger),
		)
	case "hugot":
		session, err := hugot.NewGoSession()
		if err != nil {
			logger.Fatal("hugot session", zap.Error(err))
		}
		defer session.Destroy()
		embedder, err = hugotAdapter.New(ctx, session,
			hugotAdapter.WithModelName(viper.GetString("adapter.embed.model")),
			hugotAdapter.WithLogger(logger),
		)
		if err != nil {
			logger.Fatal("hugot adapter", zap.Error(err))
		}
	default:
		logger.Fatal("unknown embed adapter", zap.String("name", name))
	}
	logger.Info("embed adapter", zap.String("name", embedder.Name()))

	// Retriever
	var retriever godprompt.Retriever
	switch name := viper.GetString("adapter.retrieve.name"); name {
	case "weaviate":
		wvClient, err := weaviate.NewClient(weaviate.Config{
			Host:   viper.GetString("weaviate.addr"),
			Scheme: "http",
		})
		if err != nil {
			logger.Fatal("weaviate client", zap.Error(err))
		}
		collections := make([]string, 0, len(sources))
		for _, aSource := range sources {
			collections = append(collections, aSource.Collection)
		}
		retriever, err = weaviateAdapter.New(ctx, wvClient, collections,
			weaviateAdapter.WithLogger(logger),
		)
		if err != nil {
			logger.Fatal("weaviate adapter", zap.Error(err))
		}
	case "qdrant":
		qdrantURL := os.Getenv("QDRANT_URL")
		if qdrantURL == "" {
			logger.Fatal("QDRANT_URL is required for the qdrant adapter")
		}
		retriever = qdrantAdapter.New(qdrantURL,
			qdrantAdapter.WithAPIKey(os.Getenv("QDRANT_API_KEY")),
			qdrantAdapter.WithLogger(logger),
		)
	case "redis":
		redisClient := goredis.NewClient(&goredis.Options{
			Addr:     cmp.Or(os.Getenv("REDIS_ADDR"), "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			// Disable RESP3 to use FT.SEARCH map replies.
			Protocol: 2,
		})
		var err error
		retriever, err = redisAdapter.New(ctx, redisClient,
			redisAdapter.WithVectorDim(viper.GetInt("adapter.embed.dimensions")),
			redisAdapter.WithLogger(logger),
		)
		if err != nil {
			logger.Fatal("redis adapter", zap.Error(err))
		}
	default:
		logger.Fatal("unknown retrieve adapter", zap.String("name", name))
	}
	logger.Info("retrieve adapter", zap.String("name", retriever.Name()))

	// Generative model
	var generative godprompt.GenerativeModel
	switch name := viper.GetString("adapter.generate.name"); name {
	case "google-genai":
		generative = googlegenai.New(
			newGenaiClient(),
			googlegenai.WithGenerativeModel(viper.GetString("adapter.generate.model")),
			googlegenai.WithTemperature(float32(viper.GetFloat64("adapter.generate.temperature"))),
			googlegenai.WithLogger(logger),
		)
	case "openai":
		generative = openaiAdapter.New(
			newOpenAIClient(),
			openaiAdapter.WithGenerativeModel(viper.GetString("adapter.generate.model")),
			openaiAdapter.WithTemperature(float32(viper.GetFloat64("adapter.generate.temperature"))),
			openaiAdapter.WithLogger(logger),
		)
	default:
		logger.Fatal("unknown generate adapter", zap.String("name", name))
	}

	gp := godprompt.New(embedder, retriever, generative, sources,
		godprompt.WithTopK(cmp.Or(viper.GetInt("adapter.retrieve.topk"), 5)),
		godprompt.WithSourceTimeout(cmp.Or(viper.GetDuration("ask.source_timeout"), 60*time.Second)),
		godprompt.WithLogger(logger),
	)

	var (
		restAdapter = rest.New(gp,
			rest.WithAskTimeout(cmp.Or(viper.GetDuration("ask.timeout"), 2*time.Minute)),
			rest.WithLogger(logger),
		)
		mux = http.NewServeMux()
	)
	restAdapter.Routes(mux)

	address := "localhost:" + cmp.Or(viper.GetString("server.port"), "9030")

	httpServer := &http.Server{
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      3 * time.Minute,
		IdleTimeout:       30 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		Addr:              address,
		Handler:           mux,
	}

	logger.Info("listening", zap.String("address", address))

	go func() {
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
		logger.Info("stopped serving new connections")
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownRelease()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("HTTP shutdown error", zap.Error(err))
	}
	logger.Info("graceful shutdown complete")
}
