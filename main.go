package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-chase/api"
	gameapi "github.com/beka-birhanu/vinom-chase/api/game"
	api_i "github.com/beka-birhanu/vinom-chase/api/i"
	"github.com/beka-birhanu/vinom-chase/api/identity"
	"github.com/beka-birhanu/vinom-chase/config"
	pb "github.com/beka-birhanu/vinom-chase/game/pb_encoder"
	logger "github.com/beka-birhanu/vinom-chase/infrastruture/log"
	"github.com/beka-birhanu/vinom-chase/infrastruture/repo"
	"github.com/beka-birhanu/vinom-chase/infrastruture/sortedstorage"
	"github.com/beka-birhanu/vinom-chase/infrastruture/token"
	"github.com/beka-birhanu/vinom-chase/service"
	"github.com/beka-birhanu/vinom-chase/service/i"
	"github.com/beka-birhanu/vinom-chase/socket"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient        *mongo.Client
	redisClient        *redis.Client
	userRepo           *repo.UserRepo
	resultRepo         *repo.ResultRepo
	leaderboard        i.Leaderboard
	mazeService        i.MazeBuilder
	streamHub          *socket.Hub
	gameSessionManager i.GameSessionManager
	jwtTokenizer       i.Tokenizer
	authService        i.Authenticator
	controllers        []api_i.Controller
	router             *api.Router
	appLogger          i.Logger
)

func newLogger(prefix, color string) i.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating %s logger: %v\n", prefix, err)
		os.Exit(1)
	}
	return l
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRepos(ctx context.Context) {
	userRepo = repo.NewUserRepo(mongoClient, config.Envs.DBName, "users")
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Warning(fmt.Sprintf("Creating user indexes: %v", err))
	}

	resultRepo = repo.NewResultRepo(mongoClient, config.Envs.DBName, "results")
	if err := resultRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Warning(fmt.Sprintf("Creating result indexes: %v", err))
	}
	appLogger.Info("Repositories initialized")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initLeaderboard() {
	store := sortedstorage.NewRedisSortedStore(redisClient, config.Envs.LeaderboardTTLSeconds)
	leaderboard = service.NewLeaderboard(store, userRepo, config.Envs.LeaderboardPrefix)
	appLogger.Info("Leaderboard initialized")
}

func initSessionManager() {
	mazeService = service.NewMazeService(config.Envs.MaxMazeSize)
	streamHub = socket.NewHub(newLogger("STREAM", config.ColorMagenta))

	var err error
	gameSessionManager, err = service.NewGameSessionManager(&service.Config{
		Mazes:       mazeService,
		Encoder:     &pb.Protobuf{},
		Broadcaster: streamHub,
		Results:     resultRepo,
		Leaderboard: leaderboard,
		Logger:      newLogger("SESSION-MANAGER", config.ColorCyan),
		Tick:        time.Duration(config.Envs.TickMS) * time.Millisecond,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Session manager initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initControllers() {
	controllers = []api_i.Controller{
		identity.NewIdentityServer(authService),
		gameapi.NewMazeController(mazeService),
		gameapi.NewChaseController(gameSessionManager, streamHub),
		gameapi.NewRankingController(leaderboard, resultRepo),
	}
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             controllers,
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	appLogger = newLogger("APP", config.ColorGreen)
	config.Load()
	gin.SetMode(config.Envs.GinMode)

	setupCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	initMongo(setupCtx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	initRepos(setupCtx)

	initRedis(setupCtx)
	defer redisClient.Close()

	initLeaderboard()
	initSessionManager()
	initJWTTokenizer()
	initAuthService()
	initControllers()
	initRouter(jwtTokenizer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := router.Run(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Running server: %v", err))
	}

	gameSessionManager.StopAll()
	appLogger.Info("All sessions stopped")
}
