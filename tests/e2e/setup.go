//go:build e2e

package e2e

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"scooter-rental/cmd/bootstrap"
	"scooter-rental/cmd/bootstrap/components"
	"scooter-rental/internal/infra/db"
	"scooter-rental/internal/pkg/clock"
	"scooter-rental/internal/pkg/config"
	"scooter-rental/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // wait.ForSQL の "pgx" ドライバ
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	testUser     = "test"
	testPassword = "testpass"
)

// ------------------------------------------------------------
// プロセス内で共有するコンテナ
// ------------------------------------------------------------
type sharedContainer struct {
	once      sync.Once
	container testcontainers.Container
	err       error
}

var (
	postgresContainer sharedContainer
	redisContainer    sharedContainer
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

func (c ContainerInfo) Addr() string {
	return c.Host + ":" + c.Port.Port()
}

// start launches the container on first use and returns its mapped port.
// Ryuk removes it when the test process exits.
func (s *sharedContainer) start(t *testing.T, req testcontainers.ContainerRequest, port nat.Port) ContainerInfo {
	t.Helper()
	s.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()
		s.container, s.err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
	})
	require.NoError(t, s.err, "%sコンテナの起動に失敗", req.Name)

	ctx := context.Background()
	mapped, err := s.container.MappedPort(ctx, port)
	require.NoError(t, err, "%sのポート取得に失敗", req.Name)
	host, err := s.container.Host(ctx)
	require.NoError(t, err, "%sのホスト取得に失敗", req.Name)
	return ContainerInfo{Host: host, Port: mapped}
}

func startPostgres(t *testing.T) ContainerInfo {
	return postgresContainer.start(t, testcontainers.ContainerRequest{
		Image:        "postgres:17",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     testUser,
			"POSTGRES_PASSWORD": testPassword,
			"POSTGRES_DB":       "postgres",
		},
		Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=256m"},
		// テスト用途なので耐久性を捨てる
		Cmd: []string{
			"postgres",
			"-c", "fsync=off",
			"-c", "full_page_writes=off",
			"-c", "synchronous_commit=off",
			"-c", "max_connections=200",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
			return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
				testUser, testPassword, host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
		Name:   "scooter-postgres-e2e",
		Labels: map[string]string{"purpose": "e2e-tests"},
	}, "5432/tcp")
}

func startRedis(t *testing.T) ContainerInfo {
	return redisContainer.start(t, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		Cmd:          []string{"redis-server", "--save", "", "--appendonly", "no"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		Name:         "scooter-redis-e2e",
		Labels:       map[string]string{"purpose": "e2e-tests"},
	}, "6379/tcp")
}

// ------------------------------------------------------------
// 各テストスイート用の環境
// ------------------------------------------------------------
type e2eEnv struct {
	pool     *pgxpool.Pool
	redis    *redis.Client
	router   *gin.Engine
	cfg      config.Config
	clock    *clock.MockClock
	external *StubExternal
}

func setupE2EEnvironment(t *testing.T) e2eEnv {
	gin.SetMode(gin.TestMode)

	postgresInfo := startPostgres(t)
	redisInfo := startRedis(t)

	pool, dbConfig := prepareDatabase(t, postgresInfo)

	redisClient := redis.NewClient(&redis.Options{Addr: redisInfo.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	external := NewStubExternal()
	t.Cleanup(external.Close)

	mockClock := clock.NewMockClock(time.Now().UTC())

	cfg := createTestConfig(dbConfig, redisInfo, external.URL())
	router, app := buildE2EApp(t, pool, cfg, mockClock)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("fxアプリケーションの停止に失敗しました", "error", err.Error())
		}
	})

	return e2eEnv{pool: pool, redis: redisClient, router: router, cfg: cfg, clock: mockClock, external: external}
}

// ------------------------------------------------------------
// データベース準備
// ------------------------------------------------------------

// prepareDatabase creates a throwaway database, applies every migration and
// drops the database on cleanup.
func prepareDatabase(t *testing.T, info ContainerInfo) (*pgxpool.Pool, config.DBConfig) {
	t.Helper()

	dbName := "testdb_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	adminDSN := fmt.Sprintf("postgres://%s:%s@%s/postgres?sslmode=disable", testUser, testPassword, info.Addr())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "管理者接続に失敗")
	defer adminPool.Close()

	// 起動直後はテンプレートDBがロックされていることがある
	for attempt := 0; attempt < 5; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
		}
		if _, err = adminPool.Exec(ctx, "CREATE DATABASE "+dbName); err == nil {
			break
		}
		slog.Warn("データベース作成を再試行します", "attempt", attempt+1, "error", err.Error())
	}
	require.NoError(t, err, "テスト用データベースの作成に失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		cleanupPool, err := pgxpool.New(ctx, adminDSN)
		if err != nil {
			slog.Warn("クリーンアップ用の接続に失敗しました", "database", dbName, "error", err.Error())
			return
		}
		defer cleanupPool.Close()
		if _, err := cleanupPool.Exec(ctx, "DROP DATABASE IF EXISTS "+dbName+" WITH (FORCE)"); err != nil {
			slog.Warn("テストデータベースの削除に失敗しました", "database", dbName, "error", err.Error())
		}
	})

	dbConfig := config.DBConfig{
		Host:     info.Host,
		Port:     info.Port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "UTC",
	}

	pool, cleanup, err := db.Connect(dbConfig)
	require.NoError(t, err, "データベース接続に失敗")
	t.Cleanup(cleanup)

	require.NoError(t, applyMigrations(ctx, pool), "マイグレーションに失敗")
	return pool, dbConfig
}

// applyMigrations runs migrations/*.sql in file name order.
func applyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := moduleRoot()
	if err != nil {
		return err
	}
	files, err := filepath.Glob(filepath.Join(root, "migrations", "*.sql"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no migration files found")
	}
	sort.Strings(files)

	for _, file := range files {
		sqlContent, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		if _, err := pool.Exec(ctx, string(sqlContent)); err != nil {
			return fmt.Errorf("execute migration %s: %w", file, err)
		}
	}
	return nil
}

// moduleRoot walks up from the package directory `go test` runs in.
func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found above working directory")
		}
		dir = parent
	}
}

// ------------------------------------------------------------
// アプリケーション構築
// ------------------------------------------------------------

// buildE2EApp wires the production modules around the test pool and config.
// Only the clock is replaced.
func buildE2EApp(t *testing.T, pool *pgxpool.Pool, cfg config.Config, mockClock *clock.MockClock) (*gin.Engine, *fx.App) {
	t.Helper()
	var router *gin.Engine

	app := fx.New(
		fx.Supply(pool, cfg),
		fx.Provide(bootstrap.NewBaseConfigMap),
		bootstrap.LoggerModule,
		components.PersistenceModule,
		components.ExternalModule,
		components.CacheModule,
		components.EventsModule,
		components.UseCaseModule,
		components.HandlerModule,

		// 課金時間を制御するため時計を差し替える
		fx.Decorate(func(clock.Clock) clock.Clock { return mockClock }),

		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "fxアプリケーションの起動に失敗")
	require.NotNil(t, router)

	return router, app
}

func createTestConfig(dbConfig config.DBConfig, redisInfo ContainerInfo, externalURL string) config.Config {
	cfg := config.NewTestConfig()
	dbConfig.TxMaxRetries, dbConfig.TxRetryBase = cfg.DB.TxMaxRetries, cfg.DB.TxRetryBase
	cfg.DB = dbConfig
	cfg.External.BaseURL = externalURL
	cfg.Cache.Backend = "redis"
	cfg.Redis.Addr = redisInfo.Addr()
	// スタブの設定変更を即時反映させる
	cfg.Cache.ConfigTTL = time.Millisecond
	cfg.Cache.ZoneTTL = time.Millisecond
	return cfg
}

// ------------------------------------------------------------
// E2Eテストスイートで共通のセットアップ
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router   *gin.Engine
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Config   config.Config
	Clock    *clock.MockClock
	External *StubExternal
}

func (s *SharedSuite) SetupSuite() {
	env := setupE2EEnvironment(s.T())
	s.DB = env.pool
	s.Redis = env.redis
	s.Router = env.router
	s.Config = env.cfg
	s.Clock = env.clock
	s.External = env.external
}

func (s *SharedSuite) SetupTest() {
	s.resetState()
}

func (s *SharedSuite) SetupSubTest() {
	s.resetState()
}

// TRUNCATEと外部スタブの初期化で各テストを独立させる
func (s *SharedSuite) resetState() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "DBの初期化に失敗")
	require.NoError(s.T(), s.Redis.FlushDB(context.Background()).Err(), "Redisの初期化に失敗")
	s.External.Reset()
	s.Clock.Set(time.Now().UTC())
}
