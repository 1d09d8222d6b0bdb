// Package loader 负责加载并校验服务启动配置，产出强类型 Bundle。
package loader

import (
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/bionicotaku/lingo-services-admin/internal/infrastructure/logger"

	txconfig "github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	envConfPath        = "CONF_PATH"
	envServiceName     = "SERVICE_NAME"
	envServiceVersion  = "SERVICE_VERSION"
	envAppEnv          = "APP_ENV"
	envDatabaseURL     = "DATABASE_URL"
	envPort            = "PORT"
	envGCSBucket       = "GCS_BUCKET"
	envPubSubProjectID = "PUBSUB_PROJECT_ID"
	envPubSubTopicID   = "PUBSUB_TOPIC_ID"
)

var envFileNames = []string{".env.local", ".env"}

// Params 包含构造配置 Bundle 所需的运行时输入参数。
type Params struct {
	ConfPath string // 配置文件路径（可为空，使用默认值）
}

// ServiceMetadata 保存服务标识信息，供日志组件使用。
type ServiceMetadata struct {
	Name        string
	Version     string
	Environment string
	InstanceID  string
}

// LoggerConfig 将服务元信息转换为 logger.Config。
func (m ServiceMetadata) LoggerConfig() logger.Config {
	return logger.Config{
		Service: m.Name,
		Version: m.Version,
		HostID:  m.InstanceID,
		Env:     m.Environment,
	}
}

// Bundle 聚合强类型的配置片段，供下游 Wire 注入使用。
type Bundle struct {
	Bootstrap *Bootstrap
	Service   ServiceMetadata
	TxConfig  txconfig.Config
}

// BuildError 捕获配置构建过程中的上下文错误信息。
type BuildError struct {
	Stage string
	Path  string
	Err   error
}

// Error 实现 error 接口，提供包含上下文的错误信息。
func (e BuildError) Error() string {
	if e.Stage == "" {
		return e.Err.Error()
	}
	if e.Path != "" {
		return fmt.Sprintf("config %s at %q: %v", e.Stage, e.Path, e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Stage, e.Err)
}

// Unwrap 暴露底层错误，支持 errors.Is/As 链式查询。
func (e BuildError) Unwrap() error {
	return e.Err
}

// Build 从 bootstrap 配置文件构建 Bundle，包含配置对象和服务元信息。
//
// 流程：
// 1. 解析配置路径（应用回退规则）
// 2. 加载配置并执行结构化校验
// 3. 推导服务元信息（来自环境变量/默认值）
func Build(params Params) (*Bundle, error) {
	confPath := ResolveConfPath(params.ConfPath)
	loadEnvFiles(confPath)

	bootstrap, err := loadBootstrap(confPath)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Bootstrap: bootstrap,
		Service:   buildServiceMetadata(),
		TxConfig:  toTxManagerConfig(bootstrap.Data.Postgres),
	}, nil
}

// ResolveConfPath 应用回退规则确定要加载的配置目录/文件路径。
// 优先级：显式传入路径 > CONF_PATH 环境变量 > 默认路径。
func ResolveConfPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(envConfPath); env != "" {
		return env
	}
	return defaultConfPath
}

// loadBootstrap 从指定路径加载、覆盖并校验 Bootstrap 配置。
func loadBootstrap(confPath string) (*Bootstrap, error) {
	c := config.New(config.WithSource(file.NewSource(confPath)))
	if err := c.Load(); err != nil {
		return nil, BuildError{Stage: "load", Path: confPath, Err: err}
	}
	defer c.Close()

	var bc Bootstrap
	if err := c.Scan(&bc); err != nil {
		return nil, BuildError{Stage: "scan", Path: confPath, Err: err}
	}
	applyEnvOverrides(&bc)

	if err := validator.New().Struct(&bc); err != nil {
		return nil, BuildError{Stage: "validate", Path: confPath, Err: err}
	}
	return &bc, nil
}

// applyEnvOverrides 应用环境变量覆盖配置文件中的特定字段。
//
// 支持的环境变量：
//   - DATABASE_URL: 覆盖 data.postgres.dsn
//   - PORT: 覆盖 server.http.addr 的端口部分（Cloud Run 动态端口）
//   - GCS_BUCKET: 覆盖 storage.bucket
//   - PUBSUB_PROJECT_ID / PUBSUB_TOPIC_ID: 覆盖 outbox 发布目标
//
// 环境变量为空时不覆盖，保留配置文件原值。
func applyEnvOverrides(bc *Bootstrap) {
	if bc == nil {
		return
	}
	if dsn := os.Getenv(envDatabaseURL); dsn != "" {
		if bc.Data != nil && bc.Data.Postgres != nil {
			bc.Data.Postgres.DSN = dsn
		}
	}
	if port := os.Getenv(envPort); port != "" {
		if bc.Server != nil && bc.Server.HTTP != nil {
			bc.Server.HTTP.Addr = replacePort(bc.Server.HTTP.Addr, port)
		}
	}
	if bucket := os.Getenv(envGCSBucket); bucket != "" {
		if bc.Storage != nil {
			bc.Storage.Bucket = bucket
		}
	}
	if bc.Outbox != nil {
		if project := os.Getenv(envPubSubProjectID); project != "" {
			bc.Outbox.ProjectID = project
		}
		if topic := os.Getenv(envPubSubTopicID); topic != "" {
			bc.Outbox.TopicID = topic
		}
	}
}

// buildServiceMetadata 构建服务元信息，用于日志标签与实例标识。
func buildServiceMetadata() ServiceMetadata {
	host, _ := os.Hostname()
	return ServiceMetadata{
		Name:        resolveServiceName(os.Getenv(envServiceName)),
		Version:     resolveServiceVersion(os.Getenv(envServiceVersion)),
		Environment: resolveEnvironment(os.Getenv(envAppEnv)),
		InstanceID:  resolveInstanceID(host),
	}
}

// loadEnvFiles best-effort 加载配置相关的 .env 文件，失败时忽略以保持幂等。
func loadEnvFiles(confPath string) {
	files := envFileCandidates(confPath)
	if len(files) == 0 {
		return
	}
	_ = godotenv.Load(files...)
}

// envFileCandidates 搜索并返回所有存在的 .env 文件路径。
// 目录优先级：confPath 所在目录 > 当前工作目录；
// 文件优先级：.env.local > .env，先加载的变量不会被覆盖。
func envFileCandidates(confPath string) []string {
	dirs := orderedDirs(confPath)
	seen := make(map[string]struct{})
	var files []string
	for _, dir := range dirs {
		for _, name := range envFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if _, ok := seen[candidate]; ok {
				continue
			}
			files = append(files, candidate)
			seen[candidate] = struct{}{}
		}
	}
	return files
}

// orderedDirs 按优先级返回用于搜索 .env 文件的目录列表（已去重）。
func orderedDirs(confPath string) []string {
	var dirs []string
	appendUnique := func(path string) {
		if path == "" {
			return
		}
		clean := filepath.Clean(path)
		for _, existing := range dirs {
			if existing == clean {
				return
			}
		}
		dirs = append(dirs, clean)
	}

	if confPath != "" {
		if info, err := os.Stat(confPath); err == nil {
			if info.IsDir() {
				appendUnique(confPath)
			} else {
				appendUnique(filepath.Dir(confPath))
			}
		}
	}

	if cwd, err := os.Getwd(); err == nil {
		appendUnique(cwd)
	}

	return dirs
}

// replacePort 替换地址中的端口部分，保留 host。
// 支持格式：
//   - "0.0.0.0:9090" -> "0.0.0.0:8080"
//   - ":9090" -> ":8080"
//   - "[::1]:9090" -> "[::1]:8080"
func replacePort(addr, newPort string) string {
	if addr == "" {
		return "0.0.0.0:" + newPort
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return "0.0.0.0:" + newPort
	}
	return net.JoinHostPort(host, newPort)
}

func toTxManagerConfig(pg *Postgres) txconfig.Config {
	if pg == nil || pg.Transaction == nil {
		return txconfig.Config{}
	}
	tx := pg.Transaction
	cfg := txconfig.Config{
		DefaultIsolation: tx.DefaultIsolation,
		DefaultTimeout:   tx.DefaultTimeout.AsDuration(),
		LockTimeout:      tx.LockTimeout.AsDuration(),
		MaxRetries:       int(tx.MaxRetries),
	}
	if tx.MetricsEnabled != nil {
		v := *tx.MetricsEnabled
		cfg.MetricsEnabled = &v
	}
	return cfg
}
