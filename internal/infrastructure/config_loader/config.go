package loader

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration 支持从 YAML/JSON 的 "5s" 字符串或纳秒数值反序列化。
type Duration time.Duration

// UnmarshalJSON 实现 json.Unmarshaler。
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	case float64:
		*d = Duration(time.Duration(v))
	default:
		return fmt.Errorf("invalid duration value %v", raw)
	}
	return nil
}

// AsDuration 返回标准库时间间隔；接收者为 nil 时返回零值。
func (d *Duration) AsDuration() time.Duration {
	if d == nil {
		return 0
	}
	return time.Duration(*d)
}

// Bootstrap 是配置文件的顶层结构。
type Bootstrap struct {
	Server  *Server  `json:"server" validate:"required"`
	Data    *Data    `json:"data" validate:"required"`
	Storage *Storage `json:"storage" validate:"required"`
	Outbox  *Outbox  `json:"outbox"`
}

// Server 描述对外监听配置。
type Server struct {
	HTTP *HTTPServer `json:"http" validate:"required"`
}

// HTTPServer 描述 HTTP 服务器配置。
type HTTPServer struct {
	Network string    `json:"network"`
	Addr    string    `json:"addr" validate:"required"`
	Timeout *Duration `json:"timeout"`
}

// Data 描述数据侧依赖配置。
type Data struct {
	Postgres *Postgres `json:"postgres" validate:"required"`
}

// Postgres 描述连接池与事务参数。
type Postgres struct {
	DSN                      string       `json:"dsn"`
	Schema                   string       `json:"schema"`
	MaxOpenConns             int32        `json:"max_open_conns"`
	MinOpenConns             int32        `json:"min_open_conns"`
	MaxConnLifetime          *Duration    `json:"max_conn_lifetime"`
	MaxConnIdleTime          *Duration    `json:"max_conn_idle_time"`
	HealthCheckPeriod        *Duration    `json:"health_check_period"`
	EnablePreparedStatements bool         `json:"enable_prepared_statements"`
	Transaction              *Transaction `json:"transaction"`
}

// Transaction 描述 txmanager 的默认事务参数。
type Transaction struct {
	DefaultIsolation string    `json:"default_isolation"`
	DefaultTimeout   *Duration `json:"default_timeout"`
	LockTimeout      *Duration `json:"lock_timeout"`
	MaxRetries       int32     `json:"max_retries"`
	MetricsEnabled   *bool     `json:"metrics_enabled"`
}

// Storage 描述媒体文件落盘的 GCS 参数。
type Storage struct {
	Bucket        string    `json:"bucket" validate:"required"`
	PublicBaseURL string    `json:"public_base_url"`
	UploadTimeout *Duration `json:"upload_timeout"`
}

// Outbox 描述发件箱发布任务的参数；缺省时任务退化为空转。
type Outbox struct {
	ProjectID    string    `json:"project_id"`
	TopicID      string    `json:"topic_id"`
	PollInterval *Duration `json:"poll_interval"`
	BatchSize    int32     `json:"batch_size"`
	RetryBackoff *Duration `json:"retry_backoff"`
	OrderingKey  bool      `json:"ordering_key"`
}
