package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vietanh2810/dining-pos-api/internal/domain"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Database *DatabaseConfig `mapstructure:"database"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	SQLite   *SQLiteConfig   `mapstructure:"sqlite"`
	Layout   *LayoutConfig   `mapstructure:"layout"`
	RabbitMQ *RabbitMQConfig `mapstructure:"rabbitmq"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver string `mapstructure:"driver"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

type SQLiteConfig struct {
	DSN string `mapstructure:"dsn"`
}

// LayoutConfig describes the floor canvas. Shapes maps a shape name to its footprint.
type LayoutConfig struct {
	CanvasWidth  int                    `mapstructure:"canvas_width"`
	CanvasHeight int                    `mapstructure:"canvas_height"`
	Margin       int                    `mapstructure:"margin"`
	Shapes       map[string]domain.Size `mapstructure:"shapes"`
}

type RabbitMQConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	URL            string        `mapstructure:"url"`
	Exchange       string        `mapstructure:"exchange"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.DB, c.Port, c.SSLMode)
}

// Canvas turns the layout section into the domain canvas.
func (c *LayoutConfig) Canvas() domain.Canvas {
	shapes := make(map[domain.TableShape]domain.Size, len(c.Shapes))
	for name, size := range c.Shapes {
		shapes[domain.TableShape(strings.ToLower(name))] = size
	}

	return domain.Canvas{
		Width:  c.CanvasWidth,
		Height: c.CanvasHeight,
		Margin: c.Margin,
		Shapes: shapes,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("sqlite.dsn", "file:dining.db?_foreign_keys=on")
	v.SetDefault("layout.canvas_width", 1200)
	v.SetDefault("layout.canvas_height", 800)
	v.SetDefault("layout.margin", 20)
	v.SetDefault("layout.shapes", map[string]any{
		"round":     map[string]any{"width": 80, "height": 80},
		"square":    map[string]any{"width": 80, "height": 80},
		"rectangle": map[string]any{"width": 120, "height": 80},
		"large":     map[string]any{"width": 160, "height": 100},
	})
	v.SetDefault("rabbitmq.exchange", "dining_events")
	v.SetDefault("rabbitmq.publish_timeout", "5s")
}

// Load reads the config file at path. Environment variables such as API_PORT or
// POSTGRES_HOST override the file.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}
	if err := conf.validate(); err != nil {
		return nil, err
	}

	// Only the log is refreshed on change. Layout and connections need a restart.
	v.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		zap.L().Warn(fmt.Sprintf("config file %v changed, restart the server to apply it", e.Name))
	})
	v.WatchConfig()

	return conf, nil
}

func (c *AppConfig) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	canvas := c.Layout.Canvas()
	if canvas.Width <= 0 || canvas.Height <= 0 || canvas.Margin < 0 {
		return fmt.Errorf("invalid layout canvas %dx%d with margin %d", canvas.Width, canvas.Height, canvas.Margin)
	}
	for _, shape := range []domain.TableShape{domain.ShapeRound, domain.ShapeSquare, domain.ShapeRectangle, domain.ShapeLarge} {
		size, ok := canvas.Shapes[shape]
		if !ok || size.Width <= 0 || size.Height <= 0 {
			return fmt.Errorf("layout shape %q needs a positive width and height", shape)
		}
	}

	return nil
}
