package infra

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix env prefix for viper
const EnvPrefix = "CAPLET"

// runtime environments
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// AppConfig App option object
type AppConfig struct {
	AppID          string        `mapstructure:"app_id" json:"app_id" yaml:"app_id" validate:"required"`            // Application ID
	Host           string        `mapstructure:"host" json:"host" yaml:"host"`                                      // bind host address
	Port           int           `mapstructure:"port" json:"port" yaml:"port" validate:"min=1,max=65535"`           // bind listen port
	Env            string        `mapstructure:"env" json:"env" yaml:"env" validate:"oneof=development production"` // runtime environment
	RequestTimeout time.Duration `mapstructure:"request_timeout" json:"request_timeout" yaml:"request_timeout"`     // per request deadline
	Directory      struct {
		Driver    string        `mapstructure:"driver" json:"driver" yaml:"driver" validate:"oneof=http redis"` // where course records come from
		BaseURL   string        `mapstructure:"base_url" json:"base_url" yaml:"base_url" validate:"omitempty,url"`
		Timeout   time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`
		KeyPrefix string        `mapstructure:"key_prefix" json:"key_prefix" yaml:"key_prefix"` // redis key prefix
	} `mapstructure:"directory" json:"directory" yaml:"directory"`
	Progress struct {
		Driver  string        `mapstructure:"driver" json:"driver" yaml:"driver" validate:"oneof=http sql none"` // where viewer progress comes from
		BaseURL string        `mapstructure:"base_url" json:"base_url" yaml:"base_url" validate:"omitempty,url"`
		Timeout time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`
	} `mapstructure:"progress" json:"progress" yaml:"progress"`
	Database struct {
		Driver   string `mapstructure:"driver" json:"driver" yaml:"driver" validate:"oneof=mysql postgres"`          // driver name
		Host     string `mapstructure:"host" json:"host" yaml:"host"`                                                // server host
		MaxConn  int32  `mapstructure:"maxconn" json:"maxconn" yaml:"maxconn" validate:"min=1"`                      // maximum opening connections number
		Password string `mapstructure:"password" json:"-" yaml:"password"`                                           // db password
		Port     int    `mapstructure:"port" json:"port" yaml:"port"`                                                // server port
		Protocol string `mapstructure:"protocol" json:"protocol" yaml:"protocol" validate:"omitempty,oneof=tcp udp"` // connection protocol, eg.tcp
		Query    string `mapstructure:"query" json:"query" yaml:"query"`                                             // DSN query parameter
		Schema   string `mapstructure:"schema" json:"schema" yaml:"schema"`                                          // use schema
		User     string `mapstructure:"username" json:"username" yaml:"username"`                                    // db username
	} `mapstructure:"database" json:"database" yaml:"database"`
	Logging struct {
		FilePath string `mapstructure:"file_path" json:"file_path" yaml:"file_path"`                            // log file path
		Level    string `mapstructure:"level" json:"level" yaml:"level" validate:"oneof=debug info warn error"` // global logging level
	} `mapstructure:"logging" json:"logging" yaml:"logging"`
	Security struct {
		IDLength  int    `mapstructure:"id_length" json:"id_length" yaml:"id_length" validate:"min=1"` // length of generated request ID
		JWTMethod string `mapstructure:"jwt_method" json:"jwt_method" yaml:"jwt_method" validate:"oneof=HS256 HS512"`
		JWTSecret string `mapstructure:"jwt_secret" json:"-" yaml:"jwt_secret"`
		TokenName string `mapstructure:"token_name" json:"token_name" yaml:"token_name" validate:"required"` // cookie holding the viewer token
	} `mapstructure:"security" json:"security" yaml:"security"`
	KVStore struct {
		Host     string `mapstructure:"host" json:"host" yaml:"host"`      // bind host address
		Port     int    `mapstructure:"port" json:"port" yaml:"port"`      // bind listen port
		Password string `mapstructure:"password" json:"-" yaml:"password"` // password for security reasons
		DB       int    `mapstructure:"db" json:"db" yaml:"db" validate:"min=0"`
	} `mapstructure:"kv" json:"kv" yaml:"kv"`
	Content struct {
		File string `mapstructure:"file" json:"file" yaml:"file"` // yaml file overriding landing copy
	} `mapstructure:"content" json:"content" yaml:"content"`
	DevOP struct {
		APM bool `mapstructure:"apm" json:"apm" yaml:"apm"`
	} `mapstructure:"devop" json:"devop" yaml:"devop"`
}

// InitConfig init app config from command line and environment
func InitConfig() (*AppConfig, error) {
	return LoadConfig(pflag.CommandLine, os.Args[1:])
}

// LoadConfig register flags on fs, parse args and merge the environment
func LoadConfig(fs *pflag.FlagSet, args []string) (*AppConfig, error) {
	registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	envFile, _ := fs.GetString("env_file")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config = new(AppConfig)
	if err := v.Unmarshal(config); err != nil {
		return nil, err
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	if config.Logging.Level == "debug" {
		if configJSON, err := json.MarshalIndent(config, "", "  "); err == nil {
			log.Printf("App config: %s\n", string(configJSON))
		}
	}
	return config, nil
}

func registerFlags(fs *pflag.FlagSet) {
	// app
	fs.String("env_file", ".env", "dotenv file loaded before reading the environment, skipped when missing")
	fs.String("host", "", "binding address")
	fs.String("app_id", "caplet", "application identifier")
	fs.String("env", EnvDevelopment, "runtime environment, can be 'development' or 'production'")
	fs.Int("port", 8081, "listening port")
	fs.Duration("request_timeout", 30*time.Second, "per request deadline(m, s and h units are supported), eg.30s")

	// directory
	fs.String("directory.driver", "http", "course directory backend, can be 'http' or 'redis'")
	fs.String("directory.base_url", "", "course directory API root (required by the http driver)")
	fs.Duration("directory.timeout", 10*time.Second, "course directory request timeout")
	fs.String("directory.key_prefix", "caplet:", "redis key prefix for course records")

	// progress
	fs.String("progress.driver", "http", "progress backend, can be 'http', 'sql' or 'none'")
	fs.String("progress.base_url", "", "progress API root (required by the http driver)")
	fs.Duration("progress.timeout", 5*time.Second, "progress request timeout")

	// database
	fs.String("database.driver", "mysql", "database driver to use, can be 'mysql' or 'postgres'")
	fs.String("database.host", "127.0.0.1", "database host")
	fs.Int("database.port", 3306, "database server port")
	fs.String("database.protocol", "", "connection protocol(if mysql is used, this flag must be set), eg.tcp")
	fs.String("database.username", "", "database username (required by the sql progress driver)")
	fs.String("database.password", "", "database password")
	fs.String("database.schema", "", "database schema (required by the sql progress driver)")
	fs.String("database.query", "", `additional DSN query parameters('?' is auto prefixed), if you work with mysql and wish to
work with time.Time, you may specify "parseTime=true"`)
	fs.Int32("database.maxconn", 20, "max connection count")

	// logging
	fs.String("logging.level", "info", "logging level")
	fs.String("logging.file_path", "", "log to file")

	// security
	fs.Int("security.id_length", 21, "length of generated request ID")
	fs.String("security.jwt_method", "HS256", "hash algorithm used for viewer tokens")
	fs.String("security.jwt_secret", "", "JWT secret (required by the sql progress driver)")
	fs.String("security.token_name", "caplet_token", "cookie name carrying the viewer token")

	// kv storage
	fs.String("kv.host", "127.0.0.1", "kv host")
	fs.Int("kv.port", 6379, "kv server port")
	fs.String("kv.password", "", "kv server password")
	fs.Int("kv.db", 0, "kv database index")

	// content
	fs.String("content.file", "", "yaml file overriding the landing page features and FAQ")

	// DevOp
	fs.Bool("devop.apm", false, "enable apm metrics")
}

func validateConfig(config *AppConfig) error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("mapstructure")
		if name == "-" || name == "" {
			return ""
		}
		return name
	})

	var msg []string
	err := validate.Struct(config)
	if _, ok := err.(*validator.InvalidValidationError); ok {
		return fmt.Errorf("failed to validate config: %w", err)
	}
	if err != nil {
		for _, field := range err.(validator.ValidationErrors) {
			namespace := field.Namespace()
			fieldName := namespace[strings.IndexByte(namespace, '.')+1:] // trim top level namespace
			switch field.Tag() {
			case "required":
				msg = append(msg, fmt.Sprintf("%s is required", fieldName))
			case "oneof":
				msg = append(msg, fmt.Sprintf("%s must be one of (%s)", fieldName, field.Param()))
			case "url":
				msg = append(msg, fmt.Sprintf("%s must be an absolute URL", fieldName))
			default:
				msg = append(msg, fmt.Sprintf("%s failed on %s=%s", fieldName, field.Tag(), field.Param()))
			}
		}
	}
	msg = append(msg, crossCheck(config)...)

	if len(msg) > 0 {
		return fmt.Errorf("failed to validate config: \n%s", strings.Join(msg, "\n"))
	}
	return nil
}

// crossCheck fields required only by the selected drivers
func crossCheck(config *AppConfig) (msg []string) {
	if config.Directory.Driver == "http" && config.Directory.BaseURL == "" {
		msg = append(msg, "directory.base_url is required when directory.driver is http")
	}
	switch config.Progress.Driver {
	case "http":
		if config.Progress.BaseURL == "" {
			msg = append(msg, "progress.base_url is required when progress.driver is http")
		}
	case "sql":
		if config.Database.User == "" {
			msg = append(msg, "database.username is required when progress.driver is sql")
		}
		if config.Database.Schema == "" {
			msg = append(msg, "database.schema is required when progress.driver is sql")
		}
		if config.Security.JWTSecret == "" {
			msg = append(msg, "security.jwt_secret is required when progress.driver is sql")
		}
	}
	return
}
