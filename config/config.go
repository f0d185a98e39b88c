package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

// StoreConfig locates the bolt database file. A relative filename is
// resolved under the system workdir.
type StoreConfig struct {
	Filename string `yaml:"filename" json:"filename"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System SysConfig    `yaml:"system" json:"system"`
	Web    WebConfig    `yaml:"web" json:"web"`
	Store  StoreConfig  `yaml:"store" json:"store"`
	Logger LoggerConfig `yaml:"logger" json:"logger"`
}

func (c *AppConfig) GetStorePath() string {
	if filepath.IsAbs(c.Store.Filename) {
		return c.Store.Filename
	}
	return filepath.Join(c.System.Workdir, c.Store.Filename)
}

func (c *AppConfig) GetLogPath() string {
	if filepath.IsAbs(c.Logger.Filename) {
		return c.Logger.Filename
	}
	return filepath.Join(c.System.Workdir, c.Logger.Filename)
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "webmart",
		Location: "Asia/Jakarta",
		Workdir:  "/var/webmart",
		Debug:    true,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 1816,
	},
	Store: StoreConfig{
		Filename: "webmart.db",
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "webmart.log",
	},
}

func setEnvValue(name string, val *string) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue
	}
}

// LoadConfig reads the YAML configuration file, falling back to
// DefaultAppConfig when the file does not exist. Selected values may be
// overridden from the environment.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				panic(err)
			}
		}
	}

	setEnvValue("WEBMART_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvValue("WEBMART_WEB_HOST", &cfg.Web.Host)
	setEnvValue("WEBMART_STORE_FILENAME", &cfg.Store.Filename)
	setEnvValue("WEBMART_LOGGER_MODE", &cfg.Logger.Mode)

	if cfg.System.Workdir == "" {
		cfg.System.Workdir = DefaultAppConfig.System.Workdir
	}
	if cfg.Web.Port == 0 {
		cfg.Web.Port = DefaultAppConfig.Web.Port
	}
	if cfg.Store.Filename == "" {
		cfg.Store.Filename = DefaultAppConfig.Store.Filename
	}
	return cfg
}
