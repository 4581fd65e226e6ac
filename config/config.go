package config

import (
	"fmt"
	"os"
	"path"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// SysConfig holds process-level settings.
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type WebConfig struct {
	Host         string `yaml:"host" json:"host"`
	Port         int    `yaml:"port" json:"port"`
	Secret       string `yaml:"secret" json:"secret"`
	ClientOrigin string `yaml:"client_origin" json:"client_origin"`
}

// AdminConfig identifies the single storefront administrator.
// PasswordHash is a bcrypt hash, never a plain password.
type AdminConfig struct {
	Email        string `yaml:"email" json:"email"`
	PasswordHash string `yaml:"password_hash" json:"password_hash"`
}

// DBConfig selects the catalog store backend.
// Type is one of file, sqlite, postgres.
type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// StorageConfig points at an S3-compatible bucket (Cloudflare R2).
// All fields empty means image storage is disabled and the API serves
// placeholders.
type StorageConfig struct {
	AccountID     string `yaml:"account_id" json:"account_id"`
	AccessKey     string `yaml:"access_key" json:"access_key"`
	SecretKey     string `yaml:"secret_key" json:"secret_key"`
	Bucket        string `yaml:"bucket" json:"bucket"`
	Region        string `yaml:"region" json:"region"`
	PublicBaseURL string `yaml:"public_base_url" json:"public_base_url"`
}

type CheckoutConfig struct {
	StoreName      string `yaml:"store_name" json:"store_name"`
	WhatsappNumber string `yaml:"whatsapp_number" json:"whatsapp_number"`
}

type AppConfig struct {
	System   SysConfig      `yaml:"system" json:"system"`
	Logger   LoggerConfig   `yaml:"logger" json:"logger"`
	Web      WebConfig      `yaml:"web" json:"web"`
	Admin    AdminConfig    `yaml:"admin" json:"admin"`
	Database DBConfig       `yaml:"database" json:"database"`
	Storage  StorageConfig  `yaml:"storage" json:"storage"`
	Checkout CheckoutConfig `yaml:"checkout" json:"checkout"`
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

func (c *AppConfig) GetBackupDir() string {
	return path.Join(c.System.Workdir, "backup")
}

func (c *AppConfig) GetListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Web.Host, c.Web.Port)
}

func (c *AppConfig) initDirs() {
	_ = os.MkdirAll(path.Join(c.System.Workdir), 0755)
	_ = os.MkdirAll(path.Join(c.System.Workdir, "logs"), 0755)
	_ = os.MkdirAll(path.Join(c.System.Workdir, "data"), 0755)
	_ = os.MkdirAll(path.Join(c.System.Workdir, "backup"), 0755)
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvBoolValue(name string, f func(v bool)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue == "true" || evalue == "1" || evalue == "on")
	}
}

func setEnvIntValue(name string, f func(v int)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(cast.ToInt(evalue))
	}
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "NoesPetshop",
		Location: "America/Sao_Paulo",
		Workdir:  "/var/petshop",
		Debug:    true,
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/petshop/petshop.log",
	},
	Web: WebConfig{
		Host:         "0.0.0.0",
		Port:         3001,
		Secret:       "9b6de5cc-petshop-1e24-9338-0481985ec981",
		ClientOrigin: "http://localhost:5173",
	},
	Admin: AdminConfig{
		Email: "admin@noespetshop.com.br",
	},
	Database: DBConfig{
		Type:     "file",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "petshop",
		User:     "postgres",
		MaxConn:  100,
		IdleConn: 10,
	},
	Checkout: CheckoutConfig{
		StoreName: "Noe's PetShop",
	},
}

// LoadConfig reads the yaml config file when present and applies
// PETSHOP_* environment overrides on top. Missing file falls back to
// DefaultAppConfig.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig
	if cfile != "" && FileExists(cfile) {
		data, err := os.ReadFile(cfile)
		if err != nil {
			panic(err)
		}
		cfg = new(AppConfig)
		if err := yaml.Unmarshal(data, cfg); err != nil {
			panic(err)
		}
	}

	setEnvValue("PETSHOP_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvBoolValue("PETSHOP_SYSTEM_DEBUG", func(v bool) { cfg.System.Debug = v })
	setEnvValue("PETSHOP_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })
	setEnvBoolValue("PETSHOP_LOGGER_FILE_ENABLE", func(v bool) { cfg.Logger.FileEnable = v })
	setEnvValue("PETSHOP_LOGGER_FILENAME", func(v string) { cfg.Logger.Filename = v })

	setEnvValue("PETSHOP_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvIntValue("PETSHOP_WEB_PORT", func(v int) { cfg.Web.Port = v })
	setEnvValue("PETSHOP_WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvValue("PETSHOP_WEB_CLIENT_ORIGIN", func(v string) { cfg.Web.ClientOrigin = v })

	setEnvValue("PETSHOP_ADMIN_EMAIL", func(v string) { cfg.Admin.Email = v })
	setEnvValue("PETSHOP_ADMIN_PASSWORD_HASH", func(v string) { cfg.Admin.PasswordHash = v })

	setEnvValue("PETSHOP_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("PETSHOP_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvIntValue("PETSHOP_DB_PORT", func(v int) { cfg.Database.Port = v })
	setEnvValue("PETSHOP_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("PETSHOP_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("PETSHOP_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvBoolValue("PETSHOP_DB_DEBUG", func(v bool) { cfg.Database.Debug = v })

	setEnvValue("PETSHOP_R2_ACCOUNT_ID", func(v string) { cfg.Storage.AccountID = v })
	setEnvValue("PETSHOP_R2_ACCESS_KEY_ID", func(v string) { cfg.Storage.AccessKey = v })
	setEnvValue("PETSHOP_R2_SECRET_ACCESS_KEY", func(v string) { cfg.Storage.SecretKey = v })
	setEnvValue("PETSHOP_R2_BUCKET", func(v string) { cfg.Storage.Bucket = v })
	setEnvValue("PETSHOP_R2_REGION", func(v string) { cfg.Storage.Region = v })
	setEnvValue("PETSHOP_R2_PUBLIC_BASE_URL", func(v string) { cfg.Storage.PublicBaseURL = v })

	setEnvValue("PETSHOP_STORE_NAME", func(v string) { cfg.Checkout.StoreName = v })
	setEnvValue("PETSHOP_STORE_WHATSAPP", func(v string) { cfg.Checkout.WhatsappNumber = v })

	cfg.initDirs()
	return cfg
}

func FileExists(file string) bool {
	_, err := os.Stat(file)
	return err == nil || os.IsExist(err)
}
