package config

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBDriver   string `json:"db_driver" yaml:"db_driver"`
	DBHost     string `json:"db_host" yaml:"db_host"`
	DBUsername string `json:"db_username" yaml:"db_username"`
	DBPassword string `json:"db_password" yaml:"db_password"`
	DBDatabase string `json:"db_database" yaml:"db_database"`

	AppTitle           string `json:"app_title" yaml:"app_title"`
	LoginInstanceTitle string `json:"login_instance_title" yaml:"login_instance_title"`
	LoginInstanceIcon  string `json:"login_instance_icon" yaml:"login_instance_icon"`

	StoreName     string `json:"store_name" yaml:"store_name"`
	StoreAddress  string `json:"store_address" yaml:"store_address"`
	ReceiptFooter string `json:"receipt_footer" yaml:"receipt_footer"`
	Currency      string `json:"currency" yaml:"currency"`

	ListenAddr      string `json:"listen_addr" yaml:"listen_addr"`
	AdminListenAddr string `json:"admin_listen_addr" yaml:"admin_listen_addr"`
	LogFile         string `json:"log_file" yaml:"log_file"`
}

func defaults() Config {
	return Config{
		DBDriver:           "mysql",
		DBHost:             "127.0.0.1:3306",
		AppTitle:           "POS",
		LoginInstanceTitle: "Login",
		LoginInstanceIcon:  "logo.png",
		StoreName:          "Store Name",
		StoreAddress:       "Store Address Sample Text",
		ReceiptFooter:      "All prices are inclusive to 6% service tax\nThank you for your purchase!",
		Currency:           "RM",
		ListenAddr:         ":8081",
		AdminListenAddr:    ":8082",
	}
}

// Load reads the config file at path, then .env, then the R_* overrides.
// Environment values win over file values.
func Load(path string) (Config, error) {
	cfg := defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to open configuration file %q: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &cfg)
	default:
		err = json.Unmarshal(raw, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("unable to parse configuration file %q: %w", path, err)
	}

	// .env never overrides variables that are already set
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] ignoring .env: %v", err)
	}
	cfg.applyEnv()

	log.Printf("[config] driver=%s host=%s user=%s database=%s listen=%s admin=%s log_file=%s",
		cfg.DBDriver, cfg.DBHost, cfg.DBUsername, cfg.DBDatabase, cfg.ListenAddr, cfg.AdminListenAddr, cfg.LogFile)
	return cfg, nil
}

func (c *Config) applyEnv() {
	override := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	override(&c.DBDriver, "R_DRIVER")
	override(&c.DBHost, "R_HOST")
	override(&c.DBUsername, "R_USERNAME")
	override(&c.DBPassword, "R_PASSWORD")
	override(&c.DBDatabase, "R_DATABASE")
	override(&c.LogFile, "LOG_FILE")
	if port := os.Getenv("PORT"); port != "" {
		c.ListenAddr = ":" + port
	}
	if port := os.Getenv("ADMIN_PORT"); port != "" {
		c.AdminListenAddr = ":" + port
	}
}

// DSN returns the data source name for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver != "mysql" {
		return c.DBDatabase
	}
	addr := c.DBHost
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, "3306")
	}
	mc := mysql.NewConfig()
	mc.User = c.DBUsername
	mc.Passwd = c.DBPassword
	mc.Net = "tcp"
	mc.Addr = addr
	mc.DBName = c.DBDatabase
	return mc.FormatDSN()
}
