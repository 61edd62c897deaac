package core

import (
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	serverConfig struct {
		Host            string
		DebugHost       string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	databaseConfig struct {
		Engine        string
		Host          string
		Port          string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	Config struct {
		AppName  string
		Env      string // DEV (local; default), TEST, QA, PROD
		Build    string
		Debug    bool
		TestMode bool

		// Timezone is used to decide "today" and the current promotion year.
		Timezone          string
		PromotionSchedule string
		QuizTTL           time.Duration
		DefaultQuizSize   int

		AdminEmails      []mail.Address
		DefaultFromEmail mail.Address
		RollbarToken     string
		SendgridApiKey   string

		Server   serverConfig
		Database databaseConfig
	}
)

func (c databaseConfig) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// NewConfig reads the configuration from the environment (and config/.env.<env> if it exists).
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("build", "develop")
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Hagwon")
	conf.SetDefault("timezone", "Asia/Seoul")
	conf.SetDefault("promotionSchedule", "@daily")
	conf.SetDefault("quizTTL", 2*time.Hour)
	conf.SetDefault("defaultQuizSize", 10)
	conf.SetDefault("adminEmails", "")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("sendgridApiKey", "")

	conf.SetDefault("server.host", ":8000")
	conf.SetDefault("server.debugHost", ":4000")
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("server.disableReqLogs", false)

	conf.SetDefault("database.engine", "postgres")
	conf.SetDefault("database.host", "localhost")
	conf.SetDefault("database.port", "5432")
	conf.SetDefault("database.name", "hagwon")
	conf.SetDefault("database.user", "hagwon")
	conf.SetDefault("database.password", "hagwon")
	conf.SetDefault("database.adminUser", "")
	conf.SetDefault("database.adminPassword", "")
	conf.SetDefault("database.disableTLS", true)

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	appName := conf.GetString("appName")
	return &Config{
		AppName:           appName,
		Env:               env,
		Build:             conf.GetString("build"),
		Debug:             conf.GetBool("debug"),
		TestMode:          conf.GetBool("testMode"),
		Timezone:          conf.GetString("timezone"),
		PromotionSchedule: conf.GetString("promotionSchedule"),
		QuizTTL:           conf.GetDuration("quizTTL"),
		DefaultQuizSize:   conf.GetInt("defaultQuizSize"),
		AdminEmails:       parseAddressList(conf.GetString("adminEmails")),
		DefaultFromEmail:  mail.Address{Name: appName, Address: conf.GetString("defaultFromEmail")},
		RollbarToken:      conf.GetString("rollbarToken"),
		SendgridApiKey:    conf.GetString("sendgridApiKey"),
		Server: serverConfig{
			Host:            conf.GetString("server.host"),
			DebugHost:       conf.GetString("server.debugHost"),
			ShutdownTimeout: conf.GetDuration("server.shutdownTimeout"),
			DisableReqLogs:  conf.GetBool("server.disableReqLogs"),
		},
		Database: databaseConfig{
			Engine:        conf.GetString("database.engine"),
			Host:          conf.GetString("database.host"),
			Port:          conf.GetString("database.port"),
			Name:          conf.GetString("database.name"),
			User:          conf.GetString("database.user"),
			Password:      conf.GetString("database.password"),
			AdminUser:     conf.GetString("database.adminUser"),
			AdminPassword: conf.GetString("database.adminPassword"),
			DisableTLS:    conf.GetBool("database.disableTLS"),
		},
	}
}

// Location returns the configured timezone, or UTC if it cannot be loaded.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Now returns the current time in the configured timezone.
func (c *Config) Now() time.Time {
	return nowFunc().In(c.Location())
}

var nowFunc = time.Now // mockable

func parseAddressList(s string) []mail.Address {
	s = CleanString(s)
	if s == "" {
		return nil
	}
	list, err := mail.ParseAddressList(s)
	if err != nil {
		log.Printf("config: invalid address list %q: %v", s, err)
		return nil
	}
	addrs := make([]mail.Address, 0, len(list))
	for _, a := range list {
		addrs = append(addrs, *a)
	}
	return addrs
}
