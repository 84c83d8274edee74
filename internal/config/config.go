package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type (
	Container struct {
		App     *App
		Token   *Token
		DB      *DB
		HTTP    *HTTP
		Redis   *Redis
		Strava  *Strava
		Notify  *Notify
		Catalog *Catalog
		Refresh *Refresh
	}

	App struct {
		Name string
		Env  string
	}

	Token struct {
		Secret   string
		Duration string
	}

	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
	}

	HTTP struct {
		Env            string
		Port           string
		AllowedOrigins string
		URL            string
	}

	Redis struct {
		Address  string
		Password string
	}

	Strava struct {
		ClientID     string
		ClientSecret string
		RefreshToken string
	}

	Notify struct {
		URL string
	}

	Catalog struct {
		Dir string
	}

	Refresh struct {
		IntervalMinutes string
	}
)

func New() (*Container, error) {
	if os.Getenv("APP_ENV") != "production" {
		err := godotenv.Load()
		if err != nil {
			return nil, err
		}
	}

	app := &App{
		Name: os.Getenv("APP_NAME"),
		Env:  os.Getenv("APP_ENV"),
	}

	token := &Token{
		Secret:   os.Getenv("TOKEN_SECRET"),
		Duration: os.Getenv("TOKEN_DURATION"),
	}

	db := &DB{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
	}

	http := &HTTP{
		Port:           os.Getenv("HTTP_PORT"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		URL:            os.Getenv("HTTP_URL"),
		Env:            os.Getenv("APP_ENV"),
	}

	redis := &Redis{
		Address:  os.Getenv("REDIS_ADDRESS"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}

	strava := &Strava{
		ClientID:     os.Getenv("STRAVA_CLIENT_ID"),
		ClientSecret: os.Getenv("STRAVA_CLIENT_SECRET"),
		RefreshToken: os.Getenv("STRAVA_REFRESH_TOKEN"),
	}

	notify := &Notify{
		URL: os.Getenv("NOTIFY_URL"),
	}

	catalog := &Catalog{
		Dir: os.Getenv("CATALOG_DIR"),
	}

	refresh := &Refresh{
		IntervalMinutes: os.Getenv("REFRESH_INTERVAL_MINUTES"),
	}

	return &Container{
		App:     app,
		Token:   token,
		DB:      db,
		HTTP:    http,
		Redis:   redis,
		Strava:  strava,
		Notify:  notify,
		Catalog: catalog,
		Refresh: refresh,
	}, nil
}

func (r *Refresh) Interval() time.Duration {
	minutes, err := strconv.Atoi(r.IntervalMinutes)
	if err != nil || minutes <= 0 {
		return 60 * time.Minute
	}
	return time.Duration(minutes) * time.Minute
}
