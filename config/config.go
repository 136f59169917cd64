package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"mobide/models"
)

type Config struct {
	Port           int
	FrontendOrigin string
	ProxyURL       string
	LogPath        string

	Marketplace MarketplaceConfig
	Currency    CurrencyConfig
	Browser     BrowserConfig
	Scheduler   SchedulerConfig
	Telegram    TelegramConfig

	Watches []*Watch
}

type MarketplaceConfig struct {
	APIBase    string // JSON API origin
	BrowseBase string // server-rendered search pages
	Transport  string // "api" or "browser"
}

type CurrencyConfig struct {
	RateURL     string
	CharCode    string
	DefaultRate float64
}

type BrowserConfig struct {
	Headless    bool
	NavTimeout  time.Duration
	IdleTimeout time.Duration // pooled pages unused this long get closed
}

type SchedulerConfig struct {
	Cron     string
	Interval time.Duration
}

type TelegramConfig struct {
	Token  string
	ChatID int64
}

// Watch is a saved search re-run on a schedule; new listings are
// announced on the notification channel.
type Watch struct {
	Name          string   `yaml:"name"`
	Brand         string   `yaml:"brand"`
	Model         string   `yaml:"model"`
	PriceFrom     string   `yaml:"price_from"`
	PriceTo       string   `yaml:"price_to"`
	MileageFrom   string   `yaml:"mileage_from"`
	MileageTo     string   `yaml:"mileage_to"`
	YearFrom      string   `yaml:"year_from"`
	YearTo        string   `yaml:"year_to"`
	PowerFrom     string   `yaml:"power_from"`
	PowerTo       string   `yaml:"power_to"`
	FuelTypes     []string `yaml:"fuel_types"`
	Bodies        []string `yaml:"bodies"`
	Transmissions []string `yaml:"transmissions"`
	Features      []string `yaml:"features"`
	Condition     string   `yaml:"condition"`
	Sort          string   `yaml:"sort"`
	Order         string   `yaml:"order"`
}

// Filter converts the watch definition into the generic filter object.
func (w *Watch) Filter() models.SearchFilter {
	return models.SearchFilter{
		Brand:         w.Brand,
		Model:         w.Model,
		Price:         models.Range{From: w.PriceFrom, To: w.PriceTo},
		Mileage:       models.Range{From: w.MileageFrom, To: w.MileageTo},
		Year:          models.Range{From: w.YearFrom, To: w.YearTo},
		Power:         models.Range{From: w.PowerFrom, To: w.PowerTo},
		FuelTypes:     w.FuelTypes,
		Bodies:        w.Bodies,
		Transmissions: w.Transmissions,
		Features:      w.Features,
		Condition:     w.Condition,
		Sort:          w.Sort,
		Order:         w.Order,
		Page:          1,
	}
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnvInt("PORT", 3001),
		FrontendOrigin: getEnv("FRONTEND_ORIGIN", "https://maksim-zakharov.github.io/mobile-de-frontend"),
		ProxyURL:       os.Getenv("PROXY_URL"),
		LogPath:        getEnv("LOG_PATH", "daemon.log"),
		Marketplace: MarketplaceConfig{
			APIBase:    getEnv("MARKETPLACE_API_BASE", "https://www.mobile.de"),
			BrowseBase: getEnv("MARKETPLACE_BROWSE_BASE", "https://suchen.mobile.de"),
			Transport:  getEnv("MARKETPLACE_TRANSPORT", "api"),
		},
		Currency: CurrencyConfig{
			RateURL:     getEnv("CURRENCY_RATE_URL", "https://www.cbr-xml-daily.ru/daily_json.js"),
			CharCode:    getEnv("CURRENCY_CHAR_CODE", "EUR"),
			DefaultRate: getEnvFloat("CURRENCY_DEFAULT_RATE", 100),
		},
		Browser: BrowserConfig{
			Headless:    getEnv("BROWSER_HEADLESS", "true") == "true",
			NavTimeout:  getEnvDuration("BROWSER_NAV_TIMEOUT", 60*time.Second),
			IdleTimeout: getEnvDuration("PAGE_IDLE_TIMEOUT", 30*time.Minute),
		},
		Scheduler: SchedulerConfig{
			Cron:     os.Getenv("WATCH_CRON"),
			Interval: getEnvDuration("WATCH_INTERVAL", 0),
		},
		Telegram: TelegramConfig{
			Token:  os.Getenv("TELEGRAM_BOT_TOKEN"),
			ChatID: int64(getEnvInt("TELEGRAM_CHAT_ID", 0)),
		},
	}

	if err := cfg.loadWatches(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadWatches() error {
	watchDir := "config/watches"
	entries, err := os.ReadDir(watchDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(watchDir, entry.Name()))
		if err != nil {
			return err
		}

		var w Watch
		if err := yaml.Unmarshal(data, &w); err != nil {
			return err
		}
		if w.Name == "" {
			w.Name = entry.Name()
		}

		c.Watches = append(c.Watches, &w)
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
