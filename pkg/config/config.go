package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// SessionBucket is one zone or slot row of the session tables. End may be
// numerically below Start for buckets that wrap past midnight.
type SessionBucket struct {
	Name  string `yaml:"name" validate:"required"`
	Start int    `yaml:"start" validate:"gte=0,lte=23"`
	End   int    `yaml:"end" validate:"gte=0,lte=23"`
}

// Config is the full service configuration. Scalar defaults live in the
// `default` tags; list defaults (instrument tables, session buckets,
// support/resistance lookbacks) come from the domain packages when a list is
// left empty, so the canonical tables are written down exactly once.
type Config struct {
	Environment string `yaml:"environment" default:"dev" validate:"oneof=dev staging prod"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`

	Server struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowThreshold   time.Duration `yaml:"slow_threshold" default:"2s"`
		CORS            bool          `yaml:"cors" default:"true"`
	} `yaml:"server"`

	// ClickHouse is the bar store. An empty host selects the in-memory store
	// so one-shot runs need no infrastructure.
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port" default:"9000"`
		Database         string        `yaml:"database" default:"fxbrief"`
		User             string        `yaml:"user" default:"default"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		MaxOpenConns     int           `yaml:"max_open_conns" default:"8" validate:"gte=1"`
		MaxIdleConns     int           `yaml:"max_idle_conns" default:"4" validate:"gte=0"`
		DialTimeout      time.Duration `yaml:"dial_timeout" default:"5s"`
		ReadTimeout      time.Duration `yaml:"read_timeout" default:"30s"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time" default:"30s"`
	} `yaml:"clickhouse"`

	Cache struct {
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db" validate:"gte=0"`
		} `yaml:"redis"`
		MemoryMaxSize int           `yaml:"memory_max_size" default:"1000" validate:"gte=1"`
		PromoteTTL    time.Duration `yaml:"promote_ttl" default:"1m"`
		DailyTTL      time.Duration `yaml:"daily_ttl" default:"10m"`
		HourlyTTL     time.Duration `yaml:"hourly_ttl" default:"5m"`
	} `yaml:"cache"`

	// Markets overrides the instrument tables. Empty lists keep the domain
	// defaults.
	Markets struct {
		G10Pairs       []string `yaml:"g10_pairs"`
		EMAsiaPairs    []string `yaml:"em_asia_pairs"`
		ETFs           []string `yaml:"etfs"`
		SafeHavens     []string `yaml:"safe_havens"`
		EquityProxy    string   `yaml:"equity_proxy"`
		BondProxy      string   `yaml:"bond_proxy"`
		CommodityProxy string   `yaml:"commodity_proxy"`
		VIXProxy       string   `yaml:"vix_proxy"`
	} `yaml:"markets"`

	Report struct {
		DailyBars          int           `yaml:"daily_bars" default:"600" validate:"gte=504"`
		HourlyBars         int           `yaml:"hourly_bars" default:"720" validate:"gte=48"`
		MorningSessionDays int           `yaml:"morning_session_days" default:"5" validate:"gte=1"`
		EODSessionDays     int           `yaml:"eod_session_days" default:"1" validate:"gte=1"`
		RegimeWeeks        int           `yaml:"regime_weeks" default:"52" validate:"gte=12"`
		Timeout            time.Duration `yaml:"timeout" default:"60s"`
	} `yaml:"report"`

	Analytics struct {
		Technical struct {
			MinBars           int     `yaml:"min_bars" default:"50" validate:"gte=2"`
			TrendHistoryBars  int     `yaml:"trend_history_bars" default:"252" validate:"gte=1"`
			MAAUpper          float64 `yaml:"maa_upper" default:"60"`
			MAALower          float64 `yaml:"maa_lower" default:"40"`
			UDWindow          int     `yaml:"ud_window" default:"21" validate:"gte=2"`
			UDLookback        int     `yaml:"ud_lookback" default:"252" validate:"gte=1"`
			RSWeeklyWindow    int     `yaml:"rs_weekly_window" default:"26" validate:"gte=3"`
			RSPercentileWeeks int     `yaml:"rs_percentile_weeks" default:"52" validate:"gte=1"`
			ExtremeHigh       float64 `yaml:"extreme_high" default:"80"`
			ExtremeLow        float64 `yaml:"extreme_low" default:"20"`
			MidBand           float64 `yaml:"mid_band" default:"50"`
			ADXPeriod         int     `yaml:"adx_period" default:"14" validate:"gte=1"`
			ADXRangeMax       float64 `yaml:"adx_range_max" default:"20"`
			ADXTrendMin       float64 `yaml:"adx_trend_min" default:"25"`
			BollingerWindow   int     `yaml:"bollinger_window" default:"20" validate:"gte=2"`
			BollingerStd      float64 `yaml:"bollinger_std" default:"2.0" validate:"gt=0"`
			SRLookbacks       []int   `yaml:"sr_lookbacks" validate:"omitempty,dive,gte=2"`
		} `yaml:"technical"`

		Event struct {
			MinBars       int     `yaml:"min_bars" default:"30" validate:"gte=2"`
			RV1WWindow    int     `yaml:"rv_1w_window" default:"5" validate:"gte=2"`
			RV1MWindow    int     `yaml:"rv_1m_window" default:"21" validate:"gte=2"`
			ChangeLag     int     `yaml:"change_lag" default:"6" validate:"gte=1"`
			SpotThreshold float64 `yaml:"spot_threshold" default:"1.0" validate:"gt=0"`
			RVRise        float64 `yaml:"rv_rise" default:"0.5"`
			RVSharpRise   float64 `yaml:"rv_sharp_rise" default:"1.0"`
			RVFall        float64 `yaml:"rv_fall" default:"-0.2"`
		} `yaml:"event"`

		CARS struct {
			ZWeeks            int     `yaml:"z_weeks" default:"52" validate:"gte=2"`
			CorrWeeks         int     `yaml:"corr_weeks" default:"52" validate:"gte=2"`
			ShockEquityZ      float64 `yaml:"shock_equity_z" default:"-1.0"`
			ShockBondZ        float64 `yaml:"shock_bond_z" default:"-1.0"`
			ShockCommodityZ   float64 `yaml:"shock_commodity_z" default:"-2.0"`
			CommodityOverlayZ float64 `yaml:"commodity_overlay_z" default:"2.0"`
			TopN              int     `yaml:"top_n" default:"3" validate:"gte=1"`
			PerformingFactor  string  `yaml:"performing_factor" default:"rates" validate:"oneof=equity rates commodity"`
		} `yaml:"cars"`

		Session struct {
			Zones []SessionBucket `yaml:"zones" validate:"omitempty,dive"`
			Slots []SessionBucket `yaml:"slots" validate:"omitempty,dive"`
		} `yaml:"session"`

		FXFactors struct {
			Window        int     `yaml:"window" default:"120" validate:"gte=31"`
			ZWindow       int     `yaml:"z_window" default:"60" validate:"gte=2"`
			NComponents   int     `yaml:"n_components" default:"3" validate:"gte=1"`
			DominantShare float64 `yaml:"dominant_share" default:"0.6" validate:"gt=0,lte=1"`
			PC1Threshold  float64 `yaml:"pc1_threshold" default:"0.60" validate:"gt=0,lte=1"`
			DimThreshold  float64 `yaml:"dim_threshold" default:"3.0" validate:"gt=0"`
		} `yaml:"fx_factors"`

		ETFFactors struct {
			Window       int     `yaml:"window" default:"120" validate:"gte=31"`
			NComponents  int     `yaml:"n_components" default:"5" validate:"gte=1"`
			TopLoadings  int     `yaml:"top_loadings" default:"3" validate:"gte=1"`
			LabeledPCs   int     `yaml:"labeled_pcs" default:"3" validate:"gte=0"`
			PC1Threshold float64 `yaml:"pc1_threshold" default:"0.60" validate:"gt=0,lte=1"`
			DimThreshold float64 `yaml:"dim_threshold" default:"3.0" validate:"gt=0"`
		} `yaml:"etf_factors"`
	} `yaml:"analytics"`
}

// Load builds the configuration: defaults first, then the YAML file over
// them. An empty path yields the built-in defaults.
func Load(path string) (*Config, error) {
	c := &Config{}
	if err := defaults.Set(c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Redis.Enabled = true
	}
	if v := os.Getenv("PAIRS"); v != "" {
		c.Markets.G10Pairs = strings.Split(v, ",")
	}
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("PORT: %w", err)
		}
		c.Server.Port = p
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	t := c.Analytics.Technical
	if t.MAALower >= t.MAAUpper {
		return fmt.Errorf("analytics.technical: maa_lower must be below maa_upper")
	}
	if t.ExtremeLow >= t.ExtremeHigh {
		return fmt.Errorf("analytics.technical: extreme_low must be below extreme_high")
	}
	if t.ADXRangeMax > t.ADXTrendMin {
		return fmt.Errorf("analytics.technical: adx_range_max must not exceed adx_trend_min")
	}
	if c.Analytics.Event.RV1WWindow >= c.Analytics.Event.RV1MWindow {
		return fmt.Errorf("analytics.event: rv_1w_window must be below rv_1m_window")
	}
	return nil
}
