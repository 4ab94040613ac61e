package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config holds every knob of the GDP pipeline. All fields have working
// defaults so the tool runs without a config file at all.
type Config struct {
	Data struct {
		SourceFile string `json:"source_file"` // World Bank wide-format export (.csv or .xlsx)
		LongCSV    string `json:"long_csv"`    // where to save the reshaped long table ("" = skip)
		CleanCSV   string `json:"clean_csv"`   // where to save the cleaned table ("" = skip)
		CleanXLSX  string `json:"clean_xlsx"`  // optional Excel export of the cleaned table
		ChartPNG   string `json:"chart_png"`   // chart output ("" = display only)
	} `json:"data"`

	Countries  []string `json:"countries"`   // entity allow-list
	StartYear  int      `json:"start_year"`  // inclusive
	EndYear    int      `json:"end_year"`    // inclusive
	FillMethod string   `json:"fill_method"` // interpolate | ffill | bfill | none

	LogName    string `json:"log_name"`
	LogMaxSize string `json:"log_max_size"` // e.g. "10 * 1024 * 1024"

	Watch struct {
		Enabled  bool     `json:"enabled"`  // re-run the batch when the source file changes
		Debounce Duration `json:"debounce"` // minimum gap between re-runs
	} `json:"watch"`
}

var (
	once     sync.Once
	instance *Config
	loadErr  error
)

// Default returns the built-in configuration: the seven-country allow-list
// and the 2000–2022 year range of the World Bank GDP export.
func Default() *Config {
	cfg := &Config{
		Countries: []string{
			"United States",
			"United Kingdom",
			"Brazil",
			"Japan",
			"China",
			"Germany",
			"Switzerland",
		},
		StartYear:  2000,
		EndYear:    2022,
		FillMethod: "interpolate",
		LogName:    "app.log",
		LogMaxSize: "10 * 1024 * 1024",
	}
	cfg.Data.SourceFile = filepath.Join("data", "gdp_whole.csv")
	cfg.Data.LongCSV = filepath.Join("output", "gdp_long.csv")
	cfg.Data.CleanCSV = filepath.Join("output", "gdp_clean.csv")
	cfg.Data.ChartPNG = filepath.Join("output", "gdp_trends.png")
	cfg.Watch.Debounce = Duration(2 * time.Second)
	return cfg
}

// LoadConfig reads the JSON config once per process; later calls return
// the same instance, or the same error if the first load failed. A
// missing file is not an error: the defaults are returned instead.
func LoadConfig(jsonFolder, jsonFile string) (*Config, error) {
	once.Do(func() {
		instance, loadErr = loadConfig(filepath.Join(jsonFolder, jsonFile))
	})
	return instance, loadErr
}

func loadConfig(configFile string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.StartYear > cfg.EndYear {
		return nil, fmt.Errorf("invalid year range: %d > %d", cfg.StartYear, cfg.EndYear)
	}

	return cfg, nil
}

// Duration wraps time.Duration so it can be written as "5s" in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
