package models

import "time"

type Config struct {
	Debug          bool   `yaml:"debug" envconfig:"GENOLENS_DEBUG" default:"false"`
	SemVer         string `yaml:"semver" envconfig:"GENOLENS_SEMVER" default:"0.1.0"`
	ServiceContact string `yaml:"serviceContact" envconfig:"GENOLENS_SERVICE_CONTACT" default:"mailto:contact@genolens.io"`
	LogLevel       string `yaml:"logLevel" envconfig:"GENOLENS_LOG_LEVEL" default:"info"`

	Api struct {
		Url            string `yaml:"url" envconfig:"GENOLENS_API_URL" default:"http://localhost:5000"`
		Port           string `yaml:"port" envconfig:"GENOLENS_API_INTERNAL_PORT" default:"5000"`
		MaxUploadBytes int64  `yaml:"maxUploadBytes" envconfig:"GENOLENS_API_MAX_UPLOAD_BYTES" default:"67108864"`
	} `yaml:"api"`

	Upload struct {
		TickInterval time.Duration `yaml:"tickInterval" envconfig:"GENOLENS_UPLOAD_TICK_INTERVAL" default:"50ms"`
		PreviewChars int           `yaml:"previewChars" envconfig:"GENOLENS_UPLOAD_PREVIEW_CHARS" default:"100"`
	} `yaml:"upload"`

	// browser-side pair; the analysis client degrades to a warning without them
	Analysis struct {
		ProjectUrl   string        `yaml:"projectUrl" envconfig:"GENOLENS_SUPABASE_URL"`
		AnonKey      string        `yaml:"anonKey" envconfig:"GENOLENS_SUPABASE_ANON_KEY"`
		FunctionName string        `yaml:"functionName" envconfig:"GENOLENS_ANALYSIS_FUNCTION" default:"gemini-analyze"`
		Timeout      time.Duration `yaml:"timeout" envconfig:"GENOLENS_ANALYSIS_TIMEOUT" default:"60s"`
	} `yaml:"analysis"`

	// server side only, never exposed to callers
	Gemini struct {
		ApiKey      string `yaml:"apiKey" envconfig:"GEMINI_API_KEY"`
		Model       string `yaml:"model" envconfig:"GENOLENS_GEMINI_MODEL" default:"gemini-1.5-flash"`
		BaseUrl     string `yaml:"baseUrl" envconfig:"GENOLENS_GEMINI_BASE_URL"`
		MaxRetries  int    `yaml:"maxRetries" envconfig:"GENOLENS_GEMINI_MAX_RETRIES" default:"2"`
		SampleChars int    `yaml:"sampleChars" envconfig:"GENOLENS_GEMINI_SAMPLE_CHARS" default:"1000"`
	} `yaml:"gemini"`

	Dashboard struct {
		Mode                string        `yaml:"mode" envconfig:"GENOLENS_DASHBOARD_MODE" default:"canned"`
		InsightsPerCategory int           `yaml:"insightsPerCategory" envconfig:"GENOLENS_DASHBOARD_INSIGHTS_PER_CATEGORY" default:"3"`
		Seed                int64         `yaml:"seed" envconfig:"GENOLENS_DASHBOARD_SEED" default:"0"`
		CannedDelay         time.Duration `yaml:"cannedDelay" envconfig:"GENOLENS_DASHBOARD_CANNED_DELAY" default:"3s"`
	} `yaml:"dashboard"`
}
