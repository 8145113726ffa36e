package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"infogen/llm"
	"infogen/meter"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	// ModelsConfig overrides the built-in model chains per tier. A tier left
	// empty keeps its built-in chain.
	ModelsConfig struct {
		Fast     []llm.Model `yaml:"fast,omitempty" validate:"omitempty,dive"`
		Standard []llm.Model `yaml:"standard,omitempty" validate:"omitempty,dive"`
		Premium  []llm.Model `yaml:"premium,omitempty" validate:"omitempty,dive"`
		Vision   []llm.Model `yaml:"vision,omitempty" validate:"omitempty,dive"`
	}

	LLMConfig struct {
		CacheTTLSeconds    int     `yaml:"cache_ttl_seconds" validate:"min=1"`
		CostBudgetDailyUSD float64 `yaml:"cost_budget_daily_usd" validate:"gte=0"`
	}

	ArtifactsConfig struct {
		StorageURL    string `yaml:"storage_url" validate:"required"`
		SigningKeyEnv string `yaml:"signing_key_env" validate:"required"`
	}

	// PlansConfig overrides the built-in plan table. A plan left out keeps
	// its built-in limits.
	PlansConfig struct {
		Free       *meter.Limits `yaml:"free,omitempty"`
		Pro        *meter.Limits `yaml:"pro,omitempty"`
		Business   *meter.Limits `yaml:"business,omitempty"`
		Enterprise *meter.Limits `yaml:"enterprise,omitempty"`
	}

	FontsConfig struct {
		FallbackChain []string `yaml:"fallback_chain" validate:"min=1,dive,required"`
	}

	CacheConfig struct {
		// RedisURL switches prompt cache, counters and rate windows to a
		// shared redis instance. Empty keeps everything in process.
		RedisURL SecretString `yaml:"redis_url,omitempty"`
	}

	DatabaseConfig struct {
		Path string `yaml:"path" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
	}

	DocumentConfig struct {
		OutputNameTemplate    string `yaml:"output_name_template"`
		FileNameTransliterate bool   `yaml:"file_name_transliterate"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Models    ModelsConfig    `yaml:"models"`
		LLM       LLMConfig       `yaml:"llm"`
		Artifacts ArtifactsConfig `yaml:"artifacts"`
		Plans     PlansConfig     `yaml:"plans"`
		Fonts     FontsConfig     `yaml:"fonts"`
		Cache     CacheConfig     `yaml:"cache"`
		Database  DatabaseConfig  `yaml:"database"`
		Document  DocumentConfig  `yaml:"document"`
		Logging   LoggingConfig   `yaml:"logging"`
		Reporting ReporterConfig  `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

// CacheTTL returns the prompt cache TTL as a duration.
func (l LLMConfig) CacheTTL() time.Duration {
	return time.Duration(l.CacheTTLSeconds) * time.Second
}

// Chains merges configured model chains over the built-in table.
func (m ModelsConfig) Chains() map[llm.Tier][]llm.Model {
	chains := llm.DefaultChains()
	for tier, override := range map[llm.Tier][]llm.Model{
		llm.TierFast:     m.Fast,
		llm.TierStandard: m.Standard,
		llm.TierPremium:  m.Premium,
		llm.TierVision:   m.Vision,
	} {
		if len(override) > 0 {
			chains[tier] = override
		}
	}
	return chains
}

// Table merges configured plans over the built-in plan table.
func (p PlansConfig) Table() map[meter.Plan]meter.Limits {
	plans := meter.DefaultPlans()
	for plan, override := range map[meter.Plan]*meter.Limits{
		meter.PlanFree:       p.Free,
		meter.PlanPro:        p.Pro,
		meter.PlanBusiness:   p.Business,
		meter.PlanEnterprise: p.Enterprise,
	} {
		if override != nil {
			plans[plan] = *override
		}
	}
	return plans
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
