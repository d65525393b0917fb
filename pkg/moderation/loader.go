package moderation

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// LoadRuleConfig reads a YAML rule file. An empty path yields the built-in table.
func LoadRuleConfig(path string) (RuleConfig, error) {
	if path == "" {
		return DefaultRuleConfig(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return RuleConfig{}, fmt.Errorf("failed to read rule file %s: %w", path, err)
	}

	var cfg RuleConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &cfg,
		ErrorUnused: true,
	})
	if err != nil {
		return RuleConfig{}, err
	}
	if err := decoder.Decode(v.AllSettings()); err != nil {
		return RuleConfig{}, &RuleConfigError{Rule: path, Err: err}
	}
	return cfg, nil
}
