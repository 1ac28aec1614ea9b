package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/curriplan/pkg/types"
)

// flagKeys binds command-line flags to configuration keys. Flags missing
// from a command are ignored.
var flagKeys = map[string]string{
	"sheet":       "sheet",
	"format":      "output.format",
	"labels":      "output.labels",
	"synonyms":    "synonyms_file",
	"archive-dir": "archive.dir",
}

// loadConfig resolves the configuration for cmd from, in order of
// precedence, flags, CURRIPLAN_* environment variables (a .env file in the
// working directory included), the config file and the defaults.
func loadConfig(cmd *cobra.Command) (types.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return types.Config{}, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	def := types.DefaultConfig()
	v.SetDefault("scan.window", def.Scan.Window)
	v.SetDefault("scan.threshold", def.Scan.Threshold)
	v.SetDefault("specialty.sentinel", def.Specialty.Sentinel)
	v.SetDefault("output.format", string(def.Output.Format))
	v.SetDefault("output.labels", string(def.Output.Labels))
	v.SetDefault("archive.dir", def.Archive.Dir)
	v.SetDefault("synonyms_file", "")
	v.SetDefault("sheet", "")

	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return types.Config{}, fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("curriplan")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "curriplan"))
		}
	}

	v.SetEnvPrefix("CURRIPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("reading config: %w", err)
		}
	} else {
		logger.Debug("using config file", zap.String("path", v.ConfigFileUsed()))
	}

	var c types.Config
	if err := v.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := validateConfig(c); err != nil {
		return types.Config{}, err
	}
	return c, nil
}

func validateConfig(c types.Config) error {
	switch c.Output.Format {
	case types.FormatJSON, types.FormatYAML:
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", c.Output.Format)
	}
	switch c.Output.Labels {
	case types.LabelsEnglish, types.LabelsNative:
	default:
		return fmt.Errorf("unknown label set %q (want english or native)", c.Output.Labels)
	}
	if c.Scan.Window <= 0 {
		return fmt.Errorf("scan.window must be positive, got %d", c.Scan.Window)
	}
	if c.Scan.Threshold <= 0 {
		return fmt.Errorf("scan.threshold must be positive, got %d", c.Scan.Threshold)
	}
	return nil
}
