// Package config resolves tool settings from explicit overrides,
// environment variables, an INI file, and built-in defaults, in that
// order of precedence.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

// DefaultConfigFile is where settings are looked up when no other layer
// names a config file.
const DefaultConfigFile = "config.ini"

// Config holds the resolved settings. Immutable after Resolve.
type Config struct {
	CanvasURL   string
	CanvasToken string
	ConfigFile  string
	CourseID    int64
}

// Resolve merges the four configuration layers and returns the result.
// Overrides win over environment variables (CANVAS_URL, CANVAS_TOKEN,
// CONFIG_FILE, COURSE_ID), which win over the DEFAULT section of the
// config file, which wins over built-in defaults. The config file path
// itself is resolved through the lower-priority layers before the file
// is read. A missing file is treated as empty; unknown keys and empty
// override values are ignored.
func Resolve(overrides map[string]string) (*Config, error) {
	v := viper.New()
	v.SetDefault("config_file", DefaultConfigFile)
	v.AutomaticEnv()
	for key, val := range overrides {
		if val != "" {
			v.Set(strings.ToLower(key), val)
		}
	}

	path := v.GetString("config_file")
	if _, err := os.Stat(path); err == nil {
		section, err := readINIDefaults(path)
		if err != nil {
			return nil, err
		}
		if err := v.MergeConfigMap(section); err != nil {
			return nil, errors.Wrapf(err, "merging %s", path)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "stat %s", path)
	} else {
		logrus.Debugf("config file %s not found, skipping", path)
	}

	return &Config{
		CanvasURL:   v.GetString("canvas_url"),
		CanvasToken: v.GetString("canvas_token"),
		ConfigFile:  path,
		CourseID:    v.GetInt64("course_id"),
	}, nil
}

// readINIDefaults loads the DEFAULT section of an INI file into a
// lower-cased key map suitable for viper's config layer.
func readINIDefaults(path string) (map[string]interface{}, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	section := make(map[string]interface{})
	for _, key := range file.Section(ini.DefaultSection).Keys() {
		section[strings.ToLower(key.Name())] = key.String()
	}
	return section, nil
}

// LoadDotEnv loads a .env file from the working directory into the
// process environment when one exists.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "stat .env")
	}
	return godotenv.Load()
}
