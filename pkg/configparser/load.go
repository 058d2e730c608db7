package configparser

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrNoFilePath = errors.New("no file path provided")

// LoadAndParseYaml loads .env and the YAML file into the environment, then fills cfg
// from the `env` and `default` struct tags.
func LoadAndParseYaml(filepath string, cfg any) error {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("could not load .env file: %w", err)
	}

	if err := LoadYamlFile(filepath); err != nil && !errors.Is(err, os.ErrNotExist) && !errors.Is(err, ErrNoFilePath) {
		return err
	}

	return ParseEnv(cfg)
}

// LoadYamlFile reads a YAML file and loads variables into the environment.
// Nested keys are joined with '_' and upper-cased: database: {host: x} -> DATABASE_HOST=x.
// Variables that are already set are left untouched.
func LoadYamlFile(filepath string) error {
	if filepath == "" {
		return ErrNoFilePath
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("could not open YAML file: %w", err)
	}

	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("error reading YAML file: %w", err)
	}

	vars := make(map[string]string)
	flatten("", root, vars)

	for key, value := range vars {
		if os.Getenv(key) != "" {
			continue
		}
		if err := os.Setenv(key, substitute(value)); err != nil {
			return fmt.Errorf("could not set env var %s: %w", key, err)
		}
	}

	return nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := strings.ToUpper(k)
		if prefix != "" {
			key = prefix + "_" + key
		}

		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case nil:
			// empty values don't represent environment variables
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// substitute handles the ${VAR:-default} syntax.
func substitute(value string) string {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") {
		return value
	}

	inner := value[2 : len(value)-1]
	name, def, found := strings.Cut(inner, ":-")
	name = strings.TrimSpace(name)
	if envValue := os.Getenv(name); envValue != "" {
		return envValue
	}
	if found {
		return strings.TrimSpace(def)
	}
	return ""
}
