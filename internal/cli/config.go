package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const ConfigFileName = ".dendriterc"

// FindProjectRoot searches for .dendriterc starting from the current
// directory and walking up the directory tree. Returns the directory
// containing .dendriterc, or the current directory if not found.
func FindProjectRoot() (string, bool, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("failed to get current directory: %w", err)
	}

	dir := cwd
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return dir, true, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, false, nil
		}
		dir = parent
	}
}

// LoadConfig loads the .dendriterc file from the given directory.
func LoadConfig(projectRoot string) (*DendriteOptions, error) {
	configPath := filepath.Join(projectRoot, ConfigFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var opts DendriteOptions
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &opts, nil
}

// SaveConfig writes a DendriteOptions struct to a .dendriterc file.
func SaveConfig(projectRoot string, opts *DendriteOptions) error {
	configPath := filepath.Join(projectRoot, ConfigFileName)

	data, err := yaml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	header := "# dendrite configuration file\n\n"
	data = append([]byte(header), data...)

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// MergeOptions merges CLI options into config options. CLI values that are
// non-zero and differ from their Kong default take precedence; otherwise a
// non-zero config value wins, else the default applies. Boolean flags are
// set when either side sets them; slices are concatenated.
func MergeOptions(config, cli *DendriteOptions) *DendriteOptions {
	result := &DendriteOptions{}

	result.Files = append(result.Files, config.Files...)
	result.Files = append(result.Files, cli.Files...)

	result.OutDir = pickString(cli.OutDir, ".", config.OutDir, ".")
	result.ContentType = pickString(cli.ContentType, "", config.ContentType, "")
	result.Tokenizer = pickString(cli.Tokenizer, "o200k_base", config.Tokenizer, "o200k_base")

	result.MaxTokens = pickInt(cli.MaxTokens, 512, config.MaxTokens, 512)
	result.MinTokens = pickInt(cli.MinTokens, 32, config.MinTokens, 32)
	result.Overlap = pickInt(cli.Overlap, 32, config.Overlap, 32)
	result.QualityThreshold = pickFloat(cli.QualityThreshold, 0.7, config.QualityThreshold, 0.7)

	if cli.Strict {
		result.Strict = true
	} else {
		result.Strict = config.Strict
	}
	result.DryRun = cli.DryRun || config.DryRun
	result.Verbose = cli.Verbose || config.Verbose

	return result
}

func pickString(cliVal, cliDefault, configVal, _ string) string {
	if cliVal != "" && cliVal != cliDefault {
		return cliVal
	}
	if configVal != "" {
		return configVal
	}
	return cliDefault
}

func pickInt(cliVal, cliDefault, configVal, _ int) int {
	if cliVal != 0 && cliVal != cliDefault {
		return cliVal
	}
	if configVal != 0 {
		return configVal
	}
	return cliDefault
}

func pickFloat(cliVal, cliDefault, configVal, _ float64) float64 {
	if cliVal != 0 && cliVal != cliDefault {
		return cliVal
	}
	if configVal != 0 {
		return configVal
	}
	return cliDefault
}
