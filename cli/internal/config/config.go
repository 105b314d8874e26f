package config

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem used by the CLI; tests swap in a memory fs.
var AppFs = afero.NewOsFs()

// Config holds the application configuration
type Config struct {
	DiagramPath   string
	MigrationsDir string
	SnapshotPath  string
	Dialect       string
}

// LoadConfig loads configuration from config files, environment and .env
// files, in ascending priority.
func LoadConfig() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName(".umlforge")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "umlforge"))

	viper.SetEnvPrefix("UMLFORGE")
	viper.AutomaticEnv()

	viper.SetDefault("diagram_path", "diagram.json")
	viper.SetDefault("migrations_dir", "migrations")
	viper.SetDefault("snapshot_path", "migrations/model.json")
	viper.SetDefault("dialect", "postgres")

	// Config file is optional.
	_ = viper.ReadInConfig()

	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	return &Config{
		DiagramPath:   viper.GetString("diagram_path"),
		MigrationsDir: viper.GetString("migrations_dir"),
		SnapshotPath:  viper.GetString("snapshot_path"),
		Dialect:       viper.GetString("dialect"),
	}, nil
}

// SaveConfig writes the configuration to .umlforge.yaml in the given
// directory.
func SaveConfig(cfg *Config, dir string) error {
	viper.Set("diagram_path", cfg.DiagramPath)
	viper.Set("migrations_dir", cfg.MigrationsDir)
	viper.Set("snapshot_path", cfg.SnapshotPath)
	viper.Set("dialect", cfg.Dialect)
	return viper.WriteConfigAs(filepath.Join(dir, ".umlforge.yaml"))
}
