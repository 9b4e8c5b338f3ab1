package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Gloucester-City-Council/civic-docs/internal/config"
)

var (
	cfgFile string
	verbose bool
	cfg     config.Config
)

// GetConfig returns the loaded configuration.
func GetConfig() config.Config {
	return cfg
}

var rootCmd = &cobra.Command{
	Use:   "civic-docs",
	Short: "civic-docs: a council document search and analysis engine",
	Long: `civic-docs indexes harvested council meeting documents, ranks them
with BM25 full-text search, and extracts the structure of reports,
public questions, motions and amendments.

Commands:
  index    Build an in-memory index from a harvested document dump
  search   Search a document dump in one shot
  analyze  Classify and structurally analyze one document
  serve    Start the MCP server for search and analysis tools`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func initLogger() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func initConfig() {
	// Start with defaults
	cfg = config.Defaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("/etc/civic-docs")
		viper.AddConfigPath(".")
	}

	// Environment variable overrides
	// CIVICDOCS_INDEX_CHUNK_SIZE -> index.chunk_size
	viper.SetEnvPrefix("CIVICDOCS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Explicitly bind nested env vars
	viper.BindEnv("index.chunk_size", "CIVICDOCS_INDEX_CHUNK_SIZE")
	viper.BindEnv("index.overlap", "CIVICDOCS_INDEX_OVERLAP")
	viper.BindEnv("search.default_limit", "CIVICDOCS_SEARCH_DEFAULT_LIMIT")
	viper.BindEnv("harvester.timeout", "CIVICDOCS_HARVESTER_TIMEOUT")
	viper.BindEnv("harvester.user_agent", "CIVICDOCS_HARVESTER_USER_AGENT")
	viper.BindEnv("knowledge.data_dir", "CIVICDOCS_KNOWLEDGE_DATA_DIR")
	viper.BindEnv("mcp.name", "CIVICDOCS_MCP_NAME")
	viper.BindEnv("mcp.version", "CIVICDOCS_MCP_VERSION")

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("config file error", "error", err)
		}
		// No config file - use defaults + env vars
	}

	// Unmarshal into struct (merges config file with defaults)
	if err := viper.Unmarshal(&cfg); err != nil {
		slog.Warn("failed to parse config", "error", err)
	}
}
