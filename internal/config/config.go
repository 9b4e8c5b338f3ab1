package config

import "time"

// Config holds all application configuration.
type Config struct {
	Index     Index     `mapstructure:"index"`
	Search    Search    `mapstructure:"search"`
	Harvester Harvester `mapstructure:"harvester"`
	Knowledge Knowledge `mapstructure:"knowledge"`
	MCP       MCP       `mapstructure:"mcp"`
}

// Index holds chunking configuration.
type Index struct {
	ChunkSize int `mapstructure:"chunk_size"`
	Overlap   int `mapstructure:"overlap"`
}

// Search holds search configuration.
type Search struct {
	DefaultLimit int `mapstructure:"default_limit"`
}

// Harvester holds document fetching configuration.
type Harvester struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// Knowledge holds the lookup-table data directory.
type Knowledge struct {
	DataDir string `mapstructure:"data_dir"`
}

// MCP holds MCP server configuration.
type MCP struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Index: Index{
			ChunkSize: 500,
			Overlap:   50,
		},
		Search: Search{
			DefaultLimit: 10,
		},
		Harvester: Harvester{
			Timeout:   30 * time.Second,
			UserAgent: "civic-docs/1.0",
		},
		Knowledge: Knowledge{
			DataDir: "data",
		},
		MCP: MCP{
			Name:    "civic-docs",
			Version: "1.0.0",
		},
	}
}
