package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// FileName config file looked up next to the executable
const FileName = "config.toml"

// Sheets backends
const (
	BackendGoogle   = "google"
	BackendWorkbook = "workbook"
	BackendMemory   = "memory" // not persisted; sheets from memory_sheets
)

// AppConfig application config
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Sheets SheetsConfig `toml:"sheets"`
	Agent  AgentConfig  `toml:"agent"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig HTTP server
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig local data
type DataConfig struct {
	DataDir string `toml:"data_dir"`
	History bool   `toml:"history"` // record dispatched updates in SQLite
}

// SheetsConfig spreadsheet backend
type SheetsConfig struct {
	Backend         string   `toml:"backend"` // google / workbook / memory
	SpreadsheetID   string   `toml:"spreadsheet_id"`
	CredentialsFile string   `toml:"credentials_file"`
	WorkbookPath    string   `toml:"workbook_path"`
	MemorySheets    []string `toml:"memory_sheets,omitempty"`
}

// AgentConfig Gemini agent
type AgentConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// LogConfig logging
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfigInfo load metadata
type LoadConfigInfo struct {
	Path          string
	Found         bool
	PortSpecified bool
}

// DefaultConfig default config
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    8088,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
			History: true,
		},
		Sheets: SheetsConfig{
			Backend:         BackendGoogle,
			CredentialsFile: "service.json",
			WorkbookPath:    "updates.xlsx",
		},
		Agent: AgentConfig{
			Model: "gemini-2.0-flash",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverMap, ok := raw["server"].(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir directory of the running executable
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultPath config.toml next to the executable, or in the working directory
// when the executable directory cannot be resolved.
func DefaultPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, FileName)
}

// LoadConfigWithInfo reads path from fs; a missing file yields the defaults.
// Environment overrides are applied in both cases.
func LoadConfigWithInfo(fs afero.Fs, path string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			config.applyEnvOverrides()
			return config, info, nil
		}
		return nil, info, err
	}
	info.Found = true
	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	config.applyEnvOverrides()
	return config, info, nil
}

// LoadConfig loads DefaultPath from the OS filesystem.
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo(afero.NewOsFs(), DefaultPath())
	return config, err
}

func (c *AppConfig) applyEnvOverrides() {
	if v := os.Getenv("SPREADSHEET_ID"); v != "" {
		c.Sheets.SpreadsheetID = v
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		c.Sheets.CredentialsFile = v
	}
	if v := os.Getenv("TASKLOGGER_WORKBOOK"); v != "" {
		c.Sheets.WorkbookPath = v
		c.Sheets.Backend = BackendWorkbook
	}
	if v := os.Getenv("TASKLOGGER_BACKEND"); v != "" {
		c.Sheets.Backend = v
	}
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		c.Agent.APIKey = v
	}
	// GEMINI_API_KEY wins over GOOGLE_API_KEY
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Agent.APIKey = v
	}
	if v := os.Getenv("TASKLOGGER_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// SaveConfig writes config to path.
func SaveConfig(fs afero.Fs, path string, config *AppConfig) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return afero.WriteFile(fs, path, data, 0644)
}

// ResolvePath resolves a relative path against baseDir.
func ResolvePath(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

// EnsureDataDir creates the data directory under baseDir and returns it.
// It always touches the real filesystem since SQLite opens files there.
func EnsureDataDir(baseDir string, config *AppConfig) (string, error) {
	dataDir := ResolvePath(baseDir, config.Data.DataDir)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// HistoryDBPath SQLite history database path
func HistoryDBPath(dataDir string) string {
	return filepath.Join(dataDir, "tasklogger.db")
}
