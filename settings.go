package main

import (
	"flag"
	"strconv"

	"github.com/BurntSushi/toml"
)

var (
	settings Settings
)

var LogLevelMap = map[string]int{
	"DEBUG":  LevelDebug,
	"INFO":   LevelInfo,
	"NOTICE": LevelNotice,
	"WARN":   LevelWarn,
	"ERROR":  LevelError,
}

type ConfigError struct {
	file string
	err  error
}

func (e ConfigError) Error() string {
	return e.file + " is not a valid toml config file: " + e.err.Error()
}

func (e ConfigError) Unwrap() error {
	return e.err
}

type Settings struct {
	Version    string
	Debug      bool
	Server     DNSServerSettings  `toml:"server"`
	Tree       TreeSettings       `toml:"tree"`
	Keys       KeysSettings       `toml:"keys"`
	Redis      RedisSettings      `toml:"redis"`
	Memcache   MemcacheSettings   `toml:"memcache"`
	Postgresql PostgresqlSettings `toml:"postgresql"`
	Log        LogSettings        `toml:"log"`
	Cache      CacheSettings      `toml:"cache"`
	Audit      AuditSettings      `toml:"audit"`
}

type DNSServerSettings struct {
	Host         string
	Port         int
	Zone         string
	ReadTimeout  int `toml:"read-timeout"`
	WriteTimeout int `toml:"write-timeout"`
}

type TreeSettings struct {
	Compressed bool
	Suffix     bool
	Dump       bool
}

type KeysSettings struct {
	KeysFile    string `toml:"keys-file"`
	Domain      bool
	RedisEnable bool   `toml:"redis-enable"`
	RedisKey    string `toml:"redis-key"`
	Refresh     int
}

type RedisSettings struct {
	Host     string
	Port     int
	DB       int
	Password string
}

func (s RedisSettings) Addr() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

type MemcacheSettings struct {
	Servers []string
}

type PostgresqlSettings struct {
	Host        string
	Port        int
	User        string
	Password    string
	DB          string
	Sslmode     string
	Sslcert     string
	Sslkey      string
	Sslrootcert string
}

type LogSettings struct {
	Stdout bool
	File   string
	Level  string
}

func (ls LogSettings) LogLevel() (int, error) {
	l, ok := LogLevelMap[ls.Level]
	if !ok {
		return 0, ConfigError{"[log]", errInvalidLevel(ls.Level)}
	}
	return l, nil
}

type errInvalidLevel string

func (e errInvalidLevel) Error() string {
	return "invalid log level: " + string(e)
}

type CacheSettings struct {
	Backend  string
	Expire   int
	Maxcount int
}

type AuditSettings struct {
	Enable  bool
	Backend string
	Expire  int64
}

func defaultSettings() Settings {
	return Settings{
		Server: DNSServerSettings{Host: "127.0.0.1", Port: 5353, Zone: "trie.", ReadTimeout: 5, WriteTimeout: 5},
		Keys:   KeysSettings{Refresh: 60},
		Log:    LogSettings{Stdout: true, Level: "INFO"},
		Cache:  CacheSettings{Backend: "memory", Expire: 600},
	}
}

func loadSettings(args []string) (Settings, error) {
	var configFile string

	fs := flag.NewFlagSet("gotrie", flag.ContinueOnError)
	fs.StringVar(&configFile, "c", "gotrie.conf", "Look for gotrie toml-formatting config file in this directory")
	if err := fs.Parse(args); err != nil {
		return Settings{}, err
	}

	s := defaultSettings()
	if _, err := toml.DecodeFile(configFile, &s); err != nil {
		return Settings{}, ConfigError{configFile, err}
	}
	if _, err := s.Log.LogLevel(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
