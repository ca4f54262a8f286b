package config

import "time"

type Config struct {
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Board   BoardConfig   `yaml:"board" mapstructure:"board"`
	Session SessionConfig `yaml:"session" mapstructure:"session"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // 单个文件最大大小（MB）
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // 旧文件保留天数
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error，支持热更新
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

type BoardConfig struct {
	// StrictBounds 为 true 时，超出 width/height 的坐标直接拒绝
	StrictBounds bool   `yaml:"strict_bounds" mapstructure:"strict_bounds"`
	Placeholder  string `yaml:"placeholder" mapstructure:"placeholder"`
	Separator    string `yaml:"separator" mapstructure:"separator"`
}

type SessionConfig struct {
	AskTimeout time.Duration `yaml:"ask_timeout" mapstructure:"ask_timeout"`
	NodeID     int64         `yaml:"node_id" mapstructure:"node_id"`
}

func Defaults() Config {
	return Config{
		Log: LogConfig{
			Level:   "info",
			MaxSize: 100,
		},
		Board: BoardConfig{
			Placeholder: ".",
			Separator:   " ",
		},
		Session: SessionConfig{
			AskTimeout: 3 * time.Second,
			NodeID:     1,
		},
	}
}
