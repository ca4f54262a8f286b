package config

import (
	"fmt"
	"log"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

func load(configPath string) (Config, error) {
	if !fileExist(configPath) {
		return Config{}, fmt.Errorf("%w, configPath=%v", ErrConfigNotFound, configPath)
	}

	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, err
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("viper unmarshal config: %w", err)
	}
	set(c)

	// 配置文件变更：解析失败保留旧配置，成功后更新 Current() 并通知订阅方（比如日志级别）
	v.OnConfigChange(func(e fsnotify.Event) {
		var next Config
		if err := v.Unmarshal(&next); err != nil {
			log.Printf("config reload failed, file=%s err=%v", e.Name, err)
			return
		}
		set(next)
		notify(next)
		log.Printf("config reloaded, file=%s", e.Name)
	})
	v.WatchConfig()
	return c, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("board.placeholder", d.Board.Placeholder)
	v.SetDefault("board.separator", d.Board.Separator)
	v.SetDefault("board.strict_bounds", d.Board.StrictBounds)
	v.SetDefault("session.ask_timeout", d.Session.AskTimeout)
	v.SetDefault("session.node_id", d.Session.NodeID)
	return v
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
