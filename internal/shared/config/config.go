package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
)

const defaultConfigRelPath = "configs/conf.yml"

// ErrConfigNotFound is returned when an explicitly named config file does not exist.
var ErrConfigNotFound = errors.New("config file not exist")

var (
	mu   sync.RWMutex
	conf = Defaults()

	subMu  sync.Mutex
	subSeq int
	subs   = make(map[int]func(Config))
)

// Current returns the last loaded configuration; safe to call while the watcher reloads.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return conf
}

func set(c Config) {
	mu.Lock()
	conf = c
	mu.Unlock()
}

// OnChange 注册热更新回调，配置文件变更并解析成功后调用。
// 回调跑在 watcher 的 goroutine 里，不要在里面阻塞；返回值用于取消注册。
func OnChange(fn func(Config)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	subMu.Lock()
	subSeq++
	id := subSeq
	subs[id] = fn
	subMu.Unlock()
	return func() {
		subMu.Lock()
		delete(subs, id)
		subMu.Unlock()
	}
}

func notify(c Config) {
	subMu.Lock()
	fns := make([]func(Config), 0, len(subs))
	for _, fn := range subs {
		fns = append(fns, fn)
	}
	subMu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}

// Load resolves the config path and reads it:
//  1. cfgName (relative to the working directory, or absolute) wins when given;
//  2. otherwise configs/conf.yml is searched from the working directory upward, and
//     Defaults() is used when nothing is found.
func Load(cfgName string) (Config, error) {
	curDir, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	path := cfgName
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(curDir, path)
	}
	if path == "" {
		found, ok := findConfigUpward(curDir)
		if !ok {
			// 找不到配置文件就用默认值，也就没有热更新
			c := Defaults()
			set(c)
			return c, nil
		}
		path = found
	}
	return load(path)
}

func findConfigUpward(startDir string) (string, bool) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, defaultConfigRelPath)
		if fileExist(candidate) {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
