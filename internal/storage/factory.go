// Package storage 存储工厂
//
// 驱动注册模式（仿 database/sql）：各后端子包在 init 中注册 OpenFunc，
// 本包不反向依赖任何后端实现。进程内通过 Get 获取全局唯一的存储句柄。
package storage

import (
	"fmt"
	"log"
	"sync"
)

// Driver 后端驱动标识
type Driver string

const (
	// DriverPG 关系型后端（生产环境）
	DriverPG Driver = "pg"
	// DriverJSON JSON 文件后端（本地开发/降级）
	DriverJSON Driver = "json"
)

// Options 后端构造参数，由 config 层填充
type Options struct {
	Driver        Driver
	DatabaseURL   string // 关系型连接串
	DataDir       string // JSON 后端的数据目录
	MigrationsDir string // 迁移脚本目录，为空或不存在时回退到内联 DDL
	AdminEmail    string
	AdminPassword string
}

// OpenFunc 后端构造函数
type OpenFunc func(Options) (DataStore, error)

var (
	driversMu sync.RWMutex
	drivers   = make(map[Driver]OpenFunc)
)

// RegisterDriver 注册后端驱动，由各实现包的 init 调用
func RegisterDriver(d Driver, fn OpenFunc) {
	driversMu.Lock()
	defer driversMu.Unlock()
	if _, dup := drivers[d]; dup {
		panic(fmt.Sprintf("storage: driver %q registered twice", d))
	}
	drivers[d] = fn
}

// Open 构造一个新的存储实例（不参与单例记忆）
func Open(opts Options) (DataStore, error) {
	driversMu.RLock()
	fn, ok := drivers[opts.Driver]
	driversMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: unknown driver %q", opts.Driver)
	}
	return fn(opts)
}

// 进程级单例：惰性初始化，之后每次调用返回同一句柄
var (
	activeMu sync.Mutex
	active   DataStore
)

// Get 返回进程唯一的存储句柄，首次调用时按 opts 构造
// 调用方不得绕过本函数直接构造后端
func Get(opts Options) (DataStore, error) {
	activeMu.Lock()
	defer activeMu.Unlock()
	if active != nil {
		return active, nil
	}
	s, err := Open(opts)
	if err != nil {
		return nil, err
	}
	log.Printf("[storage] opened %s backend", opts.Driver)
	active = s
	return active, nil
}

// resetActive 仅测试使用：丢弃已记忆的单例
func resetActive() {
	activeMu.Lock()
	defer activeMu.Unlock()
	if active != nil {
		active.Close()
		active = nil
	}
}
