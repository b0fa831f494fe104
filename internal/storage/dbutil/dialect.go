// Package dbutil 提供数据库方言抽象和工具函数
//
// 通过 Dialect 接口屏蔽 PostgreSQL 与 SQLite 的 SQL 差异，
// 使 repository 层可以编写与数据库无关的业务逻辑。
// 所有 SQL 以 PostgreSQL 风格编写，运行时由 Dialect.Rebind() 转换。
package dbutil

import (
	"database/sql"
	"regexp"
	"strings"
)

// DriverType 数据库驱动类型
type DriverType string

const (
	DriverPostgres DriverType = "postgres"
	DriverSQLite   DriverType = "sqlite"
)

// Dialect 数据库方言接口
//
// 差异点：
//   - 占位符：PostgreSQL 用 $1, $2；SQLite 用 ?
//   - 数组列：PostgreSQL 用 text[]；SQLite 存 JSON 文本
//   - UPSERT 冲突子句语法一致（均支持 ON CONFLICT），无需分化
type Dialect interface {
	// DriverType 返回驱动类型标识
	DriverType() DriverType

	// Rebind 将 PostgreSQL 风格的占位符 ($1, $2, ...) 转换为目标数据库的占位符格式
	Rebind(query string) string

	// UpsertConflict 生成 UPSERT 的冲突处理子句
	// conflictColumns: 冲突检测列（复合主键传多列）
	// updateExprs: 更新表达式列表，如 "applied = EXCLUDED.applied"
	UpsertConflict(conflictColumns []string, updateExprs []string) string

	// IsUniqueViolation 判断底层错误是否为唯一键冲突
	IsUniqueViolation(err error) bool

	// AutoMigrate 内联 DDL 建表（幂等，CREATE TABLE IF NOT EXISTS）
	AutoMigrate(db *sql.DB) error
}

// pgPlaceholderRe 匹配 PostgreSQL 风格占位符 $1, $2, ...
var pgPlaceholderRe = regexp.MustCompile(`\$(\d+)`)

// RebindToPositional 保持 $N 占位符不变（PostgreSQL 专用）
func RebindToPositional(query string) string {
	return query
}

// RebindToQuestion 将 $N 占位符转换为 ? （SQLite 专用）
func RebindToQuestion(query string) string {
	return pgPlaceholderRe.ReplaceAllString(query, "?")
}

// BuildUpsertClause 拼接冲突子句（两种方言的 ON CONFLICT 语法一致）
func BuildUpsertClause(conflictColumns []string, updateExprs []string) string {
	var b strings.Builder
	b.WriteString("ON CONFLICT (")
	b.WriteString(strings.Join(conflictColumns, ", "))
	b.WriteString(") DO UPDATE SET ")
	b.WriteString(strings.Join(updateExprs, ", "))
	return b.String()
}
