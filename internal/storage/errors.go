// Package storage 定义存储层领域错误
//
// 这些错误用于隔离业务层与底层存储引擎的错误类型，
// 各驱动实现（repository/jsonstore）负责将底层错误转换为这些领域错误。
package storage

import "errors"

var (
	// ErrNotFound 实体不存在
	// 替代 sql.ErrNoRows
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate 唯一键冲突（邮箱重复、邀请码重复）
	ErrDuplicate = errors.New("duplicate: entity already exists")

	// ErrConflict 并发冲突（条件更新未命中）
	ErrConflict = errors.New("conflict: concurrent modification detected")
)
