/*
 * @module service/analyzer/errors
 * @description 分析器错误类型定义，区分结构性输入错误与数据量不足两类失败
 * @architecture 分层架构 - 分析核心层
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 规范化阶段抛出输入错误并中止流水线；数据量不足在聚合/质量阶段抛出
 * @rules 数据稀疏通过插补处理并计入质量指标，只有可用行数为零时才视为失败
 * @dependencies fmt, errors
 * @refs normalizer.go, daily.go, quality.go
 */

package analyzer

import (
	"errors"
	"fmt"
)

// InvalidInputError 输入数据无效：日期或间隔标签无法解析、步数为负等
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("无效的输入数据: %s", e.Reason)
}

// NewInvalidInputError 创建输入数据错误
func NewInvalidInputError(format string, args ...interface{}) *InvalidInputError {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}

// InsufficientDataError 请求范围内没有任何可分析的数据（零天或零行）
type InsufficientDataError struct {
	Reason string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("数据量不足: %s", e.Reason)
}

// NewInsufficientDataError 创建数据量不足错误
func NewInsufficientDataError(format string, args ...interface{}) *InsufficientDataError {
	return &InsufficientDataError{Reason: fmt.Sprintf(format, args...)}
}

// IsInvalidInput 判断错误是否为输入数据错误
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}

// IsInsufficientData 判断错误是否为数据量不足错误
func IsInsufficientData(err error) bool {
	var target *InsufficientDataError
	return errors.As(err, &target)
}
