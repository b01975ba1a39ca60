package core

import (
	"errors"
	"fmt"
)

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX），也支持 errors.As
//
// 使用场景：
//   - 配置错误：CONFIG_ERROR（事件类型缺少权重、曲线参数非法）
//   - 输入错误：INVALID_INPUT（空 session）
//   - 内部不变量破坏：INTERNAL_ERROR（候选列表与特征数组长度不一致）
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "CONFIG_ERROR"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "rank", "candidate"）
	Err     error  // 底层错误，可为空
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is 按 Module + Code 比较，便于 errors.Is(err, ErrStoreNotFound) 这类写法。
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Module == t.Module
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeNotSupported  = "NOT_SUPPORTED"  // 操作不支持
	ErrorCodeConfig        = "CONFIG_ERROR"   // 配置缺失或非法
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效
	ErrorCodeInternalError = "INTERNAL_ERROR" // 内部不变量被破坏
)

// 模块名称常量
const (
	ModuleStore     = "store"
	ModuleConfig    = "config"
	ModuleRank      = "rank"
	ModuleRecall    = "recall"
	ModuleCandidate = "candidate"
)

// ConfigErrorf 构造 CONFIG_ERROR。
func ConfigErrorf(module, format string, args ...any) *DomainError {
	return NewDomainError(module, ErrorCodeConfig, fmt.Sprintf(format, args...))
}

// InputErrorf 构造 INVALID_INPUT。
func InputErrorf(module, format string, args ...any) *DomainError {
	return NewDomainError(module, ErrorCodeInvalidInput, fmt.Sprintf(format, args...))
}

// InvariantErrorf 构造 INTERNAL_ERROR，表示合并/补齐逻辑本身有缺陷，而不是数据问题。
func InvariantErrorf(module, format string, args ...any) *DomainError {
	return NewDomainError(module, ErrorCodeInternalError, fmt.Sprintf(format, args...))
}

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsConfigError 检查错误是否为 CONFIG_ERROR
func IsConfigError(err error) bool { return hasCode(err, ErrorCodeConfig) }

// IsInputError 检查错误是否为 INVALID_INPUT
func IsInputError(err error) bool { return hasCode(err, ErrorCodeInvalidInput) }

// IsInvariantViolation 检查错误是否为 INTERNAL_ERROR
func IsInvariantViolation(err error) bool { return hasCode(err, ErrorCodeInternalError) }

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool { return hasCode(err, ErrorCodeNotSupported) }
