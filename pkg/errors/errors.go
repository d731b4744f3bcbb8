// Package errors 定义核心业务结果词汇：NotFound / Conflict / ValidationError。
//
// 业务层错误都由这里的构造函数生成，传输层只需按种类映射 HTTP 状态码，
// 不需要认识每个模块的具体错误变量。
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound 引用的实体不存在，或不属于调用方（两者刻意不做区分）
	ErrNotFound = errors.New("资源不存在")
	// ErrConflict 唯一性冲突（提交时由存储层检测）
	ErrConflict = errors.New("资源冲突")
)

// ValidationError 输入不合法：缺字段、结束早于开始、日期时间无法解析。
// 调用方可修正，内部从不重试。
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "参数校验失败: " + e.Reason
}

// Validation 创建 ValidationError
func Validation(reason string) error {
	return &ValidationError{Reason: reason}
}

// AsValidation 提取 ValidationError
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// kindError 带种类的业务错误，errors.Is 同时匹配自身与种类哨兵
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// NotFound 创建一个 errors.Is(err, ErrNotFound) 为真的业务错误
func NotFound(msg string) error {
	return &kindError{kind: ErrNotFound, msg: msg}
}

// Conflict 创建一个 errors.Is(err, ErrConflict) 为真的业务错误
func Conflict(msg string) error {
	return &kindError{kind: ErrConflict, msg: msg}
}

// Wrapf 为业务错误追加上下文，保留原错误链
func Wrapf(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
