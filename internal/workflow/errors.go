package workflow

import (
	"errors"
	"fmt"
)

// Kind 工作流错误分类
// 所有分类都是调用方可恢复的,引擎不会因为它们终止进程
type Kind string

const (
	KindNotFound          Kind = "not_found"          // 成果不存在
	KindInvalidTransition Kind = "invalid_transition" // (from, to) 不在转换表中
	KindForbidden         Kind = "forbidden"          // 角色或身份无权执行
	KindCommentRequired   Kind = "comment_required"   // 拒绝操作缺少评论
	KindStaleState        Kind = "stale_state"        // 调用方假设的当前状态已过期
	KindLocked            Kind = "locked"             // 当前状态不允许编辑内容
	KindStoreUnavailable  Kind = "store_unavailable"  // 存储失败或超时,提交结果未知
)

// Error 带分类标签的工作流错误
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError 创建工作流错误
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError 包装底层错误
func WrapError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf 提取错误的分类,非工作流错误返回空串
func KindOf(err error) Kind {
	var wfErr *Error
	if errors.As(err, &wfErr) {
		return wfErr.Kind
	}
	return ""
}

// IsKind 判断错误是否属于指定分类
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
