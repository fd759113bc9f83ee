package utils

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

// ValidationError 验证错误
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrEmptyID         = &ValidationError{Code: "EMPTY_ID", Message: "id cannot be empty"}
	ErrInvalidIDFormat = &ValidationError{Code: "INVALID_ID_FORMAT", Message: "id contains invalid characters"}
	ErrIDTooLong       = &ValidationError{Code: "ID_TOO_LONG", Message: "id exceeds maximum length"}
	ErrEmptyTitle      = &ValidationError{Code: "EMPTY_TITLE", Message: "title cannot be empty"}
	ErrTitleTooLong    = &ValidationError{Code: "TITLE_TOO_LONG", Message: "title exceeds maximum length"}
	ErrDangerousChars  = &ValidationError{Code: "DANGEROUS_CHARS", Message: "value contains dangerous characters"}
	ErrEmptyString     = &ValidationError{Code: "EMPTY_STRING", Message: "string cannot be empty"}
	ErrStringTooLong   = &ValidationError{Code: "STRING_TOO_LONG", Message: "string exceeds maximum length"}
	ErrUnknownStatus   = &ValidationError{Code: "UNKNOWN_STATUS", Message: "status is not a known workflow status"}
	ErrNoContentFields = &ValidationError{Code: "NO_CONTENT_FIELDS", Message: "no content fields to update"}
)

const (
	maxIDLength    = 64
	maxTitleLength = 255
)

var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// 标题里出现这些片段直接拒绝,转义留给 SanitizeString
var dangerousFragments = []string{
	"<script", "</script>", "javascript:", "onerror=", "onload=",
	"';", "'; --", "drop table", "delete from", "insert into",
	"update set", "union select", "<iframe", "<img", "<svg",
}

// ValidateAchievementID 验证成果 ID 格式
// 只允许字母、数字、连字符和下划线,最长 64 字符
func ValidateAchievementID(id string) error {
	switch {
	case id == "":
		return ErrEmptyID
	case !idPattern.MatchString(id):
		return ErrInvalidIDFormat
	case len(id) > maxIDLength:
		return ErrIDTooLong
	}
	return nil
}

// ValidateTitle 验证成果标题
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	switch {
	case trimmed == "":
		return ErrEmptyTitle
	case len(trimmed) > maxTitleLength:
		return ErrTitleTooLong
	case containsDangerousChars(trimmed):
		return ErrDangerousChars
	}
	return nil
}

// SanitizeString HTML 转义并去掉控制字符,换行和制表符保留
func SanitizeString(input string) string {
	escaped := html.EscapeString(input)

	var out strings.Builder
	out.Grow(len(escaped))
	for _, r := range escaped {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

// TrimAndValidate 去除首尾空白、检查长度并清理危险字符
func TrimAndValidate(s string, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", ErrEmptyString
	}
	if maxLen > 0 && len(trimmed) > maxLen {
		return "", ErrStringTooLong
	}
	return SanitizeString(trimmed), nil
}

func containsDangerousChars(s string) bool {
	lower := strings.ToLower(s)
	for _, fragment := range dangerousFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}
