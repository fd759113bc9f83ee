package utils

import (
	"errors"
	"regexp"
	"strings"
)

// 排序字段来自查询参数,直接拼进 ORDER BY,必须验证后才能使用
var (
	sortFieldPattern = regexp.MustCompile(`^[a-zA-Z0-9_.]+$`)
	sortFieldStrip   = regexp.MustCompile(`[^a-zA-Z0-9_.]`)
	fieldTokenSplit  = regexp.MustCompile(`[^a-zA-Z0-9]+`)
)

// sqlKeywords 作为独立单词出现即拒绝;子串不算("created_at" 含 "AT" 是合法的)
var sqlKeywords = map[string]struct{}{
	"SELECT": {}, "INSERT": {}, "UPDATE": {}, "DELETE": {}, "DROP": {},
	"ALTER": {}, "CREATE": {}, "EXEC": {}, "EXECUTE": {}, "UNION": {},
	"SCRIPT": {}, "DECLARE": {}, "CAST": {}, "CONVERT": {}, "FROM": {},
	"WHERE": {}, "ORDER": {}, "BY": {}, "GROUP": {}, "HAVING": {},
	"JOIN": {}, "INNER": {}, "OUTER": {}, "LEFT": {}, "RIGHT": {},
	"ON": {}, "AS": {}, "AND": {}, "OR": {}, "NOT": {}, "IN": {},
}

// ValidateSortField 验证排序字段可以安全拼入 ORDER BY
// 允许 字段名 和 表名.字段名 两种形式
func ValidateSortField(field string) error {
	if field == "" {
		return errors.New("sort field cannot be empty")
	}
	if !sortFieldPattern.MatchString(field) {
		return errors.New("invalid sort field format")
	}
	for _, token := range fieldTokenSplit.Split(strings.ToUpper(field), -1) {
		if _, bad := sqlKeywords[token]; bad {
			return errors.New("sort field contains SQL keyword")
		}
	}
	return nil
}

// SanitizeSortField 去掉排序字段中所有不合法的字符
func SanitizeSortField(field string) string {
	return sortFieldStrip.ReplaceAllString(field, "")
}

// SanitizeSortOrder 归一化排序方向,无法识别时取 DESC
func SanitizeSortOrder(order string) string {
	switch strings.ToUpper(strings.TrimSpace(order)) {
	case "ASC":
		return "ASC"
	default:
		return "DESC"
	}
}
