package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// dbError 包装数据库错误,错误码ErrCodeDatabaseError,原始错误只进日志
func dbError(err error, msg string) *apperrors.AppError {
	return apperrors.WrapCode(apperrors.ErrCodeDatabaseError, err, msg)
}

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
// MySQL错误码:
// - 1062: Duplicate entry 'xxx' for key 'yyy'
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 未开启TranslateError时只能按错误信息判断
	return strings.Contains(err.Error(), "Duplicate entry")
}

// likeEscaper 转义LIKE通配符(MySQL默认转义字符为反斜杠)
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern 子串匹配模式:%keyword%
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
