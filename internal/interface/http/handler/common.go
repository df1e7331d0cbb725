package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// bindError 参数绑定/校验失败统一返回400,错误码ErrCodeBindError
func bindError(c *gin.Context, err error) {
	response.Error(c, apperrors.New(apperrors.ErrCodeBindError, "参数格式错误: "+err.Error()))
}

// pathID 解析路径中的正整数ID
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, apperrors.Newf(apperrors.ErrCodeInvalidParams, "无效的%s: %s", name, c.Param(name)))
		return 0, false
	}
	return uint(id), true
}
