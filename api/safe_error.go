package api

import (
	"fintrack/config"
	"fintrack/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// SafeErrorMessage 生产环境下不向客户端暴露内部错误详情
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}

// failInternal 记录内部错误并返回 500
func failInternal(c *gin.Context, err error, fallback string) {
	log.Error().Err(err).
		Str("request_id", middleware.GetRequestID(c)).
		Uint("user_id", middleware.GetCurrentUserID(c)).
		Str("path", c.FullPath()).
		Msg(fallback)
	_ = c.Error(err)
	InternalError(c, SafeErrorMessage(err, fallback))
}
