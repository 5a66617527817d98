package api

import (
	"net/http"

	"fintrack/middleware"

	"github.com/gin-gonic/gin"
)

// Response 通用响应结构，错误响应附带 request_id 便于对照日志
type Response struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// ListResponse 列表响应结构
type ListResponse struct {
	Total int         `json:"total"`
	Limit int         `json:"limit"`
	List  interface{} `json:"list"`
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	resp := Response{Code: status, Message: message, Data: data}
	if status >= http.StatusBadRequest {
		resp.RequestID = middleware.GetRequestID(c)
	}
	c.JSON(status, resp)
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	respond(c, http.StatusOK, "success", data)
}

// SuccessWithMessage 带消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	respond(c, http.StatusOK, message, data)
}

// Created 201
func Created(c *gin.Context, message string, data interface{}) {
	respond(c, http.StatusCreated, message, data)
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	respond(c, code, message, nil)
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
