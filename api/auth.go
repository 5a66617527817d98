package api

import (
	"errors"
	"strings"

	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	cfg *config.Config
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// SignupRequest 注册请求
type SignupRequest struct {
	Name     string `json:"name" binding:"required,max=100" example:"Asha"`
	Email    string `json:"email" binding:"required,email" example:"asha@example.com"`
	Password string `json:"password" binding:"required,min=6,max=72" example:"password123"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"asha@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// DeleteAccountRequest 注销账号请求
type DeleteAccountRequest struct {
	Password string `json:"password" example:"password123"`
}

// AuthResponse 登录/注册响应
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// DeleteAccountResponse 注销账号响应
type DeleteAccountResponse struct {
	Deleted database.DeletedCounts `json:"deleted"`
}

// Signup 用户注册
// @Summary 用户注册
// @Description 创建账号并直接返回 token，默认币种 INR
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body SignupRequest true "注册信息"
// @Success 201 {object} Response{data=AuthResponse} "注册成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 409 {object} Response "邮箱已注册"
// @Router /api/v1/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	err := database.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		Conflict(c, "该邮箱已被注册")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		failInternal(c, err, "注册失败")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "密码加密失败")
		return
	}

	user := models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hashed),
		Currency: models.DefaultCurrency,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		failInternal(c, err, "创建用户失败")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, h.cfg.JWT.ExpireTime)
	if err != nil {
		failInternal(c, err, "生成 token 失败")
		return
	}

	log.Info().Uint("user_id", user.ID).Msg("新用户注册")
	Created(c, "注册成功", AuthResponse{Token: token, User: user})
}

// Login 用户登录
// @Summary 用户登录
// @Description 邮箱 + 密码登录获取 JWT token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} Response{data=AuthResponse} "登录成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "邮箱或密码错误"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		Unauthorized(c, "邮箱或密码错误")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		Unauthorized(c, "邮箱或密码错误")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, h.cfg.JWT.ExpireTime)
	if err != nil {
		failInternal(c, err, "生成 token 失败")
		return
	}

	Success(c, AuthResponse{Token: token, User: user})
}

// Me 获取当前用户信息
// @Summary 获取当前用户信息
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "用户不存在"
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "用户不存在")
		return
	}

	Success(c, user)
}

// DeleteAccount 注销账号
// @Summary 注销账号
// @Description 校验密码后永久删除账号及全部支出、收入、预算记录
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DeleteAccountRequest true "当前密码"
// @Success 200 {object} Response{data=DeleteAccountResponse} "删除成功"
// @Failure 400 {object} Response "缺少密码"
// @Failure 403 {object} Response "密码错误"
// @Failure 404 {object} Response "用户不存在"
// @Router /api/v1/auth/account [delete]
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req DeleteAccountRequest
	_ = c.ShouldBindJSON(&req)
	if req.Password == "" {
		BadRequest(c, "注销账号需要提供密码")
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "用户不存在")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		Forbidden(c, "密码错误，账号未删除")
		return
	}

	counts, err := database.DeleteUserData(database.DB, user.ID)
	if err != nil {
		failInternal(c, err, "注销账号失败")
		return
	}

	log.Info().
		Uint("user_id", user.ID).
		Int64("expenses", counts.Expenses).
		Int64("income", counts.Income).
		Int64("budgets", counts.Budgets).
		Msg("账号已注销")
	SuccessWithMessage(c, "账号及全部数据已永久删除", DeleteAccountResponse{Deleted: counts})
}
