// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/clubhub/auth"
	"github.com/danielhkuo/clubhub/middleware"
	"github.com/danielhkuo/clubhub/models"
	"github.com/danielhkuo/clubhub/store"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 32
	minPasswordLen = 6
	maxPasswordLen = 72 // bcrypt ignores anything beyond
)

type UserHandler struct {
	store    *store.Store
	sessions *auth.Resolver
}

func NewUserHandler(st *store.Store, sessions *auth.Resolver) *UserHandler {
	return &UserHandler{store: st, sessions: sessions}
}

// HashPassword hashes a password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register handles POST /user/register
// New accounts are always plain members.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "请求体格式错误，请使用 JSON")
		return
	}

	username := strings.TrimSpace(req.Username)
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "用户名长度需在 3 到 32 个字符之间")
		return
	}
	if len(req.Password) < minPasswordLen || len(req.Password) > maxPasswordLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "密码长度需在 6 到 72 个字符之间")
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "注册失败")
		return
	}

	userID, err := h.store.CreateUser(r.Context(), username, hash, models.UserTypeMember)
	if errors.Is(err, store.ErrConflict) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "用户名已存在")
		return
	}
	if err != nil {
		slog.Error("failed to create user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，注册失败")
		return
	}

	slog.Info("user registered", "user_id", userID, "username", username)

	middleware.JSONResponse(w, http.StatusOK, models.UserResponse{
		Message: "注册成功",
		User:    models.User{ID: userID, Username: username, UserType: models.UserTypeMember},
	})
}

// Login handles POST /user/login and issues the session cookie.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "请求体格式错误，请使用 JSON")
		return
	}
	if req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "缺少必需字段: username 或 password")
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), strings.TrimSpace(req.Username))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		slog.Error("failed to get user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，登录失败")
		return
	}
	if user == nil || user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "用户名或密码错误")
		return
	}

	cookie, err := h.sessions.SessionCookie(user.ID)
	if err != nil {
		slog.Error("failed to encode session cookie", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "登录失败")
		return
	}
	http.SetCookie(w, cookie)

	slog.Info("user logged in", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusOK, models.UserResponse{Message: "登录成功", User: *user})
}

// Logout handles POST /user/logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessions.ClearCookie())
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "已退出登录"})
}

// Me handles GET /user/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "未登录")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.UserResponse{User: *user})
}
