package handler

import (
	"net/http"
	"strconv"

	"expense-tracker-backend/internal/service"
	"expense-tracker-backend/internal/util"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes registration, login and user reads.
type UserHandler struct {
	Identity *service.Identity
}

func NewUserHandler(identity *service.Identity) *UserHandler {
	return &UserHandler{Identity: identity}
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "Invalid request body")
		return
	}

	user, err := h.Identity.Register(service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	util.Created(c, util.Response{"user": user})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "Invalid request body")
		return
	}

	user, token, err := h.Identity.Login(service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	util.OK(c, util.Response{"user": user, "token": token})
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Identity.ListUsers()
	if err != nil {
		writeError(c, err)
		return
	}
	util.OK(c, util.Response{"users": users})
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "Invalid user ID")
		return
	}

	user, err := h.Identity.GetUser(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	util.OK(c, util.Response{"user": user})
}
