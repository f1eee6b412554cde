package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type registerPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register 注册新用户并返回令牌
func (a *API) Register(c *gin.Context) {
	var payload registerPayload
	if !bindJSON(c, &payload, "Email, password, and name are required") {
		return
	}

	result, err := a.users.WithContext(c.Request.Context()).Register(payload.Email, payload.Password, payload.Name)
	if err != nil {
		handleServiceError(c, err, "User not found", "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   result.Token,
		"user":    userToPayload(result.User),
	})
}

// Login 校验凭据并返回令牌
func (a *API) Login(c *gin.Context) {
	var payload loginPayload
	if !bindJSON(c, &payload, "Email and password are required") {
		return
	}

	result, err := a.users.WithContext(c.Request.Context()).Login(payload.Email, payload.Password)
	if err != nil {
		handleServiceError(c, err, "User not found", "Failed to login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   result.Token,
		"user":    userToPayload(result.User),
	})
}
