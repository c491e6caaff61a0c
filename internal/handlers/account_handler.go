package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizmania/quiz-service/internal/services"
	"github.com/quizmania/quiz-service/internal/utils"
	"github.com/quizmania/quiz-service/internal/validator"
)

type AccountHandler struct {
	BaseHandler
	accountService services.AccountService
	validator      *validator.Validator
}

func NewAccountHandler(
	accountService services.AccountService,
	validator *validator.Validator,
	logger utils.Logger,
) *AccountHandler {
	return &AccountHandler{
		BaseHandler:    NewBaseHandler(logger),
		accountService: accountService,
		validator:      validator,
	}
}

// SignUp registers a new account.
// @Summary Sign up
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body services.SignUpRequest true "Account data"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /signup [post]
func (h *AccountHandler) SignUp(c *gin.Context) {
	var req services.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.accountService.SignUp(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Status:  true,
		Message: "Account created",
		Data:    resp,
	})
}

// SignIn verifies credentials for the email in the path.
// @Summary Sign in
// @Tags accounts
// @Accept json
// @Produce json
// @Param email path string true "Account email"
// @Param credentials body validator.SignInRequest true "Password"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /signin/{email} [post]
func (h *AccountHandler) SignIn(c *gin.Context) {
	email := c.Param("email")

	var req validator.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Sign-in attempt", "email", email)

	user, err := h.accountService.SignIn(c.Request.Context(), email, req.Password)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Status: true,
		Data:   user,
	})
}

// GetAccount fetches the account profile for the email in the path.
// @Summary Get account by email
// @Tags accounts
// @Produce json
// @Param email path string true "Account email"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /signin/{email} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	email := c.Param("email")

	user, err := h.accountService.GetByEmail(c.Request.Context(), email)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Status: true,
		Data:   user,
	})
}

// RequestPasswordReset issues a reset token and emails the reset link.
// @Summary Request password reset
// @Tags accounts
// @Produce json
// @Param email path string true "Account email"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /reset-password/{email} [get]
func (h *AccountHandler) RequestPasswordReset(c *gin.Context) {
	email := c.Param("email")

	h.LogRequest(c, "Password reset requested", "email", email)

	if err := h.accountService.RequestPasswordReset(c.Request.Context(), email); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Status:  true,
		Message: "Password reset email sent",
	})
}

// ConfirmPasswordReset sets a new password for the user ID in the path,
// provided the user's reset token is still live.
// @Summary Confirm password reset
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path uint true "User ID"
// @Param body body validator.ConfirmResetRequest true "New password"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 410 {object} ErrorResponse
// @Router /reset-password/{id} [patch]
func (h *AccountHandler) ConfirmPasswordReset(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.ConfirmResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.accountService.ConfirmPasswordReset(c.Request.Context(), id, req.NewPassword); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Status:  true,
		Message: "Password updated",
	})
}
