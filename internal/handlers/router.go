package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizmania/quiz-service/internal/services"
	"github.com/quizmania/quiz-service/internal/utils"
	"github.com/quizmania/quiz-service/internal/validator"
)

type HandlerManager struct {
	accountHandler *AccountHandler
	quizHandler    *QuizHandler
	statsHandler   *StatsHandler

	serviceManager services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		accountHandler: NewAccountHandler(serviceManager.Account(), validator, logger),
		quizHandler:    NewQuizHandler(serviceManager.Quiz(), serviceManager.Grading(), validator, logger),
		statsHandler:   NewStatsHandler(serviceManager.Stats(), logger),
		serviceManager: serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	// Account routes
	router.POST("/signup", hm.accountHandler.SignUp)
	router.POST("/signin/:email", hm.accountHandler.SignIn)
	router.GET("/signin/:email", hm.accountHandler.GetAccount)
	router.GET("/reset-password/:email", hm.accountHandler.RequestPasswordReset)
	router.PATCH("/reset-password/:id", hm.accountHandler.ConfirmPasswordReset)

	// Quiz routes
	router.POST("/generate-quiz", hm.quizHandler.GenerateQuiz)
	router.GET("/get-quiz-set/:id", hm.quizHandler.GetQuizSet)
	router.POST("/answer/checking", hm.quizHandler.CheckAnswers)

	// Stats routes
	router.GET("/user/stats/:email", hm.statsHandler.GetUserStats)

	admin := router.Group("/admin")
	{
		admin.GET("/stats", hm.statsHandler.GetAdminStats)
		admin.GET("/stats/export", hm.statsHandler.ExportAdminStats)
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Message: "Service unhealthy",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Status:  true,
		Message: "ok",
	})
}
