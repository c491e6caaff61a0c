package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizmania/quiz-service/internal/services"
	"github.com/quizmania/quiz-service/internal/utils"
	"github.com/quizmania/quiz-service/internal/validator"
)

type QuizHandler struct {
	BaseHandler
	quizService    services.QuizService
	gradingService services.GradingService
	validator      *validator.Validator
}

func NewQuizHandler(
	quizService services.QuizService,
	gradingService services.GradingService,
	validator *validator.Validator,
	logger utils.Logger,
) *QuizHandler {
	return &QuizHandler{
		BaseHandler:    NewBaseHandler(logger),
		quizService:    quizService,
		gradingService: gradingService,
		validator:      validator,
	}
}

// GenerateQuiz creates a quiz from the submitted criteria.
// @Summary Generate quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Param criteria body services.GenerateQuizRequest true "Generation criteria"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /generate-quiz [post]
func (h *QuizHandler) GenerateQuiz(c *gin.Context) {
	var req services.GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Generating quiz", "topic", req.Topic, "quantity", req.Quantity)

	quiz, err := h.quizService.Generate(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Status: true,
		Data:   quiz,
	})
}

// GetQuizSet retrieves a stored quiz by ID.
// @Summary Get quiz
// @Tags quizzes
// @Produce json
// @Param id path uint true "Quiz ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /get-quiz-set/{id} [get]
func (h *QuizHandler) GetQuizSet(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	quiz, err := h.quizService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Status: true,
		Data:   quiz,
	})
}

// CheckAnswers grades a submitted answer set against its quiz.
// @Summary Grade submission
// @Tags quizzes
// @Accept json
// @Produce json
// @Param submission body services.GradeSubmissionRequest true "Submitted answers"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /answer/checking [post]
func (h *QuizHandler) CheckAnswers(c *gin.Context) {
	var req services.GradeSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Grading submission", "quiz_id", req.QuizID)

	result, err := h.gradingService.GradeSubmission(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Status: true,
		Data:   result,
	})
}
