package admin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/karlos-perez/hundred-to-one/internal/config"
	"github.com/karlos-perez/hundred-to-one/internal/models"
	"github.com/karlos-perez/hundred-to-one/internal/repositories"
	"github.com/karlos-perez/hundred-to-one/pkg/logger"
)

// Handler serves the management API: admin login, the question bank
// and aggregate statistics.
type Handler struct {
	config    *config.Config
	admins    *repositories.AdminRepository
	questions *repositories.QuestionRepository
	games     *repositories.GameRepository
	users     *repositories.UserRepository
	sanitizer *bluemonday.Policy
}

func NewHandler(cfg *config.Config, db *repositories.Store, admins *repositories.AdminRepository) *Handler {
	return &Handler{
		config:    cfg,
		admins:    admins,
		questions: db.Questions,
		games:     db.Games,
		users:     db.Users,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges admin credentials for a session token.
func (h *Handler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, err := h.admins.GetByEmail(input.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up admin"})
		return
	}
	if admin == nil || !admin.CheckPassword(input.Password) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := generateToken(admin.Email, h.config.JWTSecret)
	if err != nil {
		logger.Error("Failed to sign token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

type answerInput struct {
	Title string `json:"title" binding:"required"`
	Score int    `json:"score" binding:"required"`
}

type questionInput struct {
	Title   string        `json:"title" binding:"required"`
	Answers []answerInput `json:"answers" binding:"required"`
}

// CreateQuestion adds a playable question to the bank.
func (h *Handler) CreateQuestion(c *gin.Context) {
	var input questionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question := &models.Question{
		Title: h.clean(input.Title),
	}
	for _, a := range input.Answers {
		question.Answers = append(question.Answers, models.Answer{
			Title: h.clean(a.Title),
			Score: a.Score,
		})
	}

	if err := question.Validate(h.config.SumScore); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.questions.GetByTitle(question.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check question"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A question with this title already exists"})
		return
	}

	if err := h.questions.Create(question); err != nil {
		logger.Error("Failed to create question", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		return
	}

	logger.Info("Question created", "question_id", question.ID, "admin", c.GetString("adminEmail"))
	c.JSON(http.StatusCreated, question)
}

// ListQuestions returns the whole question bank with answers.
func (h *Handler) ListQuestions(c *gin.Context) {
	questions, err := h.questions.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list questions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions, "count": len(questions)})
}

// DeleteQuestion removes a question unless a running game still uses it.
func (h *Handler) DeleteQuestion(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question id"})
		return
	}

	active, err := h.games.CountActiveGamesForQuestion(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check active games"})
		return
	}
	if active > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Question is used by an active game"})
		return
	}

	if err := h.questions.Delete(uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	logger.Info("Question deleted", "question_id", id, "admin", c.GetString("adminEmail"))
	c.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
}

// Stats reports aggregate usage numbers.
func (h *Handler) Stats(c *gin.Context) {
	users, err := h.users.CountUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
		return
	}
	questions, err := h.questions.CountQuestions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count questions"})
		return
	}
	games, err := h.games.CountGames()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count games"})
		return
	}
	byStatus, err := h.games.CountGamesByStatus()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count games by status"})
		return
	}
	totals, err := h.users.UserTotals()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate user totals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":           users,
		"questions":       questions,
		"games":           games,
		"games_by_status": byStatus,
		"user_totals":     totals,
	})
}

// clean strips markup and surrounding whitespace from user-supplied
// text before it reaches the database.
func (h *Handler) clean(text string) string {
	return strings.TrimSpace(h.sanitizer.Sanitize(text))
}
