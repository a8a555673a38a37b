package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/healthed-zw/backend/models"
	"github.com/healthed-zw/backend/store"
	"github.com/healthed-zw/backend/utils"
)

// QAController manages the anonymous Q&A forum. Questions are created
// pending by students and answered once by healthcare professionals; the
// status transition is monotonic and questions are never deleted.
type QAController struct {
	kv store.KV
}

// NewQAController creates a QAController.
func NewQAController(kv store.KV) *QAController {
	return &QAController{kv: kv}
}

// ListQuestions returns all questions, newest first.
func (q *QAController) ListQuestions(ctx *gin.Context) {
	var questions []models.Question
	if _, err := store.GetJSON(ctx.Request.Context(), q.kv, store.KeyQuestions, &questions); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to get questions")
		return
	}
	if questions == nil {
		questions = []models.Question{}
	}
	utils.Success(ctx, gin.H{"questions": questions})
}

// CreateQuestion prepends a pending question.
func (q *QAController) CreateQuestion(ctx *gin.Context) {
	var req struct {
		Question string `json:"question" binding:"required,min=1"`
		Category string `json:"category"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40070, "invalid request payload")
		return
	}

	username, ok := getUsername(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40170, "unauthorized")
		return
	}

	category := req.Category
	if category == "" {
		category = "General Health"
	}

	question := models.Question{
		ID:        utils.NewID(),
		Question:  utils.Sanitize(strings.TrimSpace(req.Question)),
		Category:  category,
		Status:    models.QuestionPending,
		AskedBy:   username,
		CreatedAt: nowStamp(),
	}

	_, err := store.Mutate(ctx.Request.Context(), q.kv, store.KeyQuestions,
		func(cur []models.Question) ([]models.Question, error) {
			return append([]models.Question{question}, cur...), nil
		})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to create question")
		return
	}

	utils.Success(ctx, gin.H{"question": question})
}

// AnswerQuestion records an answer. Re-answering replaces the answer fields
// but the status never moves back to pending.
func (q *QAController) AnswerQuestion(ctx *gin.Context) {
	var req struct {
		QuestionID string `json:"question_id" binding:"required"`
		Answer     string `json:"answer" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40071, "invalid request payload")
		return
	}

	username, ok := getUsername(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40171, "unauthorized")
		return
	}

	var answered models.Question
	_, err := store.Mutate(ctx.Request.Context(), q.kv, store.KeyQuestions,
		func(cur []models.Question) ([]models.Question, error) {
			for i := range cur {
				if cur[i].ID != req.QuestionID {
					continue
				}
				cur[i].Answer = utils.Sanitize(req.Answer)
				cur[i].AnsweredBy = username
				cur[i].Status = models.QuestionAnswered
				cur[i].AnsweredAt = nowStamp()
				answered = cur[i]
				return cur, nil
			}
			return nil, store.ErrNotFound
		})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40470, "question not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to answer question")
		return
	}

	utils.Success(ctx, gin.H{"question": answered})
}
