package contact

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ChristianMLux/cml25-backend/internal/locale"
	"github.com/ChristianMLux/cml25-backend/internal/platform/logging"
)

const namespace = "contact"

// Translator resolves catalog keys. *i18n.Catalog implements it.
type Translator interface {
	T(loc locale.Code, ns, key string) string
}

type Handler struct {
	repo    *Repository
	limiter *Limiter
	res     *locale.Resolver
	tr      Translator
	log     logging.Logger
}

func NewHandler(repo *Repository, limiter *Limiter, res *locale.Resolver, tr Translator, log logging.Logger) *Handler {
	if log == nil {
		log = logging.Nop()
	}
	return &Handler{repo: repo, limiter: limiter, res: res, tr: tr, log: log.With("component", "contact")}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/contact", h.Submit)
}

// Submit validates and stores one submission. Field errors come back as
// {"error": "validation failed", "fields": {"email": "..."}}.
func (h *Handler) Submit(c *gin.Context) {
	if !h.limiter.Allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": ErrRateLimited.Error()})
		return
	}

	var req Submission
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	loc := h.locale(c, req.Locale)

	// Limits apply to the trimmed values that get stored.
	req.trim()
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "validation failed",
				"fields": h.fieldErrors(verrs, loc),
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.repo.Save(c.Request.Context(), req, loc)
	if err != nil {
		h.log.Error(c.Request.Context(), "contact save failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		return
	}

	h.log.Info(c.Request.Context(), "contact submission stored", "id", id, "locale", loc)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"id":      id,
		"message": h.tr.T(loc, namespace, "form.success"),
	})
}

func (h *Handler) locale(c *gin.Context, requested string) locale.Code {
	if code, ok := h.res.Registry().Parse(requested); ok {
		return code
	}
	cookie, _ := c.Cookie(locale.CookieName)
	return h.res.Preferred(cookie, c.GetHeader("Accept-Language"))
}

func (h *Handler) fieldErrors(verrs validator.ValidationErrors, loc locale.Code) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		msg := h.tr.T(loc, namespace, "errors."+field)
		if msg == "" {
			msg = fe.Tag()
		}
		out[field] = msg
	}
	return out
}
