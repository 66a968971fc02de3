package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adventuresof/adventuresof/backend/go-services/internal/book"
	"github.com/adventuresof/adventuresof/backend/go-services/internal/book/service"
	"github.com/adventuresof/adventuresof/backend/go-services/internal/models"
	"github.com/adventuresof/adventuresof/backend/go-services/pkg/logger"
)

// Payment is the static purchase information shown by the frontend.
type Payment struct {
	Link  string
	Price string
}

// RegisterBookRoutes registers the generation, health and payment endpoints.
// Extra middlewares (rate limiting) apply to the generate route only.
func RegisterBookRoutes(r *gin.Engine, svc service.Service, pay Payment, generateMW ...gin.HandlerFunc) {
	api := r.Group("/api")

	gen := append(append([]gin.HandlerFunc{}, generateMW...), generate(svc))
	api.POST("/generate", gen...)

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "mode": "MVP", "paymentLink": pay.Link})
	})

	api.GET("/payment-link", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"url": pay.Link, "price": pay.Price})
	})
}

func generate(svc service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p models.Profile
		if err := c.ShouldBindJSON(&p); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"success": false, "error": "request body too large"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		b, err := svc.Generate(c.Request.Context(), &p)
		if err != nil {
			logger.Errorf("error generating book for %s: %v", p.ChildName, err)
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to generate book"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":        true,
			"downloadUrl":    b.DownloadURL,
			"story":          book.Preview(b.Story, book.PreviewLength),
			"characterImage": b.CharacterImage,
		})
	}
}
