package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the book API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>adventures-of-api · Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "adventures-of-api", "version": "v0.1.0" },
  "paths": {
    "/api/generate": {
      "post": {
        "summary": "Generate a personalized picture book",
        "requestBody": { "required": true, "content": { "application/json": { "schema": {
          "type": "object",
          "required": ["childName", "childAge", "readingLevel"],
          "properties": {
            "childName": {"type": "string"},
            "childAge": {"type": "integer", "minimum": 1},
            "interests": {"type": "array", "items": {"type": "string"}},
            "favoriteThing": {"type": "string"},
            "fearToAvoid": {"type": "string"},
            "readingLevel": {"type": "string", "enum": ["simple", "medium", "advanced"]},
            "photo": {"type": "string", "description": "accepted and ignored"}
          }}}}},
        "responses": {
          "200": { "description": "book written", "content": { "application/json": { "schema": {"type":"object","properties":{"success":{"type":"boolean"},"downloadUrl":{"type":"string"},"story":{"type":"string"},"characterImage":{"type":"string"}}}}}},
          "400": { "description": "invalid profile" },
          "413": { "description": "request body too large" },
          "429": { "description": "rate limit exceeded" },
          "500": { "description": "book could not be written" }
        }
      }
    },
    "/api/health": {
      "get": { "summary": "Service status and payment link", "responses": { "200": { "description": "status ok, mode MVP" } } }
    },
    "/api/payment-link": {
      "get": { "summary": "Purchase link and price", "responses": { "200": { "description": "url and price" } } }
    },
    "/output/{file}": {
      "get": { "summary": "Download a generated PDF", "parameters": [{"name":"file","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "application/pdf" }, "404": { "description": "not found" } } }
    },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "text exposition format" } } } }
  }
}`
