package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"blog-cms/cmd/api/trace"
	"blog-cms/internal/logger"
)

const headerRequestID = "X-Request-Id"

const maxBodyLog = 1024

// RequestTrace는 모든 inbound HTTP 요청에 Request ID를 보장하고 컨텍스트/응답 헤더에
// 저장한 뒤, 요청이 끝나면 한 줄의 구조화 로그를 남긴다.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		requestID := req.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = trace.GenerateID()
		}

		c.Request = req.WithContext(trace.WithRequestID(req.Context(), requestID))
		c.Writer.Header().Set(headerRequestID, requestID)

		queryParams := map[string][]string{}
		for key, values := range req.URL.Query() {
			if len(values) > 0 {
				queryParams[key] = values
			}
		}

		// multipart 본문(이미지 업로드)은 로깅하지 않는다.
		var bodySnippet string
		if req.Body != nil && req.ContentLength > 0 && req.ContentLength <= 64*1024 &&
			(req.Method == http.MethodPost || req.Method == http.MethodPut) &&
			!strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/") {
			if bodyBytes, err := io.ReadAll(req.Body); err == nil {
				if len(bodyBytes) > maxBodyLog {
					bodySnippet = string(bodyBytes[:maxBodyLog])
				} else {
					bodySnippet = string(bodyBytes)
				}
				// gin 핸들러에서 다시 읽을 수 있도록 Body 를 복원한다.
				c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
			}
		}

		c.Next()

		fields := logger.Fields{
			"method":       req.Method,
			"path":         req.URL.Path,
			"query_params": queryParams,
			"status":       c.Writer.Status(),
			"duration":     time.Since(start).String(),
			"request_id":   requestID,
			"span_id":      trace.CurrentSpanID(c.Request.Context()),
		}
		if bodySnippet != "" && !strings.Contains(req.URL.Path, "/auth/") {
			fields["body"] = bodySnippet
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}
		logger.InfoWithFields("completed request", fields)
	}
}
