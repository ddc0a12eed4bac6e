package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	applog "safeguard-backend/internal/logger"
)

// bodyRecorder tees the response so it can be stored for replay.
type bodyRecorder struct {
	http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *bodyRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func jsonError(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}

// IdempotencyMiddleware makes POST/PUT/PATCH/DELETE replay-safe. A request is
// identified by method, route, wallet and X-Request-Id. A finished response
// is replayed for the same body, a different body is a conflict, and server
// errors release the key so the client may retry with the same id.
func IdempotencyMiddleware(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	store := replayStore{rdb: rdb, ttl: ttl}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			hdr, err := readIdempHeaders(req.Header, time.Now().UTC())
			if err != nil {
				return jsonError(c, http.StatusBadRequest, err.Error())
			}

			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewReader(body))
			hash := bodyHash(body)

			key := hdr.key(req.Method, c.Path())
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()

			entry := replayEntry{
				BodySHA256:  hash,
				RequestID:   hdr.RequestID,
				RequestAtMS: hdr.RequestAt.UnixMilli(),
				CreatedAt:   time.Now().UTC(),
			}
			fresh, err := store.reserve(ctx, key, entry)
			if err != nil {
				applog.CtxError(req.Context(), "idempotency store unavailable", err)
				return jsonError(c, http.StatusServiceUnavailable, "idempotency store unavailable")
			}
			if !fresh {
				prev, err := store.load(ctx, key)
				if err != nil {
					applog.CtxWarn(req.Context(), "idempotency entry not loaded", zap.String("key", key), zap.Error(err))
				}
				switch {
				case prev.BodySHA256 != "" && prev.BodySHA256 != hash:
					return jsonError(c, http.StatusConflict, HeaderRequestID+" reused with different body")
				case prev.replayable():
					return c.Blob(prev.Code, echo.MIMEApplicationJSON, prev.Body)
				default:
					return jsonError(c, http.StatusConflict, "request is already in progress")
				}
			}

			rec := &bodyRecorder{ResponseWriter: c.Response().Writer, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			if rec.code >= http.StatusInternalServerError {
				if err := store.release(context.Background(), key); err != nil {
					applog.CtxWarn(req.Context(), "idempotency key not released", zap.String("key", key), zap.Error(err))
				}
				return nil
			}
			entry.Code = rec.code
			entry.Body = rec.buf.Bytes()
			if err := store.commit(context.Background(), key, entry); err != nil {
				applog.CtxWarn(req.Context(), "idempotency entry not saved", zap.String("key", key), zap.Error(err))
			}
			return nil
		}
	}
}
