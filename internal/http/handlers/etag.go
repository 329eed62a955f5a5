package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Cache-Control values for list responses. Per-user lists may only be
// revalidated; the food reference table can be reused for a while.
const (
	cachePrivate = "private, no-cache"
	cachePublic  = "public, max-age=300"
)

// respondCacheable writes payload as JSON with a strong ETag over the encoded
// body and answers a matching If-None-Match with 304.
func respondCacheable(ctx *gin.Context, cacheControl string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		RespondInternal(ctx, "Failed to encode response", err)
		return
	}

	etag := bodyETag(body)
	ctx.Header("ETag", etag)
	ctx.Header("Cache-Control", cacheControl)
	if cacheControl == cachePrivate {
		ctx.Header("Vary", "Authorization")
	}

	if etagMatches(ctx.GetHeader("If-None-Match"), etag) {
		ctx.Status(http.StatusNotModified)
		return
	}

	ctx.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func bodyETag(body []byte) string {
	sum := sha256.Sum256(body)
	// 16 bytes is plenty to tell two list states apart
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

// etagMatches uses the weak comparison If-None-Match calls for.
func etagMatches(header, etag string) bool {
	header = strings.TrimSpace(header)
	if header == "" {
		return false
	}
	if header == "*" {
		return true
	}

	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == etag {
			return true
		}
	}
	return false
}
