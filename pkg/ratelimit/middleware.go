package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"booko/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// Middleware enforces per-tier rate limits before the handlers run
func Middleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := getClientIP(c)
		limitType := getRateLimitType(c.FullPath())

		result, err := rateLimiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusInternalServerError,
				"Rate limit check failed", nil, nil)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetTime))

		if !result.Allowed {
			response.RespondJSON(c, "error", http.StatusTooManyRequests,
				"Rate limit exceeded", nil, map[string]interface{}{
					"limit":      result.Limit,
					"reset_time": result.ResetTime,
				})
			c.Abort()
			return
		}

		c.Next()
	}
}

// getRateLimitType maps a route to its rate-limit tier
func getRateLimitType(path string) RateLimitType {
	switch {
	// Authentication endpoints
	case strings.Contains(path, "/auth/"):
		return RateLimitTypeAuth

	// Payment initiation is the most abuse-prone write path
	case strings.Contains(path, "/payments"):
		return RateLimitTypePayment

	// Booking creation/cancellation and availability checks
	case strings.Contains(path, "/bookings"),
		strings.Contains(path, "/check-availability"),
		strings.Contains(path, "/availability"):
		return RateLimitTypeBooking

	// Public catalog browsing
	case strings.Contains(path, "/movies"),
		strings.Contains(path, "/theaters"),
		strings.Contains(path, "/screens"),
		strings.Contains(path, "/showtimes"):
		return RateLimitTypePublic

	// Admin surfaces
	case strings.Contains(path, "/admin/"):
		return RateLimitTypeAdmin

	default:
		return RateLimitTypeDefault
	}
}

// getClientIP extracts the real client IP
func getClientIP(c *gin.Context) string {
	// Check X-Forwarded-For header
	xForwardedFor := c.GetHeader("X-Forwarded-For")
	if xForwardedFor != "" {
		ips := strings.Split(xForwardedFor, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	// Check X-Real-IP header
	xRealIP := c.GetHeader("X-Real-IP")
	if xRealIP != "" {
		if net.ParseIP(xRealIP) != nil {
			return xRealIP
		}
	}

	// Fall back to RemoteAddr
	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}

	return ip
}
