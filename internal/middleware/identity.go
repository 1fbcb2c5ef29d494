package middleware

// identity.go defines helper functions shared across middleware files.
// Currently it provides the user identifier lookup used by the rate
// limiter's key derivation. JWTAuth stores the subject claim under
// "user_id"; when no user is authenticated "anon" is returned so guest
// traffic still buckets consistently.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// currentUserID extracts the authenticated user's identifier from the
// echo context as a string. The claim may arrive as a string or a
// number depending on how the token was minted.
func currentUserID(c echo.Context) string {
    switch v := c.Get("user_id").(type) {
    case string:
        if v != "" {
            return v
        }
    case float64:
        return strconv.FormatUint(uint64(v), 10)
    case uint64:
        return strconv.FormatUint(v, 10)
    case int64:
        return strconv.FormatInt(v, 10)
    }
    return "anon"
}
