package auth

import (
	"context"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"

	"github.com/gin-gonic/gin"
)

// TokenKey is the gin context key the verified Firebase token is stored
// under for downstream handlers.
const TokenKey = "token"

// Middleware verifies the Firebase ID token before any gated route runs.
// Editor-lock checks happen later in the services; this only establishes who
// the caller is.
func Middleware(firebaseApp *firebase.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		idToken := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || idToken == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing or malformed"})
			c.Abort()
			return
		}

		ctx := context.Background()
		authClient, err := firebaseApp.Auth(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initialize Firebase Auth"})
			c.Abort()
			return
		}

		token, err := authClient.VerifyIDToken(ctx, idToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid ID token"})
			c.Abort()
			return
		}

		// Attach token to the context
		c.Set(TokenKey, token)

		c.Next()
	}
}
