package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/idtoken"
)

// User is the signed-in identity attached to a request.
type User struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
	Email       string `json:"email"`
}

const userContextKey = "authUser"

// Verifier validates Google ID tokens from the browser's sign-in flow.
// A zero client ID means auth is not configured: optional routes degrade to
// anonymous, required routes report sign-in as unavailable.
type Verifier struct {
	ClientID string
}

func NewVerifier(clientID string) *Verifier {
	return &Verifier{ClientID: clientID}
}

func (v *Verifier) verify(c *gin.Context) (*User, error) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, nil
	}
	token := strings.TrimPrefix(header, "Bearer ")

	payload, err := idtoken.Validate(c.Request.Context(), token, v.ClientID)
	if err != nil {
		return nil, err
	}

	user := &User{UID: payload.Subject}
	if name, ok := payload.Claims["name"].(string); ok {
		user.DisplayName = name
	}
	if pic, ok := payload.Claims["picture"].(string); ok {
		user.PhotoURL = pic
	}
	if email, ok := payload.Claims["email"].(string); ok {
		user.Email = email
	}
	return user, nil
}

// Required rejects requests without a valid ID token.
func (v *Verifier) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if v.ClientID == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "sign-in unavailable"})
			return
		}
		user, err := v.verify(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "must be signed in: " + err.Error()})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "must be signed in"})
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

// Optional attaches the user when a valid token is present and lets
// anonymous requests through. An invalid token is still rejected: a client
// that thinks it is signed in should not silently lose its identity.
func (v *Verifier) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if v.ClientID == "" || c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		user, err := v.verify(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "must be signed in: " + err.Error()})
			return
		}
		if user != nil {
			c.Set(userContextKey, user)
		}
		c.Next()
	}
}

// CurrentUser returns the signed-in user for the request, or nil.
func CurrentUser(c *gin.Context) *User {
	if v, ok := c.Get(userContextKey); ok {
		if user, ok := v.(*User); ok {
			return user
		}
	}
	return nil
}
