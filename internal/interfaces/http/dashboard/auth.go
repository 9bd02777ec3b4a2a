package dashboard

import (
	"net/http"
	"time"

	identityapp "github.com/ecommerce/backend/internal/application/identity"
	"github.com/ecommerce/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireStaff authenticates dashboard requests from the session cookie.
// Anything without a valid staff access token is sent back to the login page.
func (h *Handler) RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(h.cookie.Name)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, "/dashboard/login")
			c.Abort()
			return
		}

		claims, err := h.jwt.ValidateAccessToken(token)
		if err != nil {
			h.clearSessionCookie(c)
			c.Redirect(http.StatusFound, "/dashboard/login")
			c.Abort()
			return
		}

		if !claims.IsStaff {
			h.clearSessionCookie(c)
			c.Redirect(http.StatusFound, "/dashboard/login")
			c.Abort()
			return
		}

		c.Set(middleware.JWTClaimsKey, claims)
		c.Set(middleware.JWTUserIDKey, claims.UserID)
		c.Set(middleware.JWTEmailKey, claims.Email)
		c.Set(middleware.JWTIsStaffKey, claims.IsStaff)

		c.Next()
	}
}

// LoginPage renders the dashboard login form.
func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Title": "Staff Login",
	})
}

// Login authenticates a staff user and starts the cookie session.
func (h *Handler) Login(c *gin.Context) {
	req := identityapp.LoginRequest{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}
	if req.Email == "" || req.Password == "" {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{
			"Title": "Staff Login",
			"Error": "Email and password are required",
			"Email": req.Email,
		})
		return
	}

	resp, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Title": "Staff Login",
			"Error": "Invalid credentials",
			"Email": req.Email,
		})
		return
	}

	if !resp.User.IsStaff {
		c.HTML(http.StatusForbidden, "login.html", gin.H{
			"Title": "Staff Login",
			"Error": "Staff access required",
			"Email": req.Email,
		})
		return
	}

	maxAge := int(time.Until(resp.Token.AccessTokenExpiresAt).Seconds())
	c.SetCookie(h.cookie.Name, resp.Token.AccessToken, maxAge, h.cookie.Path, "", h.cookie.Secure, true)

	h.logger.Info("Dashboard login",
		zap.String("user_id", resp.User.ID.String()),
		zap.String("email", resp.User.Email),
	)

	c.Redirect(http.StatusFound, "/dashboard/categories")
}

// Logout ends the cookie session.
func (h *Handler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/dashboard/login")
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(h.cookie.Name, "", -1, h.cookie.Path, "", h.cookie.Secure, true)
}
