// Package dashboard serves the minimal staff admin pages. Pages are rendered
// with html/template via gin; row actions (toggles, soft deletes) are AJAX
// endpoints returning {"success": ...} JSON.
package dashboard

import (
	"strconv"
	"strings"

	catalogapp "github.com/ecommerce/backend/internal/application/catalog"
	identityapp "github.com/ecommerce/backend/internal/application/identity"
	"github.com/ecommerce/backend/internal/infrastructure/auth"
	"github.com/ecommerce/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler bundles the services the dashboard pages operate on.
type Handler struct {
	categories *catalogapp.CategoryService
	brands     *catalogapp.BrandService
	products   *catalogapp.ProductService
	guard      *catalogapp.DependencyGuard
	authSvc    *identityapp.AuthService
	jwt        *auth.JWTService
	cookie     config.CookieConfig
	logger     *zap.Logger
}

// NewHandler creates the dashboard handler.
func NewHandler(
	categories *catalogapp.CategoryService,
	brands *catalogapp.BrandService,
	products *catalogapp.ProductService,
	guard *catalogapp.DependencyGuard,
	authSvc *identityapp.AuthService,
	jwtService *auth.JWTService,
	cookie config.CookieConfig,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		categories: categories,
		brands:     brands,
		products:   products,
		guard:      guard,
		authSvc:    authSvc,
		jwt:        jwtService,
		cookie:     cookie,
		logger:     logger,
	}
}

// RegisterRoutes mounts the dashboard under /dashboard on the engine.
func (h *Handler) RegisterRoutes(engine *gin.Engine) {
	g := engine.Group("/dashboard")

	g.GET("/login", h.LoginPage)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)

	authed := g.Group("", h.RequireStaff())
	authed.GET("", h.Home)

	authed.GET("/categories", h.CategoryList)
	authed.GET("/categories/new", h.CategoryNew)
	authed.POST("/categories", h.CategoryCreate)
	authed.GET("/categories/:id/edit", h.CategoryEdit)
	authed.POST("/categories/:id", h.CategoryUpdate)
	authed.POST("/categories/:id/delete", h.CategoryDelete)
	authed.POST("/categories/toggle-active", h.ToggleCategoryActive)
	authed.POST("/categories/toggle-menu", h.ToggleCategoryMenu)
	authed.POST("/categories/soft-delete", h.SoftDeleteCategory)

	authed.GET("/brands", h.BrandList)
	authed.GET("/brands/new", h.BrandNew)
	authed.POST("/brands", h.BrandCreate)
	authed.GET("/brands/:id/edit", h.BrandEdit)
	authed.POST("/brands/:id", h.BrandUpdate)
	authed.POST("/brands/:id/delete", h.BrandDelete)
	authed.POST("/brands/toggle-active", h.ToggleBrandActive)
	authed.POST("/brands/toggle-featured", h.ToggleBrandFeatured)
	authed.POST("/brands/soft-delete", h.SoftDeleteBrand)

	authed.GET("/products", h.ProductList)
	authed.GET("/products/new", h.ProductNew)
	authed.POST("/products", h.ProductCreate)
	authed.GET("/products/:id/edit", h.ProductEdit)
	authed.POST("/products/:id", h.ProductUpdate)
	authed.POST("/products/:id/delete", h.ProductDelete)
	authed.POST("/products/toggle-active", h.ToggleProductActive)
	authed.POST("/products/toggle-featured", h.ToggleProductFeatured)
	authed.POST("/products/soft-delete", h.SoftDeleteProduct)
}

// Home redirects to the category list, the dashboard's landing page.
func (h *Handler) Home(c *gin.Context) {
	c.Redirect(302, "/dashboard/categories")
}

// postID reads the object id field common to all AJAX actions.
func postID(c *gin.Context) (uuid.UUID, bool) {
	raw := strings.TrimSpace(c.PostForm("id"))
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// formBool interprets checkbox-style form values.
func formBool(c *gin.Context, field string) bool {
	switch strings.ToLower(c.PostForm(field)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// formInt parses an optional numeric form field, nil when absent or invalid.
func formInt(c *gin.Context, field string) *int {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// formUUID parses an optional uuid form field, nil when absent or invalid.
func formUUID(c *gin.Context, field string) *uuid.UUID {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
