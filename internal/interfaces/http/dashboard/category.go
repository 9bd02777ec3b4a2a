package dashboard

import (
	"errors"
	"net/http"
	"net/url"

	catalogapp "github.com/ecommerce/backend/internal/application/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryList renders the category table, ordered by materialized path.
func (h *Handler) CategoryList(c *gin.Context) {
	filter := catalogapp.CategoryListFilter{
		Search:     c.Query("search"),
		ActiveOnly: c.Query("is_active") != "0",
		Page:       1,
		PageSize:   100,
	}
	categories, total, err := h.categories.List(c.Request.Context(), filter)
	if err != nil {
		h.renderError(c, "category_list.html", "Categories", err)
		return
	}

	c.HTML(http.StatusOK, "category_list.html", gin.H{
		"Title":      "Categories",
		"Categories": categories,
		"Total":      total,
		"Search":     filter.Search,
		"Error":      c.Query("error"),
	})
}

// CategoryNew renders an empty category form.
func (h *Handler) CategoryNew(c *gin.Context) {
	parents, _, err := h.categories.List(c.Request.Context(), catalogapp.CategoryListFilter{
		ActiveOnly: true,
		Page:       1,
		PageSize:   100,
	})
	if err != nil {
		h.renderError(c, "category_form.html", "New Category", err)
		return
	}

	c.HTML(http.StatusOK, "category_form.html", gin.H{
		"Title":   "New Category",
		"Parents": parents,
		"Action":  "/dashboard/categories",
	})
}

// CategoryCreate handles the create form submission.
func (h *Handler) CategoryCreate(c *gin.Context) {
	req := catalogapp.CreateCategoryRequest{
		Name:            c.PostForm("name"),
		ParentID:        formUUID(c, "parent_id"),
		Icon:            c.PostForm("icon"),
		MetaTitle:       c.PostForm("meta_title"),
		MetaDescription: c.PostForm("meta_description"),
		ShowInMenu:      boolPtr(formBool(c, "show_in_menu")),
		SortOrder:       formInt(c, "sort_order"),
	}

	created, err := h.categories.Create(c.Request.Context(), req)
	if err != nil {
		c.HTML(http.StatusBadRequest, "category_form.html", gin.H{
			"Title":  "New Category",
			"Error":  err.Error(),
			"Action": "/dashboard/categories",
		})
		return
	}

	h.logger.Info("Category created via dashboard",
		zap.String("category_id", created.ID.String()),
		zap.String("path", created.Path),
	)
	c.Redirect(http.StatusFound, "/dashboard/categories")
}

// CategoryEdit renders the edit form for an existing category.
func (h *Handler) CategoryEdit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/dashboard/categories")
		return
	}

	category, err := h.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Redirect(http.StatusFound, "/dashboard/categories")
		return
	}

	c.HTML(http.StatusOK, "category_form.html", gin.H{
		"Title":    "Edit Category",
		"Category": category,
		"Action":   "/dashboard/categories/" + id.String(),
	})
}

// CategoryUpdate handles the edit form submission.
func (h *Handler) CategoryUpdate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/dashboard/categories")
		return
	}

	req := catalogapp.UpdateCategoryRequest{
		Name:            strPtr(c.PostForm("name")),
		Slug:            c.PostForm("slug"),
		Icon:            strPtr(c.PostForm("icon")),
		MetaTitle:       strPtr(c.PostForm("meta_title")),
		MetaDescription: strPtr(c.PostForm("meta_description")),
		ShowInMenu:      boolPtr(formBool(c, "show_in_menu")),
		SortOrder:       formInt(c, "sort_order"),
	}

	updated, err := h.categories.Update(c.Request.Context(), id, req)
	if err != nil {
		category, getErr := h.categories.GetByID(c.Request.Context(), id)
		if getErr != nil {
			c.Redirect(http.StatusFound, "/dashboard/categories")
			return
		}
		c.HTML(http.StatusBadRequest, "category_form.html", gin.H{
			"Title":    "Edit Category",
			"Category": category,
			"Error":    err.Error(),
			"Action":   "/dashboard/categories/" + id.String(),
		})
		return
	}

	h.logger.Info("Category updated via dashboard",
		zap.String("category_id", updated.ID.String()),
		zap.String("path", updated.Path),
	)
	c.Redirect(http.StatusFound, "/dashboard/categories")
}

// CategoryDelete permanently deletes an inactive, dependency-free category.
func (h *Handler) CategoryDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/dashboard/categories")
		return
	}

	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		c.Redirect(http.StatusFound, "/dashboard/categories?error="+url.QueryEscape(errorMessage(err)))
		return
	}

	h.logger.Warn("Category permanently deleted via dashboard",
		zap.String("category_id", id.String()),
	)
	c.Redirect(http.StatusFound, "/dashboard/categories")
}

// ToggleCategoryActive flips the is_active flag.
func (h *Handler) ToggleCategoryActive(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing category id"})
		return
	}

	category, err := h.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false})
		return
	}

	if category.IsActive {
		category, err = h.categories.Deactivate(c.Request.Context(), id)
	} else {
		category, err = h.categories.Activate(c.Request.Context(), id)
	}
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": errorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "is_active": category.IsActive})
}

// ToggleCategoryMenu flips menu visibility.
func (h *Handler) ToggleCategoryMenu(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing category id"})
		return
	}

	category, err := h.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false})
		return
	}

	updated, err := h.categories.Update(c.Request.Context(), id, catalogapp.UpdateCategoryRequest{
		ShowInMenu: boolPtr(!category.ShowInMenu),
	})
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": errorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "show_in_menu": updated.ShowInMenu})
}

// SoftDeleteCategory deactivates a category after the dependency checks.
// Dependencies surface as success=false with a human message, not an error.
func (h *Handler) SoftDeleteCategory(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing category id"})
		return
	}

	if _, err := h.categories.GetByID(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false})
		return
	}

	if err := h.guard.CheckCategoryRemovable(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": errorMessage(err)})
		return
	}

	if _, err := h.categories.Deactivate(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": errorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// renderError renders a page template with only an error banner.
func (h *Handler) renderError(c *gin.Context, template, title string, err error) {
	h.logger.Error("Dashboard page failed", zap.String("template", template), zap.Error(err))
	c.HTML(http.StatusInternalServerError, template, gin.H{
		"Title": title,
		"Error": errorMessage(err),
	})
}

// errorMessage strips the code prefix from domain errors for display.
func errorMessage(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return err.Error()
}
