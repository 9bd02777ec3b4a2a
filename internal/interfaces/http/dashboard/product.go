package dashboard

import (
	"net/http"
	"net/url"

	catalogapp "github.com/ecommerce/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductList renders the product table.
func (h *Handler) ProductList(c *gin.Context) {
	filter := catalogapp.ProductListFilter{
		Search:       c.Query("search"),
		CategoryID:   queryUUID(c, "category_id"),
		BrandID:      queryUUID(c, "brand_id"),
		ActiveOnly:   c.Query("is_active") == "1",
		FeaturedOnly: c.Query("is_featured") == "1",
		Page:         1,
		PageSize:     100,
	}
	products, total, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		h.renderError(c, "product_list.html", "Products", err)
		return
	}

	c.HTML(http.StatusOK, "product_list.html", gin.H{
		"Title":    "Products",
		"Products": products,
		"Total":    total,
		"Search":   filter.Search,
		"Error":    c.Query("error"),
	})
}

// ProductNew renders an empty product form with category and brand choices.
func (h *Handler) ProductNew(c *gin.Context) {
	categories, _, err := h.categories.List(c.Request.Context(), catalogapp.CategoryListFilter{
		ActiveOnly: true,
		Page:       1,
		PageSize:   100,
	})
	if err != nil {
		h.renderError(c, "product_form.html", "New Product", err)
		return
	}
	brands, _, err := h.brands.List(c.Request.Context(), catalogapp.BrandListFilter{
		ActiveOnly: true,
		Page:       1,
		PageSize:   100,
	})
	if err != nil {
		h.renderError(c, "product_form.html", "New Product", err)
		return
	}

	c.HTML(http.StatusOK, "product_form.html", gin.H{
		"Title":              "New Product",
		"Categories":         categories,
		"Brands":             brands,
		"Action":             "/dashboard/products",
		"SelectedCategoryID": "",
		"SelectedBrandID":    "",
	})
}

// ProductCreate handles the create form submission.
func (h *Handler) ProductCreate(c *gin.Context) {
	categoryID := formUUID(c, "category_id")
	if categoryID == nil {
		c.HTML(http.StatusBadRequest, "product_form.html", gin.H{
			"Title":              "New Product",
			"Error":              "Category is required",
			"Action":             "/dashboard/products",
			"SelectedCategoryID": "",
			"SelectedBrandID":    "",
		})
		return
	}

	req := catalogapp.CreateProductRequest{
		Name:             c.PostForm("name"),
		CategoryID:       *categoryID,
		BrandID:          formUUID(c, "brand_id"),
		ShortDescription: c.PostForm("short_description"),
		Description:      c.PostForm("description"),
		MetaTitle:        c.PostForm("meta_title"),
		MetaDescription:  c.PostForm("meta_description"),
		IsFeatured:       boolPtr(formBool(c, "is_featured")),
	}

	created, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		c.HTML(http.StatusBadRequest, "product_form.html", gin.H{
			"Title":              "New Product",
			"Error":              err.Error(),
			"Action":             "/dashboard/products",
			"SelectedCategoryID": categoryID.String(),
			"SelectedBrandID":    "",
		})
		return
	}

	h.logger.Info("Product created via dashboard",
		zap.String("product_id", created.ID.String()),
		zap.String("slug", created.Slug),
	)
	c.Redirect(http.StatusFound, "/dashboard/products")
}

// ProductEdit renders the edit form.
func (h *Handler) ProductEdit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/dashboard/products")
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Redirect(http.StatusFound, "/dashboard/products")
		return
	}

	categories, _, _ := h.categories.List(c.Request.Context(), catalogapp.CategoryListFilter{
		ActiveOnly: true, Page: 1, PageSize: 100,
	})
	brands, _, _ := h.brands.List(c.Request.Context(), catalogapp.BrandListFilter{
		ActiveOnly: true, Page: 1, PageSize: 100,
	})

	selectedBrand := ""
	if product.BrandID != nil {
		selectedBrand = product.BrandID.String()
	}
	c.HTML(http.StatusOK, "product_form.html", gin.H{
		"Title":              "Edit Product",
		"Product":            product,
		"Categories":         categories,
		"Brands":             brands,
		"Action":             "/dashboard/products/" + id.String(),
		"SelectedCategoryID": product.CategoryID.String(),
		"SelectedBrandID":    selectedBrand,
	})
}

// ProductUpdate handles the edit form submission.
func (h *Handler) ProductUpdate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/dashboard/products")
		return
	}

	req := catalogapp.UpdateProductRequest{
		Name:             strPtr(c.PostForm("name")),
		CategoryID:       formUUID(c, "category_id"),
		ShortDescription: strPtr(c.PostForm("short_description")),
		Description:      strPtr(c.PostForm("description")),
		MetaTitle:        strPtr(c.PostForm("meta_title")),
		MetaDescription:  strPtr(c.PostForm("meta_description")),
		IsFeatured:       boolPtr(formBool(c, "is_featured")),
	}
	if brandID := formUUID(c, "brand_id"); brandID != nil {
		req.BrandID = brandID
	} else {
		req.ClearBrand = true
	}

	updated, err := h.products.Update(c.Request.Context(), id, req)
	if err != nil {
		product, getErr := h.products.GetByID(c.Request.Context(), id)
		if getErr != nil {
			c.Redirect(http.StatusFound, "/dashboard/products")
			return
		}
		selectedBrand := ""
		if product.BrandID != nil {
			selectedBrand = product.BrandID.String()
		}
		c.HTML(http.StatusBadRequest, "product_form.html", gin.H{
			"Title":              "Edit Product",
			"Product":            product,
			"Error":              err.Error(),
			"Action":             "/dashboard/products/" + id.String(),
			"SelectedCategoryID": product.CategoryID.String(),
			"SelectedBrandID":    selectedBrand,
		})
		return
	}

	h.logger.Info("Product updated via dashboard",
		zap.String("product_id", updated.ID.String()),
	)
	c.Redirect(http.StatusFound, "/dashboard/products")
}

// ProductDelete permanently deletes an inactive product.
func (h *Handler) ProductDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/dashboard/products")
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		c.Redirect(http.StatusFound, "/dashboard/products?error="+url.QueryEscape(errorMessage(err)))
		return
	}

	h.logger.Warn("Product permanently deleted via dashboard",
		zap.String("product_id", id.String()),
	)
	c.Redirect(http.StatusFound, "/dashboard/products")
}

// ToggleProductActive flips the is_active flag.
func (h *Handler) ToggleProductActive(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing product id"})
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false})
		return
	}

	if product.IsActive {
		product, err = h.products.Deactivate(c.Request.Context(), id)
	} else {
		product, err = h.products.Activate(c.Request.Context(), id)
	}
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": errorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "is_active": product.IsActive})
}

// ToggleProductFeatured flips the is_featured flag.
func (h *Handler) ToggleProductFeatured(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing product id"})
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false})
		return
	}

	updated, err := h.products.Update(c.Request.Context(), id, catalogapp.UpdateProductRequest{
		IsFeatured: boolPtr(!product.IsFeatured),
	})
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": errorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "is_featured": updated.IsFeatured})
}

// SoftDeleteProduct deactivates a product.
func (h *Handler) SoftDeleteProduct(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing product id"})
		return
	}

	if _, err := h.products.GetByID(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false})
		return
	}

	if _, err := h.products.Deactivate(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": errorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// queryUUID parses an optional uuid query parameter.
func queryUUID(c *gin.Context, field string) *uuid.UUID {
	raw := c.Query(field)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}
