package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-cms/cmd/api/dto"
	"blog-cms/cmd/api/services"
	"blog-cms/query"
)

// ListPublicPostsHandler godoc
// @Summary      List published posts
// @Description  Published posts with category/tag/featured filters, sorting and pagination. Filters are computed over all published posts.
// @Tags         public
// @Param        page      query  int     false  "Page number (1-based)"  default(1)
// @Param        limit     query  int     false  "Page size"  default(10)
// @Param        category  query  string  false  "Category (case-insensitive)"
// @Param        tag       query  string  false  "Tag (case-insensitive)"
// @Param        featured  query  string  false  "\"true\" for featured posts, anything else for non-featured"
// @Param        sort      query  string  false  "date_desc | date_asc | views_desc | likes_desc"  default(date_desc)
// @Produce      json
// @Success      200  {object}  dto.PostListResponseDTO
// @Router       /api/public/posts [get]
func ListPublicPostsHandler(svc *services.PublicService) gin.HandlerFunc {
	return func(c *gin.Context) {
		featured, hasFeatured := c.GetQuery("featured")
		params := query.ParseParams(
			c.Query("page"),
			c.Query("limit"),
			c.Query("category"),
			c.Query("tag"),
			featured,
			hasFeatured,
			c.Query("sort"),
		)
		c.JSON(http.StatusOK, svc.List(c.Request.Context(), params))
	}
}

// GetPublicPostHandler godoc
// @Summary      Get a published post by slug
// @Description  Returns the post detail and counts one view.
// @Tags         public
// @Param        slug  path  string  true  "Post slug"
// @Produce      json
// @Success      200  {object}  dto.PostDetailResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /api/public/posts/{slug} [get]
func GetPublicPostHandler(svc *services.PublicService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := svc.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			respondError(c, err, "internal server error")
			return
		}
		c.JSON(http.StatusOK, dto.PostDetailResponseDTO{Success: true, Data: *post})
	}
}

// ListCategoriesHandler godoc
// @Summary      List categories
// @Tags         public
// @Produce      json
// @Success      200  {object}  dto.CategoryListResponseDTO
// @Router       /api/public/categories [get]
func ListCategoriesHandler(svc *services.PublicService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.CategoryListResponseDTO{Success: true, Data: svc.Categories(c.Request.Context())})
	}
}

// ListAuthorsHandler godoc
// @Summary      List authors
// @Tags         public
// @Produce      json
// @Success      200  {object}  dto.AuthorListResponseDTO
// @Router       /api/public/authors [get]
func ListAuthorsHandler(svc *services.PublicService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.AuthorListResponseDTO{Success: true, Data: svc.Authors(c.Request.Context())})
	}
}

// StatsHandler godoc
// @Summary      Blog statistics
// @Tags         public
// @Produce      json
// @Success      200  {object}  dto.StatsResponseDTO
// @Router       /api/public/stats [get]
func StatsHandler(svc *services.PublicService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.StatsResponseDTO{Success: true, Data: svc.Stats(c.Request.Context())})
	}
}

// HealthHandler godoc
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  object{status=string}
// @Failure      503  {object}  object{status=string,error=string}
// @Router       /health [get]
func HealthHandler(svc *services.PublicService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Health(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
