package handlers

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"blog-cms/cmd/api/dto"
	"blog-cms/cmd/api/services"
	"blog-cms/uploads"
)

// @Summary List all posts
// @Description Whole collection including drafts, in stored order
// @Tags admin
// @Produce json
// @Success 200 {array} models.Post
// @Security BearerAuth
// @Router /api/posts [get]
func AdminListPostsHandler(svc *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.List(c.Request.Context()))
	}
}

// @Summary Get a post by id
// @Tags admin
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} dto.ErrorResponseDTO
// @Security BearerAuth
// @Router /api/posts/{id} [get]
func AdminGetPostHandler(svc *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, "internal server error")
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// @Summary Create a post
// @Description Dashboard form (multipart or urlencoded). Csv fields: keywords, tags, galleryUrls, relatedPosts. featured=on marks the post featured.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param title formData string false "Title"
// @Param slug formData string false "Slug (derived from the title when empty)"
// @Param status formData string false "published | draft" default(published)
// @Param tags formData string false "Comma separated tags"
// @Param featured formData string false "on"
// @Param thumbnail formData file false "Thumbnail image"
// @Param imageFull formData file false "Full size image"
// @Param gallery formData file false "Gallery images (up to 10)"
// @Success 200 {object} dto.PostResponseDTO
// @Failure 400 {object} dto.ErrorResponseDTO
// @Failure 500 {object} dto.ErrorResponseDTO
// @Security BearerAuth
// @Router /api/posts [post]
func AdminCreatePostHandler(svc *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ok := bindPostInput(c)
		if !ok {
			return
		}
		post, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			respondError(c, err, "failed to save post")
			return
		}
		c.JSON(http.StatusOK, dto.PostResponseDTO{Success: true, Post: *post})
	}
}

// @Summary Update a post
// @Description Same form as create. Images change only when a file or URL is supplied.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.PostResponseDTO
// @Failure 400 {object} dto.ErrorResponseDTO
// @Failure 404 {object} dto.ErrorResponseDTO
// @Failure 500 {object} dto.ErrorResponseDTO
// @Security BearerAuth
// @Router /api/posts/{id} [put]
func AdminUpdatePostHandler(svc *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ok := bindPostInput(c)
		if !ok {
			return
		}
		post, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondError(c, err, "failed to update post")
			return
		}
		c.JSON(http.StatusOK, dto.PostResponseDTO{Success: true, Post: *post})
	}
}

// @Summary Delete a post
// @Tags admin
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.SuccessResponseDTO
// @Failure 404 {object} dto.ErrorResponseDTO
// @Failure 500 {object} dto.ErrorResponseDTO
// @Security BearerAuth
// @Router /api/posts/{id} [delete]
func AdminDeletePostHandler(svc *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err, "failed to delete post")
			return
		}
		c.JSON(http.StatusOK, dto.SuccessResponseDTO{Success: true})
	}
}

func bindPostInput(c *gin.Context) (services.PostInput, bool) {
	var in services.PostInput
	if err := c.ShouldBind(&in.Form); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return in, false
	}

	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return in, true
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return in, false
	}
	in.Thumbnail = firstFile(form.File[uploads.FieldThumbnail])
	in.ImageFull = firstFile(form.File[uploads.FieldImageFull])
	in.Gallery = form.File[uploads.FieldGallery]
	return in, true
}

func firstFile(files []*multipart.FileHeader) *multipart.FileHeader {
	if len(files) == 0 {
		return nil
	}
	return files[0]
}
