package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/divyeshvadher/silai-sahayak/internal/service"
)

type ProfileHandler struct {
	svc *service.ProfileService
}

func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// Get returns the authenticated user's profile.
// GET /api/v1/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	user, err := h.svc.Get(c.Request.Context(), GetUserID(c))
	if err != nil {
		NotFound(c, "user not found")
		return
	}
	Success(c, gin.H{"user": user})
}

// Update edits profile fields.
// PUT /api/v1/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	user, err := h.svc.Update(c.Request.Context(), GetUserID(c), req)
	if err != nil {
		InternalError(c, "update profile failed: "+err.Error())
		return
	}
	Success(c, gin.H{"user": user})
}

// maxAvatarSize caps avatar uploads at 5 MB.
const maxAvatarSize = 5 << 20

// UploadAvatar stores a profile image in object storage.
// POST /api/v1/profile/avatar  (multipart, field "avatar")
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		BadRequest(c, "missing avatar file")
		return
	}
	defer file.Close()

	if header.Size > maxAvatarSize {
		BadRequest(c, "avatar exceeds 5MB limit")
		return
	}

	user, err := h.svc.UploadAvatar(c.Request.Context(), GetUserID(c),
		header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		InternalError(c, "upload avatar failed: "+err.Error())
		return
	}
	Success(c, gin.H{"user": user})
}
