package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/caffeinepub/cybermeet/internal/domain"
	"github.com/caffeinepub/cybermeet/internal/service"
	"github.com/caffeinepub/cybermeet/pkg/log"
	"github.com/caffeinepub/cybermeet/pkg/middleware"
	"github.com/caffeinepub/cybermeet/pkg/response"
)

// Handler handles HTTP requests for the meeting backend.
type Handler struct {
	rooms    service.RoomService
	messages service.MessageService
	profiles service.ProfileService
	access   service.AccessService
	notes    service.NoteService
	identity *middleware.IdentityMiddleware
}

// NewHandler creates a new HTTP handler.
func NewHandler(
	rooms service.RoomService,
	messages service.MessageService,
	profiles service.ProfileService,
	access service.AccessService,
	notes service.NoteService,
	identity *middleware.IdentityMiddleware,
) *Handler {
	return &Handler{
		rooms:    rooms,
		messages: messages,
		profiles: profiles,
		access:   access,
		notes:    notes,
		identity: identity,
	}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.identity.RequireCaller())
	{
		rooms := api.Group("/rooms")
		{
			rooms.POST("", h.CreateRoom)
			rooms.GET("/my", h.GetMyRooms)
			rooms.POST("/join", h.JoinRoom)
			rooms.POST("/:id/leave", h.LeaveRoom)
			rooms.GET("/:id/participants", h.GetRoomParticipants)
			rooms.GET("/:id/messages", h.GetMessages)
			rooms.POST("/:id/messages", h.SendMessage)
			rooms.GET("/:id/note", h.GetNote)
			rooms.PUT("/:id/note", h.SaveNote)
		}

		profiles := api.Group("/profiles")
		{
			profiles.GET("/me", h.GetCallerProfile)
			profiles.PUT("/me", h.SaveCallerProfile)
			profiles.GET("/:id", h.GetProfile)
		}

		roles := api.Group("/roles")
		{
			roles.GET("/me", h.GetCallerRole)
			roles.GET("/me/admin", h.IsCallerAdmin)
			roles.PUT("/:id", h.AssignRole)
		}
	}
}

// roomID parses the :id path parameter. Returns false after writing a 400
// response if the parameter is not a valid room id.
func roomID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid room id")
		return 0, false
	}
	return id, true
}

// CreateRoom creates a new room owned by the caller.
func (h *Handler) CreateRoom(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	callerID := middleware.GetCallerID(c)

	var req domain.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind create room request")
		response.BadRequest(c, err.Error())
		return
	}

	room, err := h.rooms.CreateRoom(ctx, callerID, &req)
	if err != nil {
		l.Error().Err(err).Msg("failed to create room")
		response.InternalError(c, "failed to create room")
		return
	}

	response.Created(c, room)
}

// GetMyRooms lists every room the caller belongs to.
func (h *Handler) GetMyRooms(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	rooms, err := h.rooms.GetMyRooms(ctx, middleware.GetCallerID(c))
	if err != nil {
		l.Error().Err(err).Msg("failed to get rooms")
		response.InternalError(c, "failed to get rooms")
		return
	}

	response.Success(c, rooms)
}

// JoinRoom joins the caller to the room behind an access code.
func (h *Handler) JoinRoom(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind join room request")
		response.BadRequest(c, err.Error())
		return
	}

	err := h.rooms.JoinRoom(ctx, middleware.GetCallerID(c), *req.Code)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			response.NotFound(c, "no room with that code")
			return
		}
		l.Error().Err(err).Msg("failed to join room")
		response.InternalError(c, "failed to join room")
		return
	}

	response.Success(c, gin.H{"message": "joined"})
}

// LeaveRoom removes the caller from a room.
func (h *Handler) LeaveRoom(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	id, ok := roomID(c)
	if !ok {
		return
	}

	err := h.rooms.LeaveRoom(ctx, middleware.GetCallerID(c), id)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			response.NotFound(c, "room not found")
			return
		}
		l.Error().Err(err).Int64(log.FieldRoomID, id).Msg("failed to leave room")
		response.InternalError(c, "failed to leave room")
		return
	}

	response.Success(c, gin.H{"message": "left"})
}

// GetRoomParticipants lists the room's members with their profiles.
func (h *Handler) GetRoomParticipants(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	id, ok := roomID(c)
	if !ok {
		return
	}

	participants, err := h.rooms.GetRoomParticipants(ctx, middleware.GetCallerID(c), id)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			response.NotFound(c, "room not found")
			return
		}
		if errors.Is(err, service.ErrNotParticipant) {
			response.Unauthorized(c, "not a participant of this room")
			return
		}
		l.Error().Err(err).Int64(log.FieldRoomID, id).Msg("failed to get participants")
		response.InternalError(c, "failed to get participants")
		return
	}

	response.Success(c, participants)
}

// GetMessages returns the room's full ordered message log.
func (h *Handler) GetMessages(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	id, ok := roomID(c)
	if !ok {
		return
	}

	messages, err := h.messages.GetMessages(ctx, middleware.GetCallerID(c), id)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			response.NotFound(c, "room not found")
			return
		}
		if errors.Is(err, service.ErrNotParticipant) {
			response.Unauthorized(c, "not a participant of this room")
			return
		}
		l.Error().Err(err).Int64(log.FieldRoomID, id).Msg("failed to get messages")
		response.InternalError(c, "failed to get messages")
		return
	}

	response.Success(c, messages)
}

// SendMessage appends a message to the room's log.
func (h *Handler) SendMessage(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	id, ok := roomID(c)
	if !ok {
		return
	}

	var req domain.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind send message request")
		response.BadRequest(c, err.Error())
		return
	}

	err := h.messages.SendMessage(ctx, middleware.GetCallerID(c), id, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			response.NotFound(c, "room not found")
			return
		}
		if errors.Is(err, service.ErrNotParticipant) {
			response.Unauthorized(c, "not a participant of this room")
			return
		}
		l.Error().Err(err).Int64(log.FieldRoomID, id).Msg("failed to send message")
		response.InternalError(c, "failed to send message")
		return
	}

	response.Created(c, gin.H{"message": "sent"})
}

// GetNote returns the caller's private note for a room.
func (h *Handler) GetNote(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	id, ok := roomID(c)
	if !ok {
		return
	}

	note, err := h.notes.GetNote(ctx, middleware.GetCallerID(c), id)
	if err != nil {
		l.Error().Err(err).Int64(log.FieldRoomID, id).Msg("failed to get note")
		response.InternalError(c, "failed to get note")
		return
	}

	response.Success(c, domain.NoteResponse{Note: note})
}

// SaveNote overwrites the caller's private note for a room.
func (h *Handler) SaveNote(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	id, ok := roomID(c)
	if !ok {
		return
	}

	var req domain.SaveNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind save note request")
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.notes.SaveNote(ctx, middleware.GetCallerID(c), id, req.Note); err != nil {
		l.Error().Err(err).Int64(log.FieldRoomID, id).Msg("failed to save note")
		response.InternalError(c, "failed to save note")
		return
	}

	response.Success(c, gin.H{"message": "saved"})
}

// GetCallerProfile returns the caller's own profile; data is null when the
// caller never saved one.
func (h *Handler) GetCallerProfile(c *gin.Context) {
	h.profileByID(c, middleware.GetCallerID(c))
}

// GetProfile returns any user's public profile by caller id.
func (h *Handler) GetProfile(c *gin.Context) {
	h.profileByID(c, c.Param("id"))
}

func (h *Handler) profileByID(c *gin.Context, targetID string) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	profile, err := h.profiles.GetProfile(ctx, targetID)
	if err != nil {
		l.Error().Err(err).Msg("failed to get profile")
		response.InternalError(c, "failed to get profile")
		return
	}

	// profile is nil when absent; the envelope then carries data: null.
	if profile == nil {
		response.Success(c, nil)
		return
	}
	response.Success(c, profile)
}

// SaveCallerProfile creates or replaces the caller's own profile.
func (h *Handler) SaveCallerProfile(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind save profile request")
		response.BadRequest(c, err.Error())
		return
	}

	profile := &domain.Profile{
		DisplayName: req.DisplayName,
		Role:        domain.ProfileRole(req.Role),
	}
	if err := h.profiles.SaveProfile(ctx, middleware.GetCallerID(c), profile); err != nil {
		l.Error().Err(err).Msg("failed to save profile")
		response.InternalError(c, "failed to save profile")
		return
	}

	response.Success(c, profile)
}

// GetCallerRole returns the caller's platform role.
func (h *Handler) GetCallerRole(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	role, err := h.access.GetCallerRole(ctx, middleware.GetCallerID(c))
	if err != nil {
		l.Error().Err(err).Msg("failed to get role")
		response.InternalError(c, "failed to get role")
		return
	}

	response.Success(c, domain.RoleResponse{
		Role:    role,
		IsAdmin: role == domain.OperatorRoleAdmin,
	})
}

// IsCallerAdmin reports whether the caller is a platform admin.
func (h *Handler) IsCallerAdmin(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	isAdmin, err := h.access.IsAdmin(ctx, middleware.GetCallerID(c))
	if err != nil {
		l.Error().Err(err).Msg("failed to check admin")
		response.InternalError(c, "failed to check admin")
		return
	}

	response.Success(c, gin.H{"is_admin": isAdmin})
}

// AssignRole assigns a platform role to the target caller. Admin only.
func (h *Handler) AssignRole(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	targetID := c.Param("id")

	var req domain.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind assign role request")
		response.BadRequest(c, err.Error())
		return
	}

	err := h.access.AssignRole(ctx, middleware.GetCallerID(c), targetID, domain.OperatorRole(req.Role))
	if err != nil {
		if errors.Is(err, service.ErrNotAdmin) {
			response.Unauthorized(c, "admin role required")
			return
		}
		l.Error().Err(err).Str(log.FieldTargetID, targetID).Msg("failed to assign role")
		response.InternalError(c, "failed to assign role")
		return
	}

	response.Success(c, gin.H{"message": "role assigned"})
}
