package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/friendpay/friendpay_backend/internal/apperrors"
	portssvc "github.com/friendpay/friendpay_backend/internal/core/ports/services"
	"github.com/friendpay/friendpay_backend/internal/dto"
	"github.com/friendpay/friendpay_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// connectionHandler handles HTTP requests for the authenticated user's
// connection graph. The connect primitive below is idempotent; treating a
// duplicate request as a user error is this layer's policy, so the handler
// checks for an existing edge before connecting.
type connectionHandler struct {
	userService       portssvc.UserSvcFacade
	connectionService portssvc.ConnectionSvcFacade
}

func newConnectionHandler(us portssvc.UserSvcFacade, cs portssvc.ConnectionSvcFacade) *connectionHandler {
	return &connectionHandler{userService: us, connectionService: cs}
}

// registerConnectionRoutes registers all connection-related routes.
func registerConnectionRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, connectionService portssvc.ConnectionSvcFacade) {
	h := newConnectionHandler(userService, connectionService)

	connections := rg.Group("/connections")
	{
		connections.GET("", h.listConnections)
		connections.POST("", h.addConnection)
		connections.DELETE("/:id", h.removeConnection)
	}
}

// listConnections godoc
// @Summary List the authenticated user's connections
// @Tags connections
// @Produce json
// @Success 200 {object} dto.ConnectionsResponse
// @Security BearerAuth
// @Router /connections [get]
func (h *connectionHandler) listConnections(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	peers, err := h.connectionService.ListConnections(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list connections"})
		return
	}

	c.JSON(http.StatusOK, dto.ToConnectionsResponse(peers))
}

// addConnection godoc
// @Summary Add a connection by email
// @Description Connects the authenticated user to the account holding the given email.
// @Tags connections
// @Accept json
// @Produce json
// @Param connection body dto.AddConnectionRequest true "Connection target"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /connections [post]
func (h *connectionHandler) addConnection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.AddConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	target, err := h.userService.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No user found with this email."})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to resolve connection target"})
		return
	}

	if target.ID == userID {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "You cannot add yourself as a connection."})
		return
	}

	// Duplicate-edge policy lives here, not in the idempotent primitive.
	connected, err := h.connectionService.AreConnected(c.Request.Context(), userID, target.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to check existing connection"})
		return
	}
	if connected {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "This connection already exists."})
		return
	}

	if err := h.connectionService.Connect(c.Request.Context(), userID, target.ID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrSelfReference):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "You cannot add yourself as a connection."})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No user found with this email."})
		default:
			logger.Error("Failed to add connection", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Error adding connection"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(target))
}

// removeConnection godoc
// @Summary Remove a connection
// @Tags connections
// @Param id path int true "Peer user ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /connections/{id} [delete]
func (h *connectionHandler) removeConnection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	peerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.connectionService.Disconnect(c.Request.Context(), userID, peerID); err != nil {
		if errors.Is(err, apperrors.ErrSelfReference) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "You cannot remove yourself."})
			return
		}
		logger.Error("Failed to remove connection", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Error removing connection"})
		return
	}

	c.Status(http.StatusNoContent)
}
