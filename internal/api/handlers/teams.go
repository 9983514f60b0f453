package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spendly-api/internal/access"
	"spendly-api/internal/models"
	"spendly-api/internal/storage"
)

func (h *Handler) ListTeams(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	teams, err := h.store.Teams().ListTeamsForUser(c.Request.Context(), userID)
	if err != nil {
		slog.Error("team list failed", "error", err, "user_id", userID.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, teams)
}

func (h *Handler) CreateTeam(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Budget      float64 `json:"budget"`
	}
	if err := c.ShouldBindJSON(&request); err != nil || strings.TrimSpace(request.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"msg": "Name is required", "param": "name"}}})
		return
	}

	ctx := c.Request.Context()

	// Creator goes in first, as admin.
	team := &models.Team{
		Name:        request.Name,
		Description: request.Description,
		CreatedBy:   userID,
		Budget:      request.Budget,
		Members:     []models.TeamMember{{User: userID, Role: models.RoleAdmin}},
	}
	if err := h.store.Teams().CreateTeam(ctx, team); err != nil {
		slog.Error("team create failed", "error", err, "user_id", userID.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	// Second, non-transactional write of the membership pair. A failure here
	// leaves the team without the creator's back-reference.
	if err := h.store.Users().AddTeam(ctx, userID, team.ID); err != nil {
		slog.Error("user team push failed", "error", err, "team_id", team.ID.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, team)
}

func (h *Handler) UpdateTeam(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Team not found"})
		return
	}

	ctx := c.Request.Context()

	team, err := h.store.Teams().GetTeam(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Team not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if !access.CanModify(team, userID) {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized"})
		return
	}

	var patch models.TeamPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body"})
		return
	}

	updated, err := h.store.Teams().UpdateTeam(ctx, id, patch)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Team not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) AddTeamMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Team not found"})
		return
	}

	var request struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"msg": "Please include a valid email", "param": "email"}}})
		return
	}
	if _, err := mail.ParseAddress(request.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"msg": "Please include a valid email", "param": "email"}}})
		return
	}

	ctx := c.Request.Context()

	team, err := h.store.Teams().GetTeam(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Team not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if !access.CanModify(team, userID) {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized"})
		return
	}

	user, err := h.store.Users().GetUserByEmail(ctx, request.Email)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if team.HasMember(user.ID) {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "User is already a member"})
		return
	}

	members := append(team.Members, models.TeamMember{User: user.ID, Role: models.RoleMember})
	updated, err := h.store.Teams().SetTeamMembers(ctx, id, members)
	if err != nil {
		slog.Error("team member add failed", "error", err, "team_id", id.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	// Second write of the membership pair; not transactional with the first.
	if err := h.store.Users().AddTeam(ctx, user.ID, id); err != nil {
		slog.Error("user team push failed", "error", err, "team_id", id.Hex(), "user_id", user.ID.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) RemoveTeamMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Team not found"})
		return
	}
	memberID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
		return
	}

	ctx := c.Request.Context()

	team, err := h.store.Teams().GetTeam(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Team not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if !access.CanModify(team, userID) {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized"})
		return
	}

	members := make([]models.TeamMember, 0, len(team.Members))
	for _, m := range team.Members {
		if m.User != memberID {
			members = append(members, m)
		}
	}

	updated, err := h.store.Teams().SetTeamMembers(ctx, id, members)
	if err != nil {
		slog.Error("team member remove failed", "error", err, "team_id", id.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if err := h.store.Users().RemoveTeam(ctx, memberID, id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		slog.Error("user team pull failed", "error", err, "team_id", id.Hex(), "user_id", memberID.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, updated)
}
