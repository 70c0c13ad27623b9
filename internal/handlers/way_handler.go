package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Talgatov/MentorWay/internal/config"
	"github.com/Talgatov/MentorWay/internal/models"
	"github.com/Talgatov/MentorWay/internal/services"
	"github.com/Talgatov/MentorWay/pkg/middleware"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// WayHandler handles HTTP requests related to way operations.
type WayHandler struct {
	WayService  *services.WayService
	UserService *services.UserService
	Config      *config.Config
}

// NewWayHandler creates a new instance of WayHandler.
func NewWayHandler(wayService *services.WayService, userService *services.UserService, cfg *config.Config) *WayHandler {
	return &WayHandler{
		WayService:  wayService,
		UserService: userService,
		Config:      cfg,
	}
}

// GetWaysHandler handles fetching all ways fully hydrated.
func (h *WayHandler) GetWaysHandler(w http.ResponseWriter, r *http.Request) {
	ways, hydrationErrs := h.WayService.GetWays(r.Context())
	for _, err := range hydrationErrs {
		log.WithError(err).Warn("Way skipped during listing")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ways)
}

// GetWayPreviewsHandler handles fetching the lightweight way listing.
func (h *WayHandler) GetWayPreviewsHandler(w http.ResponseWriter, r *http.Request) {
	previews, hydrationErrs := h.WayService.GetWayPreviews(r.Context())
	for _, err := range hydrationErrs {
		log.WithError(err).Warn("Way skipped during preview listing")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(previews)
}

// GetWayHandler handles fetching a single way by uuid.
func (h *WayHandler) GetWayHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	wayUuid := vars["uuid"]

	way, err := h.WayService.GetWay(r.Context(), wayUuid)
	if err != nil {
		log.WithField("wayUuid", wayUuid).WithError(err).Warn("Way not found")
		http.Error(w, "Way not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(way)
}

// CreateWayHandler handles creating a way owned by the logged-in user.
func (h *WayHandler) CreateWayHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var base models.BaseWayData
	if err := json.NewDecoder(r.Body).Decode(&base); err != nil {
		log.WithError(err).Warn("Failed to decode create way request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	owner, err := h.UserService.GetUser(r.Context(), claims.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to fetch way owner")
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	way, err := h.WayService.CreateWay(r.Context(), owner, &base)
	if err != nil {
		log.WithError(err).Error("Failed to create way")
		http.Error(w, "Failed to create way", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(way)
}

// UpdateWayHandler handles partial updates to a way.
func (h *WayHandler) UpdateWayHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	wayUuid := vars["uuid"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var patch models.WayPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.WithError(err).Warn("Failed to decode way update request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	patch.Uuid = wayUuid

	if err := h.requireOwnerOrMentor(r, wayUuid, claims.UserID); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	if err := h.WayService.UpdateWay(r.Context(), patch); err != nil {
		log.WithField("wayUuid", wayUuid).WithError(err).Error("Failed to update way")
		http.Error(w, "Failed to update way", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteWayHandler handles deleting a way together with its reference
// fan-out.
func (h *WayHandler) DeleteWayHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	wayUuid := vars["uuid"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	way, err := h.WayService.GetWay(r.Context(), wayUuid)
	if err != nil {
		http.Error(w, "Way not found", http.StatusNotFound)
		return
	}
	if way.Owner.Uuid != claims.UserID {
		http.Error(w, "Forbidden: only the owner can delete a way", http.StatusForbidden)
		return
	}

	if err := h.WayService.DeleteWay(r.Context(), way); err != nil {
		log.WithField("wayUuid", wayUuid).WithError(err).Error("Failed to delete way")
		http.Error(w, "Failed to delete way", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RequestMentoringHandler handles a mentoring request by the logged-in user.
func (h *WayHandler) RequestMentoringHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	wayUuid := vars["uuid"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.WayService.RequestMentoring(r.Context(), wayUuid, claims.UserID); err != nil {
		log.WithField("wayUuid", wayUuid).WithError(err).Error("Failed to request mentoring")
		http.Error(w, "Failed to request mentoring", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeclineMentorRequestHandler handles an owner declining a pending request.
func (h *WayHandler) DeclineMentorRequestHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	wayUuid := vars["uuid"]
	userUuid := vars["userUuid"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.requireOwner(r, wayUuid, claims.UserID); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	if err := h.WayService.DeclineMentorRequest(r.Context(), wayUuid, userUuid); err != nil {
		log.WithField("wayUuid", wayUuid).WithError(err).Error("Failed to decline mentor request")
		http.Error(w, "Failed to decline mentor request", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddMentorHandler handles an owner accepting a mentor onto the way.
func (h *WayHandler) AddMentorHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	wayUuid := vars["uuid"]
	userUuid := vars["userUuid"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.requireOwner(r, wayUuid, claims.UserID); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	if err := h.WayService.AddMentor(r.Context(), wayUuid, userUuid); err != nil {
		log.WithField("wayUuid", wayUuid).WithError(err).Error("Failed to add mentor")
		http.Error(w, "Failed to add mentor", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveMentorHandler handles retiring a mentor from the way.
func (h *WayHandler) RemoveMentorHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	wayUuid := vars["uuid"]
	userUuid := vars["userUuid"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// A mentor may step down on their own; otherwise only the owner may
	// remove them.
	if claims.UserID != userUuid {
		if err := h.requireOwner(r, wayUuid, claims.UserID); err != nil {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
	}

	if err := h.WayService.RemoveMentor(r.Context(), wayUuid, userUuid); err != nil {
		log.WithField("wayUuid", wayUuid).WithError(err).Error("Failed to remove mentor")
		http.Error(w, "Failed to remove mentor", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddFavoriteHandler handles favoriting a way for the logged-in user.
func (h *WayHandler) AddFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	wayUuid := vars["uuid"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.WayService.AddFavorite(r.Context(), wayUuid, claims.UserID); err != nil {
		log.WithField("wayUuid", wayUuid).WithError(err).Error("Failed to add favorite")
		http.Error(w, "Failed to add favorite", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveFavoriteHandler handles unfavoriting a way for the logged-in user.
func (h *WayHandler) RemoveFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	wayUuid := vars["uuid"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.WayService.RemoveFavorite(r.Context(), wayUuid, claims.UserID); err != nil {
		log.WithField("wayUuid", wayUuid).WithError(err).Error("Failed to remove favorite")
		http.Error(w, "Failed to remove favorite", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CopyWayHandler handles copying an existing way for the logged-in user.
func (h *WayHandler) CopyWayHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	wayUuid := vars["uuid"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	newOwner, err := h.UserService.GetUser(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	way, err := h.WayService.CopyWay(r.Context(), wayUuid, newOwner)
	if err != nil {
		log.WithField("wayUuid", wayUuid).WithError(err).Error("Failed to copy way")
		http.Error(w, "Failed to copy way", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(way)
}

func (h *WayHandler) requireOwner(r *http.Request, wayUuid, userUuid string) error {
	way, err := h.WayService.GetWay(r.Context(), wayUuid)
	if err != nil {
		return err
	}
	if way.Owner.Uuid != userUuid {
		return errForbidden("only the way owner may perform this action")
	}
	return nil
}

func (h *WayHandler) requireOwnerOrMentor(r *http.Request, wayUuid, userUuid string) error {
	way, err := h.WayService.GetWay(r.Context(), wayUuid)
	if err != nil {
		return err
	}
	if way.Owner.Uuid == userUuid {
		return nil
	}
	if _, ok := way.Mentors[userUuid]; ok {
		return nil
	}
	return errForbidden("only the way owner or a mentor may perform this action")
}

type errForbidden string

func (e errForbidden) Error() string { return string(e) }
