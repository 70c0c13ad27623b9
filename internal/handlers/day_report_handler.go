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

// DayReportHandler handles HTTP requests related to day reports and their
// records.
type DayReportHandler struct {
	Service *services.DayReportService
	Config  *config.Config
}

// NewDayReportHandler creates a new instance of DayReportHandler.
func NewDayReportHandler(service *services.DayReportService, cfg *config.Config) *DayReportHandler {
	return &DayReportHandler{Service: service, Config: cfg}
}

// GetDayReportHandler handles fetching a single day report by uuid.
func (h *DayReportHandler) GetDayReportHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reportUuid := vars["uuid"]

	report, err := h.Service.GetDayReport(r.Context(), reportUuid)
	if err != nil {
		log.WithField("reportUuid", reportUuid).WithError(err).Warn("Day report not found")
		http.Error(w, "Day report not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// CreateDayReportHandler handles creating a day report under a way.
func (h *DayReportHandler) CreateDayReportHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	wayUuid := vars["wayUuid"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	report, err := h.Service.CreateDayReport(r.Context(), wayUuid)
	if err != nil {
		log.WithField("wayUuid", wayUuid).WithError(err).Error("Failed to create day report")
		http.Error(w, "Failed to create day report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(report)
}

// UpdateDayReportHandler handles partial updates to a day report.
func (h *DayReportHandler) UpdateDayReportHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reportUuid := vars["uuid"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var patch models.DayReportPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.WithError(err).Warn("Failed to decode day report update request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	patch.Uuid = reportUuid

	if err := h.Service.UpdateDayReport(r.Context(), patch); err != nil {
		log.WithField("reportUuid", reportUuid).WithError(err).Error("Failed to update day report")
		http.Error(w, "Failed to update day report", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteDayReportHandler handles deleting a day report with its records.
func (h *DayReportHandler) DeleteDayReportHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	wayUuid := vars["wayUuid"]
	reportUuid := vars["uuid"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.Service.DeleteDayReport(r.Context(), wayUuid, reportUuid); err != nil {
		log.WithField("reportUuid", reportUuid).WithError(err).Error("Failed to delete day report")
		http.Error(w, "Failed to delete day report", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddRecordHandler handles appending a record of the given kind to a day
// report. The record author is the logged-in user.
func (h *DayReportHandler) AddRecordHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reportUuid := vars["uuid"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Kind        models.RecordKind `json:"kind"`
		Description string            `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.WithError(err).Warn("Failed to decode add record request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	record, err := h.Service.AddRecord(r.Context(), reportUuid, payload.Kind, claims.UserID, payload.Description)
	if err != nil {
		log.WithField("reportUuid", reportUuid).WithError(err).Error("Failed to add record")
		http.Error(w, "Failed to add record", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(record)
}

// UpdateRecordHandler handles partial updates to a record of the given kind.
func (h *DayReportHandler) UpdateRecordHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	recordUuid := vars["recordUuid"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Kind        models.RecordKind `json:"kind"`
		Description *string           `json:"description"`
		IsDone      *bool             `json:"isDone"`
		Time        *int              `json:"time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.WithError(err).Warn("Failed to decode update record request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	patch := models.RecordPatch{
		Uuid:        recordUuid,
		Description: payload.Description,
		IsDone:      payload.IsDone,
		Time:        payload.Time,
	}
	if err := h.Service.UpdateRecord(r.Context(), payload.Kind, patch); err != nil {
		log.WithField("recordUuid", recordUuid).WithError(err).Error("Failed to update record")
		http.Error(w, "Failed to update record", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
