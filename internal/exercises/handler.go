package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/PlazzaA/entrename/internal/auth"
	"github.com/PlazzaA/entrename/internal/telemetry/metrics"
	"github.com/PlazzaA/entrename/internal/telemetry/tracing"
	"github.com/PlazzaA/entrename/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=exercises_test

type exercisesRepo interface {
	Register(ctx context.Context, userID int, name string) (*Exercise, error)
	List(ctx context.Context, userID int) ([]Exercise, error)
	AddMeasurement(ctx context.Context, userID int, name string, m Measurement) (*Measurement, error)
	Measurements(ctx context.Context, userID int, name string) ([]Measurement, error)
	Delete(ctx context.Context, userID int, name string) error
}

type ListResponse struct {
	Exercises []Exercise `json:"exercises"`
}

type MeasurementsResponse struct {
	Exercise     string        `json:"exercise"`
	Measurements []Measurement `json:"measurements"`
}

type DeleteExerciseResponse struct {
	Deleted string `json:"deleted"`
}

type Handler struct {
	repo           exercisesRepo
	metricsManager *metrics.Manager
}

func NewHandler(repo exercisesRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	exercisesRouter := mainRouter.PathPrefix("/exercises").Subrouter()
	exercisesRouter.
		HandleFunc("", handler.handleList).
		Methods("GET", "OPTIONS").Name("list-exercises")
	exercisesRouter.
		HandleFunc("", handler.handleRegister).
		Methods("POST", "OPTIONS").Name("register-exercise")
	exercisesRouter.
		HandleFunc("/{name}", handler.handleDelete).
		Methods("DELETE", "OPTIONS").Name("delete-exercise")
	exercisesRouter.
		HandleFunc("/{name}/measurements", handler.handleMeasurements).
		Methods("GET", "OPTIONS").Name("get-measurements")
	exercisesRouter.
		HandleFunc("/{name}/measurements", handler.handleAddMeasurement).
		Methods("POST", "OPTIONS").Name("add-measurement")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	exercises, err := handler.repo.List(ctx, userID)
	if err != nil {
		log.Errorf("list exercises for user %d: %s", userID, err)
		http.Error(w, "failed to get exercises", http.StatusInternalServerError)
		return
	}

	listRespJson, err := json.Marshal(ListResponse{Exercises: exercises})
	if err != nil {
		log.Errorf("marshal exercises error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listRespJson, http.StatusOK)
}

func (handler *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.register")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	type registerRequest struct {
		Name string `json:"name"`
	}
	var registerReq registerRequest
	if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
		log.Tracef("register exercise, unmarshal json params: %s", err)
		http.Error(w, "register exercise failed", http.StatusBadRequest)
		return
	}

	exercise, err := handler.repo.Register(ctx, userID, registerReq.Name)
	switch {
	case errors.Is(err, ErrInvalidName):
		http.Error(w, "error, invalid exercise name", http.StatusBadRequest)
		return
	case errors.Is(err, ErrExerciseExists):
		http.Error(w, "error, exercise already registered", http.StatusConflict)
		return
	case err != nil:
		log.Errorf("failed to register exercise [%s] for user %d: %s", registerReq.Name, userID, err)
		http.Error(w, "error, failed to register exercise", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterExercises.Inc()

	exerciseJson, err := json.Marshal(exercise)
	if err != nil {
		log.Errorf("failed to marshal new exercise: %s", err)
		http.Error(w, "error, failed to register exercise", http.StatusInternalServerError)
		return
	}

	log.Debugf("user %d registered exercise: %s", userID, exercise.Name)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exerciseJson, http.StatusCreated)
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	name := mux.Vars(r)["name"]
	if name == "" {
		http.Error(w, "error, exercise name empty", http.StatusBadRequest)
		return
	}

	err := handler.repo.Delete(ctx, userID, name)
	if errors.Is(err, ErrExerciseNotFound) {
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to delete exercise [%s] for user %d: %s", name, userID, err)
		http.Error(w, "exercise not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteExerciseResponse{Deleted: name})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	log.Debugf("user %d deleted exercise: %s", userID, name)
	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) handleAddMeasurement(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.addmeasurement")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	name := mux.Vars(r)["name"]
	if name == "" {
		http.Error(w, "error, exercise name empty", http.StatusBadRequest)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var measurement Measurement
	if err := json.NewDecoder(r.Body).Decode(&measurement); err != nil {
		log.Tracef("add measurement, unmarshal json params: %s", err)
		http.Error(w, "add measurement failed", http.StatusBadRequest)
		return
	}

	if measurement.Sets < 0 || measurement.Reps < 0 || measurement.MaxWeightKg < 0 {
		http.Error(w, "error, negative measurement values", http.StatusBadRequest)
		return
	}

	added, err := handler.repo.AddMeasurement(ctx, userID, name, measurement)
	if errors.Is(err, ErrExerciseNotFound) {
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to add measurement [%s] for user %d: %s", name, userID, err)
		http.Error(w, "error, failed to add measurement", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterMeasurements.Inc()

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("failed to marshal new measurement: %s", err)
		http.Error(w, "error, failed to add measurement", http.StatusInternalServerError)
		return
	}

	log.Debugf("user %d added measurement for [%s]: %s", userID, name, addedJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) handleMeasurements(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.measurements")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	name := mux.Vars(r)["name"]
	if name == "" {
		http.Error(w, "error, exercise name empty", http.StatusBadRequest)
		return
	}

	measurements, err := handler.repo.Measurements(ctx, userID, name)
	if errors.Is(err, ErrExerciseNotFound) {
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to get measurements [%s] for user %d: %s", name, userID, err)
		http.Error(w, "failed to get measurements", http.StatusInternalServerError)
		return
	}

	measurementsRespJson, err := json.Marshal(MeasurementsResponse{
		Exercise:     name,
		Measurements: measurements,
	})
	if err != nil {
		log.Errorf("marshal measurements error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, measurementsRespJson, http.StatusOK)
}
