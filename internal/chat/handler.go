package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/PlazzaA/entrename/internal/telemetry/metrics"
	"github.com/PlazzaA/entrename/internal/telemetry/tracing"
	"github.com/PlazzaA/entrename/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=chat_test

// FallbackMessage is returned when the inference service is unreachable
// or misbehaves, with a 200 status so the chat UI shows it as a reply.
const FallbackMessage = "Sorry, I cannot come up with a good response right now. Try again later."

type textGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type GenerateResponse struct {
	Response string `json:"response"`
}

type Handler struct {
	generator      textGenerator
	metricsManager *metrics.Manager
}

func NewHandler(generator textGenerator, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		generator:      generator,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	chatRouter := mainRouter.PathPrefix("/chat").Subrouter()
	chatRouter.
		HandleFunc("/generate", handler.handleGenerate).
		Methods("POST", "OPTIONS").Name("chat-generate")
}

func (handler *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.chat.generate")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	type generateRequest struct {
		Message string `json:"message"`
	}
	var generateReq generateRequest
	if err := json.NewDecoder(r.Body).Decode(&generateReq); err != nil {
		log.Tracef("chat generate, unmarshal json params: %s", err)
		http.Error(w, "chat generate failed", http.StatusBadRequest)
		return
	}

	if generateReq.Message == "" {
		http.Error(w, "error, message empty", http.StatusBadRequest)
		return
	}

	handler.metricsManager.CounterChatRequests.Inc()

	inferStart := time.Now()
	generated, err := handler.generator.Generate(ctx, generateReq.Message)
	handler.metricsManager.HistChatInferDuration.Observe(time.Since(inferStart).Seconds())

	if err != nil {
		// the chat stays friendly even when the model backend is down
		log.Errorf("chat generate failed: %s", err)
		generated = FallbackMessage
	}

	generateRespJson, err := json.Marshal(GenerateResponse{Response: generated})
	if err != nil {
		log.Errorf("failed to marshal chat response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, generateRespJson, http.StatusOK)
}
