package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"maillet-agent/internal/domain/entity"
	"maillet-agent/internal/infrastructure/mailbody"
)

type webhookPayload struct {
	From     string `json:"From"`
	Subject  string `json:"Subject"`
	TextBody string `json:"TextBody"`
	HTMLBody string `json:"HtmlBody"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// handleWebhook runs the agent loop for one inbound email. Tool-level
// failures are absorbed inside the loop; only payload and loop errors
// surface as 500 here.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	log := s.logger.WithField("requestId", uuid.NewString())

	var payload webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Error("Webhook payload decode failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, statusResponse{
			Status:  "error",
			Message: "invalid webhook payload: " + err.Error(),
		})
		return
	}

	if payload.From == "" {
		log.Error("Webhook payload missing sender")
		writeJSON(w, http.StatusInternalServerError, statusResponse{
			Status:  "error",
			Message: "webhook payload is missing required field 'From'",
		})
		return
	}

	body := payload.TextBody
	if body == "" && payload.HTMLBody != "" {
		body = mailbody.Text(payload.HTMLBody)
	}

	email := entity.InboundEmail{
		From:     payload.From,
		Subject:  payload.Subject,
		TextBody: body,
		HTMLBody: payload.HTMLBody,
	}

	log.Info("Webhook received", "from", email.From, "subject", email.Subject)

	result, err := s.processor.Process(r.Context(), email)
	if err != nil {
		log.Error("Agent processing failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, statusResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	log.Info("Webhook processed", "iterations", result.Iterations)

	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "success",
		Message: "Webhook received",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "healthy"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
