package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/sanketa/backend/models"
)

// Mailer defines the interface for contact mail delivery
type Mailer interface {
	Send(ctx context.Context, req models.ContactRequest) models.MailOutcome
}

// ContactHandler handles contact form submissions
type ContactHandler struct {
	mailer Mailer
}

// NewContactHandler creates a new handler with the given mailer
func NewContactHandler(mailer Mailer) *ContactHandler {
	return &ContactHandler{mailer: mailer}
}

// ContactResponse is the JSON response structure for POST /api/contact
type ContactResponse struct {
	OK   bool               `json:"ok"`
	Mail models.MailOutcome `json:"mail"`
}

// PostContact handles POST /api/contact
// Validates the submission, logs it, and attempts mail delivery. A mail
// failure still returns ok:true with the outcome, since the submission
// itself was accepted.
func (h *ContactHandler) PostContact(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	log.Printf("Contact: submission from %s <%s>", req.Name, req.Email)
	outcome := h.mailer.Send(r.Context(), req)

	writeJSON(w, http.StatusOK, ContactResponse{OK: true, Mail: outcome})
}
