package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/freshshop/internal/domain"
	"github.com/msomdec/freshshop/internal/metrics"
	"github.com/msomdec/freshshop/internal/service"
	"github.com/msomdec/freshshop/internal/view"
)

// ContactHandler handles the contact form.
type ContactHandler struct {
	contacts *service.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// HandleContactPage renders the contact form.
// GET /contact-us
func (h *ContactHandler) HandleContactPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.ContactPage(UserFromContext(r.Context()), cartCount(r.Context())))
}

// HandleContact stores a contact message and answers in plain text.
// POST /contact
// Form or JSON: name, email, subject, message
func (h *ContactHandler) HandleContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := readRequest(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	msg := domain.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := h.contacts.Submit(r.Context(), msg); err != nil {
		metrics.RecordContactSubmission(false)
		slog.Error("submit contact form", "error", err)
		http.Error(w, "Error saving the message.", http.StatusInternalServerError)
		return
	}

	metrics.RecordContactSubmission(true)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Message sent successfully."))
}
