// handlers/ticket_handler.go
package handlers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/database"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/utils"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/workflow"
)

// CreateTicket opens a new ticket.
func CreateTicket(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var in workflow.CreateTicketInput
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ticket, err := engine.CreateTicket(r.Context(), actor, in)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, ticket)
}

// GetTicket returns one ticket with its activity stream.
func GetTicket(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ticket ID")
		return
	}
	ticket, err := engine.GetTicket(r.Context(), id)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ticket)
}

// ListTickets returns tickets filtered by the query parameters.
func ListTickets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := database.TicketFilter{
		Status:   models.TicketStatus(q.Get("status")),
		Priority: q.Get("priority"),
	}
	if hex := q.Get("siteId"); hex != "" {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid site ID")
			return
		}
		f.SiteID = &id
	}
	if hex := q.Get("assignedTo"); hex != "" {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid assignee ID")
			return
		}
		f.AssignedTo = &id
	}

	tickets, err := repos.Tickets.List(r.Context(), f)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list tickets")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tickets)
}

// AssignTicket hands the ticket to an engineer.
func AssignTicket(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ticket ID")
		return
	}

	var in struct {
		AssigneeID string `json:"assigneeId"`
	}
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	assigneeID, err := primitive.ObjectIDFromHex(in.AssigneeID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid assignee ID")
		return
	}

	ticket, err := engine.AssignTicket(r.Context(), actor, id, assigneeID)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ticket)
}

// TransitionTicket applies one status move.
func TransitionTicket(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ticket ID")
		return
	}

	var in struct {
		Status models.TicketStatus `json:"status"`
		Note   string              `json:"note"`
	}
	if err := utils.ParseJSON(r, &in); err != nil || in.Status == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "status is required")
		return
	}

	ticket, err := engine.TransitionTicket(r.Context(), actor, id, in.Status, in.Note)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ticket)
}

// EscalateTicket raises the escalation level.
func EscalateTicket(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ticket ID")
		return
	}

	var in struct {
		Note string `json:"note"`
	}
	_ = utils.ParseJSON(r, &in)

	ticket, err := engine.EscalateTicket(r.Context(), actor, id, in.Note)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ticket)
}

// UpdateTicketSeverity changes impact/urgency and re-derives priority.
func UpdateTicketSeverity(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ticket ID")
		return
	}

	var in struct {
		Impact  *int `json:"impact"`
		Urgency *int `json:"urgency"`
	}
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Impact == nil && in.Urgency == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "impact or urgency is required")
		return
	}

	ticket, err := engine.UpdateTicketSeverity(r.Context(), actor, id, in.Impact, in.Urgency)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ticket)
}
