// handlers/rma_handler.go
package handlers

import (
	"net/http"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/utils"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/workflow"
)

// CreateRMA opens a vendor return for a ticket's asset.
func CreateRMA(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var in workflow.CreateRMAInput
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rma, err := engine.CreateRMA(r.Context(), actor, in)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, rma)
}

// GetRMA returns one RMA with its timeline.
func GetRMA(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid RMA ID")
		return
	}
	rma, err := engine.GetRMA(r.Context(), id)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rma)
}

// ListTicketRMAs returns all RMAs raised under one ticket.
func ListTicketRMAs(w http.ResponseWriter, r *http.Request) {
	ticketID, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ticket ID")
		return
	}
	rmas, err := repos.RMAs.ListByTicket(r.Context(), ticketID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list RMAs")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rmas)
}

// TransitionRMA moves an RMA one step along its chain.
func TransitionRMA(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid RMA ID")
		return
	}

	var in struct {
		Status  models.RMAStatus `json:"status"`
		Remarks string           `json:"remarks"`
	}
	if err := utils.ParseJSON(r, &in); err != nil || in.Status == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "status is required")
		return
	}

	rma, err := engine.TransitionRMA(r.Context(), actor, id, in.Status, in.Remarks)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rma)
}

// InstallRMA records the replacement hardware and closes out the RMA.
func InstallRMA(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid RMA ID")
		return
	}

	var in struct {
		Replacement models.ReplacementDetails `json:"replacement"`
		Remarks     string                    `json:"remarks"`
	}
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rma, err := engine.InstallRMA(r.Context(), actor, id, in.Replacement, in.Remarks)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rma)
}
