// handlers/stock_handler.go
//
// Requisitions, inter-site transfers and direct stock replacements: the
// three paths by which spare inventory enters or leaves service.
package handlers

import (
	"net/http"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/utils"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/workflow"
)

// CreateRequisition asks for spare stock for a ticket.
func CreateRequisition(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var in workflow.CreateRequisitionInput
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req, err := engine.CreateRequisition(r.Context(), actor, in)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, req)
}

// GetRequisition returns one requisition.
func GetRequisition(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid requisition ID")
		return
	}
	req, err := engine.GetRequisition(r.Context(), id)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, req)
}

// ApproveRequisition records the approver.
func ApproveRequisition(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid requisition ID")
		return
	}
	req, err := engine.ApproveRequisition(r.Context(), actor, id)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, req)
}

// RejectRequisition terminates the requisition with a reason.
func RejectRequisition(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid requisition ID")
		return
	}

	var in struct {
		Reason string `json:"reason"`
	}
	_ = utils.ParseJSON(r, &in)

	req, err := engine.RejectRequisition(r.Context(), actor, id, in.Reason)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, req)
}

// FulfillRequisition claims a specific spare unit for the requisition.
func FulfillRequisition(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid requisition ID")
		return
	}

	var in struct {
		AssetID string `json:"assetId"`
	}
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	assetID, err := parseObjectID(in.AssetID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid asset ID")
		return
	}

	req, err := engine.FulfillRequisition(r.Context(), actor, id, assetID)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, req)
}

// InitiateTransfer opens a bulk move of spares between sites.
func InitiateTransfer(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var in workflow.InitiateTransferInput
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := engine.InitiateTransfer(r.Context(), actor, in)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, t)
}

// GetTransfer returns one transfer.
func GetTransfer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid transfer ID")
		return
	}
	t, err := engine.GetTransfer(r.Context(), id)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, t)
}

// ApproveTransfer records the approver.
func ApproveTransfer(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid transfer ID")
		return
	}
	t, err := engine.ApproveTransfer(r.Context(), actor, id)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, t)
}

// CancelTransfer terminates a transfer that has not been dispatched.
func CancelTransfer(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid transfer ID")
		return
	}

	var in struct {
		Reason string `json:"reason"`
	}
	_ = utils.ParseJSON(r, &in)

	t, err := engine.CancelTransfer(r.Context(), actor, id, in.Reason)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, t)
}

// DispatchTransfer ships the listed assets with carrier details.
func DispatchTransfer(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid transfer ID")
		return
	}

	var in models.ShippingInfo
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := engine.DispatchTransfer(r.Context(), actor, id, in)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, t)
}

// ReceiveTransfer books the shipped assets in at the destination.
func ReceiveTransfer(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid transfer ID")
		return
	}
	t, err := engine.ReceiveTransfer(r.Context(), actor, id)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, t)
}

// ReplaceStock swaps a ticket's asset hardware from a spare without a vendor
// RMA.
func ReplaceStock(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var in workflow.StockReplacementInput
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := engine.ReplaceStock(r.Context(), actor, in)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, rec)
}
