// handlers/asset_handler.go
package handlers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/database"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/utils"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/workflow"
)

// AddAsset takes one unit into stock.
func AddAsset(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var in workflow.AssetIntake
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	asset, err := engine.AddAsset(r.Context(), actor, in)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, asset)
}

// BulkImportAssets takes a batch of units into stock. Failed rows are
// reported per-row and never abort the rest.
func BulkImportAssets(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var rows []workflow.AssetIntake
	if err := utils.ParseJSON(r, &rows); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := engine.BulkImportAssets(r.Context(), actor, rows)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// GetAsset returns one asset.
func GetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid asset ID")
		return
	}
	asset, err := engine.GetAsset(r.Context(), id)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, asset)
}

// ListAssets returns assets filtered by the query parameters.
func ListAssets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := database.AssetFilter{
		AssetType: q.Get("assetType"),
		Status:    models.AssetStatus(q.Get("status")),
	}
	if hex := q.Get("siteId"); hex != "" {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid site ID")
			return
		}
		f.SiteID = &id
	}

	assets, err := repos.Assets.List(r.Context(), f)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list assets")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, assets)
}

// SetAssetStatus applies a standalone status change.
func SetAssetStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid asset ID")
		return
	}

	var in struct {
		Status models.AssetStatus `json:"status"`
		Reason string             `json:"reason"`
	}
	if err := utils.ParseJSON(r, &in); err != nil || in.Status == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "status is required")
		return
	}

	asset, err := engine.SetAssetStatus(r.Context(), actor, id, in.Status, in.Reason)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, asset)
}

// AssetHistory returns the asset's stock movement ledger entries.
func AssetHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid asset ID")
		return
	}
	entries, err := engine.AssetHistory(r.Context(), id)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, entries)
}

// AvailableStock reports the spare count for one asset type at a site.
func AvailableStock(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	siteID, err := primitive.ObjectIDFromHex(q.Get("siteId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid site ID")
		return
	}
	assetType := q.Get("assetType")
	if assetType == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "assetType is required")
		return
	}

	n, err := engine.AvailableStock(r.Context(), siteID, assetType)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"siteId":    siteID,
		"assetType": assetType,
		"available": n,
	})
}
