// handlers/site_handler.go
package handlers

import (
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/utils"
)

// CreateSite registers a location assets and tickets can belong to. Admin
// only.
func CreateSite(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	if actor.Role != models.RoleAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Only admins can create sites")
		return
	}

	var in struct {
		Name     string `json:"name"`
		Code     string `json:"code"`
		Location string `json:"location"`
	}
	if err := utils.ParseJSON(r, &in); err != nil || in.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "name is required")
		return
	}

	site := &models.Site{
		ID:        primitive.NewObjectID(),
		Name:      in.Name,
		Code:      in.Code,
		Location:  in.Location,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := repos.Sites.Insert(r.Context(), site); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create site")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, site)
}

// ListSites returns all active sites.
func ListSites(w http.ResponseWriter, r *http.Request) {
	sites, err := repos.Sites.List(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list sites")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, sites)
}

// GetSite returns one site.
func GetSite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid site ID")
		return
	}
	site, err := repos.Sites.FindByID(r.Context(), id)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, site)
}
