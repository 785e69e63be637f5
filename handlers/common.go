// handlers/common.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/database"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/utils"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/workflow"
)

var (
	engine *workflow.Engine
	repos  *database.Repos
)

// Init wires the handlers to the workflow engine and repositories. Must be
// called once after the database connects.
func Init(e *workflow.Engine, r *database.Repos) {
	engine = e
	repos = r
}

// actorFromRequest rebuilds the acting user from the values the auth
// middleware put on the request context.
func actorFromRequest(r *http.Request) (workflow.Actor, bool) {
	userIDHex, _ := r.Context().Value("userID").(string)
	userName, _ := r.Context().Value("userName").(string)
	userRole, _ := r.Context().Value("userRole").(string)

	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		return workflow.Actor{}, false
	}

	actor := workflow.Actor{ID: userID, Name: userName, Role: userRole}
	if siteIDs, ok := r.Context().Value("siteIDs").([]string); ok {
		for _, hex := range siteIDs {
			if id, err := primitive.ObjectIDFromHex(hex); err == nil {
				actor.SiteIDs = append(actor.SiteIDs, id)
			}
		}
	}
	return actor, true
}

// respondWorkflowError maps the workflow error taxonomy onto HTTP status
// codes. Anything unclassified is a 500 with a generic message.
func respondWorkflowError(w http.ResponseWriter, err error) {
	switch {
	case workflow.IsValidation(err):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case workflow.IsNotFound(err):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case workflow.IsConflict(err):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case workflow.IsPermission(err):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// pathID extracts and parses an ObjectID path variable.
func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(mux.Vars(r)[name])
}

func parseObjectID(hex string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(hex)
}

func requireActor(w http.ResponseWriter, r *http.Request) (workflow.Actor, bool) {
	actor, ok := actorFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
	}
	return actor, ok
}

// HealthCheck reports service liveness.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
