// handlers/auth_handler.go
package handlers

import (
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/utils"
)

// Login checks credentials and issues a JWT.
func Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := utils.ParseJSON(r, &creds); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := repos.Users.FindByEmail(r.Context(), strings.ToLower(strings.TrimSpace(creds.Email)))
	if err != nil || !utils.CheckPasswordHash(creds.Password, user.PasswordHash) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !user.Active {
		utils.RespondWithError(w, http.StatusForbidden, "User account is disabled")
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Name, user.Role)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// RegisterUser creates a user account. Admin only.
func RegisterUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	if actor.Role != models.RoleAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Only admins can create users")
		return
	}

	var in struct {
		Name     string   `json:"name"`
		Email    string   `json:"email"`
		Password string   `json:"password"`
		Role     string   `json:"role"`
		SiteIDs  []string `json:"siteIds"`
	}
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Name == "" || in.Email == "" || in.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}
	switch in.Role {
	case models.RoleAdmin, models.RoleSupervisor, models.RoleEngineer, models.RoleViewer:
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	var siteIDs []primitive.ObjectID
	for _, hex := range in.SiteIDs {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid site ID: "+hex)
			return
		}
		siteIDs = append(siteIDs, id)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           primitive.NewObjectID(),
		Name:         in.Name,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hash,
		Role:         in.Role,
		SiteIDs:      siteIDs,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repos.Users.Insert(r.Context(), user); err != nil {
		utils.RespondWithError(w, http.StatusConflict, "Email already registered")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, user)
}

// Me returns the authenticated user's record.
func Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	user, err := repos.Users.FindByID(r.Context(), actor.ID)
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}
