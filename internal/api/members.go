package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/guildfight/guildfight-engine/internal/guild"
)

// MemberHandler serves the read-only identity views socket clients load
// before connecting (roster for the lobby picker, single member for
// profile cards).
type MemberHandler struct {
	guildClient *guild.Client
}

func NewMemberHandler(guildClient *guild.Client) *MemberHandler {
	return &MemberHandler{guildClient: guildClient}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ""
}

func (h *MemberHandler) Roster(w http.ResponseWriter, r *http.Request) {
	guildName := r.PathValue("guild")
	if guildName == "" {
		http.Error(w, "Missing guild", http.StatusBadRequest)
		return
	}

	members, err := h.guildClient.Roster(bearerToken(r), guildName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(members)
}

func (h *MemberHandler) Member(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		http.Error(w, "Missing name", http.StatusBadRequest)
		return
	}

	member, err := h.guildClient.Member(bearerToken(r), name)
	if errors.Is(err, guild.ErrNotFound) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(member)
}
