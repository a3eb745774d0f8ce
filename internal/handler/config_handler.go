package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handler) ListConfig(w http.ResponseWriter, r *http.Request) {
	entries, err := h.configService.ListConfig(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	out := make([]ConfigResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, domainConfigToHTTP(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{"config": out})
}

func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	entry, err := h.configService.GetConfig(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainConfigToHTTP(entry))
}

func (h *Handler) SetConfig(w http.ResponseWriter, r *http.Request) {
	var req ConfigRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	entry, err := h.configService.SetConfig(r.Context(), mux.Vars(r)["key"], req.Value, req.Description)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainConfigToHTTP(entry))
}
