package handlers

import (
    "net/http"

    "promoai-api/internal/llm"

    "github.com/gin-gonic/gin"
)

type ProvidersHandler struct {
    registry *llm.Registry
}

func NewProvidersHandler(registry *llm.Registry) *ProvidersHandler {
    return &ProvidersHandler{registry: registry}
}

type providerInfo struct {
    Name         string   `json:"name"`
    DisplayName  string   `json:"display_name"`
    Configured   bool     `json:"configured"`
    DefaultModel string   `json:"default_model"`
    Models       []string `json:"models"`
}

// List returns every supported provider with its configuration state and
// selectable models. Unconfigured providers are listed so the client can
// show them as disabled.
func (h *ProvidersHandler) List(c *gin.Context) {
    providers := make([]providerInfo, 0, len(llm.Kinds()))
    for _, kind := range llm.Kinds() {
        providers = append(providers, providerInfo{
            Name:         kind.String(),
            DisplayName:  kind.DisplayName(),
            Configured:   h.registry.Configured(kind),
            DefaultModel: h.registry.DefaultModel(kind),
            Models:       kind.KnownModels(),
        })
    }

    c.JSON(http.StatusOK, gin.H{"providers": providers})
}
