package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/sells-group/region-service/internal/model"
	"github.com/sells-group/region-service/internal/region"
)

// RegionService defines the region operations the HTTP layer depends on.
type RegionService interface {
	List(ctx context.Context) ([]model.Region, error)
	Get(ctx context.Context, id string) (*model.Region, error)
	Create(ctx context.Context, in region.CreateInput) (*model.Region, error)
	Update(ctx context.Context, id string, in region.UpdateInput) (*model.Region, error)
	Delete(ctx context.Context, id string) error
	SearchNearby(ctx context.Context, f region.NearbyFilter) ([]model.Region, error)
}

// RegionHandler wires region endpoints to the region service.
type RegionHandler struct {
	regions RegionService
}

// NewRegionHandler constructs a region handler.
func NewRegionHandler(regions RegionService) *RegionHandler {
	return &RegionHandler{regions: regions}
}

// Register mounts region endpoints on the router. The search route is static
// and never shadowed by the id parameter.
func (h *RegionHandler) Register(r chi.Router) {
	r.Get("/region", h.handleList)
	r.Post("/region", h.handleCreate)
	r.Get("/region/search", h.handleSearch)
	r.Get("/region/{id}", h.handleGet)
	r.Put("/region/{id}", h.handleUpdate)
	r.Delete("/region/{id}", h.handleDelete)
}

func (h *RegionHandler) handleList(w http.ResponseWriter, r *http.Request) {
	regions, err := h.regions.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if regions == nil {
		regions = []model.Region{}
	}
	writeJSON(w, http.StatusOK, regions)
}

func (h *RegionHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	reg, err := h.regions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

func (h *RegionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRegionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reg, err := h.regions.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reg)
}

func (h *RegionHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRegionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reg, err := h.regions.Update(r.Context(), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

func (h *RegionHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.regions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// searchResult is a region search hit with its point as GeoJSON geometry.
type searchResult struct {
	model.Region
	Geometry json.RawMessage `json:"geometry"`
}

func (h *RegionHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	f, err := parseSearchQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	regions, err := h.regions.SearchNearby(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}

	results := make([]searchResult, 0, len(regions))
	for _, reg := range regions {
		results = append(results, searchResult{
			Region:   reg,
			Geometry: pointGeoJSON(reg.Coordinates),
		})
	}

	zap.L().Debug("region search",
		zap.Float64("lat", f.Latitude),
		zap.Float64("lng", f.Longitude),
		zap.Int("hits", len(results)),
	)
	writeJSON(w, http.StatusOK, results)
}

func pointGeoJSON(c model.Coordinates) json.RawMessage {
	p := geom.NewPointFlat(geom.XY, []float64{c.Longitude(), c.Latitude()}).SetSRID(4326)
	data, err := geojson.Marshal(p)
	if err != nil {
		zap.L().Error("encode point geometry", zap.Error(err))
		return nil
	}
	return data
}
