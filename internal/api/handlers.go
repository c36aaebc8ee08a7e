package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"ai-meal-ranker/internal/metrics"
	"ai-meal-ranker/internal/reco"
	"ai-meal-ranker/internal/validation"
)

type healthResponse struct {
	Status          string            `json:"status"`
	TasteEmbeddings bool              `json:"tasteEmbeddings"`
	System          metrics.SysHealth `json:"system"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{
		Status:          "ok",
		TasteEmbeddings: s.taste != nil,
		System:          metrics.GetSysHealth(),
	})
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req reco.RankRequest
	if !s.decode(w, r, &req) {
		return
	}
	normalizeUser(&req.User)
	req.TasteEmbedding = s.resolveTaste(r.Context(), req.User, req.TasteEmbedding, req.TasteProfile)

	res := req.Run(s.cfg.DefaultRankK)
	s.recorder.ObserveRank(len(req.Candidates), res)

	s.logger.Debug().
		Int("candidates", len(req.Candidates)).
		Int("excluded", res.Excluded).
		Int("returned", len(res.Items)).
		Msg("ranked candidates")

	respondJSON(w, http.StatusOK, res.Items)
}

func (s *Server) handlePlanSuggest(w http.ResponseWriter, r *http.Request) {
	var req reco.PlanRequest
	if !s.decode(w, r, &req) {
		return
	}
	normalizeUser(&req.User)
	req.TasteEmbedding = s.resolveTaste(r.Context(), req.User, req.TasteEmbedding, req.TasteProfile)

	out := req.Run(s.cfg.DefaultDays)
	s.recorder.ObservePlan(len(req.Candidates), out)

	s.logger.Debug().
		Int("candidates", len(req.Candidates)).
		Int("days", len(out.Days)).
		Int("total_cents", out.EstimatedTotalCents).
		Interface("cuisine_tally", out.Diversity.CuisineTally).
		Msg("assembled plan")

	respondJSON(w, http.StatusOK, out)
}

// decode reads and validates the JSON body into v, writing the error response on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, CodeBadJSON, "failed to decode request body: "+err.Error())
		return false
	}
	if err := validation.ValidateStruct(v); err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, err.Error())
		return false
	}
	return true
}

// normalizeUser applies profile defaults the wire format leaves implicit.
func normalizeUser(u *reco.UserProfile) {
	if u.HouseholdSize < 1 {
		u.HouseholdSize = 1
	}
}

// resolveTaste picks the supplied taste vector, or embeds the free-text profile
// when an embedder is configured. Embedding failures only cost the taste term.
func (s *Server) resolveTaste(ctx context.Context, user reco.UserProfile, supplied reco.Embedding, text string) reco.Embedding {
	if len(supplied) > 0 {
		s.recorder.ObserveTaste(metrics.TasteSupplied)
		return supplied
	}
	if s.taste == nil || strings.TrimSpace(text) == "" {
		s.recorder.ObserveTaste(metrics.TasteNone)
		return nil
	}

	vec, err := s.taste.Embed(ctx, user, text)
	if err != nil {
		s.logger.Warn().Err(err).Msg("taste embedding unavailable, ranking without it")
		s.recorder.ObserveTaste(metrics.TasteFailed)
		return nil
	}
	s.recorder.ObserveTaste(metrics.TasteEmbedded)
	return vec
}
