package server

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"github.com/valyala/fasthttp"

	"github.com/rgehrsitz/wealthtax/internal/breakeven"
	"github.com/rgehrsitz/wealthtax/internal/compare"
	"github.com/rgehrsitz/wealthtax/internal/config"
	"github.com/rgehrsitz/wealthtax/internal/domain"
)

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, HealthResponse{Status: "ok", Countries: len(s.datasets)})
}

func (s *Server) handleCountries(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, lo.Map(s.datasets, func(ds *domain.CountryDataset, _ int) CountrySummary {
		return CountrySummary{
			Country:        ds.Country,
			Currency:       ds.Currency,
			DataYear:       ds.DataYear,
			SimulationYear: ds.SimulationYear,
			Groups:         ds.Labels(),
			Color:          ds.Color,
		}
	}))
}

func (s *Server) handleSimulate(ctx *fasthttp.RequestCtx) {
	var req SimulateRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	ds, ok := s.lookup(ctx, req.Country)
	if !ok {
		return
	}

	params := req.params(s.opts.Defaults)
	if err := params.Validate(); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	rctx, cancel := s.requestContext()
	defer cancel()
	result, err := s.memo.Simulate(rctx, ds, params)
	if err != nil {
		log.Errorf("simulate %s: %v", ds.Country, err)
		writeError(ctx, errorStatus(err), err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

// handleCompare returns current rates across all countries. Passing taxRate
// or threshold as query arguments adds each country's revenue.
func (s *Server) handleCompare(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()
	opts := compare.Options{Workers: s.opts.Workers}

	if args.Has("taxRate") || args.Has("threshold") {
		taxRate, err := floatArg(args, "taxRate")
		if err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
		threshold, err := floatArg(args, "threshold")
		if err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
		reform := withOverrides(s.opts.Defaults, taxRate, threshold)
		if err := reform.Validate(); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
		opts.Reform = &reform
	}

	rctx, cancel := s.requestContext()
	defer cancel()
	compSet, err := s.compare.Compare(rctx, s.datasets, opts)
	if err != nil {
		log.Errorf("compare: %v", err)
		writeError(ctx, errorStatus(err), err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, compSet)
}

func (s *Server) handleBreakEven(ctx *fasthttp.RequestCtx) {
	var req BreakEvenRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	ds, ok := s.lookup(ctx, req.Country)
	if !ok {
		return
	}

	var constraints breakeven.Constraints
	var goal breakeven.OptimizationGoal
	switch {
	case req.Revenue != nil && req.Headcount != nil:
		writeError(ctx, fasthttp.StatusBadRequest, "give either revenue or headcount, not both")
		return
	case req.Revenue != nil:
		goal = breakeven.GoalMatchRevenue
		constraints.TargetRevenue = domain.DecimalPtr(*req.Revenue)
	case req.Headcount != nil:
		goal = breakeven.GoalMatchHeadcount
		constraints.TargetHeadcount = domain.DecimalPtr(*req.Headcount)
	default:
		writeError(ctx, fasthttp.StatusBadRequest, "revenue or headcount is required")
		return
	}

	base := withOverrides(s.opts.Defaults, req.TaxRate, req.Threshold)
	rctx, cancel := s.requestContext()
	defer cancel()

	if req.Target == "" || req.Target == string(breakeven.OptimizeAll) {
		result, err := s.solver.OptimizeMultiDimensional(rctx, ds, base, constraints, goal)
		if err != nil {
			writeError(ctx, errorStatus(err), err.Error())
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, result)
		return
	}

	result, err := s.solver.Optimize(rctx, breakeven.OptimizationRequest{
		Dataset:     ds,
		Base:        base,
		Target:      breakeven.OptimizationTarget(req.Target),
		Goal:        goal,
		Constraints: constraints,
	})
	if err != nil {
		writeError(ctx, errorStatus(err), err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

// lookup finds the requested dataset, writing a 400 or 404 when it cannot
func (s *Server) lookup(ctx *fasthttp.RequestCtx, country string) (*domain.CountryDataset, bool) {
	if country == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "country is required")
		return nil, false
	}
	ds, ok := config.FindDataset(s.datasets, country)
	if !ok {
		writeError(ctx, fasthttp.StatusNotFound, "unknown country: "+country)
		return nil, false
	}
	return ds, true
}

func floatArg(args *fasthttp.Args, key string) (*float64, error) {
	if !args.Has(key) {
		return nil, nil
	}
	v, err := strconv.ParseFloat(string(args.Peek(key)), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", key, args.Peek(key))
	}
	return &v, nil
}
