package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/deal-analyzer/internal/assess"
	"github.com/sells-group/deal-analyzer/internal/engine"
	"github.com/sells-group/deal-analyzer/internal/model"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for analysis requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		mux := newServeMux(newAnalyzer())

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// analyzeRequest is the POST /analyze request body. Metrics defaults to all
// core metrics when omitted.
type analyzeRequest struct {
	Facts    *model.PropertyFacts `json:"facts"`
	Metrics  []string             `json:"metrics,omitempty"`
	Packages []string             `json:"packages,omitempty"`
	Assess   bool                 `json:"assess,omitempty"`
}

func (r *analyzeRequest) selection() model.MetricSelection {
	if len(r.Metrics) == 0 {
		return model.AllCoreMetrics()
	}
	sel := model.MetricSelection{}
	for _, m := range r.Metrics {
		sel[m] = true
	}
	return sel
}

// newServeMux builds the HTTP routes over a shared analyzer.
func newServeMux(an *engine.Analyzer) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /packages", func(w http.ResponseWriter, r *http.Request) {
		type pkg struct {
			ID          string `json:"id"`
			Description string `json:"description"`
		}
		var out []pkg
		for _, p := range an.Registry().Packages() {
			out = append(out, pkg{ID: p.ID, Description: p.Description})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
	})

	mux.HandleFunc("POST /analyze", func(w http.ResponseWriter, r *http.Request) {
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Facts == nil {
			http.Error(w, `{"error":"facts is required"}`, http.StatusBadRequest)
			return
		}

		result := an.Analyze(req.Facts, req.selection(), req.Packages...)

		report := analysisReport{Result: result}
		if req.Assess {
			a := assess.Assess(result)
			report.Assessment = &a
		}

		zap.L().Info("analysis served",
			zap.String("runId", result.RunID),
			zap.String("property", req.Facts.PropertyName),
			zap.Int("metrics", len(result.Values)),
		)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(report)
	})

	mux.HandleFunc("POST /assess", func(w http.ResponseWriter, r *http.Request) {
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Facts == nil {
			http.Error(w, `{"error":"facts is required"}`, http.StatusBadRequest)
			return
		}

		result := an.Analyze(req.Facts, model.AllCoreMetrics())
		assessment := assess.Assess(result)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(analysisReport{
			Result:     result,
			Assessment: &assessment,
		})
	})

	return mux
}
