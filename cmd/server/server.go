package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"filtergraph-box/pkg/description"
	"filtergraph-box/pkg/filtergraph"
	"filtergraph-box/pkg/logger"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	// Global logger instance
	log = logger.Build()
)

const (
	// Env variables
	// HTTP port for the server
	APP_PORT = "APP_PORT"
	// Max size of a request body, in KB
	MAX_BODY_SIZE_KB = "MAX_BODY_SIZE_KB"

	// Default values
	DefaultAppPort       = 8080
	DefaultMaxBodySizeKB = 512

	// Header holding the id of the request, in both directions
	RequestIdHeader = "X-Request-Id"
)

// Results of a render, used as metric label
const (
	resultOk                 = "ok"
	resultInvalidDescription = "invalid_description"
	resultInvalidGraph       = "invalid_graph"
)

type ctxKey struct{}

// Server configuration, read from env
type config struct {
	port        int
	maxBodySize int64
}

// Fetch all env variables, falling back on default values
func loadConfig() config {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file detected ! ")
	}
	// Package loggers were built before .env was loaded
	logger.ReloadLevel()
	conf := config{port: DefaultAppPort, maxBodySize: DefaultMaxBodySizeKB * 1024}
	if i, err := strconv.ParseInt(os.Getenv(APP_PORT), 10, 32); err == nil && i > 0 {
		conf.port = int(i)
	}
	if i, err := strconv.ParseInt(os.Getenv(MAX_BODY_SIZE_KB), 10, 64); err == nil && i > 0 {
		conf.maxBodySize = i * 1024
	}
	return conf
}

type metrics struct {
	renders  *prometheus.CounterVec
	findings *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "filtergraph_renders_total",
			Help: "Number of render requests, by result",
		}, []string{"result"}),
		findings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "filtergraph_findings_total",
			Help: "Number of validation findings reported, by kind",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.renders, m.findings)
	return m
}

// Some kind of a root DI container
type server struct {
	maxBodySize int64
	// Where generated labels get their prefix from, nil for the process-wide counter
	prefixes filtergraph.PrefixSource
	metrics  *metrics
}

// A single validation finding, as returned to the client
type findingResponse struct {
	Kind    string   `json:"kind"`
	Message string   `json:"message"`
	Labels  []string `json:"labels"`
}

type validationResponse struct {
	RequestId string            `json:"requestId"`
	Valid     bool              `json:"valid"`
	Graph     string            `json:"graph,omitempty"`
	Findings  []findingResponse `json:"findings"`
}

func newRouter(s *server, reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(requestId)
	r.Post("/render", s.render)
	r.Post("/validate", s.validate)
	r.Get("/healthz", healthz)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return r
}

// Tag each request with an id, reusing the client one if any
func requestId(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get(RequestIdHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIdHeader, id)
		next.ServeHTTP(w, req.WithContext(context.WithValue(req.Context(), ctxKey{}, id)))
	})
}

func requestLog(req *http.Request) *logrus.Entry {
	id, _ := req.Context().Value(ctxKey{}).(string)
	return log.WithField("requestId", id)
}

// Health endpoint
func healthz(w http.ResponseWriter, req *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Render a description into a -filter_complex value
// 200 with the graph as plain text, 400 if the description cannot be built, 422 with the findings if the graph
// is inconsistent
func (s *server) render(w http.ResponseWriter, req *http.Request) {
	g, code, err := s.buildGraph(w, req)
	if err != nil {
		requestLog(req).Warnf("Wrong description received : %s", err.Error())
		s.metrics.renders.WithLabelValues(resultInvalidDescription).Inc()
		http.Error(w, err.Error(), code)
		return
	}
	rendered, err := g.ValidatedString()
	if err != nil {
		s.metrics.renders.WithLabelValues(resultInvalidGraph).Inc()
		s.writeFindings(w, req, g, err)
		return
	}
	s.metrics.renders.WithLabelValues(resultOk).Inc()
	requestLog(req).Infof("Rendered a graph of %d chain(s)", g.Len())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(rendered))
}

// Check a description without rendering it in plain text
// 200 or 422, always with a JSON body
func (s *server) validate(w http.ResponseWriter, req *http.Request) {
	g, code, err := s.buildGraph(w, req)
	if err != nil {
		requestLog(req).Warnf("Wrong description received : %s", err.Error())
		http.Error(w, err.Error(), code)
		return
	}
	if err = g.Validate(); err != nil {
		s.writeFindings(w, req, g, err)
		return
	}
	id, _ := req.Context().Value(ctxKey{}).(string)
	writeJson(w, req, http.StatusOK, validationResponse{
		RequestId: id,
		Valid:     true,
		Graph:     g.String(),
		Findings:  []findingResponse{},
	})
}

// Decode and build the request body, returning the HTTP code to use on failure
func (s *server) buildGraph(w http.ResponseWriter, req *http.Request) (*filtergraph.Graph, int, error) {
	defer req.Body.Close()
	contents, err := io.ReadAll(http.MaxBytesReader(w, req.Body, s.maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, http.StatusBadRequest, err
	}
	d, err := description.Decode(bytes.NewReader(contents))
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	var opts []filtergraph.Option
	if s.prefixes != nil {
		opts = append(opts, filtergraph.WithPrefixSource(s.prefixes))
	}
	g, _, err := d.Build(opts...)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return g, http.StatusOK, nil
}

func (s *server) writeFindings(w http.ResponseWriter, req *http.Request, g *filtergraph.Graph, err error) {
	var findings filtergraph.ValidationErrors
	if !errors.As(err, &findings) {
		requestLog(req).Errorf("Unexpected validation error : %s", err.Error())
		http.Error(w, "Unexpected error", http.StatusInternalServerError)
		return
	}
	id, _ := req.Context().Value(ctxKey{}).(string)
	resp := validationResponse{RequestId: id, Findings: make([]findingResponse, len(findings))}
	for i, f := range findings {
		s.metrics.findings.WithLabelValues(f.Kind()).Inc()
		resp.Findings[i] = toFindingResponse(f)
	}
	requestLog(req).Infof("Graph of %d chain(s) has %d finding(s)", g.Len(), len(findings))
	writeJson(w, req, http.StatusUnprocessableEntity, resp)
}

func toFindingResponse(f filtergraph.Finding) findingResponse {
	resp := findingResponse{Kind: f.Kind(), Message: f.Error()}
	switch e := f.(type) {
	case *filtergraph.UnconnectedPadError:
		resp.Labels = []string{e.Label}
	case *filtergraph.DuplicateLabelError:
		resp.Labels = []string{e.Label}
	case *filtergraph.CycleDetectedError:
		resp.Labels = e.Labels
	}
	return resp
}

func writeJson(w http.ResponseWriter, req *http.Request, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		requestLog(req).Errorf("Could not write response : %s", err.Error())
	}
}

func main() {
	conf := loadConfig()
	reg := prometheus.NewRegistry()
	s := &server{maxBodySize: conf.maxBodySize, metrics: newMetrics(reg)}

	log.Infof("Started server on PORT %d", conf.port)
	err := http.ListenAndServe(fmt.Sprintf(":%d", conf.port), newRouter(s, reg))
	if err != nil {
		panic(err)
	}
}
