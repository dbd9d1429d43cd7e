// Package server exposes generation over HTTP so that editors without a
// native integration can request scaffolding for the document they hold.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path"
	"sync"
	"time"

	"github.com/gorilla/schema"
	"github.com/masnyjimmy/srihc/httpfile"
	"github.com/masnyjimmy/srihc/resolve"
	"github.com/masnyjimmy/srihc/scaffold"
	"github.com/masnyjimmy/srihc/synth"
	"github.com/rs/cors"
)

type Options struct {
	DebounceTime   time.Duration
	BaseUrl        string
	AllowedOrigins []string
}

func DefaultOptions() Options {
	return Options{
		DebounceTime:   DEFAULT_DEBOUNCE_TIME,
		BaseUrl:        "/",
		AllowedOrigins: []string{"*"},
	}
}

type urls struct {
	Generate   string
	Synthesize string
	Events     string
}

func makeUrls(base string) urls {
	return urls{
		Generate:   path.Join(base, "generate"),
		Synthesize: path.Join(base, "synthesize"),
		Events:     path.Join(base, "events"),
	}
}

type Bridge struct {
	options  Options
	generate scaffold.Options

	broadcaster *broadcaster
	decoder     *schema.Decoder
	urls        urls

	mu       sync.RWMutex
	resolver resolve.Resolver
}

func New(resolver resolve.Resolver, generate scaffold.Options, opt Options) *Bridge {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &Bridge{
		options:     opt,
		generate:    generate,
		broadcaster: newBroadcaster(),
		decoder:     decoder,
		urls:        makeUrls(opt.BaseUrl),
		resolver:    resolver,
	}
}

type GenerateRequest struct {
	Text     string `json:"text"`
	Caret    int    `json:"caret"`
	ReadOnly bool   `json:"readOnly"`
}

type GenerateResponse struct {
	Edits    []httpfile.Edit  `json:"edits"`
	Text     string           `json:"text"`
	Endpoint resolve.Endpoint `json:"endpoint"`
	Result   synth.Result     `json:"result"`
}

type synthesizeQuery struct {
	Method string `schema:"method"`
	Path   string `schema:"path,required"`
}

type SynthesizeResponse struct {
	Endpoint         resolve.Endpoint `json:"endpoint"`
	Result           synth.Result     `json:"result"`
	BodyTypeResolved bool             `json:"bodyTypeResolved"`
}

const skipHeader = "X-Skip-Reason"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Unable to write response: %v", err)
	}
}

func (b *Bridge) currentResolver() resolve.Resolver {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.resolver
}

func (b *Bridge) skip(w http.ResponseWriter, err error) {
	log.Printf("Skipping generation: %v", err)
	w.Header().Set(skipHeader, err.Error())
	w.WriteHeader(http.StatusNoContent)
}

func (b *Bridge) serveGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	doc := httpfile.Parse(req.Text)
	doc.ReadOnly = req.ReadOnly

	text, plan, err := scaffold.Run(doc, req.Caret, b.currentResolver(), b.generate)
	if err != nil {
		if scaffold.IsSkip(err) {
			b.skip(w, err)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, GenerateResponse{
		Edits:    plan.Edits,
		Text:     text,
		Endpoint: plan.Endpoint,
		Result:   plan.Result,
	})
}

func (b *Bridge) serveSynthesize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var query synthesizeQuery
	if err := b.decoder.Decode(&query, r.URL.Query()); err != nil {
		http.Error(w, "invalid query: "+err.Error(), http.StatusBadRequest)
		return
	}

	plan, err := scaffold.Synthesize(b.currentResolver(), query.Method, query.Path, b.generate)
	if err != nil {
		if errors.Is(err, scaffold.ErrResolutionMiss) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, SynthesizeResponse{
		Endpoint:         plan.Endpoint,
		Result:           plan.Result,
		BodyTypeResolved: plan.BodyTypeResolved,
	})
}

// Handler serves the bridge endpoints and passes anything else to h.
func (b *Bridge) Handler(h http.Handler) http.Handler {
	mux := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case b.urls.Generate:
			b.serveGenerate(w, r)
		case b.urls.Synthesize:
			b.serveSynthesize(w, r)
		case b.urls.Events:
			b.broadcaster.ServeHTTP(w, r)
		default:
			if h != nil {
				h.ServeHTTP(w, r)
			} else {
				http.NotFound(w, r)
			}
		}
	})

	return cors.New(cors.Options{
		AllowedOrigins: b.options.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{skipHeader},
	}).Handler(mux)
}

// SetResolver swaps the endpoint catalog and tells connected editors.
func (b *Bridge) SetResolver(resolver resolve.Resolver) {
	b.mu.Lock()
	b.resolver = resolver
	b.mu.Unlock()
	b.broadcaster.broadcast("reload", "metadata")
}

// ReportError tells connected editors that reloading failed.
func (b *Bridge) ReportError(err error) {
	b.broadcaster.broadcast("error", err.Error())
}
