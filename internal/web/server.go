// Package web serves the bridge widget page, its JSON API and an SSE stream
// of fee oracle updates.
package web

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/acme/autocert"

	"github.com/puentelabs/puente/internal/domain"
	"github.com/puentelabs/puente/internal/services/bridge"
)

const feePollInterval = 3 * time.Second

// gasReader exposes the cached gas price of a live fee oracle.
type gasReader interface {
	LastUpdate() (decimal.Decimal, time.Time)
}

// Server exposes HTTP endpoints serving the widget and its API.
type Server struct {
	Addr   string
	Bridge *bridge.Service
	Fees   gasReader
}

// NewServer creates a new web server instance.
func NewServer(addr string, b *bridge.Service, fees gasReader) *Server {
	return &Server{Addr: addr, Bridge: b, Fees: fees}
}

func (s *Server) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/catalog", s.handleCatalog)
	mux.HandleFunc("/api/quote", s.handleQuote)
	mux.HandleFunc("/api/connect", s.handleConnect)
	mux.HandleFunc("/api/disconnect", s.handleDisconnect)
	mux.HandleFunc("/api/submit", s.handleSubmit)
	mux.HandleFunc("/fees/stream", s.handleFeeStream)
	return mux
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	server := &http.Server{
		Addr:              s.Addr,
		Handler:           s.mux(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// StartWithAutoTLS runs an HTTPS server with automatic TLS certificates via
// ACME, plus an HTTP server on port 80 for the HTTP-01 challenges.
func (s *Server) StartWithAutoTLS(ctx context.Context, domains []string, cacheDir string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(domains) == 0 {
		return fmt.Errorf("no domains provided for automatic TLS")
	}
	if cacheDir == "" {
		cacheDir = "cert-cache"
	}

	manager := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(domains...),
		Cache:      autocert.DirCache(cacheDir),
	}

	httpSrv := &http.Server{
		Addr:              ":80",
		Handler:           manager.HTTPHandler(nil),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	tlsConfig := manager.TLSConfig()
	tlsConfig.MinVersion = tls.VersionTLS12

	httpsSrv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.mux(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
		TLSConfig:         tlsConfig,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
		_ = httpsSrv.Shutdown(shutdownCtx)
	}()

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("acme http server: %v", err)
		}
	}()

	if err := httpsSrv.ListenAndServeTLS("", ""); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Bridge.Engine().Catalog())
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Bridge.Quote(r.Context(), req))
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.Bridge.Connect(r.Context()))
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.Bridge.Disconnect()
	writeJSON(w, http.StatusOK, s.Bridge.Session())
}

type submitResponse struct {
	Ref string `json:"ref"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	ref, err := s.Bridge.Submit(r.Context(), req)
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, bridge.ErrNotConnected) && !errors.Is(err, bridge.ErrZeroQuote) && !errors.Is(err, bridge.ErrInsufficientBalance) {
			status = http.StatusInternalServerError
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{Ref: ref})
}

// decodeRequest parses and validates a conversion request. Unknown asset
// codes are rejected loudly here; only the engine itself degrades to zero.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (domain.ConversionRequest, bool) {
	var req domain.ConversionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return req, false
	}
	if !req.SourceMode.IsValid() {
		http.Error(w, "invalid source mode", http.StatusBadRequest)
		return req, false
	}

	cat := s.Bridge.Engine().Catalog()
	if _, err := cat.CryptoByCode(req.DestCode); err != nil {
		http.Error(w, "unknown destination asset", http.StatusBadRequest)
		return req, false
	}
	var err error
	if req.SourceMode == domain.SourceModeFiat {
		_, err = cat.FiatByCode(req.SourceCode)
	} else {
		_, err = cat.CryptoByCode(req.SourceCode)
	}
	if err != nil {
		http.Error(w, "unknown source asset", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

type feeUpdate struct {
	GasPrice  string    `json:"gas_price"`
	Timestamp time.Time `json:"ts"`
}

func (s *Server) handleFeeStream(w http.ResponseWriter, r *http.Request) {
	if s.Fees == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "fee oracle not available")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// send a comment heartbeat every 30s so proxies keep connection
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	pollTicker := time.NewTicker(feePollInterval)
	defer pollTicker.Stop()

	var lastSent time.Time
	sendUpdate := func() error {
		price, at := s.Fees.LastUpdate()
		if at.IsZero() || !at.After(lastSent) {
			return nil
		}
		payload, err := json.Marshal(feeUpdate{GasPrice: price.String(), Timestamp: at})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "event: fees\n")
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
		lastSent = at
		return nil
	}

	if err := sendUpdate(); err != nil {
		http.Error(w, "failed to load fee update", http.StatusInternalServerError)
		log.Printf("fee stream initial load: %v", err)
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprintf(w, ": ping\n\n")
			flusher.Flush()
		case <-pollTicker.C:
			if err := sendUpdate(); err != nil {
				log.Printf("fee stream poll err: %v", err)
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

// Single-page bridge widget backed by the JSON API.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Puente</title>
  <style>
    :root {
      --bg:#ffffff;
      --ink:#111111;
      --ink-mid:#4d4d4d;
      --ink-soft:#9c9c9c;
      --accent:#7b2ff7;
      --panel:#f6f2fd;
      --line:rgba(0,0,0,0.1);
    }
    * { box-sizing:border-box; }
    body {
      margin:0;
      min-height:100vh;
      display:flex;
      align-items:center;
      justify-content:center;
      padding:2rem;
      background:var(--bg);
      color:var(--ink);
      font-family:ui-monospace,monospace;
    }
    .card { width:22rem; border:1px solid var(--line); border-radius:12px; padding:1rem; }
    .card h1 { font-size:1.1rem; color:var(--accent); margin:0 0 .75rem; }
    .panel { background:var(--panel); border-radius:8px; padding:.75rem; margin-bottom:.6rem; }
    .row { display:flex; justify-content:space-between; align-items:center; gap:.5rem; }
    .muted { color:var(--ink-soft); font-size:.75rem; }
    input, select { font:inherit; border:1px solid var(--line); border-radius:6px; padding:.35rem; }
    input { width:100%; font-size:1.2rem; font-weight:bold; border:none; background:transparent; outline:none; }
    button { font:inherit; border:none; border-radius:8px; padding:.5rem .75rem; cursor:pointer; }
    .primary { width:100%; background:var(--accent); color:#fff; margin-top:.4rem; }
    .primary:disabled { background:var(--ink-soft); cursor:default; }
    .link { background:none; color:var(--accent); font-size:.75rem; padding:0; }
    #output { font-size:1.2rem; font-weight:bold; }
    #toast { position:fixed; bottom:1rem; left:50%; transform:translateX(-50%);
      background:var(--ink); color:#fff; border-radius:8px; padding:.6rem 1rem;
      font-size:.8rem; opacity:0; transition:opacity .3s; max-width:28rem; }
    #toast.show { opacity:1; }
    .fees { font-size:.75rem; color:var(--ink-mid); border-top:1px solid var(--line);
      margin-top:.6rem; padding-top:.6rem; }
  </style>
</head>
<body>
  <div class="card">
    <h1>Puente</h1>
    <div class="panel">
      <div class="row">
        <select id="source"></select>
        <button class="link" id="toggle"></button>
      </div>
      <input id="amount" value="100" placeholder="0.00" inputmode="decimal" />
      <div class="muted" id="source-usd"></div>
    </div>
    <div class="panel">
      <div class="row">
        <select id="dest"></select>
        <span class="muted" id="network"></span>
      </div>
      <div id="output">0.000000</div>
      <div class="muted" id="output-usd"></div>
    </div>
    <div class="row">
      <span class="muted">Slippage</span>
      <select id="slippage">
        <option value="0.5">0.5%</option>
        <option value="1.0">1.0%</option>
        <option value="2.0">2.0%</option>
      </select>
    </div>
    <button class="primary" id="connect">Connect Wallet</button>
    <button class="primary" id="submit" disabled></button>
    <div class="fees">
      <div class="row"><span>Network fee</span><span id="fee">$0.000</span></div>
      <div class="row" id="processing-row"><span>Processing</span><span>1.5%</span></div>
      <div class="row"><span>Market rate</span><span id="rate"></span></div>
    </div>
  </div>
  <div id="toast"></div>
  <script>
    let catalog = null;
    let mode = 'fiat';
    let session = { connected:false };
    const el = id => document.getElementById(id);

    function toast(msg) {
      el('toast').textContent = msg;
      el('toast').classList.add('show');
      setTimeout(() => el('toast').classList.remove('show'), 4000);
    }

    function fillSelect(select, assets, selected) {
      select.innerHTML = '';
      for (const a of assets) {
        const opt = document.createElement('option');
        opt.value = a.code;
        opt.textContent = a.code + (a.is_new ? ' (New)' : '');
        if (a.code === selected) opt.selected = true;
        select.appendChild(opt);
      }
    }

    function request() {
      return {
        amount: el('amount').value,
        source_mode: mode,
        source_code: el('source').value,
        dest_code: el('dest').value,
        slippage_pct: parseFloat(el('slippage').value)
      };
    }

    async function refresh() {
      const res = await fetch('/api/quote', { method:'POST', body: JSON.stringify(request()) });
      if (!res.ok) { toast(await res.text()); return; }
      const q = await res.json();
      el('output').textContent = Number(q.output).toFixed(6) + ' ' + q.request.dest_code;
      el('output-usd').textContent = '≈ $' + Number(q.output_usd).toFixed(2);
      el('source-usd').textContent = q.source_usd !== undefined ? '≈ $' + Number(q.source_usd).toFixed(2) : '';
      el('fee').textContent = '$' + Number(q.network_fee_usd).toFixed(3);
      const dest = catalog.crypto.find(a => a.code === q.request.dest_code);
      el('network').textContent = dest ? 'Network: ' + dest.network : '';
      el('rate').textContent = '1 ' + q.request.dest_code + ' = $' + q.rate;
      el('processing-row').style.display = mode === 'fiat' ? 'flex' : 'none';
      el('submit').textContent = (mode === 'fiat' ? 'Buy ' : 'Transfer ') + q.request.dest_code;
      el('submit').disabled = !session.connected || !(Number(q.output) > 0);
    }

    function applyMode() {
      el('toggle').textContent = mode === 'fiat' ? 'Switch to Crypto' : 'Switch to Fiat';
      const assets = mode === 'fiat' ? catalog.fiat : catalog.crypto;
      fillSelect(el('source'), assets, mode === 'fiat' ? 'USD' : 'PI');
      refresh();
    }

    el('amount').addEventListener('input', e => {
      const cleaned = e.target.value.replace(/[^0-9.]/g, '');
      if ((cleaned.match(/\./g) || []).length > 1) { e.target.value = e.target.dataset.prev || ''; return; }
      e.target.value = cleaned;
      e.target.dataset.prev = cleaned;
      refresh();
    });
    el('toggle').addEventListener('click', () => { mode = mode === 'fiat' ? 'crypto' : 'fiat'; applyMode(); });
    for (const id of ['source','dest','slippage']) el(id).addEventListener('change', refresh);

    el('connect').addEventListener('click', async () => {
      if (session.connected) {
        await fetch('/api/disconnect', { method:'POST' });
        session = { connected:false };
        el('connect').textContent = 'Connect Wallet';
      } else {
        const res = await fetch('/api/connect', { method:'POST' });
        session = await res.json();
        if (session.connected) el('connect').textContent = session.address;
      }
      refresh();
    });

    el('submit').addEventListener('click', async () => {
      const res = await fetch('/api/submit', { method:'POST', body: JSON.stringify(request()) });
      if (!res.ok) { toast(await res.text()); return; }
      const out = await res.json();
      toast('Submission accepted (ref ' + out.ref + ')');
    });

    const feed = new EventSource('/fees/stream');
    feed.addEventListener('fees', () => refresh());

    fetch('/api/catalog').then(r => r.json()).then(c => {
      catalog = c;
      fillSelect(el('dest'), c.crypto, 'PI');
      applyMode();
    });
  </script>
</body>
</html>`
