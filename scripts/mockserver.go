// Mockserver is a fake LibreTranslate-compatible server used for manual
// testing of backend selection and fallback. It implements /translate and
// /languages and can simulate outages.
//
// Usage:
//
//	go run mockserver.go -port 5000
//	go run mockserver.go -port 5000 -fail          # every request returns 500
//	go run mockserver.go -port 5000 -delay 5s      # stall to trigger timeouts
//
// The translated text is a tagged echo so it is obvious which server and
// target language produced the output.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"
)

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

func main() {
	port := flag.Int("port", 5000, "port to listen on")
	fail := flag.Bool("fail", false, "respond 500 to every request")
	delay := flag.Duration("delay", 0, "artificial delay before responding")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("/translate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		time.Sleep(*delay)

		if *fail {
			http.Error(w, "simulated failure", http.StatusInternalServerError)
			return
		}

		var req translateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		log.Printf("request: source=%s target=%s words=%d", req.Source, req.Target, len(req.Q))

		resp := map[string]any{
			"translatedText": fmt.Sprintf("[%s:%d] %s", req.Target, *port, req.Q),
		}
		if req.Source == "auto" {
			resp["detectedLanguage"] = map[string]any{"language": "en", "confidence": 90.0}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})

	mux.HandleFunc("/languages", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(*delay)

		if *fail {
			http.Error(w, "simulated failure", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"code":"en","name":"English"},{"code":"es","name":"Spanish"}]`))
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("mock translation server listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
