package main

import (
	"encoding/json"
	"flag"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MaJuniors/voice-commerce/internal/api"
	"github.com/MaJuniors/voice-commerce/internal/audio"
	"github.com/MaJuniors/voice-commerce/internal/playback"
)

// Development stub for the voice commerce backend. It serves canned
// transcripts, a synthesized tone as the spoken reply, and a fixed product
// catalog, so the client can be exercised without the real services.

const emptyWAVSize = 44

var catalog = []api.Product{
	{Name: "Sepatu Lari Ringan", Price: "Rp299.000", Image: "https://img.example/sepatu-1.jpg", URL: "https://tokopedia.example/sepatu-1"},
	{Name: "Sepatu Olahraga Pro", Price: "Rp459.000", Image: "https://img.example/sepatu-2.jpg", URL: "https://tokopedia.example/sepatu-2"},
	{Name: "Sepatu Santai Kanvas", Price: "Rp199.000", Image: "https://img.example/sepatu-3.jpg", URL: "https://tokopedia.example/sepatu-3"},
	{Name: "Tas Ransel Harian", Price: "Rp249.000", Image: "https://img.example/tas-1.jpg", URL: "https://tokopedia.example/tas-1"},
	{Name: "Tas Selempang Kulit", Price: "Rp389.000", Image: "https://img.example/tas-2.jpg", URL: "https://tokopedia.example/tas-2"},
}

func sttHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Error getting audio file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	audioData, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Error reading audio file", http.StatusInternalServerError)
		return
	}

	log.Printf("STT request: filename=%s size=%d bytes", header.Filename, len(audioData))

	// Simulate processing time
	time.Sleep(200 * time.Millisecond)

	text := "carikan sepatu lari"
	if len(audioData) <= emptyWAVSize {
		text = ""
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(api.TranscriptionResponse{Text: text})

	log.Printf("STT response: %q", text)
}

func replyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	text := r.PostFormValue("text")
	if text == "" {
		http.Error(w, "Missing text field", http.StatusBadRequest)
		return
	}

	log.Printf("Reply request: %q", text)

	// A short tone stands in for synthesized speech
	wavData, err := audio.EncodeWAV(playback.SineTone(440, 0.5, 16000, 0.2), 16000)
	if err != nil {
		http.Error(w, "Error synthesizing reply", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Write(wavData)
}

func searchHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "Missing q parameter", http.StatusBadRequest)
		return
	}

	limit := 3
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	keyword := extractKeyword(query)
	log.Printf("Search request: q=%q keyword=%q limit=%d", query, keyword, limit)

	var items []api.Product
	for _, product := range catalog {
		if strings.Contains(strings.ToLower(product.Name), keyword) {
			items = append(items, product)
		}
		if len(items) == limit {
			break
		}
	}
	if items == nil {
		items = []api.Product{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(api.SearchResult{
		Items:   items,
		Count:   len(items),
		Keyword: keyword,
	})
}

// extractKeyword strips polite request prefixes so "tolong carikan sepatu"
// searches for "sepatu".
func extractKeyword(query string) string {
	keyword := strings.ToLower(strings.TrimSpace(query))

	for _, prefix := range []string{"tolong", "coba", "carikan", "cari"} {
		keyword = strings.TrimSpace(strings.TrimPrefix(keyword, prefix))
	}

	fields := strings.Fields(keyword)
	if len(fields) == 0 {
		return keyword
	}
	return fields[0]
}

func main() {
	addr := flag.String("addr", ":8080", "Listen address")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/stt", sttHandler)
	mux.HandleFunc("/api/reply", replyHandler)
	mux.HandleFunc("/api/tokopedia/search", searchHandler)

	log.Printf("Stub backend starting on %s", *addr)
	log.Printf("Endpoints: /api/stt /api/reply /api/tokopedia/search")
	log.Printf("Point the client at: http://localhost%s/api", *addr)

	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
