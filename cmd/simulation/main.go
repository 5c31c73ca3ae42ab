package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/fatih/color"
)

// Walks the full dashboard wizard against a locally running server using an
// anonymous session: search -> confirm -> score -> report -> outreach ->
// complete, then reads the history back. Run with allow_demo so the script
// succeeds even without scoring-API credentials.

const baseURL = "http://localhost:3000/api"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

var client *http.Client

func main() {
	jar, _ := cookiejar.New(nil)
	client = &http.Client{Jar: jar, Timeout: 60 * time.Second}

	header := color.New(color.FgCyan, color.Bold)
	ok := color.New(color.FgGreen)

	header.Println("=== PropScore Wizard Simulation ===")

	// Session bootstrap also sets the anonymous cookie on the jar.
	var sess struct {
		SessionID string `json:"session_id"`
		UserID    string `json:"user_id"`
	}
	mustCall("GET", "/session", nil, &sess)
	ok.Printf("Session %s (user %s)\n", sess.SessionID, sess.UserID)

	var search struct {
		QueryID     string `json:"query_id"`
		Suggestions []struct {
			PlaceID string `json:"place_id"`
			Label   string `json:"label"`
		} `json:"suggestions"`
		Demo bool `json:"demo"`
	}
	mustCall("POST", "/search", map[string]interface{}{
		"address":    "1247 Maple Grove Drive",
		"allow_demo": true,
	}, &search)
	ok.Printf("Search %s: %d suggestions (demo=%v)\n", search.QueryID, len(search.Suggestions), search.Demo)

	if len(search.Suggestions) == 0 {
		log.Fatal("no suggestions returned")
	}
	pick := search.Suggestions[0]

	var property struct {
		ConfirmedAddress string                 `json:"confirmed_address"`
		Property         map[string]interface{} `json:"property"`
	}
	mustCall("POST", "/search/property", map[string]interface{}{
		"query_id":          search.QueryID,
		"property_id":       pick.PlaceID,
		"confirmed_address": pick.Label,
		"allow_demo":        true,
	}, &property)
	ok.Printf("Confirmed: %s\n", property.ConfirmedAddress)

	var score struct {
		Score map[string]interface{} `json:"score"`
	}
	mustCall("POST", "/search/score", map[string]interface{}{
		"query_id":    search.QueryID,
		"property_id": pick.PlaceID,
		"allow_demo":  true,
	}, &score)
	ok.Printf("Score: %v (grade %v)\n", score.Score["likelihood_to_sell"], score.Score["grade"])

	var report struct {
		ReportURL string `json:"report_url"`
		Demo      bool   `json:"demo"`
	}
	mustCall("POST", "/reports", map[string]interface{}{
		"query_id":   search.QueryID,
		"allow_demo": true,
	}, &report)
	ok.Printf("Report: url=%q demo=%v\n", report.ReportURL, report.Demo)

	var outreach struct {
		Messages []string `json:"messages"`
	}
	mustCall("POST", "/outreach", map[string]interface{}{
		"query_id":   search.QueryID,
		"allow_demo": true,
	}, &outreach)
	ok.Printf("Outreach: %d messages\n", len(outreach.Messages))

	var completed struct {
		QueryID string `json:"query_id"`
		State   string `json:"state"`
	}
	mustCall("POST", "/search/complete", map[string]interface{}{
		"query_id": search.QueryID,
	}, &completed)
	ok.Printf("Completed query %s (state %s)\n", completed.QueryID, completed.State)

	var history []map[string]interface{}
	mustCall("GET", "/session/history", nil, &history)
	ok.Printf("History: %d entries\n", len(history))

	header.Println("=== Done ===")
}

func mustCall(method, path string, body interface{}, out interface{}) {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		color.Red("API Error %d: %s", resp.StatusCode, string(raw))
		log.Fatalf("%s %s failed", method, path)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Fatalf("%s %s: bad envelope: %v", method, path, err)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			log.Fatalf("%s %s: bad payload: %v", method, path, err)
		}
	}
	fmt.Printf("  %s %s -> %s\n", method, path, env.Message)
}
