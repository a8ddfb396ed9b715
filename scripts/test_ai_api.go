package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{} // No timeout, RAG answers can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func extractData(body []byte) map[string]interface{} {
	var envelope map[string]interface{}
	json.Unmarshal(body, &envelope)
	if data, ok := envelope["data"].(map[string]interface{}); ok {
		return data
	}
	return nil
}

func main() {
	color.Cyan("🚀 Starting Insights API Smoke Test\n")

	// 1. Service Info
	color.Yellow("\n[INSIGHT] 1. Get Service Info")
	resp, body, err := sendRequest("GET", "/info", nil)
	if err != nil {
		color.Red("Failed: %v (is the server running?)", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(extractData(body))

	// 2. Dataset Summary
	color.Yellow("\n[INSIGHT] 2. Get Dataset Summary")
	resp, body, err = sendRequest("GET", "/summary", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	if data := extractData(body); data != nil {
		fmt.Printf("Segments: %v\n", data["segments"])
		if topRisk, ok := data["top_risk"].([]interface{}); ok {
			fmt.Printf("Top risk customers: %d\n", len(topRisk))
		}
		if upsell, ok := data["upsell_candidates"].([]interface{}); ok {
			fmt.Printf("Upsell candidates: %d\n", len(upsell))
		}
	}

	// 3. Segment drill-down
	color.Yellow("\n[INSIGHT] 3. Get Segment: high_value")
	resp, body, err = sendRequest("GET", "/segment/high_value", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	if data := extractData(body); data != nil {
		fmt.Printf("Count: %v\n", data["count"])
	}

	// 4. Chat conversation: list then follow up on a rank
	color.Yellow("\n[CHAT] 4. Send: 'show top churn accounts'")
	chatReq := map[string]interface{}{
		"query": "show top churn accounts",
	}
	resp, body, err = sendRequest("POST", "/chat", chatReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var sessionID string
	if data := extractData(body); data != nil {
		sessionID = fmt.Sprintf("%v", data["session_id"])
		fmt.Printf("Session: %s\nRoute: %v (complexity %.2f)\n", sessionID, data["route"], data["complexity"])
		fmt.Printf("Reply:\n%v\n", data["reply"])
	}

	color.Yellow("\n[CHAT] 5. Follow up: 'tell me more about 2'")
	if sessionID == "" {
		color.Red("Skipping follow-up: no session id returned")
	} else {
		chatReq = map[string]interface{}{
			"session_id": sessionID,
			"query":      "tell me more about 2",
		}
		resp, body, err = sendRequest("POST", "/chat", chatReq)
		if err != nil {
			color.Red("Failed: %v", err)
		} else {
			color.Green("Status: %s", resp.Status)
			if data := extractData(body); data != nil {
				fmt.Printf("Route: %v\nReply:\n%v\n", data["route"], data["reply"])
			}
		}
	}

	// 6. A query the rules can't answer, exercises RAG or the fallback
	color.Yellow("\n[CHAT] 6. Send: 'why do customers churn and what should we do?'")
	chatReq = map[string]interface{}{
		"session_id": sessionID,
		"query":      "why do customers churn and what should we do about it?",
	}
	resp, body, err = sendRequest("POST", "/chat", chatReq)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		if data := extractData(body); data != nil {
			fmt.Printf("Route: %v (complexity %.2f)\n", data["route"], data["complexity"])
			fmt.Printf("Reply:\n%v\n", data["reply"])
		}
	}

	// 7. Cleanup: drop the session
	if sessionID != "" {
		color.Yellow("\n[CHAT] 7. Cleanup: Delete Session")
		resp, body, err = sendRequest("DELETE", "/chat/sessions/"+sessionID, nil)
		if err != nil {
			color.Red("Failed: %v", err)
		} else {
			color.Green("Status: %s", resp.Status)
			prettyPrint(extractData(body))
		}
	}

	color.Cyan("\n✅ Test Sequence Complete")
}
