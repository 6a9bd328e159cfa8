package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fasthttp/websocket"
)

// End-to-end chat flow simulator. Registers two throwaway accounts,
// opens a websocket channel for each, relays one message between them
// and checks it lands in the history endpoints. Run against a live
// server:
//
//	go run ./cmd/simulation
//
// SIM_BASE_URL overrides the default http://localhost:3000.

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type session struct {
	AccessToken string `json:"accessToken"`
	User        struct {
		Id       uint   `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
}

func main() {
	baseURL := os.Getenv("SIM_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	stamp := time.Now().UnixNano()
	alice := register(baseURL, fmt.Sprintf("sim_alice_%d", stamp))
	bob := register(baseURL, fmt.Sprintf("sim_bob_%d", stamp))
	log.Printf("Registered alice=%d bob=%d", alice.User.Id, bob.User.Id)

	aliceConn := dial(baseURL, alice)
	defer aliceConn.Close()
	bobConn := dial(baseURL, bob)
	defer bobConn.Close()

	authenticate(aliceConn, alice.User.Id)
	authenticate(bobConn, bob.User.Id)
	log.Println("Both channels authenticated")

	// Alice -> Bob
	content := fmt.Sprintf("hello from simulation %d", stamp)
	sendFrame(aliceConn, map[string]interface{}{
		"type":       "message",
		"receiverId": bob.User.Id,
		"content":    content,
	})

	received := expectFrame(bobConn, "message")
	log.Printf("Bob received: %s", received)
	ack := expectFrame(aliceConn, "message_sent")
	log.Printf("Alice acked: %s", ack)

	// History must contain the relayed message.
	history := get(baseURL, fmt.Sprintf("/api/messages/%d", bob.User.Id), alice.AccessToken)
	if !strings.Contains(string(history), content) {
		log.Fatalf("History missing relayed message: %s", history)
	}

	conversations := get(baseURL, "/api/conversations", bob.AccessToken)
	if !strings.Contains(string(conversations), alice.User.Username) {
		log.Fatalf("Conversations missing counterparty: %s", conversations)
	}

	log.Println("Simulation passed")
}

func register(baseURL, username string) *session {
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": "simulation-pass-123",
		"fullName": "Simulated " + username,
		"email":    username + "@example.com",
	})

	resp, err := http.Post(baseURL+"/api/auth/register", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("Register request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("Register returned %d: %s", resp.StatusCode, raw)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Fatalf("Bad register response: %v", err)
	}
	var s session
	if err := json.Unmarshal(env.Data, &s); err != nil {
		log.Fatalf("Bad session payload: %v", err)
	}
	return &s
}

func dial(baseURL string, s *session) *websocket.Conn {
	wsURL := strings.Replace(baseURL, "http", "ws", 1) + "/api/ws?token=" + s.AccessToken
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("Dial failed for %s: %v", s.User.Username, err)
	}
	return conn
}

func authenticate(conn *websocket.Conn, userId uint) {
	sendFrame(conn, map[string]interface{}{"type": "auth", "userId": userId})
	expectFrame(conn, "auth_success")
}

func sendFrame(conn *websocket.Conn, frame map[string]interface{}) {
	payload, _ := json.Marshal(frame)
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		log.Fatalf("Write failed: %v", err)
	}
}

func expectFrame(conn *websocket.Conn, wantType string) []byte {
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		log.Fatalf("Read failed waiting for %q: %v", wantType, err)
	}

	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil || head.Type != wantType {
		log.Fatalf("Expected %q frame, got: %s", wantType, raw)
	}
	return raw
}

func get(baseURL, path, token string) []byte {
	req, _ := http.NewRequest(http.MethodGet, baseURL+path, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("GET %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("GET %s returned %d: %s", path, resp.StatusCode, raw)
	}
	return raw
}
