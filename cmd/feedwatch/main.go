// Package main provides a command-line watcher for the live feed stream.
// It logs in, opens the websocket and prints every feed event it receives.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	host := flag.String("host", "localhost:8480", "API server host")
	username := flag.String("username", "", "Username to log in with")
	password := flag.String("password", "password123", "Password to log in with")
	flag.Parse()

	if *username == "" {
		log.Fatal("a -username is required")
	}

	token, err := login(*host, *username, *password)
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	log.Printf("Logged in as %s", *username)

	wsURL := url.URL{
		Scheme:   "ws",
		Host:     *host,
		Path:     "/ws/feed",
		RawQuery: "token=" + url.QueryEscape(token),
	}

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		if resp != nil {
			log.Fatalf("Websocket dial failed with status %d: %v", resp.StatusCode, err)
		}
		log.Fatalf("Websocket dial failed: %v", err)
	}
	defer func() { _ = conn.Close() }()
	log.Println("Connected, watching the feed...")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				log.Printf("Read error: %v", err)
				return
			}
			log.Printf("event: %s", payload)
		}
	}()

	select {
	case <-done:
	case <-interrupt:
		log.Println("Closing connection...")
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	}
}

func login(host, username, password string) (string, error) {
	loginURL := fmt.Sprintf("http://%s/auth/login", host)
	payload := map[string]string{
		"username": username,
		"password": password,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(loginURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.Token == "" {
		return "", fmt.Errorf("no token in login response")
	}
	return result.Token, nil
}
