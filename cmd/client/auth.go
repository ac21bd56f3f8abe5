// cmd/client/auth.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
)

type client struct {
	base  string
	http  *http.Client
	token string
}

func main() {
	baseURL := flag.String("http", "http://localhost:8080", "API base URL")
	grpcAddr := flag.String("grpc", "localhost:50051", "gRPC health address")
	email := flag.String("email", fmt.Sprintf("smoke-%d@example.com", time.Now().Unix()), "account email")
	password := flag.String("password", "SecurePass123", "account password")
	flag.Parse()

	fmt.Println("Task Manager smoke client")
	fmt.Println(strings.Repeat("=", 50))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	checkHealth(ctx, *grpcAddr)

	c := &client{base: strings.TrimRight(*baseURL, "/"), http: &http.Client{Timeout: 10 * time.Second}}
	c.run(ctx, *email, *password)
}

func checkHealth(ctx context.Context, addr string) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	if err != nil {
		log.Fatalf("Health check failed: %v", err)
	}
	fmt.Printf("✅ gRPC health: %s\n", resp.GetStatus())
}

func (c *client) run(ctx context.Context, email, password string) {
	fmt.Println("\n1. Signup")
	c.mustJSON(ctx, http.MethodPost, "/auth/signup", map[string]string{"email": email, "password": password}, http.StatusCreated, nil)

	fmt.Println("\n2. Login")
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	form := url.Values{"username": {email}, "password": {password}}
	c.mustDo(ctx, http.MethodPost, "/auth/login", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), http.StatusOK, &tok)
	c.token = tok.AccessToken

	fmt.Println("\n3. Who am I")
	c.mustJSON(ctx, http.MethodGet, "/auth/me", nil, http.StatusOK, nil)

	fmt.Println("\n4. Create tasks")
	var first struct {
		ID int64 `json:"id"`
	}
	due := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	c.mustJSON(ctx, http.MethodPost, "/tasks", map[string]string{"title": "Write report", "due_date": due, "priority": "high"}, http.StatusCreated, &first)
	c.mustJSON(ctx, http.MethodPost, "/tasks", map[string]string{"title": "Review PR"}, http.StatusCreated, nil)

	fmt.Println("\n5. List by due date")
	c.mustJSON(ctx, http.MethodGet, "/tasks?sort=-due_date&limit=10", nil, http.StatusOK, nil)

	path := fmt.Sprintf("/tasks/%d", first.ID)
	fmt.Println("\n6. Complete task")
	c.mustJSON(ctx, http.MethodPatch, path, map[string]string{"status": "done"}, http.StatusOK, nil)

	fmt.Println("\n7. Delete task")
	c.mustJSON(ctx, http.MethodDelete, path, nil, http.StatusNoContent, nil)
	c.mustJSON(ctx, http.MethodGet, path, nil, http.StatusNotFound, nil)

	fmt.Println("\n✅ Smoke test passed")
}

func (c *client) mustJSON(ctx context.Context, method, path string, body interface{}, want int, out interface{}) {
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			log.Fatalf("encode %s %s: %v", method, path, err)
		}
		r = strings.NewReader(string(raw))
	}
	c.mustDo(ctx, method, path, "application/json", r, want, out)
}

func (c *client) mustDo(ctx context.Context, method, path, contentType string, body io.Reader, want int, out interface{}) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		log.Fatalf("build %s %s: %v", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	fmt.Printf("   %s %s -> %d %s\n", method, path, resp.StatusCode, strings.TrimSpace(string(raw)))
	if resp.StatusCode != want {
		log.Fatalf("❌ %s %s: expected %d, got %d", method, path, want, resp.StatusCode)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			log.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
}
