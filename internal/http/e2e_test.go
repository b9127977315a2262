package httpapp_test

import (
	"errors"
	"net"
	"net/http"
	"testing"

	"github.com/thoughtwall/thoughtwall/internal/auth"
	"github.com/thoughtwall/thoughtwall/internal/client"
	"github.com/thoughtwall/thoughtwall/internal/config"
	httpapp "github.com/thoughtwall/thoughtwall/internal/http"
	"github.com/thoughtwall/thoughtwall/internal/rate"
	"github.com/thoughtwall/thoughtwall/internal/store/sqlite"
)

func TestEndToEndServer(t *testing.T) {
	st, err := sqlite.Open("file:e2e_test?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	cfg := config.Config{
		Addr:        ":0",
		RateLimits:  config.RateLimits{ThoughtPerMinute: 1000, SignupPerMinute: 1000, LoginPerMinute: 1000},
		AdminSecret: "admin",
	}
	limiter := rate.NewMemory()
	authSvc := auth.NewService(st)
	server := httpapp.NewServer(st, authSvc, limiter, cfg)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer listener.Close()

	httpServer := &http.Server{Handler: server}
	go func() {
		_ = httpServer.Serve(listener)
	}()
	defer httpServer.Close()

	baseURL := "http://" + listener.Addr().String()

	c := client.New(baseURL)
	if err := c.Register("e2euser", "e2e@example.com", "password123"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if c.Token == "" {
		t.Fatalf("expected token after register")
	}

	thought, err := c.PostThought("An end to end happy thought", "testing")
	if err != nil {
		t.Fatalf("post thought: %v", err)
	}

	liked, err := c.Like(thought.ID)
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if liked.Hearts != 1 {
		t.Fatalf("expected 1 heart, got %d", liked.Hearts)
	}

	page, err := c.GetThoughts("", "hearts", 1, 10)
	if err != nil {
		t.Fatalf("get thoughts: %v", err)
	}
	if page.Total != 1 || len(page.Results) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}

	categories, err := c.GetCategories()
	if err != nil {
		t.Fatalf("get categories: %v", err)
	}
	if len(categories) != 1 || categories[0] != "testing" {
		t.Fatalf("unexpected categories: %v", categories)
	}

	deleted, err := c.DeleteThought(thought.ID)
	if err != nil {
		t.Fatalf("delete thought: %v", err)
	}
	if deleted.ID != thought.ID {
		t.Fatalf("expected deleted record, got %+v", deleted)
	}

	if _, err := c.GetThought(thought.ID); !errors.Is(err, client.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	if err := c.DeleteMe(); err != nil {
		t.Fatalf("delete account: %v", err)
	}
	if err := c.Login("e2e@example.com", "password123"); !errors.Is(err, client.ErrUnauthorized) {
		t.Fatalf("expected login to fail after account delete, got %v", err)
	}
}
