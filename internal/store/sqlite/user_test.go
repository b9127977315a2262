package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thoughtwall/thoughtwall/internal/model"
	"github.com/thoughtwall/thoughtwall/internal/store"
)

func TestUserLifecycle(t *testing.T) {
	st := newTestStore(t)
	defer st.Close()

	user := model.User{
		Username:     "gladys",
		Email:        "gladys@example.com",
		PasswordHash: "hash",
		AccessToken:  "tok-1",
		CreatedAt:    time.Now(),
	}
	if err := st.CreateUser(context.Background(), &user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}

	byEmail, err := st.GetUserByEmail(context.Background(), "gladys@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Fatalf("expected same user")
	}

	byToken, err := st.GetUserByToken(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if byToken.ID != user.ID {
		t.Fatalf("expected same user by token")
	}

	if err := st.SetAccessToken(context.Background(), user.ID, "tok-2"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if _, err := st.GetUserByToken(context.Background(), "tok-1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("old token should be dead, got %v", err)
	}
	if _, err := st.GetUserByToken(context.Background(), "tok-2"); err != nil {
		t.Fatalf("new token should resolve: %v", err)
	}

	if err := st.DeleteUser(context.Background(), user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := st.GetUser(context.Background(), user.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDuplicateUsers(t *testing.T) {
	st := newTestStore(t)
	defer st.Close()

	first := model.User{Username: "dupe", Email: "dupe@example.com", PasswordHash: "x", AccessToken: "tok-a", CreatedAt: time.Now()}
	if err := st.CreateUser(context.Background(), &first); err != nil {
		t.Fatalf("create user: %v", err)
	}

	sameEmail := model.User{Username: "other", Email: "dupe@example.com", PasswordHash: "x", AccessToken: "tok-b", CreatedAt: time.Now()}
	if err := st.CreateUser(context.Background(), &sameEmail); !errors.Is(err, store.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// Username uniqueness is case-insensitive
	sameName := model.User{Username: "DUPE", Email: "fresh@example.com", PasswordHash: "x", AccessToken: "tok-c", CreatedAt: time.Now()}
	if err := st.CreateUser(context.Background(), &sameName); !errors.Is(err, store.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestListUsers(t *testing.T) {
	st := newTestStore(t)
	defer st.Close()

	for i, name := range []string{"first", "second"} {
		user := model.User{
			Username:     name,
			Email:        name + "@example.com",
			PasswordHash: "x",
			AccessToken:  "tok-" + name,
			CreatedAt:    time.Now().Add(time.Duration(i) * time.Second),
		}
		if err := st.CreateUser(context.Background(), &user); err != nil {
			t.Fatalf("create user %s: %v", name, err)
		}
	}

	users, err := st.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Username != "first" {
		t.Fatalf("expected oldest first, got %s", users[0].Username)
	}
}
