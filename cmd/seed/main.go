package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/thoughtwall/thoughtwall/internal/client"
)

var users = []struct {
	username string
	email    string
}{
	{"sunnysam", "sam@example.com"},
	{"gladys", "gladys@example.com"},
	{"cheerio", "cheerio@example.com"},
	{"brightside", "bright@example.com"},
	{"smiley", "smiley@example.com"},
}

var thoughts = []struct {
	message  string
	category string
}{
	{"Fresh coffee on a rainy morning is the best thing ever", "food"},
	{"Finally finished the book I started three months ago", "books"},
	{"My cat fell asleep on my keyboard mid-meeting", "pets"},
	{"First bike ride of the season and the weather was perfect", "outdoors"},
	{"Someone left flowers on the bus seat with a note saying take me home", ""},
	{"Homemade bread came out of the oven looking like an actual loaf", "food"},
	{"Reconnected with an old friend after five years apart", "friends"},
	{"The sunset tonight was every shade of orange at once", "outdoors"},
	{"Got the whole playlist in shuffle to play my favorites in a row", "music"},
	{"A stranger complimented my terrible umbrella and made my day", ""},
	{"Planted basil three weeks ago and today there are leaves", "garden"},
	{"My code compiled on the first try this morning", "work"},
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Thoughtwall server URL")
	flag.Parse()

	log.Printf("Seeding database at %s...\n", *baseURL)

	// Register all users and keep their clients
	var clients []*client.Client
	for _, u := range users {
		c := client.New(*baseURL)
		if err := c.Register(u.username, u.email, u.username+"-password"); err != nil {
			log.Fatalf("register %s: %v", u.username, err)
		}
		log.Printf("✓ Registered user: %s", u.username)
		clients = append(clients, c)
	}

	// Post thoughts from random users
	var thoughtIDs []string
	for _, t := range thoughts {
		userIdx := rand.Intn(len(clients))
		c := clients[userIdx]

		thought, err := c.PostThought(t.message, t.category)
		if err != nil {
			log.Printf("✗ Failed to post thought: %v", err)
			continue
		}
		thoughtIDs = append(thoughtIDs, thought.ID)
		log.Printf("✓ Posted: %s (by %s)", t.message, users[userIdx].username)

		// Small delay to spread out created_at times
		time.Sleep(50 * time.Millisecond)
	}

	// Scatter likes so the hearts sort has something to show
	anon := client.New(*baseURL)
	likes := 0
	for _, id := range thoughtIDs {
		numLikes := rand.Intn(8)
		for i := 0; i < numLikes; i++ {
			if _, err := anon.Like(id); err != nil {
				log.Printf("✗ Failed to like: %v", err)
				break
			}
			likes++
		}
	}
	log.Printf("✓ Added %d likes", likes)

	// Print summary
	fmt.Println("\n=== Seed Complete ===")
	fmt.Printf("Users:    %d\n", len(users))
	fmt.Printf("Thoughts: %d\n", len(thoughtIDs))
	fmt.Printf("Likes:    %d\n", likes)
	fmt.Println("\nView at:", *baseURL+"/thoughts")
}
