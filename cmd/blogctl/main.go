// blogctl is a small scripting client for the blog API. It reuses the same
// session files as the GUI, so logging in here logs the GUI in too.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/joho/godotenv"

	"github.com/rexlx/scribble/internal/api"
	"github.com/rexlx/scribble/internal/config"
	"github.com/rexlx/scribble/internal/logging"
	"github.com/rexlx/scribble/internal/session"
)

func main() {
	cmd := flag.String("cmd", "posts", "Command: login|register|posts|create|delete|comments|comment|logout")
	email := flag.String("email", "", "Email (login/register)")
	pass := flag.String("pass", "", "Password (login/register)")
	name := flag.String("name", "", "Display name (register)")
	title := flag.String("title", "", "Post title (create)")
	content := flag.String("content", "", "Post or comment content (create/comment)")
	postID := flag.String("post", "", "Post id (delete/comments/comment)")
	server := flag.String("server", "", "Override API base URL")
	flag.Parse()

	if err := godotenv.Load(); err == nil {
		log.Println("loaded .env")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *server != "" {
		cfg.APIBaseURL = strings.TrimRight(*server, "/")
	}

	store, err := session.NewStore(cfg.StateDir)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}
	logger := logging.Discard()

	client := api.NewClient(api.ClientConfig{
		BaseURL:       cfg.APIBaseURL,
		HTTPClient:    &http.Client{},
		Tokens:        store,
		OnAuthFailure: store.Clear,
		Log:           logger,
	})
	auth := api.NewAuthService(client, store)
	posts := api.NewPostService(client)
	comments := api.NewCommentService(client)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	switch *cmd {
	case "login":
		sess, err := auth.Login(ctx, *email, *pass)
		if err != nil {
			log.Fatalf("Login failed: %v", err)
		}
		fmt.Printf("Logged in as %s\n", sess.User.Email)

	case "register":
		sess, err := auth.Register(ctx, *email, *pass, *name)
		if err != nil {
			log.Fatalf("Register failed: %v", err)
		}
		fmt.Printf("Registered %s\n", sess.User.Email)

	case "logout":
		auth.Logout()
		fmt.Println("Logged out")

	case "posts":
		list, err := posts.List(ctx)
		if err != nil {
			log.Fatalf("List failed: %v", err)
		}
		for _, p := range list {
			author := p.AuthorID
			if p.Author != nil {
				author = p.Author.Email
			}
			fmt.Printf("%s  %-30q  by %s  (%d comments)\n", p.ID, p.Title, author, p.CommentCount)
		}

	case "create":
		post, err := posts.Create(ctx, *title, *content)
		if err != nil {
			log.Fatalf("Create failed: %v", err)
		}
		fmt.Printf("Created post %s\n", post.ID)

	case "delete":
		if *postID == "" {
			log.Fatal("-post required")
		}
		if err := posts.Delete(ctx, *postID); err != nil {
			log.Fatalf("Delete failed: %v", err)
		}
		fmt.Printf("Deleted post %s\n", *postID)

	case "comments":
		if *postID == "" {
			log.Fatal("-post required")
		}
		list, err := comments.List(ctx, *postID)
		if err != nil {
			log.Fatalf("List comments failed: %v", err)
		}
		for _, c := range list {
			who := c.AuthorID
			if c.Author != nil {
				who = c.Author.Email
			}
			fmt.Printf("%s  %s: %s\n", c.ID, who, c.Content)
		}

	case "comment":
		if *postID == "" {
			log.Fatal("-post required")
		}
		c, err := comments.Add(ctx, *postID, *content)
		if err != nil {
			log.Fatalf("Comment failed: %v", err)
		}
		fmt.Printf("Added comment %s\n", c.ID)

	default:
		log.Fatalf("Unknown command %q", *cmd)
	}
}
