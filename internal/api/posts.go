package api

import (
	"context"
	"fmt"

	"github.com/rexlx/scribble/internal"
)

type postPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PostService wraps the post endpoints. Every call hits the network; there
// is no caching and no retry.
type PostService struct {
	client *Client
}

func NewPostService(client *Client) *PostService {
	return &PostService{client: client}
}

func (s *PostService) List(ctx context.Context) ([]internal.Post, error) {
	var posts []internal.Post
	if err := s.client.Get(ctx, "/posts", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, postID string) (*internal.Post, error) {
	var post internal.Post
	if err := s.client.Get(ctx, "/posts/"+postID, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostService) Create(ctx context.Context, title, content string) (*internal.Post, error) {
	var post internal.Post
	if err := s.client.Post(ctx, "/posts", postPayload{Title: title, Content: content}, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostService) Update(ctx context.Context, postID, title, content string) (*internal.Post, error) {
	var post internal.Post
	if err := s.client.Put(ctx, "/posts/"+postID, postPayload{Title: title, Content: content}, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostService) Delete(ctx context.Context, postID string) error {
	return s.client.Delete(ctx, "/posts/"+postID)
}

func commentsPath(postID string) string {
	return fmt.Sprintf("/posts/%s/comments", postID)
}
