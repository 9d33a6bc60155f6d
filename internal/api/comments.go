package api

import (
	"context"
	"fmt"

	"github.com/rexlx/scribble/internal"
)

type commentPayload struct {
	Content string `json:"content"`
}

type commentCount struct {
	Count int `json:"count"`
}

// CommentService wraps the comment endpoints, all scoped to a parent post.
type CommentService struct {
	client *Client
}

func NewCommentService(client *Client) *CommentService {
	return &CommentService{client: client}
}

func (s *CommentService) List(ctx context.Context, postID string) ([]internal.Comment, error) {
	var comments []internal.Comment
	if err := s.client.Get(ctx, commentsPath(postID), &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *CommentService) Add(ctx context.Context, postID, content string) (*internal.Comment, error) {
	var comment internal.Comment
	if err := s.client.Post(ctx, commentsPath(postID), commentPayload{Content: content}, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentService) Update(ctx context.Context, postID, commentID, content string) (*internal.Comment, error) {
	var comment internal.Comment
	path := fmt.Sprintf("%s/%s", commentsPath(postID), commentID)
	if err := s.client.Patch(ctx, path, commentPayload{Content: content}, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentService) Delete(ctx context.Context, postID, commentID string) error {
	return s.client.Delete(ctx, fmt.Sprintf("%s/%s", commentsPath(postID), commentID))
}

func (s *CommentService) Count(ctx context.Context, postID string) (int, error) {
	var out commentCount
	if err := s.client.Get(ctx, commentsPath(postID)+"/count", &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}
