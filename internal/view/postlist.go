package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/rexlx/scribble/internal"
	"github.com/rexlx/scribble/internal/logging"
)

// PostAPI is the slice of the posts client the controller needs.
type PostAPI interface {
	List(ctx context.Context) ([]internal.Post, error)
	Create(ctx context.Context, title, content string) (*internal.Post, error)
	Update(ctx context.Context, postID, title, content string) (*internal.Post, error)
	Delete(ctx context.Context, postID string) error
}

// PostDraft is the transient edit buffer for one post.
type PostDraft struct {
	Title   string
	Content string
}

// PostListController drives the post feed: initial fetch, create, per-post
// edit buffers, and staged deletion behind a confirmation dialog.
type PostListController struct {
	api PostAPI
	log *logging.Logger

	// OnChange fires after every state transition so the presentation
	// layer can re-render.
	OnChange func()

	Posts []internal.Post
	State ListState
	Err   string

	busy         busySet
	editing      map[string]bool
	drafts       map[string]PostDraft
	confirm      Confirm
	deleteTarget string
}

func NewPostListController(api PostAPI, log *logging.Logger) *PostListController {
	if log == nil {
		log = logging.Discard()
	}
	return &PostListController{
		api:     api,
		log:     log,
		busy:    make(busySet),
		editing: make(map[string]bool),
		drafts:  make(map[string]PostDraft),
	}
}

func (c *PostListController) changed() {
	if c.OnChange != nil {
		c.OnChange()
	}
}

// Fetch replaces the entire list with the server's current one.
func (c *PostListController) Fetch(ctx context.Context) {
	c.busy.set(OpFetch, "")
	c.State = StateLoading
	c.Err = ""
	c.changed()
	defer func() {
		c.busy.clear(OpFetch, "")
		c.changed()
	}()

	posts, err := c.api.List(ctx)
	if err != nil {
		c.log.Error("fetching posts: %v", err)
		c.State = StateIdle
		c.Err = err.Error()
		return
	}
	c.Posts = posts
	c.State = StateReady
}

// Create sends a new post and appends the server's copy to the list.
// Empty title or content never reaches the network and never sets a busy
// flag.
func (c *PostListController) Create(ctx context.Context, title, content string) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		c.Err = "Title and content are required"
		c.changed()
		return
	}
	c.Err = ""
	c.busy.set(OpAdd, "")
	c.changed()
	defer func() {
		c.busy.clear(OpAdd, "")
		c.changed()
	}()

	post, err := c.api.Create(ctx, title, content)
	if err != nil {
		c.log.Error("creating post: %v", err)
		c.Err = err.Error()
		return
	}
	c.Posts = append(c.Posts, *post)
}

// BeginEdit seeds the edit buffer with the post's current content. Only
// the targeted post switches to its edit view.
func (c *PostListController) BeginEdit(post internal.Post) {
	c.drafts[post.ID] = PostDraft{Title: post.Title, Content: post.Content}
	c.editing[post.ID] = true
	c.changed()
}

// SetDraft updates the edit buffer as the user types.
func (c *PostListController) SetDraft(postID string, draft PostDraft) {
	c.drafts[postID] = draft
}

func (c *PostListController) Draft(postID string) PostDraft {
	return c.drafts[postID]
}

func (c *PostListController) Editing(postID string) bool {
	return c.editing[postID]
}

// CommitEdit sends the buffered edit. A whitespace-only buffer is a no-op.
func (c *PostListController) CommitEdit(ctx context.Context, postID string) {
	draft := c.drafts[postID]
	if strings.TrimSpace(draft.Title) == "" || strings.TrimSpace(draft.Content) == "" {
		return
	}
	c.Err = ""
	c.busy.set(OpEdit, postID)
	c.changed()
	defer func() {
		c.busy.clear(OpEdit, postID)
		c.changed()
	}()

	updated, err := c.api.Update(ctx, postID, draft.Title, draft.Content)
	if err != nil {
		c.log.Error("updating post %s: %v", postID, err)
		c.Err = err.Error()
		return
	}
	for i := range c.Posts {
		if c.Posts[i].ID == postID {
			c.Posts[i] = *updated
			break
		}
	}
	c.editing[postID] = false
	delete(c.drafts, postID)
}

// CancelEdit discards the buffer without sending anything.
func (c *PostListController) CancelEdit(postID string) {
	c.editing[postID] = false
	delete(c.drafts, postID)
	c.changed()
}

// DeleteClick stages a deletion and opens the confirmation dialog. Nothing
// is sent until the user confirms, so the confirmed action carries its own
// context rather than one scoped to the click that staged it.
func (c *PostListController) DeleteClick(post internal.Post) {
	c.deleteTarget = post.ID
	c.confirm = Confirm{
		Open:        true,
		Title:       "Delete Post",
		Message:     fmt.Sprintf("Are you sure you want to delete %q? This action cannot be undone.", post.Title),
		ConfirmText: "Delete",
		CancelText:  "Cancel",
		OnConfirm:   func() { c.confirmDelete(context.Background()) },
		OnClose:     func() { c.cancelDelete() },
	}
	c.changed()
}

func (c *PostListController) cancelDelete() {
	c.deleteTarget = ""
	c.confirm = Confirm{}
	c.changed()
}

func (c *PostListController) confirmDelete(ctx context.Context) {
	target := c.deleteTarget
	if target == "" {
		return
	}
	c.Err = ""
	c.busy.set(OpDelete, target)
	c.changed()
	defer func() {
		c.busy.clear(OpDelete, target)
		c.deleteTarget = ""
		c.confirm = Confirm{}
		c.changed()
	}()

	if err := c.api.Delete(ctx, target); err != nil {
		c.log.Error("deleting post %s: %v", target, err)
		c.Err = err.Error()
		return
	}
	kept := c.Posts[:0]
	for _, p := range c.Posts {
		if p.ID != target {
			kept = append(kept, p)
		}
	}
	c.Posts = kept
}

// Busy reports whether the given operation is in flight for the entity.
func (c *PostListController) Busy(op Op, id string) bool {
	return c.busy.has(op, id)
}

// Confirm returns the current confirmation-dialog state.
func (c *PostListController) Confirm() Confirm {
	return c.confirm
}

// DeleteTarget returns the staged delete target, "" when nothing is staged.
func (c *PostListController) DeleteTarget() string {
	return c.deleteTarget
}
