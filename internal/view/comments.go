package view

import (
	"context"
	"strings"

	"github.com/rexlx/scribble/internal"
	"github.com/rexlx/scribble/internal/logging"
)

// CommentAPI is the slice of the comments client the controller needs.
type CommentAPI interface {
	List(ctx context.Context, postID string) ([]internal.Comment, error)
	Add(ctx context.Context, postID, content string) (*internal.Comment, error)
	Update(ctx context.Context, postID, commentID, content string) (*internal.Comment, error)
	Delete(ctx context.Context, postID, commentID string) error
}

// CommentListController drives one post's comment section: expand/collapse,
// add, per-comment edit buffers, and staged deletion. Mutations patch the
// in-memory list from their own response; a full fetch happens only when
// the section is expanded.
type CommentListController struct {
	api    CommentAPI
	postID string
	log    *logging.Logger

	// OnChange fires after every state transition.
	OnChange func()
	// OnUpdate reports the reconciled list and its count to the parent
	// screen, which owns the post's comment counter.
	OnUpdate func(comments []internal.Comment, count int)

	Comments    []internal.Comment
	Expanded    bool
	State       ListState
	Err         string
	CommentText string

	busy         busySet
	editing      map[string]bool
	drafts       map[string]string
	confirm      Confirm
	deleteTarget string
}

func NewCommentListController(api CommentAPI, postID string, log *logging.Logger) *CommentListController {
	if log == nil {
		log = logging.Discard()
	}
	return &CommentListController{
		api:     api,
		postID:  postID,
		log:     log,
		busy:    make(busySet),
		editing: make(map[string]bool),
		drafts:  make(map[string]string),
	}
}

func (c *CommentListController) changed() {
	if c.OnChange != nil {
		c.OnChange()
	}
}

func (c *CommentListController) updated() {
	if c.OnUpdate != nil {
		c.OnUpdate(c.Comments, len(c.Comments))
	}
}

// Toggle flips the expanded state; expanding triggers a fetch.
func (c *CommentListController) Toggle(ctx context.Context) {
	c.Expanded = !c.Expanded
	c.changed()
	if c.Expanded {
		c.Fetch(ctx)
	}
}

// Fetch replaces the local list with the server's current one.
func (c *CommentListController) Fetch(ctx context.Context) {
	c.busy.set(OpFetch, "")
	c.State = StateLoading
	c.Err = ""
	c.changed()
	defer func() {
		c.busy.clear(OpFetch, "")
		c.changed()
	}()

	comments, err := c.api.List(ctx, c.postID)
	if err != nil {
		c.log.Error("fetching comments for post %s: %v", c.postID, err)
		c.State = StateIdle
		c.Err = err.Error()
		return
	}
	c.Comments = comments
	c.State = StateReady
	c.updated()
}

// Add posts the composer text as a new comment. Whitespace-only text never
// issues a request and never sets the add busy flag.
func (c *CommentListController) Add(ctx context.Context) {
	if strings.TrimSpace(c.CommentText) == "" {
		return
	}
	c.Err = ""
	c.busy.set(OpAdd, "")
	c.changed()
	defer func() {
		c.busy.clear(OpAdd, "")
		c.changed()
	}()

	comment, err := c.api.Add(ctx, c.postID, c.CommentText)
	if err != nil {
		c.log.Error("adding comment to post %s: %v", c.postID, err)
		c.Err = err.Error()
		return
	}
	c.Comments = append(c.Comments, *comment)
	c.CommentText = ""
	c.updated()
}

// BeginEdit seeds the buffer with the comment's current content.
func (c *CommentListController) BeginEdit(comment internal.Comment) {
	c.drafts[comment.ID] = comment.Content
	c.editing[comment.ID] = true
	c.changed()
}

func (c *CommentListController) SetDraft(commentID, content string) {
	c.drafts[commentID] = content
}

func (c *CommentListController) Draft(commentID string) string {
	return c.drafts[commentID]
}

func (c *CommentListController) Editing(commentID string) bool {
	return c.editing[commentID]
}

// CommitEdit sends the buffered edit and replaces the list entry with the
// server's copy. A whitespace-only buffer is a no-op.
func (c *CommentListController) CommitEdit(ctx context.Context, commentID string) {
	content := c.drafts[commentID]
	if strings.TrimSpace(content) == "" {
		return
	}
	c.Err = ""
	c.busy.set(OpEdit, commentID)
	c.changed()
	defer func() {
		c.busy.clear(OpEdit, commentID)
		c.changed()
	}()

	updated, err := c.api.Update(ctx, c.postID, commentID, content)
	if err != nil {
		c.log.Error("editing comment %s: %v", commentID, err)
		c.Err = err.Error()
		return
	}
	for i := range c.Comments {
		if c.Comments[i].ID == commentID {
			c.Comments[i] = *updated
			break
		}
	}
	c.editing[commentID] = false
	delete(c.drafts, commentID)
	c.updated()
}

// CancelEdit discards the buffer without sending anything. Re-opening the
// editor shows the last-fetched server content again.
func (c *CommentListController) CancelEdit(commentID string) {
	c.editing[commentID] = false
	delete(c.drafts, commentID)
	c.changed()
}

// DeleteClick stages a deletion behind the confirmation dialog. The
// confirmed action carries its own context; the staging click sends
// nothing.
func (c *CommentListController) DeleteClick(commentID string) {
	c.deleteTarget = commentID
	c.confirm = Confirm{
		Open:        true,
		Title:       "Delete Comment",
		Message:     "Are you sure you want to delete this comment? This action cannot be undone.",
		ConfirmText: "Delete",
		CancelText:  "Cancel",
		OnConfirm:   func() { c.confirmDelete(context.Background()) },
		OnClose:     func() { c.cancelDelete() },
	}
	c.changed()
}

func (c *CommentListController) cancelDelete() {
	c.deleteTarget = ""
	c.confirm = Confirm{}
	c.changed()
}

func (c *CommentListController) confirmDelete(ctx context.Context) {
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

	if err := c.api.Delete(ctx, c.postID, target); err != nil {
		c.log.Error("deleting comment %s: %v", target, err)
		c.Err = err.Error()
		return
	}
	kept := c.Comments[:0]
	for _, cm := range c.Comments {
		if cm.ID != target {
			kept = append(kept, cm)
		}
	}
	c.Comments = kept
	c.updated()
}

func (c *CommentListController) Busy(op Op, id string) bool {
	return c.busy.has(op, id)
}

func (c *CommentListController) Confirm() Confirm {
	return c.confirm
}

func (c *CommentListController) DeleteTarget() string {
	return c.deleteTarget
}
