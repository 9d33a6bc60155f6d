package view

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/rexlx/scribble/internal"
	"github.com/rexlx/scribble/internal/api"
)

type fakePostAPI struct {
	listFn   func() ([]internal.Post, error)
	createFn func(title, content string) (*internal.Post, error)
	updateFn func(id, title, content string) (*internal.Post, error)
	deleteFn func(id string) error

	createCalls int
	updateCalls int
	deleteCalls int
}

func (f *fakePostAPI) List(ctx context.Context) ([]internal.Post, error) {
	return f.listFn()
}

func (f *fakePostAPI) Create(ctx context.Context, title, content string) (*internal.Post, error) {
	f.createCalls++
	return f.createFn(title, content)
}

func (f *fakePostAPI) Update(ctx context.Context, id, title, content string) (*internal.Post, error) {
	f.updateCalls++
	return f.updateFn(id, title, content)
}

func (f *fakePostAPI) Delete(ctx context.Context, id string) error {
	f.deleteCalls++
	return f.deleteFn(id)
}

func twoPosts() []internal.Post {
	return []internal.Post{
		{ID: "p1", Title: "First", Content: "one", AuthorID: "u1"},
		{ID: "p2", Title: "Second", Content: "two", AuthorID: "u2"},
	}
}

func TestFetchReplacesList(t *testing.T) {
	fake := &fakePostAPI{listFn: func() ([]internal.Post, error) { return twoPosts(), nil }}
	ctrl := NewPostListController(fake, nil)
	ctrl.Posts = []internal.Post{{ID: "stale"}}

	ctrl.Fetch(context.Background())
	if ctrl.State != StateReady {
		t.Fatalf("state = %v", ctrl.State)
	}
	if len(ctrl.Posts) != 2 || ctrl.Posts[0].ID != "p1" {
		t.Fatalf("posts = %+v", ctrl.Posts)
	}
}

func TestFetchSetsAndClearsBusyFlag(t *testing.T) {
	var ctrl *PostListController
	fake := &fakePostAPI{listFn: func() ([]internal.Post, error) {
		if !ctrl.Busy(OpFetch, "") {
			t.Error("fetch should be busy while the request is in flight")
		}
		return twoPosts(), nil
	}}
	ctrl = NewPostListController(fake, nil)

	ctrl.Fetch(context.Background())
	if ctrl.Busy(OpFetch, "") {
		t.Fatal("fetch busy flag stuck")
	}
}

func TestCreateAppendsServerCopy(t *testing.T) {
	fake := &fakePostAPI{
		createFn: func(title, content string) (*internal.Post, error) {
			return &internal.Post{ID: "p3", Title: title, Content: content}, nil
		},
	}
	ctrl := NewPostListController(fake, nil)
	ctrl.Posts = twoPosts()

	ctrl.Create(context.Background(), "T", "C")
	if len(ctrl.Posts) != 3 || ctrl.Posts[2].Title != "T" || ctrl.Posts[2].Content != "C" {
		t.Fatalf("posts = %+v", ctrl.Posts)
	}
	if ctrl.Busy(OpAdd, "") {
		t.Fatal("add busy flag stuck")
	}
	if ctrl.Err != "" {
		t.Fatalf("err = %q", ctrl.Err)
	}
}

func TestCreateValidationNeverHitsNetwork(t *testing.T) {
	fake := &fakePostAPI{
		createFn: func(title, content string) (*internal.Post, error) {
			return &internal.Post{}, nil
		},
	}
	ctrl := NewPostListController(fake, nil)

	ctrl.Create(context.Background(), "   ", "body")
	if fake.createCalls != 0 {
		t.Fatal("request sent for empty title")
	}
	if ctrl.Busy(OpAdd, "") {
		t.Fatal("busy flag set on validation failure")
	}
	if ctrl.Err == "" {
		t.Fatal("expected validation error")
	}
}

func TestCreateFailureLeavesListUnchanged(t *testing.T) {
	fake := &fakePostAPI{
		createFn: func(title, content string) (*internal.Post, error) {
			return nil, &api.Error{Message: "boom"}
		},
	}
	ctrl := NewPostListController(fake, nil)
	ctrl.Posts = twoPosts()

	ctrl.Create(context.Background(), "T", "C")
	if len(ctrl.Posts) != 2 {
		t.Fatalf("posts = %+v", ctrl.Posts)
	}
	if ctrl.Err != "boom" {
		t.Fatalf("err = %q", ctrl.Err)
	}
	if ctrl.Busy(OpAdd, "") {
		t.Fatal("busy flag stuck after failure")
	}
}

func TestCommitEditPatchesEntry(t *testing.T) {
	fake := &fakePostAPI{
		updateFn: func(id, title, content string) (*internal.Post, error) {
			return &internal.Post{ID: id, Title: title, Content: content}, nil
		},
	}
	ctrl := NewPostListController(fake, nil)
	ctrl.Posts = twoPosts()

	ctrl.BeginEdit(ctrl.Posts[0])
	if !ctrl.Editing("p1") {
		t.Fatal("expected editing flag")
	}
	if ctrl.Editing("p2") {
		t.Fatal("other items must be unaffected")
	}
	ctrl.SetDraft("p1", PostDraft{Title: "New", Content: "body"})
	ctrl.CommitEdit(context.Background(), "p1")

	if ctrl.Posts[0].Title != "New" {
		t.Fatalf("posts[0] = %+v", ctrl.Posts[0])
	}
	if ctrl.Editing("p1") {
		t.Fatal("editing flag should clear on success")
	}
	if ctrl.Busy(OpEdit, "p1") {
		t.Fatal("busy flag stuck")
	}
}

func TestCommitEditEmptyBufferIsNoop(t *testing.T) {
	fake := &fakePostAPI{
		updateFn: func(id, title, content string) (*internal.Post, error) {
			return &internal.Post{}, nil
		},
	}
	ctrl := NewPostListController(fake, nil)
	ctrl.Posts = twoPosts()
	ctrl.BeginEdit(ctrl.Posts[0])
	ctrl.SetDraft("p1", PostDraft{Title: "  ", Content: ""})

	ctrl.CommitEdit(context.Background(), "p1")
	if fake.updateCalls != 0 {
		t.Fatal("request sent for empty buffer")
	}
}

func TestCancelEditDiscardsDraft(t *testing.T) {
	ctrl := NewPostListController(&fakePostAPI{}, nil)
	ctrl.Posts = twoPosts()

	ctrl.BeginEdit(ctrl.Posts[0])
	ctrl.SetDraft("p1", PostDraft{Title: "draft title", Content: "draft body"})
	ctrl.CancelEdit("p1")
	if ctrl.Editing("p1") {
		t.Fatal("editing flag should clear")
	}

	// re-opening shows the last-fetched server content, not the draft
	ctrl.BeginEdit(ctrl.Posts[0])
	if got := ctrl.Draft("p1"); got.Title != "First" || got.Content != "one" {
		t.Fatalf("draft = %+v", got)
	}
}

func TestDeleteClickStagesAndCancelSendsNothing(t *testing.T) {
	fake := &fakePostAPI{deleteFn: func(id string) error { return nil }}
	ctrl := NewPostListController(fake, nil)
	ctrl.Posts = twoPosts()

	ctrl.DeleteClick(ctrl.Posts[0])
	conf := ctrl.Confirm()
	if !conf.Open {
		t.Fatal("dialog should open")
	}
	if !strings.Contains(conf.Message, "First") {
		t.Fatalf("message %q should mention the post title", conf.Message)
	}
	if ctrl.DeleteTarget() != "p1" {
		t.Fatalf("target = %q", ctrl.DeleteTarget())
	}

	conf.OnClose()
	if fake.deleteCalls != 0 {
		t.Fatal("cancel must not send a request")
	}
	if ctrl.Confirm().Open {
		t.Fatal("dialog should close")
	}
	if ctrl.DeleteTarget() != "" {
		t.Fatal("staged target should reset")
	}
	if len(ctrl.Posts) != 2 {
		t.Fatal("post should still be present")
	}
}

func TestConfirmDeleteRemovesAndResets(t *testing.T) {
	fake := &fakePostAPI{deleteFn: func(id string) error { return nil }}
	ctrl := NewPostListController(fake, nil)
	ctrl.Posts = twoPosts()

	ctrl.DeleteClick(ctrl.Posts[0])
	ctrl.Confirm().OnConfirm()

	if fake.deleteCalls != 1 {
		t.Fatalf("delete calls = %d", fake.deleteCalls)
	}
	for _, p := range ctrl.Posts {
		if p.ID == "p1" {
			t.Fatal("p1 should be removed")
		}
	}
	if ctrl.DeleteTarget() != "" || ctrl.Confirm().Open {
		t.Fatal("staged delete state should reset")
	}
	if ctrl.Busy(OpDelete, "p1") {
		t.Fatal("busy flag stuck")
	}
}

func TestConfirmDeleteFailureKeepsListAndResets(t *testing.T) {
	fake := &fakePostAPI{
		deleteFn: func(id string) error {
			return &api.Error{Status: http.StatusUnauthorized, Message: "Unauthorized"}
		},
	}
	ctrl := NewPostListController(fake, nil)
	ctrl.Posts = twoPosts()

	ctrl.DeleteClick(ctrl.Posts[0])
	ctrl.Confirm().OnConfirm()

	if len(ctrl.Posts) != 2 {
		t.Fatal("failed delete must not remove the post")
	}
	if ctrl.Err != "Unauthorized" {
		t.Fatalf("err = %q", ctrl.Err)
	}
	// staged state is cleared unconditionally
	if ctrl.DeleteTarget() != "" || ctrl.Confirm().Open || ctrl.Busy(OpDelete, "p1") {
		t.Fatal("staged delete state should reset after failure")
	}
}

func TestFetchFailureSurfacesError(t *testing.T) {
	fake := &fakePostAPI{listFn: func() ([]internal.Post, error) {
		return nil, &api.Error{Message: "down"}
	}}
	ctrl := NewPostListController(fake, nil)

	ctrl.Fetch(context.Background())
	if ctrl.Err != "down" {
		t.Fatalf("err = %q", ctrl.Err)
	}
	if ctrl.State != StateIdle {
		t.Fatalf("state = %v", ctrl.State)
	}
}
