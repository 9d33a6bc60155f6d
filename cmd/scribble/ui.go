package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/rexlx/scribble/internal"
	"github.com/rexlx/scribble/internal/view"
)

var window fyne.Window

// MakeAuthScreen builds the login/register screen. onSuccess fires after a
// session has been persisted.
func MakeAuthScreen(env *appEnv, onSuccess func()) fyne.CanvasObject {
	tabs := container.NewAppTabs(
		container.NewTabItem("Login", makeLoginForm(env, onSuccess)),
		container.NewTabItem("Register", makeRegisterForm(env, onSuccess)),
	)
	return container.NewCenter(tabs)
}

func makeLoginForm(env *appEnv, onSuccess func()) fyne.CanvasObject {
	emailEntry := widget.NewEntry()
	emailEntry.SetPlaceHolder("Email")

	passEntry := widget.NewPasswordEntry()
	passEntry.SetPlaceHolder("Password")

	errorLabel := widget.NewLabel("")
	errorLabel.Hide()

	loginBtn := widget.NewButton("Login", func() {
		ctx, cancel := env.ctx()
		defer cancel()
		if _, err := env.auth.Login(ctx, emailEntry.Text, passEntry.Text); err != nil {
			errorLabel.SetText(err.Error())
			errorLabel.Show()
			return
		}
		onSuccess()
	})
	loginBtn.Importance = widget.HighImportance

	return container.NewVBox(
		widget.NewLabelWithStyle("scribble", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewSeparator(),
		emailEntry,
		passEntry,
		errorLabel,
		loginBtn,
	)
}

func makeRegisterForm(env *appEnv, onSuccess func()) fyne.CanvasObject {
	emailEntry := widget.NewEntry()
	emailEntry.SetPlaceHolder("Email")

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Name (optional)")

	passEntry := widget.NewPasswordEntry()
	passEntry.SetPlaceHolder("Password")

	errorLabel := widget.NewLabel("")
	errorLabel.Hide()

	registerBtn := widget.NewButton("Create Account", func() {
		ctx, cancel := env.ctx()
		defer cancel()
		if _, err := env.auth.Register(ctx, emailEntry.Text, passEntry.Text, nameEntry.Text); err != nil {
			errorLabel.SetText(err.Error())
			errorLabel.Show()
			return
		}
		onSuccess()
	})
	registerBtn.Importance = widget.HighImportance

	return container.NewVBox(
		widget.NewLabelWithStyle("scribble", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewSeparator(),
		emailEntry,
		nameEntry,
		passEntry,
		errorLabel,
		registerBtn,
	)
}

// MakeFeedScreen builds the post feed: toolbar, error banner, post cards
// with expandable comment sections, and the delete confirmation dialog.
func MakeFeedScreen(env *appEnv, onLogout func()) fyne.CanvasObject {
	ctrl := view.NewPostListController(env.posts, env.log)
	commentCtrls := make(map[string]*view.CommentListController)
	user := env.auth.CurrentUser()

	feedBox := container.NewVBox()
	scroll := container.NewVScroll(feedBox)

	errorLabel := widget.NewLabel("")
	errorLabel.Hide()

	var render func()

	confirmVisible := false
	showConfirm := func(conf view.Confirm) {
		if !conf.Open || confirmVisible {
			return
		}
		confirmVisible = true
		d := dialog.NewCustomConfirm(conf.Title, conf.ConfirmText, conf.CancelText,
			widget.NewLabel(conf.Message), func(ok bool) {
				confirmVisible = false
				if ok {
					conf.OnConfirm()
				} else {
					conf.OnClose()
				}
			}, window)
		d.Show()
	}

	commentCtrl := func(postID string) *view.CommentListController {
		if cc, ok := commentCtrls[postID]; ok {
			return cc
		}
		cc := view.NewCommentListController(env.comments, postID, env.log)
		cc.OnChange = func() { render() }
		// The feed owns each post's comment counter; the section reports
		// its reconciled count back up.
		cc.OnUpdate = func(_ []internal.Comment, count int) {
			for i := range ctrl.Posts {
				if ctrl.Posts[i].ID == postID {
					ctrl.Posts[i].CommentCount = count
					break
				}
			}
		}
		commentCtrls[postID] = cc
		return cc
	}

	render = func() {
		if ctrl.Err != "" {
			errorLabel.SetText(ctrl.Err)
			errorLabel.Show()
		} else {
			errorLabel.Hide()
		}

		feedBox.Objects = nil
		switch {
		case ctrl.State == view.StateLoading:
			feedBox.Add(widget.NewLabel("Loading posts..."))
		case len(ctrl.Posts) == 0:
			feedBox.Add(widget.NewLabel("No posts yet. Be the first to create one!"))
		default:
			for _, post := range ctrl.Posts {
				feedBox.Add(makePostCard(env, ctrl, commentCtrl(post.ID), user, post))
				feedBox.Add(widget.NewSeparator())
			}
		}
		feedBox.Refresh()

		showConfirm(ctrl.Confirm())
		for _, cc := range commentCtrls {
			showConfirm(cc.Confirm())
		}
	}
	ctrl.OnChange = render

	newPostBtn := widget.NewButton("New Post", func() {
		showComposeDialog(env, ctrl)
	})
	refreshBtn := widget.NewButton("Refresh", func() {
		ctx, cancel := env.ctx()
		defer cancel()
		ctrl.Fetch(ctx)
	})
	logoutBtn := widget.NewButton("Logout", func() {
		env.auth.Logout()
		onLogout()
	})

	who := ""
	if user != nil {
		who = user.Email
	}
	topBar := container.NewBorder(nil, nil,
		widget.NewLabelWithStyle("Recent Posts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel(who), newPostBtn, refreshBtn, logoutBtn),
	)

	content := container.NewBorder(
		container.NewVBox(topBar, errorLabel, widget.NewSeparator()),
		nil, nil, nil,
		container.NewPadded(scroll),
	)

	ctx, cancel := env.ctx()
	defer cancel()
	ctrl.Fetch(ctx)

	return content
}

func showComposeDialog(env *appEnv, ctrl *view.PostListController) {
	titleEntry := widget.NewEntry()
	titleEntry.SetPlaceHolder("Enter post title")
	contentEntry := widget.NewMultiLineEntry()
	contentEntry.SetPlaceHolder("Write your post content")
	contentEntry.Wrapping = fyne.TextWrapWord

	items := []*widget.FormItem{
		widget.NewFormItem("Title", titleEntry),
		widget.NewFormItem("Content", contentEntry),
	}
	dialog.ShowForm("New Post", "Publish", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		ctx, cancel := env.ctx()
		defer cancel()
		ctrl.Create(ctx, titleEntry.Text, contentEntry.Text)
	}, window)
}

// makePostCard renders one post, switching between read and edit views.
// Edit and delete affordances appear only for the post's author; that is a
// display hint, the server enforces ownership.
func makePostCard(env *appEnv, ctrl *view.PostListController, cc *view.CommentListController, user *internal.User, post internal.Post) fyne.CanvasObject {
	if ctrl.Editing(post.ID) {
		return makePostEditor(env, ctrl, post)
	}

	title := widget.NewLabelWithStyle(post.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	body := widget.NewLabel(post.Content)
	body.Wrapping = fyne.TextWrapWord

	byline := post.CreatedAt.Format("Jan 2, 2006")
	if post.Author != nil {
		byline = post.Author.Email + " · " + byline
	}
	meta := widget.NewLabel(byline)

	var controls fyne.CanvasObject = widget.NewLabel("")
	if user != nil && user.ID == post.AuthorID {
		editBtn := widget.NewButton("Edit", func() {
			ctrl.BeginEdit(post)
		})
		deleteBtn := widget.NewButton("Delete", func() {
			ctrl.DeleteClick(post)
		})
		if ctrl.Busy(view.OpDelete, post.ID) {
			deleteBtn.Disable()
		}
		controls = container.NewHBox(editBtn, deleteBtn)
	}

	return container.NewVBox(
		container.NewBorder(nil, nil, title, controls),
		body,
		meta,
		makeCommentSection(env, cc, user, post.CommentCount),
	)
}

func makePostEditor(env *appEnv, ctrl *view.PostListController, post internal.Post) fyne.CanvasObject {
	draft := ctrl.Draft(post.ID)

	titleEntry := widget.NewEntry()
	titleEntry.SetText(draft.Title)
	contentEntry := widget.NewMultiLineEntry()
	contentEntry.SetText(draft.Content)
	contentEntry.Wrapping = fyne.TextWrapWord

	cancelBtn := widget.NewButton("Cancel", func() {
		ctrl.CancelEdit(post.ID)
	})
	saveBtn := widget.NewButton("Save", func() {
		ctrl.SetDraft(post.ID, view.PostDraft{Title: titleEntry.Text, Content: contentEntry.Text})
		ctx, cancel := env.ctx()
		defer cancel()
		ctrl.CommitEdit(ctx, post.ID)
	})
	saveBtn.Importance = widget.HighImportance
	if ctrl.Busy(view.OpEdit, post.ID) {
		saveBtn.Disable()
	}

	return container.NewVBox(
		titleEntry,
		contentEntry,
		container.NewHBox(cancelBtn, saveBtn),
	)
}

func makeCommentSection(env *appEnv, cc *view.CommentListController, user *internal.User, count int) fyne.CanvasObject {
	label := "Show Comments"
	if cc.Expanded {
		label = "Hide Comments"
		count = len(cc.Comments)
	}
	toggleBtn := widget.NewButton(fmt.Sprintf("%s (%d)", label, count), func() {
		ctx, cancel := env.ctx()
		defer cancel()
		cc.Toggle(ctx)
	})

	if !cc.Expanded {
		return container.NewVBox(toggleBtn)
	}

	section := container.NewVBox(toggleBtn)

	if cc.Err != "" {
		section.Add(widget.NewLabel(cc.Err))
	}

	composer := NewSubmitEntry()
	composer.SetPlaceHolder("Write a comment...")
	composer.SetText(cc.CommentText)
	composer.OnChanged = func(text string) {
		cc.CommentText = text
	}
	postBtn := widget.NewButton("Post Comment", func() {
		ctx, cancel := env.ctx()
		defer cancel()
		cc.Add(ctx)
	})
	composer.OnSubmit = func(string) {
		ctx, cancel := env.ctx()
		defer cancel()
		cc.Add(ctx)
	}
	if cc.Busy(view.OpAdd, "") {
		postBtn.Disable()
	}
	section.Add(container.NewBorder(nil, nil, nil, postBtn, composer))

	switch {
	case cc.State == view.StateLoading:
		section.Add(widget.NewLabel("Loading comments..."))
	case len(cc.Comments) == 0:
		section.Add(widget.NewLabel("No comments yet. Be the first to comment!"))
	default:
		for _, comment := range cc.Comments {
			section.Add(makeCommentRow(env, cc, user, comment))
		}
	}
	return section
}

func makeCommentRow(env *appEnv, cc *view.CommentListController, user *internal.User, comment internal.Comment) fyne.CanvasObject {
	if cc.Editing(comment.ID) {
		entry := widget.NewMultiLineEntry()
		entry.SetText(cc.Draft(comment.ID))
		entry.Wrapping = fyne.TextWrapWord

		cancelBtn := widget.NewButton("Cancel", func() {
			cc.CancelEdit(comment.ID)
		})
		saveBtn := widget.NewButton("Save", func() {
			cc.SetDraft(comment.ID, entry.Text)
			ctx, cancel := env.ctx()
			defer cancel()
			cc.CommitEdit(ctx, comment.ID)
		})
		if cc.Busy(view.OpEdit, comment.ID) {
			saveBtn.Disable()
		}
		return container.NewVBox(entry, container.NewHBox(cancelBtn, saveBtn))
	}

	body := widget.NewLabel(comment.Content)
	body.Wrapping = fyne.TextWrapWord

	who := "Anonymous"
	if comment.Author != nil {
		who = comment.Author.Email
	}
	meta := widget.NewLabel(who + " · " + comment.CreatedAt.Format("Jan 2, 2006"))

	var controls fyne.CanvasObject = widget.NewLabel("")
	if user != nil && user.ID == comment.AuthorID {
		editBtn := widget.NewButton("Edit", func() {
			cc.BeginEdit(comment)
		})
		deleteBtn := widget.NewButton("Delete", func() {
			cc.DeleteClick(comment.ID)
		})
		if cc.Busy(view.OpDelete, comment.ID) {
			deleteBtn.Disable()
		}
		controls = container.NewHBox(editBtn, deleteBtn)
	}

	return container.NewVBox(body, container.NewBorder(nil, nil, meta, controls))
}
