package view

// Confirm is the confirmation-dialog contract shared by the controllers. A
// modal is a pure function of these fields: OnConfirm performs the staged
// destructive action, OnClose discards it without sending anything.
type Confirm struct {
	Open        bool
	Title       string
	Message     string
	ConfirmText string
	CancelText  string
	OnConfirm   func()
	OnClose     func()
}
