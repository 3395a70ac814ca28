package types

import "github.com/entrhq/mymaps/pkg/maps"

// ToastMsg is a message type for showing toast notifications
type ToastMsg struct {
	Message string
	Details string
	Icon    string
	IsError bool
}

// ToastExpiredMsg clears a toast once its time is up. Seq ties it to the
// toast that scheduled it so a newer toast is not cleared early.
type ToastExpiredMsg struct {
	Seq int
}

// TitleSubmittedMsg is sent by the title dialog with a title that passed
// validation. It starts the creation request.
type TitleSubmittedMsg struct {
	Title string
}

// MapCreatedMsg answers a creation request with the finished map.
type MapCreatedMsg struct {
	Map maps.Map
}

// CreationCancelledMsg answers a creation request the user abandoned.
type CreationCancelledMsg struct {
	Title string
}
