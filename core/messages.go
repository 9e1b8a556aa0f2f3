package core

import "log"

var (
	NewFileMessage    = "[New File]"
	WrapBottomMessage = "search hit BOTTOM, continuing at TOP"
	WrapTopMessage    = "search hit TOP, continuing at BOTTOM"
)

// DispatchMessage sets the status message and tells the frontend about it.
func (e *Editor) DispatchMessage(message string) {
	e.message = message
	select {
	case e.updateSignal <- MessageSignal{value: message}:
	default:
		log.Println("Channel is full, unable to send message signal")
	}
}
