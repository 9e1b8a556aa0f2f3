package core

import (
	"errors"
	"log"
)

var (
	ErrEndOfBuffer       = errors.New("end of buffer")
	ErrStartOfBuffer     = errors.New("start of buffer")
	ErrEndOfLine         = errors.New("end of line")
	ErrStartOfLine       = errors.New("start of line")
	ErrInvalidCommand    = errors.New("invalid command")
	ErrInvalidMotion     = errors.New("invalid motion")
	ErrAddressOutOfRange = errors.New("address out of range")
	ErrPatternNotFound   = errors.New("pattern not found")
	ErrNoPreviousPattern = errors.New("no previous regular expression")
	ErrWriteFailure      = errors.New("write failed")
	ErrReadFailure       = errors.New("read failed")
	ErrNoFileName        = errors.New("no file name")
	ErrUnsavedChanges    = errors.New("no write since last change (use ! to override)")
	ErrNothingToUndo     = errors.New("already at oldest change")
	ErrNothingToRedo     = errors.New("already at newest change")
	ErrNoPreviousCommand = errors.New("no previous command")
)

type ErrorId int

const (
	ErrEndOfBufferId ErrorId = iota
	ErrStartOfBufferId
	ErrEndOfLineId
	ErrStartOfLineId
	ErrInvalidCommandId
	ErrInvalidMotionId
	ErrAddressOutOfRangeId
	ErrPatternNotFoundId
	ErrWriteFailureId
	ErrReadFailureId
	ErrUnsavedChangesId
	ErrUndoFailedId
	ErrRedoFailedId
	ErrRepeatFailedId
)

// Error pairs a wrapped cause with the id frontends switch on.
type Error struct {
	id  ErrorId
	err error
}

func (e *Error) Error() string { return e.err.Error() }

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Id() ErrorId { return e.id }

// boundary errors only ring the bell; they never replace the status text.
func isBoundary(err error) bool {
	return errors.Is(err, ErrEndOfBuffer) ||
		errors.Is(err, ErrStartOfBuffer) ||
		errors.Is(err, ErrEndOfLine) ||
		errors.Is(err, ErrStartOfLine)
}

// errorId maps a sentinel to its id. Unknown causes are reported as invalid commands.
func errorId(err error) ErrorId {
	var e *Error
	if errors.As(err, &e) {
		return e.id
	}

	switch {
	case errors.Is(err, ErrEndOfBuffer):
		return ErrEndOfBufferId
	case errors.Is(err, ErrStartOfBuffer):
		return ErrStartOfBufferId
	case errors.Is(err, ErrEndOfLine):
		return ErrEndOfLineId
	case errors.Is(err, ErrStartOfLine):
		return ErrStartOfLineId
	case errors.Is(err, ErrInvalidMotion):
		return ErrInvalidMotionId
	case errors.Is(err, ErrAddressOutOfRange):
		return ErrAddressOutOfRangeId
	case errors.Is(err, ErrPatternNotFound), errors.Is(err, ErrNoPreviousPattern):
		return ErrPatternNotFoundId
	case errors.Is(err, ErrWriteFailure), errors.Is(err, ErrNoFileName):
		return ErrWriteFailureId
	case errors.Is(err, ErrReadFailure):
		return ErrReadFailureId
	case errors.Is(err, ErrUnsavedChanges):
		return ErrUnsavedChangesId
	case errors.Is(err, ErrNothingToUndo):
		return ErrUndoFailedId
	case errors.Is(err, ErrNothingToRedo):
		return ErrRedoFailedId
	case errors.Is(err, ErrNoPreviousCommand):
		return ErrRepeatFailedId
	}

	return ErrInvalidCommandId
}

func (e *Editor) DispatchError(id ErrorId, err error) {
	select {
	case e.updateSignal <- ErrorSignal{id, err}:
	default:
		log.Println("Channel is full, unable to send error signal")
	}
}
