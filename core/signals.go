package core

import "log"

type Signal any

type DeleteSignal struct {
	totalLines int
}

func (d DeleteSignal) Value() int {
	return d.totalLines
}

type UndoSignal struct{}

func (u UndoSignal) Value() {}

type RedoSignal struct{}

func (r RedoSignal) Value() {}

type MessageSignal struct {
	value string
}

func (m MessageSignal) Value() string {
	return m.value
}

type SaveSignal struct {
	path string
	size int
}

func (s SaveSignal) Value() (path string, size int) {
	return s.path, s.size
}

type QuitSignal struct{}

// BellSignal asks the frontend to ring or flash.
type BellSignal struct{}

type ErrorSignal Error

func (e ErrorSignal) Value() (id ErrorId, err error) {
	id = e.id
	err = e.err

	return id, err
}

func (e *Editor) DispatchSignal(signal Signal) {
	select {
	case e.updateSignal <- signal:
	default:
		log.Printf("Channel is full, dropping %T", signal)
	}
}
