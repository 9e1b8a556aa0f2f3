package core

type Mode string

const (
	NormalMode  Mode = "normal"
	InsertMode  Mode = "insert"
	ReplaceMode Mode = "replace"
	CommandMode Mode = "command"
	SearchMode  Mode = "search"
)

// Label is the mode indicator frontends may show next to the status.
func (m Mode) Label() string {
	switch m {
	case InsertMode:
		return "-- INSERT --"
	case ReplaceMode:
		return "-- REPLACE --"
	}
	return ""
}

// maxCount is the largest count a command runs with. Longer digit strings
// and products of counts saturate here.
const maxCount = 999999999

// PendingCommand is the part of a normal mode command typed so far.
type PendingCommand struct {
	Count    int  // count typed before the command, 0 when none
	Operator rune // 'd' or 'c' awaiting a motion
	OpCount  int  // count typed after the operator
	Prefix   rune // first key of a two key command: g Z r f t F T
}

func (p PendingCommand) Active() bool {
	return p.Count > 0 || p.Operator != 0 || p.Prefix != 0
}

// total multiplies both counts, so 2d3w deletes six words. It is 0 when
// neither count was typed.
func (p PendingCommand) total() int {
	switch {
	case p.Count == 0 && p.OpCount == 0:
		return 0
	case p.Count == 0:
		return p.OpCount
	case p.OpCount == 0:
		return p.Count
	case p.Count > maxCount/p.OpCount:
		return maxCount
	}
	return p.Count * p.OpCount
}

// countingDigit reports whether r extends a count rather than being the '0'
// motion or the argument of a prefix.
func (p PendingCommand) countingDigit(r rune) bool {
	if p.Prefix != 0 || r < '0' || r > '9' {
		return false
	}
	if r != '0' {
		return true
	}
	if p.Operator != 0 {
		return p.OpCount > 0
	}
	return p.Count > 0
}

func (p *PendingCommand) addDigit(r rune) {
	d := int(r - '0')
	if p.Operator != 0 {
		p.OpCount = min(p.OpCount*10+d, maxCount)
	} else {
		p.Count = min(p.Count*10+d, maxCount)
	}
}

func (p *PendingCommand) reset() { *p = PendingCommand{} }

// RepeatableCommand is the last change '.' replays: the keys that formed it
// without their counts, and the count they ran with.
type RepeatableCommand struct {
	Count int
	Keys  []KeyEvent
}
