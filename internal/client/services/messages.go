package services

// Level classifies a user message.
type Level string

const (
	LevelOk      Level = "ok"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is the last outcome reported to the user.
type Message struct {
	Level Level
	Title string
	Text  string
}

// Messaging is implemented by session objects that report outcomes to the
// user instead of failing the session.
type Messaging interface {
	Message() (Message, bool)
	ClearMessage()
}

// Messenger keeps the most recent message. The zero value is ready to use.
type Messenger struct {
	msg *Message
}

func (m *Messenger) set(level Level, title, text string) {
	m.msg = &Message{Level: level, Title: title, Text: text}
}

func (m *Messenger) SetOk(title, text string)      { m.set(LevelOk, title, text) }
func (m *Messenger) SetInfo(title, text string)    { m.set(LevelInfo, title, text) }
func (m *Messenger) SetWarning(title, text string) { m.set(LevelWarning, title, text) }
func (m *Messenger) SetError(title, text string)   { m.set(LevelError, title, text) }

// Message returns the current message, if any.
func (m *Messenger) Message() (Message, bool) {
	if m.msg == nil {
		return Message{}, false
	}
	return *m.msg, true
}

func (m *Messenger) ClearMessage() { m.msg = nil }
