package testutil

import (
	"strings"

	tele "gopkg.in/telebot.v3"
)

// FakeContext is a telebot context that records what handlers send.
// Methods it does not override panic, so tests only exercise the ones below.
type FakeContext struct {
	tele.Context

	User    *tele.User
	Msg     string
	Cb      *tele.Callback
	Sent    []string
	Markups []*tele.ReplyMarkup
	Edited  []string
	Answers []*tele.CallbackResponse
	EditErr error
	values  map[string]interface{}
}

// NewFakeMessage creates a context for a text message from senderID
func NewFakeMessage(senderID int64, text string) *FakeContext {
	return &FakeContext{User: &tele.User{ID: senderID}, Msg: text}
}

// NewFakeCallback creates a context for an inline button press from senderID
func NewFakeCallback(senderID int64, unique, data string) *FakeContext {
	return &FakeContext{
		User: &tele.User{ID: senderID},
		Cb:   &tele.Callback{ID: "cb", Unique: unique, Data: data},
	}
}

func (f *FakeContext) Sender() *tele.User { return f.User }

func (f *FakeContext) Text() string { return f.Msg }

func (f *FakeContext) Message() *tele.Message { return nil }

func (f *FakeContext) Callback() *tele.Callback { return f.Cb }

func (f *FakeContext) Data() string {
	if f.Cb != nil {
		return f.Cb.Data
	}
	return ""
}

func (f *FakeContext) Args() []string {
	fields := strings.Fields(f.Msg)
	if len(fields) > 0 && strings.HasPrefix(fields[0], "/") {
		fields = fields[1:]
	}
	return fields
}

func (f *FakeContext) Send(what interface{}, opts ...interface{}) error {
	text, _ := what.(string)
	f.Sent = append(f.Sent, text)
	f.Markups = append(f.Markups, markupOf(opts))
	return nil
}

func (f *FakeContext) Edit(what interface{}, opts ...interface{}) error {
	if f.EditErr != nil {
		return f.EditErr
	}
	text, _ := what.(string)
	f.Edited = append(f.Edited, text)
	f.Markups = append(f.Markups, markupOf(opts))
	return nil
}

func (f *FakeContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 {
		f.Answers = append(f.Answers, &tele.CallbackResponse{})
		return nil
	}
	f.Answers = append(f.Answers, resp...)
	return nil
}

func (f *FakeContext) Get(key string) interface{} { return f.values[key] }

func (f *FakeContext) Set(key string, val interface{}) {
	if f.values == nil {
		f.values = make(map[string]interface{})
	}
	f.values[key] = val
}

// LastSent returns the most recently sent text
func (f *FakeContext) LastSent() string {
	if len(f.Sent) == 0 {
		return ""
	}
	return f.Sent[len(f.Sent)-1]
}

func markupOf(opts []interface{}) *tele.ReplyMarkup {
	for _, opt := range opts {
		if m, ok := opt.(*tele.ReplyMarkup); ok {
			return m
		}
	}
	return nil
}
