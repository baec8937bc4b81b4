package transcriber

import "context"

// Fake returns canned text (or a canned error) and records the paths it
// was asked to transcribe.
type Fake struct {
	Text  string
	Err   error
	Calls []string
}

func NewFake(text string, err error) *Fake {
	return &Fake{Text: text, Err: err}
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) Transcribe(_ context.Context, audioPath string) (string, error) {
	f.Calls = append(f.Calls, audioPath)
	if f.Err != nil {
		return "", f.Err
	}
	return f.Text, nil
}
