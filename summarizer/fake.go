package summarizer

import "context"

// Call records one completion request seen by the fake.
type Call struct {
	System string
	User   string
	Model  string
}

// FakeCompleter replays canned responses in order and records every call.
type FakeCompleter struct {
	Responses []string
	Err       error
	Calls     []Call
}

func (f *FakeCompleter) Complete(_ context.Context, system, user, model string) (string, error) {
	f.Calls = append(f.Calls, Call{System: system, User: user, Model: model})
	if f.Err != nil {
		return "", f.Err
	}
	i := len(f.Calls) - 1
	if i < len(f.Responses) {
		return f.Responses[i], nil
	}
	return "summary", nil
}
