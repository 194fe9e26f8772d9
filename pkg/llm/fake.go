package llm

import "context"

// FakeClient is a scripted Client for tests. Responses are returned in
// order; the last one repeats once the script runs out. Every prompt is
// recorded so tests can inspect what was sent.
type FakeClient struct {
	Responses []string
	Err       error

	Prompts []string
}

func (f *FakeClient) Generate(ctx context.Context, prompt string) (string, error) {
	f.Prompts = append(f.Prompts, prompt)
	if f.Err != nil {
		return "", f.Err
	}
	if len(f.Responses) == 0 {
		return "", ErrEmptyResponse
	}
	idx := len(f.Prompts) - 1
	if idx >= len(f.Responses) {
		idx = len(f.Responses) - 1
	}
	return f.Responses[idx], nil
}
