package llm

import "context"

type fakeService struct {
	answer string
}

// NewFake answers every prompt with answer
func NewFake(answer string) IService {
	return &fakeService{
		answer: answer,
	}
}

func (svc *fakeService) Generate(_ context.Context, _ []Message, _ string, _ []byte) (string, error) {
	return svc.answer, nil
}
