package cmd

import (
	"context"

	"github.com/stretchr/testify/mock"

	"srcmap.dev/pkg/srcmap/internal/domain"
	m "srcmap.dev/pkg/srcmap/internal/model"
)

type mockWorkflow struct {
	mock.Mock
}

func newMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *mockWorkflow {
	wf := &mockWorkflow{}
	wf.Test(t)
	t.Cleanup(func() { wf.AssertExpectations(t) })

	return wf
}

func (w *mockWorkflow) Generate(ctx context.Context, args domain.GenerateArgs) (domain.State, error) {
	ret := w.Called(ctx, args)
	return ret.Get(0).(domain.State), ret.Error(1)
}

func (w *mockWorkflow) List(ctx context.Context, args domain.ListArgs) error {
	return w.Called(ctx, args).Error(0)
}

func (w *mockWorkflow) Verify(ctx context.Context, args domain.VerifyArgs) (m.Verification, error) {
	ret := w.Called(ctx, args)
	return ret.Get(0).(m.Verification), ret.Error(1)
}
