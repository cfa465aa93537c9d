package factory

import (
	"time"

	"github.com/dstanton/trivianight/internal/dependencies/mocks"
	"github.com/dstanton/trivianight/internal/storage/memory"
	"github.com/dstanton/trivianight/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock    *mocks.MockClock
	MockRandom   *mocks.MockRandom
	MockProvider *mocks.MockQuestionProvider
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockProvider := mocks.NewMockQuestionProvider()

	app := newWithDependencies(store, mockProvider, mockClock, mockRandom, testutil.NopLogger())

	return &TestApp{
		App:          app,
		MockClock:    mockClock,
		MockRandom:   mockRandom,
		MockProvider: mockProvider,
	}
}
