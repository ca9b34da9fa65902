package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ib-77/outcome/pkg/rop"
	"github.com/ib-77/outcome/pkg/rop/core"
	"github.com/ib-77/outcome/pkg/rop/fault"
)

// TestURLProcessing runs the title pipeline on URLs without fetching them.
func TestURLProcessing(t *testing.T) {
	t.Parallel()

	urls := []string{
		// valid by structure
		"https://www.example.com",
		"https://www.test.org",
		"https://www.google.com",
		"https://www.microsoft.com",
		"https://www.micros---oft.com",
		"https://www.mic--ros---oft.com",

		// invalid by structure
		"invalid-url",
		"ftp://invalid-protocol.com",
	}

	results := processURLs(urls)

	invalid := 0
	for _, res := range results {
		if res == "invalid" {
			invalid++
		}
	}

	assert.Equal(t, len(urls), len(results))
	assert.Equal(t, 2, invalid)
}

func processURLs(urls []string) []string {
	ctx := context.Background()

	return core.FromChanMany(ctx,
		Finally(ctx,
			Turnout(ctx,
				Turnout(ctx,
					Run(ctx,
						core.ToChanManyOutcomes[string, *fault.Fault](ctx, urls),
						Validate(validateURL), 2),
					Try(mockFetchTitle, fault.FromError), 2),
				Switch(titleLength), 2),
			func(_ context.Context, n int) string { return fmt.Sprintf("title length: %d", n) },
			func(context.Context, *fault.Fault) string { return "invalid" },
		),
	)
}

func mockFetchTitle(ctx context.Context, url string) (string, error) {
	if valid, _ := validateURL(ctx, url); valid {
		return "Mock Page Title for " + url, nil
	}
	return "", errors.New("invalid URL")
}

func validateURL(_ context.Context, url string) (bool, *fault.Fault) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return false, fault.New(fault.Validation, "URL must start with http:// or https://")
	}
	return true, nil
}

func titleLength(_ context.Context, title string) rop.Outcome[int, *fault.Fault] {
	return fault.Ok(len(title))
}
