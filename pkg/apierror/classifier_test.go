package apierror

import (
	"context"
	"errors"
	"net"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyTimeout(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"deadline exceeded", context.DeadlineExceeded},
		{"canceled", context.Canceled},
		{"net timeout", timeoutErr{}},
		{"wrapped url timeout", &url.Error{Op: "Post", URL: "https://api", Err: timeoutErr{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.err, true)
			assert.Equal(t, timeoutMessage, c.ErrorMessage)
			assert.True(t, c.FallbackToDemo)
			assert.False(t, c.ShowUpgradePrompt)
		})
	}
}

func TestClassifyNetwork(t *testing.T) {
	err := &url.Error{Op: "Get", URL: "https://api", Err: errors.New("connection refused")}
	c := Classify(err, true)
	assert.Equal(t, networkMessage, c.ErrorMessage)
	assert.True(t, c.FallbackToDemo)

	opErr := &net.OpError{Op: "dial", Err: errors.New("no route to host")}
	c = Classify(opErr, false)
	assert.Equal(t, networkMessage, c.ErrorMessage)
	assert.False(t, c.FallbackToDemo)
}

func TestClassifyUsageLimit(t *testing.T) {
	body := []byte(`{"detail":{"usage_info":{"usage_type":"address_search","display_name":"address search","current_count":10,"limit":10}}}`)
	c := Classify(&UpstreamError{StatusCode: 429, Body: body}, true)

	assert.True(t, c.ShowUpgradePrompt)
	// Demo substitution never masks a plan limit, even when allowed.
	assert.False(t, c.FallbackToDemo)
	assert.Contains(t, c.ErrorMessage, "address search")
	assert.Contains(t, c.ErrorMessage, "10/10")
	require.NotNil(t, c.UpgradeInfo)
	assert.Equal(t, 10, c.UpgradeInfo.Limit)
}

func TestClassifyUsageLimitFallsBackToUsageType(t *testing.T) {
	body := []byte(`{"detail":{"usage_info":{"usage_type":"report_generation","current_count":3,"limit":3}}}`)
	c := Classify(&UpstreamError{StatusCode: 429, Body: body}, false)

	assert.Contains(t, c.ErrorMessage, "report_generation")
	assert.Contains(t, c.ErrorMessage, "3/3")
}

func TestClassifyTrialExpired(t *testing.T) {
	body := []byte(`{"detail":{"trial_expired":true}}`)
	c := Classify(&UpstreamError{StatusCode: 429, Body: body}, true)

	assert.Equal(t, trialMessage, c.ErrorMessage)
	assert.True(t, c.ShowUpgradePrompt)
	assert.False(t, c.FallbackToDemo)
}

func TestClassifyUnparseable429(t *testing.T) {
	c := Classify(&UpstreamError{StatusCode: 429, Body: []byte("rate limited")}, true)
	assert.Equal(t, limitMessage, c.ErrorMessage)
	assert.True(t, c.ShowUpgradePrompt)
	assert.False(t, c.FallbackToDemo)
	assert.Nil(t, c.UpgradeInfo)
}

func TestClassifyServerError(t *testing.T) {
	c := Classify(&UpstreamError{StatusCode: 503, Body: nil}, true)
	assert.Equal(t, serverMessage, c.ErrorMessage)
	assert.True(t, c.FallbackToDemo)

	c = Classify(&UpstreamError{StatusCode: 500, Body: nil}, false)
	assert.False(t, c.FallbackToDemo)
}

func TestClassifyOther(t *testing.T) {
	c := Classify(&UpstreamError{StatusCode: 404, Body: nil}, true)
	assert.Contains(t, c.ErrorMessage, "Something went wrong")
	assert.True(t, c.FallbackToDemo)
	assert.False(t, c.ShowUpgradePrompt)

	c = Classify(errors.New("boom"), false)
	assert.Equal(t, genericPrefix+"boom", c.ErrorMessage)
	assert.False(t, c.FallbackToDemo)
}

func TestFailureError(t *testing.T) {
	f := &Failure{Classification: Classification{ErrorMessage: "nope"}}
	assert.Equal(t, "nope", f.Error())

	var target *Failure
	assert.True(t, errors.As(error(f), &target))
}
