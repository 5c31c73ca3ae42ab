package apierror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"

	"propscore-webapp-be/internal/dto"
)

// UpstreamError is a non-2xx reply from the scoring API, body retained so the
// classifier can inspect usage-limit payloads.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("scoring api returned status %d", e.StatusCode)
}

// Classification is the normalized outcome of a failed upstream call. The
// caller decides between surfacing ErrorMessage, substituting demo data, or
// rendering the upgrade prompt.
type Classification struct {
	ErrorMessage      string         `json:"error_message"`
	FallbackToDemo    bool           `json:"fallback_to_demo"`
	ShowUpgradePrompt bool           `json:"show_upgrade_prompt"`
	UpgradeInfo       *dto.UsageInfo `json:"upgrade_info,omitempty"`
}

const (
	timeoutMessage = "The request timed out. Please try again."
	networkMessage = "Could not reach the scoring service. Please check your connection and try again."
	serverMessage  = "The scoring service hit a problem. Please try again in a moment."
	limitMessage   = "You've reached your plan limit. Upgrade to continue."
	trialMessage   = "Your free trial has expired. Upgrade your plan to keep searching."
	genericPrefix  = "Something went wrong: "
)

// Classify maps a failure to a user-facing result. Priority order: timeout,
// network, 429 usage limit, 5xx, everything else. Demo fallback is only ever
// offered when the caller opted in via allowDemo, and never for 429.
func Classify(err error, allowDemo bool) Classification {
	if err == nil {
		return Classification{}
	}

	if isTimeout(err) {
		return Classification{ErrorMessage: timeoutMessage, FallbackToDemo: allowDemo}
	}

	if isNetwork(err) {
		return Classification{ErrorMessage: networkMessage, FallbackToDemo: allowDemo}
	}

	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		switch {
		case upstream.StatusCode == 429:
			return classifyUsageLimit(upstream.Body)
		case upstream.StatusCode >= 500:
			return Classification{ErrorMessage: serverMessage, FallbackToDemo: allowDemo}
		}
	}

	return Classification{
		ErrorMessage:   genericPrefix + err.Error(),
		FallbackToDemo: allowDemo,
	}
}

func classifyUsageLimit(body []byte) Classification {
	var parsed dto.UpstreamErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil || (parsed.Detail.UsageInfo == nil && !parsed.Detail.TrialExpired) {
		// Unparseable 429 still means the plan ran out
		return Classification{ErrorMessage: limitMessage, ShowUpgradePrompt: true}
	}

	if parsed.Detail.TrialExpired {
		return Classification{
			ErrorMessage:      trialMessage,
			ShowUpgradePrompt: true,
			UpgradeInfo:       parsed.Detail.UsageInfo,
		}
	}

	info := parsed.Detail.UsageInfo
	name := info.DisplayName
	if name == "" {
		name = info.UsageType
	}
	return Classification{
		ErrorMessage: fmt.Sprintf("You've reached your %s limit (%d/%d). Upgrade your plan to continue.",
			name, info.CurrentCount, info.Limit),
		ShowUpgradePrompt: true,
		UpgradeInfo:       info,
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func isNetwork(err error) bool {
	var ue *url.Error
	if errors.As(err, &ue) {
		return true
	}
	var oe *net.OpError
	return errors.As(err, &oe)
}
