package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sentinels() []error {
	return []error{
		ErrServerURLNotSet,
		ErrTripNotFound,
		ErrStopNotFound,
		ErrEmployeeNotFound,
		ErrNotLinked,
		ErrReadOnlyTrip,
		ErrNotImported,
		ErrAPIRequest,
		ErrAPIResponse,
	}
}

func TestSentinelErrors_ImplementErrorInterface(t *testing.T) {
	for _, err := range sentinels() {
		assert.NotEmpty(t, err.Error(), "sentinel error should have non-empty message")
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	all := sentinels()
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			assert.NotEqual(t, all[i], all[j],
				"sentinel errors should be distinct: %q vs %q", all[i], all[j])
		}
	}
}

func TestSentinelErrors_ExpectedMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrServerURLNotSet, "server URL is not configured"},
		{ErrTripNotFound, "trip not found"},
		{ErrNotLinked, "no employee linked to this device"},
		{ErrReadOnlyTrip, "trip is read-only"},
		{ErrAPIRequest, "API request failed"},
		{ErrAPIResponse, "unexpected API response"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}
