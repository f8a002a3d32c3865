package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBenchError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *BenchError
		want string
	}{
		{
			name: "error without underlying error",
			err:  New(ErrCodeDuplicateNode, "node already registered"),
			want: "[SUBSTRATE_1001] node already registered",
		},
		{
			name: "error with underlying error",
			err:  Wrap(ErrCodeNVMUnavailable, "NVM store unavailable", errors.New("permission denied")),
			want: "[CFG_5002] NVM store unavailable: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestBenchError_Unwrap(t *testing.T) {
	underlying := errors.New("disk full")
	err := Wrap(ErrCodeNVMUnavailable, "write failed", underlying)

	assert.Equal(t, underlying, err.Unwrap())
	assert.True(t, errors.Is(err, underlying))
}

func TestBenchError_WithDetails(t *testing.T) {
	err := New(ErrCodeMalformedMessage, "bad payload").
		WithDetails("id", "RADAR_OBJECTS").
		WithDetails("reason", "missing dist field")

	assert.Equal(t, "RADAR_OBJECTS", err.Details["id"])
	assert.Equal(t, "missing dist field", err.Details["reason"])
}

func TestDuplicateNodeAndUnknownNode(t *testing.T) {
	dup := DuplicateNode("ADAS_ECU")
	assert.Equal(t, ErrCodeDuplicateNode, dup.Code)
	assert.Equal(t, "ADAS_ECU", dup.Details["name"])

	unk := UnknownNode("GhostECU")
	assert.Equal(t, ErrCodeUnknownNode, unk.Code)
}

func TestIsBenchErrorAndCode(t *testing.T) {
	err := ProtocolRejection("UDS", 0x35)
	assert.True(t, IsBenchError(err))
	assert.Equal(t, ErrCodeProtocolRejection, Code(err))
	assert.Equal(t, ErrorCode(""), Code(errors.New("plain")))
}
