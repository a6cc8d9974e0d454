package softserve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sagarc03/softserve"
)

func TestOutcomeKind_String(t *testing.T) {
	assert.Equal(t, "not_found", softserve.OutcomeNotFound.String())
	assert.Equal(t, "stream", softserve.OutcomeStream.String())
	assert.Equal(t, "server_error", softserve.OutcomeServerError.String())
	assert.Equal(t, "outcome(42)", softserve.OutcomeKind(42).String())
}

func TestOutcome_ZeroValueIsNotFound(t *testing.T) {
	var out softserve.Outcome
	assert.Equal(t, softserve.OutcomeNotFound, out.Kind)
	assert.Nil(t, out.Stream)
}

func TestProtocol_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		protocol softserve.Protocol
		valid    bool
	}{
		{name: "http is valid", protocol: softserve.ProtocolHTTP, valid: true},
		{name: "ftp is valid", protocol: softserve.ProtocolFTP, valid: true},
		{name: "tftp is valid", protocol: softserve.ProtocolTFTP, valid: true},
		{name: "empty is invalid", protocol: "", valid: false},
		{name: "uppercase is invalid", protocol: "HTTP", valid: false},
		{name: "random string is invalid", protocol: "gopher", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.protocol.IsValid())
		})
	}
}

func TestParseProtocol(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      softserve.Protocol
		wantError bool
	}{
		{name: "parse http", input: "http", want: softserve.ProtocolHTTP},
		{name: "parse ftp", input: "ftp", want: softserve.ProtocolFTP},
		{name: "parse tftp", input: "tftp", want: softserve.ProtocolTFTP},
		{name: "empty string returns error", input: "", wantError: true},
		{name: "mixed case returns error", input: "Http", wantError: true},
		{name: "unknown returns error", input: "sftp", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := softserve.ParseProtocol(tt.input)

			if tt.wantError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid protocol")
				assert.Contains(t, err.Error(), tt.input)
				assert.Equal(t, softserve.Protocol(""), got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
