package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"classconnect/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Password",
			input:  []byte(`{"hello":"world","password":"abc123"}`),
			output: []byte(`{"hello":"world","password":"[MASKED]"}`),
		},
		{
			name:   "Password capital letter",
			input:  []byte(`{"hello":"world","Password":"abc123"}`),
			output: []byte(`{"hello":"world","Password":"[MASKED]"}`),
		},
		{
			name:   "User header",
			input:  []byte("GET /v1/users/me/reviews HTTP/1.1\r\nX-User-Id: student-42\r\n"),
			output: []byte("GET /v1/users/me/reviews HTTP/1.1\r\nX-User-Id: [MASKED]\r\n"),
		},
		{
			name:   "Review professor",
			input:  []byte(`{"stars":2,"professor":"Dr. Smith","term":"Fall 2024","comment":"too fast"}`),
			output: []byte(`{"stars":2,"professor":"[MASKED]","term":"Fall 2024","comment":"too fast"}`),
		},
		{
			name:   "Empty professor",
			input:  []byte(`{"stars":2,"professor":""}`),
			output: []byte(`{"stars":2,"professor":""}`),
		},
		{
			name:   "Email",
			input:  []byte(`{"email": "student@vanderbilt.edu", "stars": 5}`),
			output: []byte(`{"email": "[MASKED]", "stars": 5}`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}
