package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{"", MethodBankTransfer, false},
		{"upi", MethodUPI, false},
		{" Cheque ", MethodCheque, false},
		{"CASH", MethodCash, false},
		{"crypto", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidMethod, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
