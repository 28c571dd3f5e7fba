package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateOTPShape(t *testing.T) {
	for i := 0; i < 500; i++ {
		code, expiresAt, err := generateOTP(5 * time.Minute)
		require.NoError(t, err)
		require.Len(t, code, 6)
		require.NotEqual(t, byte('0'), code[0], "codes never start with a zero")

		for _, ch := range code {
			require.True(t, ch >= '0' && ch <= '9')
		}

		require.WithinDuration(t, time.Now().Add(5*time.Minute), expiresAt, 2*time.Second)
	}
}
