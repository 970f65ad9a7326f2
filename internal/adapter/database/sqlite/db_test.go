package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImmediateTxLock(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{name: "plain path", dsn: "data.db", want: "data.db?_txlock=immediate"},
		{name: "file uri with params", dsn: "file:data.db?_busy_timeout=5000", want: "file:data.db?_busy_timeout=5000&_txlock=immediate"},
		{name: "explicit lock kept", dsn: "file:data.db?_txlock=deferred", want: "file:data.db?_txlock=deferred"},
		{name: "memory untouched", dsn: "file::memory:?_busy_timeout=5000", want: "file::memory:?_busy_timeout=5000"},
		{name: "shared memory untouched", dsn: "file:x?mode=memory&cache=shared", want: "file:x?mode=memory&cache=shared"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, immediateTxLock(tt.dsn))
		})
	}
}
