package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_CanView(t *testing.T) {
	var p Policy
	tests := []struct {
		name      string
		requester string
		owner     string
		public    bool
		want      bool
	}{
		{"owner private", "alice", "alice", false, true},
		{"other private", "bob", "alice", false, false},
		{"other public", "bob", "alice", true, true},
		{"anonymous public", "", "alice", true, true},
		{"anonymous private", "", "alice", false, false},
		{"empty owner private", "", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.CanView(tt.requester, tt.owner, tt.public))
		})
	}
}

func TestPolicy_CanModify(t *testing.T) {
	var p Policy
	assert.True(t, p.CanModify("alice", "alice"))
	assert.False(t, p.CanModify("bob", "alice"))
	assert.False(t, p.CanModify("", ""))
}
