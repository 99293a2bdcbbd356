package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_AncestorIDs(t *testing.T) {
	tests := []struct {
		name string
		ctx  Context
		want []uint
	}{
		{"system", Context{BaseModel: BaseModel{ID: 1}, Path: "/1"}, []uint{1}},
		{"course", Context{BaseModel: BaseModel{ID: 9}, Path: "/1/4/9"}, []uint{1, 4, 9}},
		{"path not set yet", Context{BaseModel: BaseModel{ID: 7}}, []uint{7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.ctx.AncestorIDs()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContext_AncestorIDs_Malformed(t *testing.T) {
	ctx := Context{BaseModel: BaseModel{ID: 3}, Path: "/1/x/3"}
	_, err := ctx.AncestorIDs()
	assert.Error(t, err)
}

func TestContext_ChildPath(t *testing.T) {
	parent := Context{BaseModel: BaseModel{ID: 4}, Path: "/1/4"}
	assert.Equal(t, "/1/4/12", parent.ChildPath(12))
}

func TestBroadcastMode_Flags(t *testing.T) {
	assert.True(t, BroadcastModeModal.ShowsModal())
	assert.False(t, BroadcastModeModal.ShowsNotification())
	assert.True(t, BroadcastModeNotification.ShowsNotification())
	assert.False(t, BroadcastModeNotification.ShowsModal())
	assert.True(t, BroadcastModeBoth.ShowsModal())
	assert.True(t, BroadcastModeBoth.ShowsNotification())
	assert.False(t, BroadcastMode(0).Valid())
	assert.False(t, BroadcastMode(4).Valid())
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", (&User{FirstName: "Ada", LastName: "Lovelace"}).FullName())
	assert.Equal(t, "ada@example.com", (&User{Email: "ada@example.com"}).FullName())
}
